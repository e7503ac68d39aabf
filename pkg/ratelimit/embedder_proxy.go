package ratelimit

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/embedding"
)

// RateLimitedEmbedder 对向量模型的调用进行限流与重试的代理
type RateLimitedEmbedder struct {
	original    embedding.Embedder
	rateLimiter *TokenBucket
}

var _ embedding.Embedder = (*RateLimitedEmbedder)(nil)

// NewRateLimitedEmbedder 创建一个新的限流Embedder代理
func NewRateLimitedEmbedder(original embedding.Embedder, qpm int) *RateLimitedEmbedder {
	return &RateLimitedEmbedder{
		original:    original,
		rateLimiter: NewTokenBucket(qpm, qpm/2), // 容量设为QPM的一半，允许一定的突发流量
	}
}

// WithRetryPolicy 设置重试策略
func (rl *RateLimitedEmbedder) WithRetryPolicy(waitTime time.Duration, maxRetries int) *RateLimitedEmbedder {
	rl.rateLimiter.WithRetryPolicy(waitTime, maxRetries)
	return rl
}

// EmbedStrings 代理EmbedStrings方法，增加限流和重试逻辑
func (rl *RateLimitedEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	var vectors [][]float64
	err := rl.rateLimiter.RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = rl.original.EmbedStrings(ctx, texts, opts...)
		return embedErr
	})
	return vectors, err
}

// GetDimensions 透传被代理对象的向量维度，未知时返回0
func (rl *RateLimitedEmbedder) GetDimensions() int {
	if d, ok := rl.original.(interface{ GetDimensions() int }); ok {
		return d.GetDimensions()
	}
	return 0
}
