package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Allow(t *testing.T) {
	tb := NewTokenBucket(60, 2)
	assert.True(t, tb.Allow(), "初始桶满，第一个请求应通过")
	assert.True(t, tb.Allow(), "第二个请求应通过")
	assert.False(t, tb.Allow(), "令牌耗尽后应拒绝")
}

func TestTokenBucket_WaitRespectsContext(t *testing.T) {
	tb := NewTokenBucket(1, 1) // 每分钟1个令牌
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "令牌不足时应在上下文超时后返回")
}

func TestRetryWithBackoff(t *testing.T) {
	tb := NewTokenBucket(6000, 100).WithRetryPolicy(time.Millisecond, 3)

	calls := 0
	err := tb.RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return MarkRetryable(errors.New("状态码: 429"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "可重试错误应重试直到成功")

	calls = 0
	err = tb.RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("invalid api key")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "不可重试错误不应重试")

	calls = 0
	err = tb.RetryWithBackoff(context.Background(), func() error {
		calls++
		return fmt.Errorf("请求失败: %w", MarkRetryable(errors.New("503")))
	})
	assert.Error(t, err)
	assert.Equal(t, 4, calls, "达到最大重试次数后应返回最后一次错误")
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil))
	assert.False(t, IsRetryableError(context.Canceled))
	assert.True(t, IsRetryableError(errors.New("i/o timeout")))
	assert.True(t, IsRetryableError(MarkRetryable(errors.New("boom"))))
	assert.False(t, IsRetryableError(errors.New("bad request")))
}

type flakyEmbedder struct {
	failures int
	calls    int
}

func (f *flakyEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection reset by peer")
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0}
	}
	return out, nil
}

func (f *flakyEmbedder) GetDimensions() int { return 2 }

func TestRateLimitedEmbedder(t *testing.T) {
	inner := &flakyEmbedder{failures: 1}
	proxy := NewRateLimitedEmbedder(inner, 6000).WithRetryPolicy(time.Millisecond, 2)

	vectors, err := proxy.EmbedStrings(context.Background(), []string{"go", "redis"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 2, inner.calls, "首次失败后应重试一次")
	assert.Equal(t, 2, proxy.GetDimensions())
}
