package processor

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"
)

//
// 向量嵌入相关接口
//

// TextEmbedder 文本向量化接口 (符合 cloudwego/eino 规范)
type TextEmbedder interface {
	// EmbedStrings 将文本转换为向量表示, 返回顺序与输入一致
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

//
// 缓存相关接口
//

// JobVectorCache JD向量缓存, 由 storage.Redis 实现
type JobVectorCache interface {
	// GetJobVector 返回缓存的向量及生成它的模型版本
	GetJobVector(ctx context.Context, jobKey string) ([]float64, string, error)

	// SetJobVector 写入向量及模型版本
	SetJobVector(ctx context.Context, jobKey string, vector []float64, modelVersion string) error
}
