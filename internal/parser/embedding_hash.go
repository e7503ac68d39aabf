package parser

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
)

const defaultHashDimensions = 384

var hashTokenRegex = regexp.MustCompile(`[\p{L}\p{N}+#.]+`)

// HashEmbedder 基于特征哈希的确定性 Embedder, 不依赖外部服务, 用于离线运行和测试
type HashEmbedder struct {
	dimensions int
}

var _ embedding.Embedder = (*HashEmbedder)(nil)

// NewHashEmbedder 创建 HashEmbedder, dimensions<=0 时使用默认维度
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = defaultHashDimensions
	}
	return &HashEmbedder{dimensions: dimensions}
}

// GetDimensions 返回向量维度
func (h *HashEmbedder) GetDimensions() int {
	return h.dimensions
}

// EmbedStrings 每个词元哈希到一个维度并按符号累加, 结果做 L2 归一化。空文本得到零向量
func (h *HashEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embed(text)
	}
	return out, nil
}

func (h *HashEmbedder) embed(text string) []float64 {
	vec := make([]float64, h.dimensions)
	for _, token := range hashTokenRegex.FindAllString(strings.ToLower(text), -1) {
		token = strings.Trim(token, ".")
		if token == "" {
			continue
		}
		hasher := fnv.New64a()
		_, _ = hasher.Write([]byte(token))
		sum := hasher.Sum64()
		idx := int(sum % uint64(h.dimensions))
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
