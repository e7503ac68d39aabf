package processor

import (
	"context"
	"errors"
	"sync"

	"cv-ai-go/internal/storage"

	"github.com/cloudwego/eino/components/embedding"
)

// MockEmbedder 按文本返回固定向量, 未登记的文本返回 fallback
type MockEmbedder struct {
	mu       sync.Mutex
	vectors  map[string][]float64
	fallback []float64
	err      error
	calls    int
	inputs   [][]string
}

func (m *MockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.inputs = append(m.inputs, texts)
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = m.fallback
		}
	}
	return out, nil
}

func (m *MockEmbedder) GetDimensions() int {
	return len(m.fallback)
}

func (m *MockEmbedder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type cachedVector struct {
	vector  []float64
	version string
}

// MockJobVectorCache 内存实现的JD向量缓存
type MockJobVectorCache struct {
	data   map[string]cachedVector
	getErr error
	setErr error
	sets   int
}

func NewMockJobVectorCache() *MockJobVectorCache {
	return &MockJobVectorCache{data: make(map[string]cachedVector)}
}

func (c *MockJobVectorCache) GetJobVector(ctx context.Context, jobKey string) ([]float64, string, error) {
	if c.getErr != nil {
		return nil, "", c.getErr
	}
	v, ok := c.data[jobKey]
	if !ok {
		return nil, "", storage.ErrNotFound
	}
	return v.vector, v.version, nil
}

func (c *MockJobVectorCache) SetJobVector(ctx context.Context, jobKey string, vector []float64, modelVersion string) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[jobKey] = cachedVector{vector: vector, version: modelVersion}
	return nil
}

var errMockEmbedding = errors.New("mock embedding failure")
