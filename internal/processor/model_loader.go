package processor

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"cv-ai-go/internal/config"
	"cv-ai-go/internal/parser"
	"cv-ai-go/pkg/ratelimit"

	"github.com/cloudwego/eino/components/embedding"
)

// 向量模型提供方
const (
	ProviderOpenAI = "openai"
	ProviderHash   = "hash"
)

// LoadFunc 构造向量模型
type LoadFunc func(ctx context.Context) (TextEmbedder, error)

// ModelLoader 进程级向量模型句柄: 首次使用时加载, 加载成功后不再替换。
// 加载失败不会被缓存, 下一次调用会重新尝试
type ModelLoader struct {
	mu       sync.Mutex
	load     LoadFunc
	embedder TextEmbedder
	version  string
	logger   *log.Logger
}

var _ TextEmbedder = (*ModelLoader)(nil)

// LoaderOption 配置 ModelLoader
type LoaderOption func(*ModelLoader)

// WithLoaderLogger 设置日志记录器
func WithLoaderLogger(logger *log.Logger) LoaderOption {
	return func(l *ModelLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewModelLoader 创建惰性加载器, version 用于标记由该模型生成的缓存向量
func NewModelLoader(version string, load LoadFunc, opts ...LoaderOption) (*ModelLoader, error) {
	if load == nil {
		return nil, fmt.Errorf("LoadFunc 不能为空")
	}
	if version == "" {
		return nil, fmt.Errorf("模型版本不能为空")
	}
	l := &ModelLoader{
		load:    load,
		version: version,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// NewModelLoaderFromConfig 按配置选择提供方; openai 模型外层包裹限流与重试
func NewModelLoaderFromConfig(cfg config.EmbeddingConfig, logger *log.Logger) (*ModelLoader, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	var (
		load    LoadFunc
		version string
	)
	switch provider {
	case ProviderOpenAI, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("embedding.provider=openai 时必须配置 api_key (或环境变量 EMBEDDING_API_KEY)")
		}
		version = fmt.Sprintf("%s:%s:%d", ProviderOpenAI, cfg.Model, cfg.Dimensions)
		load = func(ctx context.Context) (TextEmbedder, error) {
			e, err := parser.NewOpenAIEmbedder(cfg.APIKey, cfg, parser.WithEmbedderLogger(logger))
			if err != nil {
				return nil, err
			}
			limited := ratelimit.NewRateLimitedEmbedder(e, cfg.QPM)
			if cfg.MaxRetries > 0 || cfg.RetryWaitSeconds > 0 {
				limited.WithRetryPolicy(time.Duration(cfg.RetryWaitSeconds)*time.Second, cfg.MaxRetries)
			}
			return limited, nil
		}
	case ProviderHash:
		dims := parser.NewHashEmbedder(cfg.Dimensions).GetDimensions()
		version = fmt.Sprintf("%s:%d", ProviderHash, dims)
		load = func(ctx context.Context) (TextEmbedder, error) {
			return parser.NewHashEmbedder(dims), nil
		}
	default:
		return nil, fmt.Errorf("不支持的向量模型提供方: %s", cfg.Provider)
	}

	return NewModelLoader(version, load, WithLoaderLogger(logger))
}

// Get 返回已加载的模型, 未加载时加载
func (l *ModelLoader) Get(ctx context.Context) (TextEmbedder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.embedder != nil {
		return l.embedder, nil
	}

	start := time.Now()
	e, err := l.load(ctx)
	if err != nil {
		l.logger.Printf("加载向量模型失败 (version: %s): %v", l.version, err)
		return nil, NewModelLoadError(err.Error())
	}
	if e == nil {
		return nil, NewModelLoadError("LoadFunc 返回了空模型")
	}
	l.embedder = e
	l.logger.Printf("向量模型加载完成 (version: %s, 用时 %s)", l.version, time.Since(start))
	return e, nil
}

// Loaded 模型是否已加载
func (l *ModelLoader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.embedder != nil
}

// ModelVersion 返回模型版本标识
func (l *ModelLoader) ModelVersion() string {
	return l.version
}

// EmbedStrings 加载模型后转发调用
func (l *ModelLoader) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	e, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return e.EmbedStrings(ctx, texts, opts...)
}

// GetDimensions 模型未加载时返回0
func (l *ModelLoader) GetDimensions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.embedder == nil {
		return 0
	}
	return l.embedder.GetDimensions()
}
