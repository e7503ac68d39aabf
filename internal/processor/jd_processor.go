package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"cv-ai-go/internal/storage"
	"cv-ai-go/pkg/utils"
)

// JDProcessor 负责岗位描述 (JD) 的文本向量化, 可选地使用缓存。
type JDProcessor struct {
	embedder       TextEmbedder // 文本向量化接口实例
	cache          JobVectorCache
	embeddingModel string
	logger         *log.Logger
}

// NewJDProcessor 创建一个新的 JDProcessor 实例。
// embeddingModel 写入缓存, 读取时版本不一致的向量会被重新生成。
func NewJDProcessor(embedder TextEmbedder, embeddingModel string, options ...JDOption) (*JDProcessor, error) {
	if embedder == nil {
		return nil, fmt.Errorf("TextEmbedder 不能为空")
	}
	if embeddingModel == "" {
		return nil, fmt.Errorf("embeddingModel 不能为空")
	}

	p := &JDProcessor{
		embedder:       embedder,
		embeddingModel: embeddingModel,
		logger:         log.New(io.Discard, "", 0),
	}

	for _, option := range options {
		option(p)
	}

	p.logger.Printf("JDProcessor 初始化完成，使用 Embedder: %T, Model: %s, 缓存: %t", embedder, embeddingModel, p.cache != nil)
	return p, nil
}

// JobCacheKey 以 JD 文本的 MD5 作为缓存键
func JobCacheKey(jdText string) string {
	return utils.CalculateMD5([]byte(jdText))
}

// GetJobDescriptionVector 将 JD 文本转换为查询向量。
// 先尝试从缓存获取, 未命中或模型版本不一致时重新计算并写回缓存。缓存错误不影响结果。
func (p *JDProcessor) GetJobDescriptionVector(ctx context.Context, jdText string) ([]float64, error) {
	if jdText == "" {
		return nil, fmt.Errorf("JD 文本不能为空")
	}

	jobKey := JobCacheKey(jdText)

	// 1. 尝试从缓存获取
	if p.cache != nil {
		cachedVector, modelVersion, err := p.cache.GetJobVector(ctx, jobKey)
		switch {
		case err == nil && len(cachedVector) > 0 && modelVersion == p.embeddingModel:
			p.logger.Printf("从缓存命中 JD 向量, key: %s, Model: %s", jobKey, modelVersion)
			return cachedVector, nil
		case err == nil && len(cachedVector) > 0:
			p.logger.Printf("缓存中的 JD 向量模型版本不匹配 (缓存: %s, 当前: %s)，将重新生成", modelVersion, p.embeddingModel)
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			// 缓存读取出错，记录日志但继续执行，因为向量生成是核心路径
			p.logger.Printf("从缓存获取 JD 向量失败, key: %s, Error: %v. 将继续生成新向量", jobKey, err)
		}
	}

	// 2. 调用 embedder 进行向量化
	vectors, err := p.embedder.EmbedStrings(ctx, []string{jdText})
	if err != nil {
		p.logger.Printf("JD 文本向量化失败, key: %s: %v", jobKey, err)
		return nil, fmt.Errorf("JD 文本向量化失败: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("JD 文本向量化结果为空")
	}

	newVector := vectors[0]
	p.logger.Printf("JD 文本向量生成成功, key: %s，向量维度: %d", jobKey, len(newVector))

	// 3. 将新生成的向量存入缓存
	if p.cache != nil {
		if err := p.cache.SetJobVector(ctx, jobKey, newVector, p.embeddingModel); err != nil {
			// 缓存失败不应阻塞主流程，但需要记录日志
			p.logger.Printf("将 JD 向量存入缓存失败, key: %s: %v", jobKey, err)
		}
	}

	return newVector, nil
}
