package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"cv-ai-go/internal/config"
	"cv-ai-go/pkg/ratelimit"

	"github.com/cloudwego/eino/components/embedding"
)

const defaultEmbeddingBatchSize = 10

// OpenAIEmbedder 调用 OpenAI 兼容的 /embeddings 接口, 实现 embedding.Embedder 接口
type OpenAIEmbedder struct {
	apiKey       string
	model        string
	dimensions   int
	baseURL      string
	maxBatchSize int
	httpClient   *http.Client
	logger       *log.Logger
}

var _ embedding.Embedder = (*OpenAIEmbedder)(nil)

// EmbedderOption 配置 OpenAIEmbedder
type EmbedderOption func(*OpenAIEmbedder)

// WithEmbedderLogger 设置日志记录器
func WithEmbedderLogger(logger *log.Logger) EmbedderOption {
	return func(e *OpenAIEmbedder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEmbedderHTTPClient 设置HTTP客户端
func WithEmbedderHTTPClient(client *http.Client) EmbedderOption {
	return func(e *OpenAIEmbedder) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// WithMaxBatchSize 设置单次请求的最大文本数
func WithMaxBatchSize(n int) EmbedderOption {
	return func(e *OpenAIEmbedder) {
		if n > 0 {
			e.maxBatchSize = n
		}
	}
}

// NewOpenAIEmbedder 创建新的 OpenAI 兼容 Embedder
func NewOpenAIEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig, opts ...EmbedderOption) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1/embeddings"
	}
	timeout := time.Duration(embeddingCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	e := &OpenAIEmbedder{
		apiKey:       apiKey,
		model:        model,
		dimensions:   embeddingCfg.Dimensions,
		baseURL:      baseURL,
		maxBatchSize: defaultEmbeddingBatchSize,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// GetDimensions 返回配置的向量维度
func (e *OpenAIEmbedder) GetDimensions() int {
	return e.dimensions
}

// Model 返回默认模型名
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// OpenAIEmbeddingRequest 请求结构
type OpenAIEmbeddingRequest struct {
	Input          []string `json:"input"`
	Model          string   `json:"model"`
	Dimensions     int      `json:"dimensions,omitempty"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

// OpenAIEmbeddingResponse 响应结构
type OpenAIEmbeddingResponse struct {
	Object string            `json:"object"`
	Data   []OpenAIDataEntry `json:"data"`
	Model  string            `json:"model"`
	Usage  OpenAIUsage       `json:"usage"`
	Error  *OpenAIError      `json:"error,omitempty"`
}

// OpenAIDataEntry 单条向量
type OpenAIDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// OpenAIUsage token 用量
type OpenAIUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// OpenAIError 接口返回的错误
type OpenAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本转换为向量, 超过 maxBatchSize 时分批请求, 返回顺序与输入一致
func (e *OpenAIEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	options := &embedding.Options{}
	options = embedding.GetCommonOptions(options, opts...)

	model := e.model
	if options.Model != nil && *options.Model != "" {
		model = *options.Model
	}

	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	e.logger.Printf("EmbedStrings: %d texts, model=%s, dimensions=%d, first=%.100s", len(texts), model, e.dimensions, texts[0])

	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += e.maxBatchSize {
		end := start + e.maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := e.embedBatch(ctx, model, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, model string, texts []string) ([][]float64, error) {
	reqBody := OpenAIEmbeddingRequest{
		Input:          texts,
		Model:          model,
		Dimensions:     e.dimensions,
		EncodingFormat: "float",
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detailedError := fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, truncateBody(body))
		var wrapped struct {
			Error *OpenAIError `json:"error"`
		}
		if json.Unmarshal(body, &wrapped) == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
			detailedError = fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s", resp.StatusCode, wrapped.Error.Type, wrapped.Error.Message)
		}
		e.logger.Printf("API call failed: %v", detailedError)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, ratelimit.MarkRetryable(detailedError)
		}
		return nil, detailedError
	}

	var parsedResp OpenAIEmbeddingResponse
	if err := json.Unmarshal(body, &parsedResp); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}
	if parsedResp.Error != nil && parsedResp.Error.Message != "" {
		return nil, fmt.Errorf("API返回错误: 类型=%s, 消息='%s'", parsedResp.Error.Type, parsedResp.Error.Message)
	}
	if len(parsedResp.Data) != len(texts) {
		return nil, fmt.Errorf("返回向量数量不匹配: 期望 %d, 实际 %d", len(texts), len(parsedResp.Data))
	}

	// 按 index 排序, 保证与输入顺序一致
	sort.Slice(parsedResp.Data, func(i, j int) bool {
		return parsedResp.Data[i].Index < parsedResp.Data[j].Index
	})

	vectors := make([][]float64, len(parsedResp.Data))
	for i, entry := range parsedResp.Data {
		vectors[i] = entry.Embedding
	}

	e.logger.Printf("embedded %d texts, dim=%d, preview=%s, prompt_tokens=%d",
		len(texts), len(vectors[0]), truncateEmbedding(vectors[0]), parsedResp.Usage.PromptTokens)
	return vectors, nil
}

func truncateBody(body []byte) string {
	const maxLen = 300
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}

// truncateEmbedding 截断嵌入向量的字符串表示形式
func truncateEmbedding(vector []float64) string {
	const maxLen = 6
	const showEachSide = 3

	if len(vector) <= maxLen {
		return fmt.Sprintf("%v", vector)
	}

	var truncated []string
	for i := 0; i < showEachSide; i++ {
		truncated = append(truncated, fmt.Sprintf("%.4f", vector[i]))
	}
	truncated = append(truncated, "...")
	for i := len(vector) - showEachSide; i < len(vector); i++ {
		truncated = append(truncated, fmt.Sprintf("%.4f", vector[i]))
	}
	return fmt.Sprintf("[%s]", strings.Join(truncated, ", "))
}
