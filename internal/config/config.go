package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 向量模型配置
	Embedding EmbeddingConfig `yaml:"embedding"`

	// 简历解析器配置
	Parser ParserConfig `yaml:"parser"`

	// Tika服务器配置 (parser.pdf_engine 为 "tika" 时使用)
	Tika TikaConfig `yaml:"tika"`

	// Redis配置，用于缓存JD向量，可选
	Redis RedisConfig `yaml:"redis"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080" or "0.0.0.0:8080"
	// APIKeys 为空时不启用鉴权
	APIKeys []string `yaml:"api_keys,omitempty"`
	// 请求体上限(MB)
	MaxRequestBodyMB int `yaml:"max_request_body_mb"`
}

// EmbeddingConfig 向量模型配置 (OpenAI compatible)
type EmbeddingConfig struct {
	Provider         string `yaml:"provider"` // "openai" | "hash"
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Model            string `yaml:"model"`
	Dimensions       int    `yaml:"dimensions"`
	QPM              int    `yaml:"qpm"`                // 每分钟请求数限制
	MaxRetries       int    `yaml:"max_retries"`        // 最大重试次数
	RetryWaitSeconds int    `yaml:"retry_wait_seconds"` // 重试等待时间(秒)
	TimeoutSeconds   int    `yaml:"timeout_seconds"`    // 单次请求超时(秒)
}

// ParserConfig 简历解析配置
type ParserConfig struct {
	PDFEngine        string `yaml:"pdf_engine"`         // "eino" | "ledongthuc" | "tika"
	MaxFileSizeMB    int    `yaml:"max_file_size_mb"`   // 上传文件大小上限
	LogExtractedText bool   `yaml:"log_extracted_text"` // debug时打印提取的文本预览
	ParseTimeout     string `yaml:"parse_timeout"`      // 例如 "30s"
}

// TikaConfig Tika服务器配置结构
type TikaConfig struct {
	ServerURL string `yaml:"server_url"`      // Tika服务器URL
	Timeout   int    `yaml:"timeout_seconds"` // 超时时间(秒)
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 重试设置
	MaxRetries int `yaml:"max_retries"` // 最大重试次数
	// JD向量缓存过期时间(小时)
	JobVectorTTLHours int `yaml:"job_vector_ttl_hours"`
}

// TracingConfig OpenTelemetry配置
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"` // 例如 "localhost:4317"
	Insecure     bool   `yaml:"insecure"`
	ServiceName  string `yaml:"service_name"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
	File         string `yaml:"file"`          // 可选，额外写入的日志文件
}

// LoadConfig 从文件加载配置，并使用 .env 与环境变量覆盖
func LoadConfig(configPath string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"internal/config/config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".cv-ai-go", "config.yaml"),
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			cfg := createDefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	cfg, err := LoadConfigFromFileOnly(configPath)
	if err != nil {
		return nil, err
	}

	// 从环境变量覆盖配置（如果存在）
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadConfigFromFileOnly 从文件加载配置，不尝试从环境变量覆盖
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	// 检查文件是否存在
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyEnvOverrides(config *Config) {
	if envKey := os.Getenv("EMBEDDING_API_KEY"); envKey != "" {
		config.Embedding.APIKey = envKey
	}
	if envURL := os.Getenv("EMBEDDING_BASE_URL"); envURL != "" {
		config.Embedding.BaseURL = envURL
	}
	if envModel := os.Getenv("EMBEDDING_MODEL"); envModel != "" {
		config.Embedding.Model = envModel
	}
	if envAddr := os.Getenv("REDIS_ADDRESS"); envAddr != "" {
		config.Redis.Address = envAddr
	}
}

// applyDefaults 为未配置的字段设置默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080" // 默认服务器地址
	}
	if config.Server.MaxRequestBodyMB <= 0 {
		config.Server.MaxRequestBodyMB = 20
	}

	if config.Embedding.Provider == "" {
		config.Embedding.Provider = "openai"
	}
	if config.Embedding.Model == "" {
		config.Embedding.Model = "text-embedding-3-small"
	}
	if config.Embedding.BaseURL == "" {
		config.Embedding.BaseURL = "https://api.openai.com/v1/embeddings"
	}
	if config.Embedding.Dimensions == 0 {
		config.Embedding.Dimensions = 384
	}
	if config.Embedding.QPM == 0 {
		config.Embedding.QPM = 600
	}
	if config.Embedding.MaxRetries == 0 {
		config.Embedding.MaxRetries = 3
	}
	if config.Embedding.RetryWaitSeconds == 0 {
		config.Embedding.RetryWaitSeconds = 1
	}
	if config.Embedding.TimeoutSeconds == 0 {
		config.Embedding.TimeoutSeconds = 30
	}

	if config.Parser.PDFEngine == "" {
		config.Parser.PDFEngine = "eino"
	}
	if config.Parser.MaxFileSizeMB <= 0 {
		config.Parser.MaxFileSizeMB = 10
	}
	if config.Parser.ParseTimeout == "" {
		config.Parser.ParseTimeout = "30s"
	}
	if config.Tika.Timeout == 0 {
		config.Tika.Timeout = 60
	}

	if config.Redis.JobVectorTTLHours <= 0 {
		config.Redis.JobVectorTTLHours = 24
	}

	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = "cv-ai-go"
	}

	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}
}

// 创建一个默认配置，用于测试环境和无配置文件启动
func createDefaultConfig() *Config {
	config := &Config{}

	config.Server.Address = ":8080"
	config.Server.MaxRequestBodyMB = 20

	config.Embedding.Provider = "hash" // 无API Key时使用本地哈希向量
	config.Embedding.Model = "text-embedding-3-small"
	config.Embedding.BaseURL = "https://api.openai.com/v1/embeddings"
	config.Embedding.Dimensions = 384
	config.Embedding.QPM = 600
	config.Embedding.MaxRetries = 3
	config.Embedding.RetryWaitSeconds = 1
	config.Embedding.TimeoutSeconds = 30

	config.Parser.PDFEngine = "eino"
	config.Parser.MaxFileSizeMB = 10
	config.Parser.ParseTimeout = "30s"

	config.Tika.ServerURL = "http://localhost:9998"
	config.Tika.Timeout = 60

	// Redis默认不启用
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.JobVectorTTLHours = 24

	config.Tracing.ServiceName = "cv-ai-go"

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty" // 开发环境默认使用美化输出
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	return config
}

// DefaultConfig 返回默认配置的副本
func DefaultConfig() *Config {
	return createDefaultConfig()
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	data, err := yaml.Marshal(createDefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}
	return nil
}

// MaxFileSizeBytes 返回上传文件大小上限(字节)
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Parser.MaxFileSizeMB) * 1024 * 1024
}

// RedisEnabled 是否配置了Redis
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Address) != ""
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
