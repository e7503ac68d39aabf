package constants

import "time"

const (
	// Application-level constants
	ServiceName    = "cv-ai-go"
	ServiceVersion = "1.0.0"

	// ParserVersion 写入日志，便于定位解析规则的版本
	ParserVersion = "1.0"

	// JobVectorCacheDuration JD向量缓存默认过期时间
	JobVectorCacheDuration = 24 * time.Hour

	// RequestIDHeader 每个请求回写的追踪ID
	RequestIDHeader = "X-Request-ID"

	// ParseSuccessMessage 简历解析成功时的 message 字段
	ParseSuccessMessage = "CV parsed successfully"
	// NoTextExtractedMessage 文件中没有可提取文本时的 message 字段
	NoTextExtractedMessage = "no text extracted from file"
)
