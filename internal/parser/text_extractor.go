package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
)

// DocumentExtractor 单一格式的文本提取引擎
type DocumentExtractor interface {
	// ExtractTextFromBytes 从字节数组提取纯文本，uri 仅用于日志与元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error)
}

// TextExtractor 按文件类型分发到具体引擎的文本提取接口
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}

// DocumentKind 识别出的文档类型
type DocumentKind string

const (
	KindPDF     DocumentKind = "pdf"
	KindDOCX    DocumentKind = "docx"
	KindUnknown DocumentKind = "unknown"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// DetectKind 先看扩展名，无扩展名时再看文件头
func DetectKind(data []byte, filename string) DocumentKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	case "":
		switch {
		case bytes.HasPrefix(data, pdfMagic):
			return KindPDF
		case bytes.HasPrefix(data, zipMagic):
			return KindDOCX
		}
	}
	return KindUnknown
}

// DispatchExtractor 组合 PDF 与 DOCX 引擎
type DispatchExtractor struct {
	pdf    DocumentExtractor
	docx   DocumentExtractor
	logger *log.Logger
}

// DispatchOption 分发器配置选项
type DispatchOption func(*DispatchExtractor)

// WithDispatchLogger 配置日志记录器
func WithDispatchLogger(logger *log.Logger) DispatchOption {
	return func(d *DispatchExtractor) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDocxEngine 替换默认的 DOCX 引擎（例如使用 Tika）
func WithDocxEngine(engine DocumentExtractor) DispatchOption {
	return func(d *DispatchExtractor) {
		if engine != nil {
			d.docx = engine
		}
	}
}

var _ TextExtractor = (*DispatchExtractor)(nil)

// NewDispatchExtractor 创建分发器，pdfEngine 不可为空
func NewDispatchExtractor(pdfEngine DocumentExtractor, opts ...DispatchOption) (*DispatchExtractor, error) {
	if pdfEngine == nil {
		return nil, fmt.Errorf("PDF提取引擎不能为空")
	}
	d := &DispatchExtractor{
		pdf:    pdfEngine,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.docx == nil {
		d.docx = NewDocxExtractor(d.logger)
	}
	return d, nil
}

// ExtractText 提取文本。不支持的类型返回空字符串，引擎错误原样返回，由调用方决定降级
func (d *DispatchExtractor) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	kind := DetectKind(data, filename)
	switch kind {
	case KindPDF:
		return d.pdf.ExtractTextFromBytes(ctx, data, filename)
	case KindDOCX:
		return d.docx.ExtractTextFromBytes(ctx, data, filename)
	default:
		d.logger.Printf("不支持的文件类型: %s", filename)
		return "", nil
	}
}
