package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucPDFExtractor 基于 ledongthuc/pdf 的纯Go PDF文本提取器，无需外部服务
type LedongthucPDFExtractor struct {
	logger *log.Logger
}

var _ DocumentExtractor = (*LedongthucPDFExtractor)(nil)

// NewLedongthucPDFExtractor 创建提取器，logger 为 nil 时丢弃日志
func NewLedongthucPDFExtractor(logger *log.Logger) *LedongthucPDFExtractor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &LedongthucPDFExtractor{logger: logger}
}

// ExtractTextFromBytes 从字节数组提取纯文本
func (e *LedongthucPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (text string, err error) {
	// ledongthuc/pdf 遇到损坏文件可能 panic
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("解析PDF时发生panic (URI: %s): %v", uri, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开PDF失败 (URI: %s): %w", uri, err)
	}

	var sb strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Printf("提取第 %d 页文本失败 (URI: %s): %v", i, uri, err)
			continue
		}
		sb.WriteString(pageText)
		if !strings.HasSuffix(pageText, "\n") {
			sb.WriteString("\n")
		}
	}

	e.logger.Printf("PDF提取完成 (URI: %s): %d 页, %d 个字符", uri, numPages, sb.Len())
	return sb.String(), nil
}
