package parser

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"cv-ai-go/internal/config"
)

// PDF 提取引擎名称, 对应 parser.pdf_engine
const (
	PDFEngineEino       = "eino"
	PDFEngineLedongthuc = "ledongthuc"
	PDFEngineTika       = "tika"
)

// NewPDFEngine 按配置创建 PDF 提取引擎, 未配置时使用 eino
func NewPDFEngine(ctx context.Context, cfg *config.Config, logger *log.Logger) (DocumentExtractor, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	engine := strings.ToLower(strings.TrimSpace(cfg.Parser.PDFEngine))
	switch engine {
	case PDFEngineEino, "":
		e, err := NewEinoPDFTextExtractor(ctx,
			WithEinoLogger(logger),
			WithEinoTimeout(config.GetDuration(cfg.Parser.ParseTimeout, 30*time.Second)),
		)
		if err != nil {
			return nil, err
		}
		return e, nil
	case PDFEngineLedongthuc:
		return NewLedongthucPDFExtractor(logger), nil
	case PDFEngineTika:
		if cfg.Tika.ServerURL == "" {
			return nil, fmt.Errorf("parser.pdf_engine=tika 时必须配置 tika.server_url")
		}
		opts := []TikaOption{WithTikaLogger(logger)}
		if cfg.Tika.Timeout > 0 {
			opts = append(opts, WithTimeout(time.Duration(cfg.Tika.Timeout)*time.Second))
		}
		return NewTikaExtractor(cfg.Tika.ServerURL, opts...), nil
	default:
		return nil, fmt.Errorf("不支持的PDF提取引擎: %s", cfg.Parser.PDFEngine)
	}
}

// NewTextExtractorFromConfig 创建按文件类型分发的提取器。
// 使用 tika 时 DOCX 也交给 Tika 处理
func NewTextExtractorFromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger) (*DispatchExtractor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	pdfEngine, err := NewPDFEngine(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("创建PDF提取引擎失败: %w", err)
	}

	opts := []DispatchOption{WithDispatchLogger(logger)}
	if tika, ok := pdfEngine.(*TikaExtractor); ok {
		opts = append(opts, WithDocxEngine(tika))
	}
	return NewDispatchExtractor(pdfEngine, opts...)
}
