package handler

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"cv-ai-go/internal/config"
	"cv-ai-go/internal/constants"
	"cv-ai-go/internal/logger"
	"cv-ai-go/internal/parser"
	"cv-ai-go/internal/tracing"
	"cv-ai-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultParseTimeout = 30 * time.Second

// CVHandler 处理简历上传解析请求
type CVHandler struct {
	cfg    *config.Config
	parser *parser.Parser
	logger *log.Logger
}

// NewCVHandler 创建简历解析处理器
func NewCVHandler(cfg *config.Config, p *parser.Parser) *CVHandler {
	return &CVHandler{
		cfg:    cfg,
		parser: p,
		logger: logger.NewStdLogger("[CVHandler] ", cfg.Logger.Level == "debug"),
	}
}

// HandleParseCV 解析上传的 PDF/DOCX 简历。
// POST /api/v1/parse-cv
func (h *CVHandler) HandleParseCV(ctx context.Context, c *app.RequestContext) {
	requestID := newRequestID()
	c.Response.Header.Set(constants.RequestIDHeader, requestID)
	ctx = logger.WithRequestID(ctx, requestID)
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("request.id", requestID))

	// 1. 读取上传文件
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("请求中缺少 file 字段")
		c.JSON(consts.StatusBadRequest, &types.ParseResponse{Success: false, Message: "file is required"})
		return
	}
	span.SetAttributes(
		attribute.String("cv.filename", tracing.SafeFilename(fileHeader.Filename)),
		attribute.Int64("cv.size", fileHeader.Size),
	)

	if limit := h.cfg.MaxFileSizeBytes(); limit > 0 && fileHeader.Size > limit {
		logger.Ctx(ctx).Warn().
			Str("filename", fileHeader.Filename).
			Int64("size", fileHeader.Size).
			Int64("limit", limit).
			Msg("上传文件超过大小限制")
		tracing.RecordHTTPError(span, fmt.Errorf("文件大小 %d 超过限制 %d", fileHeader.Size, limit), consts.StatusRequestEntityTooLarge)
		c.JSON(consts.StatusRequestEntityTooLarge, &types.ParseResponse{Success: false, Message: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("打开上传文件失败")
		c.JSON(consts.StatusInternalServerError, &types.ParseResponse{Success: false, Message: "failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("读取上传文件失败")
		c.JSON(consts.StatusInternalServerError, &types.ParseResponse{Success: false, Message: "failed to read uploaded file"})
		return
	}

	// 2. 解析
	parseCtx, cancel := context.WithTimeout(ctx, config.GetDuration(h.cfg.Parser.ParseTimeout, defaultParseTimeout))
	defer cancel()

	start := time.Now()
	resp := h.parser.ParseCV(parseCtx, data, fileHeader.Filename)

	logger.Ctx(ctx).Info().
		Str("filename", fileHeader.Filename).
		Int("size", len(data)).
		Bool("success", resp.Success).
		Str("parser_version", constants.ParserVersion).
		Dur("elapsed", time.Since(start)).
		Msg("简历解析完成")

	// 解析失败同样返回200, 由 success 字段区分
	c.JSON(consts.StatusOK, resp)
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
