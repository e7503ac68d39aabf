package parser

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"cv-ai-go/internal/constants"
	"cv-ai-go/internal/tracing"
	"cv-ai-go/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var parserTracer = otel.Tracer("cv-ai-go/parser")

// Parser 简历解析器: 文本提取 -> 章节切分 -> 各字段提取
type Parser struct {
	extractor        TextExtractor
	logExtractedText bool
	logger           *log.Logger
}

// ParserOption 解析器配置选项
type ParserOption func(*Parser)

// WithParserLogger 设置日志记录器
func WithParserLogger(logger *log.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLogExtractedText 是否在日志中打印提取到的原始文本（截断）
func WithLogExtractedText(enabled bool) ParserOption {
	return func(p *Parser) {
		p.logExtractedText = enabled
	}
}

// NewParser 创建简历解析器
func NewParser(extractor TextExtractor, opts ...ParserOption) (*Parser, error) {
	if extractor == nil {
		return nil, fmt.Errorf("文本提取器不能为空")
	}
	p := &Parser{
		extractor: extractor,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParseCV 解析上传的简历文件。任何失败都体现在 Success=false 的返回中, 不会 panic
func (p *Parser) ParseCV(ctx context.Context, data []byte, filename string) (resp *types.ParseResponse) {
	ctx, span := parserTracer.Start(ctx, "Parser.ParseCV")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.name", tracing.SafeFilename(filename)),
		attribute.Int("file.size", len(data)),
		attribute.String("parser.version", constants.ParserVersion),
	)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("解析简历时发生panic: %v", r)
			tracing.RecordError(span, err, tracing.ErrorTypeInternal)
			p.logger.Printf("ParseCV panic (file: %s): %v", filename, r)
			resp = &types.ParseResponse{Success: false, Message: err.Error()}
		}
	}()

	start := time.Now()
	text, err := p.extractor.ExtractText(ctx, data, filename)
	if err != nil {
		// 提取失败按空文本处理
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		p.logger.Printf("提取文本失败 (file: %s): %v", filename, err)
		text = ""
	}
	span.SetAttributes(attribute.Int("text.length", len(text)))

	if strings.TrimSpace(text) == "" {
		p.logger.Printf("未提取到文本 (file: %s)", filename)
		return &types.ParseResponse{Success: false, Message: constants.NoTextExtractedMessage}
	}

	if p.logExtractedText {
		p.logger.Printf("提取文本 (file: %s): %s", filename, tracing.SafeResumeContent(text))
	}

	resume := p.ParseText(ctx, text)
	p.logger.Printf("简历解析完成 (file: %s): skills=%d, educations=%d, experiences=%d, projects=%d, 用时 %s",
		filename, len(resume.Skills), len(resume.Educations), len(resume.Experiences), len(resume.Projects), time.Since(start))

	span.SetAttributes(
		attribute.String("contact.name", tracing.SafeAttributeValue("contact.name", resume.ContactInfo.Name, tracing.DefaultMaxLength)),
		attribute.String("contact.email", tracing.SafeAttributeValue("contact.email", resume.ContactInfo.Email, tracing.DefaultMaxLength)),
		attribute.String("contact.phone", tracing.SafeAttributeValue("contact.phone", resume.ContactInfo.Phone, tracing.DefaultMaxLength)),
		attribute.Int("resume.skills", len(resume.Skills)),
		attribute.Int("resume.educations", len(resume.Educations)),
		attribute.Int("resume.experiences", len(resume.Experiences)),
		attribute.Int("resume.projects", len(resume.Projects)),
	)

	return &types.ParseResponse{
		Success: true,
		Message: constants.ParseSuccessMessage,
		Data:    resume,
	}
}

// ParseText 对已提取的纯文本执行章节切分和字段提取
func (p *Parser) ParseText(ctx context.Context, text string) *types.ParsedResume {
	_, span := parserTracer.Start(ctx, "Parser.ParseText")
	defer span.End()

	resume := types.NewParsedResume()
	boundaries := FindSectionBoundaries(text)
	span.SetAttributes(attribute.Int("resume.sections", len(boundaries)))

	resume.ContactInfo = ExtractContactInfo(text)
	resume.SocialLinks = ExtractSocialLinks(text)

	if skills := ExtractSkills(SectionContent(text, types.SectionSkills, boundaries)); skills != nil {
		resume.Skills = skills
	}
	if educations := ExtractEducation(SectionContent(text, types.SectionEducation, boundaries)); educations != nil {
		resume.Educations = educations
	}
	if experiences := ExtractExperience(SectionContent(text, types.SectionExperience, boundaries)); experiences != nil {
		resume.Experiences = experiences
	}
	if projects := ExtractProjects(SectionContent(text, types.SectionProjects, boundaries)); projects != nil {
		resume.Projects = projects
	}

	return resume
}
