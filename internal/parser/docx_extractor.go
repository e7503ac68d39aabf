package parser

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTagRegex       = regexp.MustCompile(`<[^>]+>`)
	inlineSpaceRegex  = regexp.MustCompile(`[ \r\f\v]+`)
	paragraphEndRegex = regexp.MustCompile(`</w:p>`)
	lineBreakTagRegex = regexp.MustCompile(`<w:(br|cr)\s*/>`)
	tabTagRegex       = regexp.MustCompile(`<w:tab\s*/>`)
)

// DocxExtractor 使用 nguyenthenguyen/docx 在内存中读取 DOCX，每个段落输出为一行
type DocxExtractor struct {
	logger *log.Logger
}

var _ DocumentExtractor = (*DocxExtractor)(nil)

// NewDocxExtractor 创建 DOCX 提取器，logger 为 nil 时丢弃日志
func NewDocxExtractor(logger *log.Logger) *DocxExtractor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &DocxExtractor{logger: logger}
}

// ExtractTextFromBytes 从 DOCX 字节中提取段落文本
func (e *DocxExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx %s: %w", uri, err)
	}
	defer doc.Close()

	text := docxXMLToText(doc.Editable().GetContent())
	e.logger.Printf("DOCX提取完成 (URI: %s): %d 个字符", uri, len(text))
	return text, nil
}

// docxXMLToText 将 word/document.xml 转为纯文本，段落之间以换行分隔
func docxXMLToText(xml string) string {
	xml = paragraphEndRegex.ReplaceAllString(xml, "\n")
	xml = lineBreakTagRegex.ReplaceAllString(xml, "\n")
	xml = tabTagRegex.ReplaceAllString(xml, "\t")
	xml = xmlTagRegex.ReplaceAllString(xml, "")
	xml = html.UnescapeString(xml)

	lines := strings.Split(xml, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(inlineSpaceRegex.ReplaceAllString(line, " "), " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
