package parser

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEinoPDFTextExtractor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err, "创建PDF提取器不应返回错误")
	require.NotNil(t, extractor.parser, "PDF提取器内部的parser不应为nil")
	require.NotNil(t, extractor.logger, "PDF提取器应该有默认的logger")
	assert.Equal(t, 30*time.Second, extractor.timeout, "默认解析超时应为30秒")

	// 测试带自定义选项的创建
	customLogger := log.New(os.Stdout, "[测试PDF提取器] ", log.LstdFlags)
	custom, err := NewEinoPDFTextExtractor(ctx, WithEinoLogger(customLogger), WithEinoTimeout(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, customLogger, custom.logger, "应该使用提供的自定义logger")
	assert.Equal(t, 5*time.Second, custom.timeout)
}

func TestEinoPDFTextExtractor_ExtractText(t *testing.T) {
	ctx := context.Background()
	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err)

	data := buildTestPDF(t, []string{"Jane Doe", "Skills"})
	text, err := extractor.ExtractTextFromBytes(ctx, data, "resume.pdf")
	require.NoError(t, err, "有效PDF的提取不应返回错误")
	assert.Contains(t, text, "Jane")
	assert.Contains(t, text, "Skills")
}

func TestEinoPDFTextExtractor_InvalidData(t *testing.T) {
	ctx := context.Background()
	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err)

	_, err = extractor.ExtractTextFromBytes(ctx, []byte("not a pdf"), "broken.pdf")
	assert.Error(t, err, "无效PDF应返回错误")
}

func TestLedongthucPDFExtractor(t *testing.T) {
	ctx := context.Background()
	extractor := NewLedongthucPDFExtractor(nil)

	data := buildTestPDF(t, []string{"Jane Doe", "Experience"})
	text, err := extractor.ExtractTextFromBytes(ctx, data, "resume.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane")
	assert.Contains(t, text, "Experience")

	_, err = extractor.ExtractTextFromBytes(ctx, []byte("%PDF-1.4 garbage"), "broken.pdf")
	assert.Error(t, err, "损坏的PDF应返回错误而不是panic")
}
