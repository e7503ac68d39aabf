package parser

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cv-ai-go/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fakeTextExtractor struct {
	text  string
	err   error
	panic bool
}

func (f *fakeTextExtractor) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	if f.panic {
		panic("unexpected")
	}
	return f.text, f.err
}

func TestNewParser(t *testing.T) {
	_, err := NewParser(nil)
	assert.Error(t, err, "提取器为空时应返回错误")
}

func TestParser_ParseCV(t *testing.T) {
	p, err := NewParser(&fakeTextExtractor{text: sampleResumeText}, WithLogExtractedText(true))
	require.NoError(t, err)

	resp := p.ParseCV(context.Background(), []byte("ignored"), "resume.pdf")
	require.True(t, resp.Success, "解析应成功: %s", resp.Message)
	assert.Equal(t, constants.ParseSuccessMessage, resp.Message)
	require.NotNil(t, resp.Data)

	data := resp.Data
	assert.Equal(t, "Jane Doe", data.ContactInfo.Name)
	assert.Equal(t, "jane.doe@example.com", data.ContactInfo.Email)
	assert.Equal(t, []string{"Go", "Python", "Docker", "Kubernetes", "Redis", "PostgreSQL"}, data.Skills)
	assert.Len(t, data.Educations, 1)
	assert.Len(t, data.Experiences, 2)
	assert.Len(t, data.Projects, 2)
	assert.Equal(t, "github.com/janedoe", data.SocialLinks.Github)
}

func TestParser_ParseCV_EmptyText(t *testing.T) {
	for name, extractor := range map[string]*fakeTextExtractor{
		"空文本":  {text: "  \n "},
		"提取失败": {err: errors.New("corrupt file")},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := NewParser(extractor)
			require.NoError(t, err)

			resp := p.ParseCV(context.Background(), nil, "resume.pdf")
			assert.False(t, resp.Success)
			assert.Equal(t, constants.NoTextExtractedMessage, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestParser_ParseCV_RecoversPanic(t *testing.T) {
	p, err := NewParser(&fakeTextExtractor{panic: true})
	require.NoError(t, err)

	resp := p.ParseCV(context.Background(), nil, "resume.pdf")
	require.NotNil(t, resp)
	assert.False(t, resp.Success, "panic 应被转换为失败的返回")
	assert.Contains(t, resp.Message, "unexpected")
}

func TestParser_ParseText_EmptyListsSerialize(t *testing.T) {
	p, err := NewParser(&fakeTextExtractor{})
	require.NoError(t, err)

	resume := p.ParseText(context.Background(), "Nothing useful here")
	raw, err := json.Marshal(resume)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"skills", "educations", "experiences", "projects"} {
		assert.Equal(t, []any{}, decoded[key], "%s 应序列化为空数组", key)
	}
}

func TestParser_ParseCV_Docx(t *testing.T) {
	extractor, err := NewDispatchExtractor(&fakeDocumentExtractor{})
	require.NoError(t, err)
	p, err := NewParser(extractor)
	require.NoError(t, err)

	data := buildTestDocx(t, []string{"John Smith", "john@example.com", "", "Skills", "Go | Rust"})
	resp := p.ParseCV(context.Background(), data, "cv.docx")
	require.True(t, resp.Success)
	assert.Equal(t, "John Smith", resp.Data.ContactInfo.Name)
	assert.Equal(t, []string{"Go", "Rust"}, resp.Data.Skills)
}

func TestParser_ParseCV_SpanMasksContact(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	p, err := NewParser(&fakeTextExtractor{text: sampleResumeText})
	require.NoError(t, err)
	resp := p.ParseCV(context.Background(), []byte("ignored"), "resume.pdf")
	require.True(t, resp.Success)

	var attrs map[string]string
	for _, s := range recorder.Ended() {
		if s.Name() != "Parser.ParseCV" {
			continue
		}
		attrs = map[string]string{}
		for _, kv := range s.Attributes() {
			attrs[string(kv.Key)] = kv.Value.Emit()
		}
	}
	require.NotNil(t, attrs, "应记录 ParseCV span")

	// span 上只允许出现脱敏后的联系方式
	for _, key := range []string{"contact.email", "contact.phone", "contact.name"} {
		require.Contains(t, attrs, key)
		assert.Contains(t, attrs[key], "*", key)
	}
	assert.NotEqual(t, "jane.doe@example.com", attrs["contact.email"])
	assert.NotContains(t, attrs["contact.email"], "example.com")
}
