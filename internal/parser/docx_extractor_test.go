package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxExtractor_ExtractTextFromBytes(t *testing.T) {
	data := buildTestDocx(t, []string{"Jane Doe", "Skills", "Go, Redis &amp; Docker"})

	text, err := NewDocxExtractor(nil).ExtractTextFromBytes(context.Background(), data, "resume.docx")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\nGo, Redis & Docker", text, "每个段落应输出为一行且实体被反转义")
}

func TestDocxExtractor_InvalidData(t *testing.T) {
	_, err := NewDocxExtractor(nil).ExtractTextFromBytes(context.Background(), []byte("PK\x03\x04broken"), "broken.docx")
	assert.Error(t, err)
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>Line</w:t><w:tab/><w:t>one</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Two</w:t><w:br/><w:t>three  spaced</w:t></w:r></w:p></w:body>`

	assert.Equal(t, "Line\tone\nTwo\nthree spaced", docxXMLToText(xml))
}
