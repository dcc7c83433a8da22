package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

func newTestService() *Service {
	return NewService(zap.NewNop())
}

func TestExtractPlainText(t *testing.T) {
	svc := newTestService()

	text, err := svc.Extract(context.Background(), "notes.txt", "text/plain", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractTextWithCharsetParameter(t *testing.T) {
	svc := newTestService()

	text, err := svc.Extract(context.Background(), "notes.txt", "text/plain; charset=utf-8", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractJSONAndJavaScript(t *testing.T) {
	svc := newTestService()

	for _, mt := range []string{"application/json", "application/javascript", "text/markdown"} {
		text, err := svc.Extract(context.Background(), "file", mt, []byte("content"))
		require.NoError(t, err, mt)
		assert.Equal(t, "content", text)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	svc := newTestService()

	_, err := svc.Extract(context.Background(), "image.png", "image/png", []byte{0x89, 0x50})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
	assert.Contains(t, err.Error(), "image/png")
}

func TestExtractDocx(t *testing.T) {
	svc := newTestService()

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello</w:t></w:r></w:p>
    <w:p><w:r><w:t>World</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := svc.Extract(context.Background(), "doc.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld\n", text)
}

func TestExtractDocxMissingDocument(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = svc.Extract(context.Background(), "doc.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", buf.Bytes())
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractDocxGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.Extract(context.Background(), "doc.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("not a zip"))
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractPDFGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.Extract(context.Background(), "doc.pdf", "application/pdf", []byte("not a pdf"))
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
