package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"
	"go.uber.org/zap"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// Media types with dedicated parsers; anything text-like passes through.
const (
	mediaTypePDF  = "application/pdf"
	mediaTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Service extracts plain text from uploaded files. Unsupported media
// types are reported as domain.ErrUnsupportedFile, parse failures on a
// supported type as domain.ErrExtraction.
type Service struct {
	log *zap.Logger
}

// NewService creates an extraction service
func NewService(log *zap.Logger) *Service {
	return &Service{log: log}
}

// Extract returns the text content of a file given its declared media type.
func (s *Service) Extract(ctx context.Context, filename, mediaType string, data []byte) (string, error) {
	mt := mediaType
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}

	s.log.Info("extracting file",
		zap.String("filename", filename),
		zap.String("media_type", mt),
		zap.Int("size", len(data)),
	)

	switch {
	case mt == mediaTypePDF:
		return extractPDF(data)
	case mt == mediaTypeDocx:
		return extractDocx(data)
	case strings.HasPrefix(mt, "text/"), mt == "application/json", mt == "application/javascript":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, mediaType)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs; treat that as a
	// normal extraction failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	return buf.String(), nil
}

// extractDocx pulls the raw text out of word/document.xml. DOCX is a zip
// archive; the visible text lives in w:t runs and paragraphs end at w:p.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}
		defer rc.Close()
		return docxText(rc)
	}

	return "", fmt.Errorf("%w: missing word/document.xml", domain.ErrExtraction)
}

func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inRun := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}
