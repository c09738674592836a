// Package docfile extracts plain text from the two ingestible document
// formats: PDF attachments and raw .eml mail files.
package docfile

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
)

type Extractor struct {
	ocr ports.OCREngine
}

// NewExtractor returns a file-type dispatching extractor. ocr may be nil;
// scanned PDFs then come back empty instead of failing.
func NewExtractor(ocr ports.OCREngine) *Extractor {
	return &Extractor{ocr: ocr}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return e.extractPDF(ctx, doc.FilePath)
	case ".eml":
		return extractEMLFile(doc.FilePath)
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text",
			fmt.Errorf("unsupported file type: %s", doc.Filename))
	}
}

// extractPDF pulls the embedded text layer; scanned documents have none,
// so an empty result falls through to OCR when an engine is configured.
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	text, err := pdfPlainText(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	if text != "" {
		return text, nil
	}
	if e.ocr == nil {
		return "", nil
	}
	recognized, err := e.ocr.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("ocr fallback: %w", err)
	}
	return strings.TrimSpace(recognized), nil
}

func pdfPlainText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	body, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
