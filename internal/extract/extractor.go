package extract

import (
	"context"
	"path/filepath"
	"strings"
)

// TextSource produces text from an uploaded document; the OCR client is the
// production implementation.
type TextSource interface {
	ExtractText(ctx context.Context, filename string, content []byte) (string, error)
}

// Extractor turns uploaded documents into plain text. Plain text files are
// read directly; PDFs and images are delegated to the OCR service.
type Extractor struct {
	ocr TextSource
}

// NewExtractor creates an extractor. ocr may be nil, in which case only
// plain text uploads are supported.
func NewExtractor(ocr TextSource) *Extractor {
	return &Extractor{ocr: ocr}
}

var ocrExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// Extract returns the document's text content.
func (e *Extractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	switch {
	case ext == ".txt":
		text = string(content)
	default:
		if _, ok := ocrExtensions[ext]; !ok {
			return "", ErrUnsupportedType
		}
		if e.ocr == nil {
			return "", ErrUnsupportedType
		}
		extracted, err := e.ocr.ExtractText(ctx, filename, content)
		if err != nil {
			return "", err
		}
		text = extracted
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
