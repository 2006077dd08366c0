package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"claritydocs-backend/internal/fault"
)

// LocalExtractor implements Remote without a remote service. It handles PDFs
// and plain text only; image OCR needs the Document AI backend.
type LocalExtractor struct{}

// Process extracts text from the payload in-process.
func (LocalExtractor) Process(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch {
	case clean == "application/pdf":
		return extractPDF(data)
	case strings.HasPrefix(clean, "text/"):
		if !utf8.Valid(data) {
			return "", fault.Validation("text payload is not valid UTF-8")
		}
		return string(data), nil
	default:
		return "", fault.Validation(fmt.Sprintf("local extractor does not support mime type %q", clean))
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var _ Remote = LocalExtractor{}
