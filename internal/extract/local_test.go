package extract

import (
	"context"
	"strings"
	"testing"

	"claritydocs-backend/internal/fault"
)

func TestLocalExtractorPassesThroughText(t *testing.T) {
	out, err := LocalExtractor{}.Process(context.Background(), []byte("hello agreement"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != "hello agreement" {
		t.Fatalf("unexpected text %q", out)
	}
}

func TestLocalExtractorRejectsInvalidUTF8(t *testing.T) {
	_, err := LocalExtractor{}.Process(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain")
	if !fault.Is(err, fault.KindValidation) {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestLocalExtractorRejectsImages(t *testing.T) {
	_, err := LocalExtractor{}.Process(context.Background(), []byte("png bytes"), "image/png")
	if !fault.Is(err, fault.KindValidation) {
		t.Fatalf("expected validation fault, got %v", err)
	}
	if !strings.Contains(err.Error(), "image/png") {
		t.Fatalf("expected mime type in message, got %v", err)
	}
}
