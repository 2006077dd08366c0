package extract

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"claritydocs-backend/internal/fault"
)

type fakeRemote struct {
	text     string
	err      error
	lastMime string
}

func (f *fakeRemote) Process(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.lastMime = mimeType
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func dataURI(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestExtractParsesDataURI(t *testing.T) {
	remote := &fakeRemote{text: "extracted"}
	svc := &Service{Remote: remote}

	out, err := svc.Extract(context.Background(), "user-1", dataURI("application/pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if out.Text != "extracted" {
		t.Fatalf("unexpected text %q", out.Text)
	}
	if out.FileType != "pdf" {
		t.Fatalf("expected pdf, got %q", out.FileType)
	}
	if out.FileSize != int64(len("%PDF-1.4")) {
		t.Fatalf("unexpected size %d", out.FileSize)
	}
	if remote.lastMime != "application/pdf" {
		t.Fatalf("unexpected mime %q", remote.lastMime)
	}
}

func TestExtractRejectsMalformedDataURI(t *testing.T) {
	svc := &Service{Remote: &fakeRemote{text: "x"}}
	ctx := context.Background()

	cases := []struct {
		name string
		uri  string
	}{
		{"not a data uri", "https://example.com/doc.pdf"},
		{"missing base64 marker", "data:application/pdf,plain"},
		{"missing mime", "data:;base64,aGVsbG8="},
		{"invalid base64", "data:application/pdf;base64,!!!"},
		{"empty payload", "data:application/pdf;base64,"},
	}
	for _, tc := range cases {
		_, err := svc.Extract(ctx, "user-1", tc.uri)
		if !fault.Is(err, fault.KindValidation) {
			t.Fatalf("%s: expected validation fault, got %v", tc.name, err)
		}
	}
}

func TestExtractWithoutBackendIsConfigurationFault(t *testing.T) {
	svc := &Service{}

	_, err := svc.Extract(context.Background(), "user-1", dataURI("application/pdf", []byte("x")))
	if !fault.Is(err, fault.KindConfiguration) {
		t.Fatalf("expected configuration fault, got %v", err)
	}
}

func TestExtractRemoteFailureIsUpstreamFault(t *testing.T) {
	svc := &Service{Remote: &fakeRemote{err: errors.New("processor unavailable")}}

	_, err := svc.Extract(context.Background(), "user-1", dataURI("application/pdf", []byte("x")))
	if !fault.Is(err, fault.KindUpstream) {
		t.Fatalf("expected upstream fault, got %v", err)
	}
}

func TestExtractEmptyTextIsUpstreamFault(t *testing.T) {
	svc := &Service{Remote: &fakeRemote{text: "   \n "}}

	_, err := svc.Extract(context.Background(), "user-1", dataURI("application/pdf", []byte("x")))
	if !fault.Is(err, fault.KindUpstream) {
		t.Fatalf("expected upstream fault for empty text, got %v", err)
	}
}

func TestExtractPreservesRemoteFaultKind(t *testing.T) {
	svc := &Service{Remote: &fakeRemote{err: fault.Validation("unsupported file type image/tiff")}}

	_, err := svc.Extract(context.Background(), "user-1", dataURI("image/tiff", []byte("x")))
	if !fault.Is(err, fault.KindValidation) {
		t.Fatalf("expected validation fault passed through, got %v", err)
	}
}

func TestFileTypeForMime(t *testing.T) {
	cases := map[string]string{
		"application/pdf":           "pdf",
		"APPLICATION/PDF; charset=": "pdf",
		"image/png":                 "image",
		"image/jpeg":                "image",
		"text/plain":                "text",
		"application/octet-stream":  "text",
	}
	for mime, want := range cases {
		if got := fileTypeForMime(mime); got != want {
			t.Fatalf("%s: expected %s, got %s", mime, want, got)
		}
	}
}
