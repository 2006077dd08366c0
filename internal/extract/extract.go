package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"claritydocs-backend/internal/fault"
	"claritydocs-backend/internal/shared/storage/object"
	"claritydocs-backend/internal/shared/telemetry"
)

// Remote converts a raw document payload to plain text via a remote
// extraction call. One attempt, no retry, no caching.
type Remote interface {
	Process(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Extraction is the result of converting an upload to plain text.
type Extraction struct {
	Text       string
	FileType   string // "pdf", "image", or "text"
	FileSize   int64
	StorageKey string
}

// Service is the boundary adapter in front of the extraction backend.
type Service struct {
	Remote Remote
	// Store receives a best-effort copy of the original upload so an edited
	// record can still point at its source file. Optional.
	Store object.ObjectStore
}

// Extract parses a data URI, runs extraction, and returns the plain text. The
// adapter does not interpret document structure.
func (s *Service) Extract(ctx context.Context, userID, fileDataURI string) (Extraction, error) {
	mimeType, data, err := parseDataURI(fileDataURI)
	if err != nil {
		return Extraction{}, err
	}
	if s.Remote == nil {
		return Extraction{}, fault.Configuration("document extraction service is not configured")
	}

	text, err := s.Remote.Process(ctx, data, mimeType)
	if err != nil {
		if _, ok := fault.KindOf(err); ok {
			return Extraction{}, err
		}
		return Extraction{}, fault.Upstream("document extraction failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return Extraction{}, fault.Upstream("document extraction returned no text", nil)
	}

	out := Extraction{
		Text:     text,
		FileType: fileTypeForMime(mimeType),
		FileSize: int64(len(data)),
	}
	if s.Store != nil {
		key, _, _, saveErr := s.Store.Save(ctx, userID, uploadName(mimeType), bytes.NewReader(data))
		if saveErr != nil {
			telemetry.Error("extract.store_original_failed", map[string]any{
				"user_id": userID,
				"error":   saveErr.Error(),
			})
		} else {
			out.StorageKey = key
		}
	}
	return out, nil
}

// parseDataURI splits "data:<mime>;base64,<payload>" into its parts.
func parseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fault.Validation("fileDataUri must be a data: URI")
	}
	rest := uri[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep <= 0 {
		return "", nil, fault.Validation("fileDataUri must declare a mime type and base64 payload")
	}
	mimeType := rest[:sep]
	payload := rest[sep+len(";base64,"):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fault.Validation("fileDataUri payload is not valid base64")
	}
	if len(data) == 0 {
		return "", nil, fault.Validation("fileDataUri payload is empty")
	}
	return mimeType, data, nil
}

func fileTypeForMime(mimeType string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch {
	case clean == "application/pdf":
		return "pdf"
	case strings.HasPrefix(clean, "image/"):
		return "image"
	default:
		return "text"
	}
}

func uploadName(mimeType string) string {
	switch fileTypeForMime(mimeType) {
	case "pdf":
		return "upload.pdf"
	case "image":
		return "upload.img"
	default:
		return "upload.txt"
	}
}
