package history

import (
	"time"

	"claritydocs-backend/internal/analysis"
)

type recordDTO struct {
	ID           string                         `json:"id"`
	DocumentName string                         `json:"documentName"`
	DocumentType string                         `json:"documentType,omitempty"`
	Content      string                         `json:"content"`
	Summary      *analysis.PlainLanguageSummary `json:"summaryData,omitempty"`
	UploadedAt   string                         `json:"uploadedAt"`
	FileType     string                         `json:"fileType,omitempty"`
	FileSize     int64                          `json:"fileSize,omitempty"`
}

func toDTO(rec Record) recordDTO {
	return recordDTO{
		ID:           rec.ID,
		DocumentName: rec.DocumentName,
		DocumentType: rec.DocumentType,
		Content:      rec.Content,
		Summary:      rec.Summary,
		UploadedAt:   rec.UploadedAt.UTC().Format(time.RFC3339),
		FileType:     rec.FileType,
		FileSize:     rec.FileSize,
	}
}

func toDTOs(recs []Record) []recordDTO {
	out := make([]recordDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDTO(rec))
	}
	return out
}

type createRequest struct {
	DocumentName string                         `json:"documentName"`
	DocumentType string                         `json:"documentType"`
	Content      string                         `json:"content"`
	Summary      *analysis.PlainLanguageSummary `json:"summaryData"`
	FileType     string                         `json:"fileType"`
	FileSize     int64                          `json:"fileSize"`
}

type updateRequest struct {
	DocumentName *string                        `json:"documentName"`
	DocumentType *string                        `json:"documentType"`
	Content      *string                        `json:"content"`
	Summary      *analysis.PlainLanguageSummary `json:"summaryData"`
}
