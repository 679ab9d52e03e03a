package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      []byte
}

type DocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"originalName"`
	MimeType     string     `json:"mimeType"`
	Size         int64      `json:"size"`
	Summary      string     `json:"summary,omitempty"`
	DocumentType string     `json:"documentType,omitempty"`
	Keywords     []string   `json:"keywords"`
	Processed    bool       `json:"processed"`
	CreatedAt    time.Time  `json:"createdAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
}

// ProcessDocumentPayload is the message published after an upload.
type ProcessDocumentPayload struct {
	DocumentId uuid.UUID `json:"document_id"`
}
