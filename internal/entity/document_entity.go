package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Content      string
	Summary      string
	DocumentType string
	Keywords     []string
	Processed    bool
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}
