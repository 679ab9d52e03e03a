package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename     string                      `gorm:"type:varchar(255);not null"`
	OriginalName string                      `gorm:"type:varchar(255);not null"`
	MimeType     string                      `gorm:"type:varchar(100)"`
	Size         int64                       `gorm:"not null"`
	Content      string                      `gorm:"type:text"`
	Summary      string                      `gorm:"type:text"`
	DocumentType string                      `gorm:"type:varchar(50)"`
	Keywords     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Processed    bool                        `gorm:"default:false"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime"`
	ProcessedAt  *time.Time
}

func (Document) TableName() string {
	return "documents"
}
