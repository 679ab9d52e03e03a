package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type KnowledgeEntry struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     *uuid.UUID                  `gorm:"type:uuid;index"`
	Title          string                      `gorm:"type:varchar(255);not null"`
	Content        string                      `gorm:"type:text;not null"`
	Category       string                      `gorm:"type:varchar(32);index"`
	RelevanceScore float64                     `gorm:"not null;default:0"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`

	Document *Document `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (KnowledgeEntry) TableName() string {
	return "maritime_knowledge"
}
