package dto

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeQuery struct {
	Query    string `query:"q"`
	Category string `query:"category" validate:"omitempty,oneof=laytime weather distance cp_clause document_analysis voyage_guidance general"`
}

type KnowledgeEntryResponse struct {
	Id             uuid.UUID  `json:"id"`
	DocumentId     *uuid.UUID `json:"documentId,omitempty"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Category       string     `json:"category"`
	RelevanceScore float64    `json:"relevanceScore"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"createdAt"`
}
