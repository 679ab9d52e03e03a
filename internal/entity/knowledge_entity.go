package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeEntry struct {
	Id             uuid.UUID
	DocumentId     *uuid.UUID // nil for seeded reference entries
	Title          string
	Content        string
	Category       string
	RelevanceScore float64
	Tags           []string
	CreatedAt      time.Time
}
