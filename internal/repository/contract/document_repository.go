package contract

import (
	"context"

	"maritime-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// FindAll returns newest first.
	FindAll(ctx context.Context) ([]*entity.Document, error)
	// Search matches original name or content, newest first.
	Search(ctx context.Context, query string) ([]*entity.Document, error)
}

type KnowledgeRepository interface {
	CreateMany(ctx context.Context, entries []*entity.KnowledgeEntry) error
	// FindAll orders by relevance; an empty category matches all, limit <= 0 means no limit.
	FindAll(ctx context.Context, category string, limit int) ([]*entity.KnowledgeEntry, error)
	// Search matches title or content.
	Search(ctx context.Context, query, category string, limit int) ([]*entity.KnowledgeEntry, error)
	DeleteByDocument(ctx context.Context, documentId uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
