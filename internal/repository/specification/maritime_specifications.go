package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByCategory is a no-op for an empty category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	if s.Category == "" {
		return db
	}
	return db.Where("category = ?", s.Category)
}

// TextSearch matches any of the columns case-insensitively (Postgres ILIKE).
type TextSearch struct {
	Query   string
	Columns []string
}

func (s TextSearch) Apply(db *gorm.DB) *gorm.DB {
	if s.Query == "" || len(s.Columns) == 0 {
		return db
	}
	pattern := "%" + s.Query + "%"
	clauses := make([]string, len(s.Columns))
	args := make([]interface{}, len(s.Columns))
	for i, c := range s.Columns {
		clauses[i] = c + " ILIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}
