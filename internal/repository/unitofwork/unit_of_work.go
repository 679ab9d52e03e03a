package unitofwork

import (
	"context"

	"maritime-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	DocumentRepository() contract.DocumentRepository
	KnowledgeRepository() contract.KnowledgeRepository
	UserRepository() contract.UserRepository
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
