package unitofwork

import (
	"context"

	"maritime-assistant-be/internal/repository/contract"
	"maritime-assistant-be/internal/repository/memory"
)

// MemoryUnitOfWork tracks transaction state only; writes to the memory store
// apply immediately and are not undone by Rollback.
type MemoryUnitOfWork struct {
	store  *memory.Store
	active bool
}

func (u *MemoryUnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return ErrTxStarted
	}
	u.active = true
	return nil
}

func (u *MemoryUnitOfWork) Commit() error {
	if !u.active {
		return ErrNoActiveTx
	}
	u.active = false
	return nil
}

func (u *MemoryUnitOfWork) Rollback() error {
	if !u.active {
		return ErrNoActiveTx
	}
	u.active = false
	return nil
}

func (u *MemoryUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return memory.NewConversationRepository(u.store)
}

func (u *MemoryUnitOfWork) MessageRepository() contract.MessageRepository {
	return memory.NewMessageRepository(u.store)
}

func (u *MemoryUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return memory.NewDocumentRepository(u.store)
}

func (u *MemoryUnitOfWork) KnowledgeRepository() contract.KnowledgeRepository {
	return memory.NewKnowledgeRepository(u.store)
}

func (u *MemoryUnitOfWork) UserRepository() contract.UserRepository {
	return memory.NewUserRepository(u.store)
}

type MemoryRepositoryFactory struct {
	store *memory.Store
}

func NewMemoryRepositoryFactory(store *memory.Store) RepositoryFactory {
	return &MemoryRepositoryFactory{store: store}
}

func (f *MemoryRepositoryFactory) NewUnitOfWork(_ context.Context) UnitOfWork {
	return &MemoryUnitOfWork{store: f.store}
}
