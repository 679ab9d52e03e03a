package memory

import (
	"context"
	"time"

	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Records are copied on the way in and out so callers never share state with
// the store.

type conversationRepository struct{ store *Store }

func NewConversationRepository(store *Store) contract.ConversationRepository {
	return &conversationRepository{store: store}
}

func (r *conversationRepository) Create(_ context.Context, c *entity.Conversation) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	cp := *c
	r.store.put(tableConversations, c.Id.String(), &cp)
	return nil
}

func (r *conversationRepository) Update(_ context.Context, c *entity.Conversation) error {
	cp := *c
	r.store.put(tableConversations, c.Id.String(), &cp)
	return nil
}

// Delete removes the conversation and its messages.
func (r *conversationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.remove(tableConversations, id.String())
	for _, m := range scan[*entity.Message](r.store, tableMessages) {
		if m.ConversationId == id {
			r.store.remove(tableMessages, m.Id.String())
		}
	}
	return nil
}

func (r *conversationRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Conversation, error) {
	v, ok := r.store.get(tableConversations, id.String())
	if !ok {
		return nil, nil
	}
	cp := *v.(*entity.Conversation)
	return &cp, nil
}

func (r *conversationRepository) FindAll(_ context.Context) ([]*entity.Conversation, error) {
	items := scan[*entity.Conversation](r.store, tableConversations)
	sortBy(items, func(a, b *entity.Conversation) bool { return a.UpdatedAt.After(b.UpdatedAt) })
	out := make([]*entity.Conversation, len(items))
	for i, c := range items {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

type messageRepository struct{ store *Store }

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(_ context.Context, m *entity.Message) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	cp := *m
	r.store.put(tableMessages, m.Id.String(), &cp)
	return nil
}

func (r *messageRepository) FindByConversation(_ context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	items := scan[*entity.Message](r.store, tableMessages)
	r.store.mu.RUnlock()

	out := make([]*entity.Message, 0)
	for _, m := range items {
		if m.ConversationId == conversationId {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortBy(out, func(a, b *entity.Message) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return out, nil
}

func (r *messageRepository) DeleteByConversation(_ context.Context, conversationId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range scan[*entity.Message](r.store, tableMessages) {
		if m.ConversationId == conversationId {
			r.store.remove(tableMessages, m.Id.String())
		}
	}
	return nil
}

type documentRepository struct{ store *Store }

func NewDocumentRepository(store *Store) contract.DocumentRepository {
	return &documentRepository{store: store}
}

func copyDocument(d *entity.Document) *entity.Document {
	cp := *d
	cp.Keywords = append([]string(nil), d.Keywords...)
	return &cp
}

func (r *documentRepository) Create(_ context.Context, d *entity.Document) error {
	if d.Id == uuid.Nil {
		d.Id = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	r.store.put(tableDocuments, d.Id.String(), copyDocument(d))
	return nil
}

func (r *documentRepository) Update(_ context.Context, d *entity.Document) error {
	r.store.put(tableDocuments, d.Id.String(), copyDocument(d))
	return nil
}

// Delete removes the document and the knowledge entries derived from it.
func (r *documentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.remove(tableDocuments, id.String())
	for _, k := range scan[*entity.KnowledgeEntry](r.store, tableKnowledge) {
		if k.DocumentId != nil && *k.DocumentId == id {
			r.store.remove(tableKnowledge, k.Id.String())
		}
	}
	return nil
}

func (r *documentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	v, ok := r.store.get(tableDocuments, id.String())
	if !ok {
		return nil, nil
	}
	return copyDocument(v.(*entity.Document)), nil
}

func (r *documentRepository) FindAll(ctx context.Context) ([]*entity.Document, error) {
	return r.Search(ctx, "")
}

func (r *documentRepository) Search(_ context.Context, query string) ([]*entity.Document, error) {
	out := make([]*entity.Document, 0)
	for _, d := range scan[*entity.Document](r.store, tableDocuments) {
		if query == "" || containsFold(d.OriginalName, query) || containsFold(d.Content, query) {
			out = append(out, copyDocument(d))
		}
	}
	sortBy(out, func(a, b *entity.Document) bool { return a.CreatedAt.After(b.CreatedAt) })
	return out, nil
}

type knowledgeRepository struct{ store *Store }

func NewKnowledgeRepository(store *Store) contract.KnowledgeRepository {
	return &knowledgeRepository{store: store}
}

func copyKnowledge(k *entity.KnowledgeEntry) *entity.KnowledgeEntry {
	cp := *k
	cp.Tags = append([]string(nil), k.Tags...)
	return &cp
}

func (r *knowledgeRepository) CreateMany(_ context.Context, entries []*entity.KnowledgeEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for _, k := range entries {
		if k.Id == uuid.Nil {
			k.Id = uuid.New()
		}
		if k.CreatedAt.IsZero() {
			k.CreatedAt = now
		}
		r.store.put(tableKnowledge, k.Id.String(), copyKnowledge(k))
	}
	return nil
}

func (r *knowledgeRepository) FindAll(ctx context.Context, category string, n int) ([]*entity.KnowledgeEntry, error) {
	return r.Search(ctx, "", category, n)
}

func (r *knowledgeRepository) Search(_ context.Context, query, category string, n int) ([]*entity.KnowledgeEntry, error) {
	r.store.mu.RLock()
	items := scan[*entity.KnowledgeEntry](r.store, tableKnowledge)
	r.store.mu.RUnlock()

	out := make([]*entity.KnowledgeEntry, 0)
	for _, k := range items {
		if category != "" && k.Category != category {
			continue
		}
		if query != "" && !containsFold(k.Title, query) && !containsFold(k.Content, query) {
			continue
		}
		out = append(out, copyKnowledge(k))
	}
	sortBy(out, func(a, b *entity.KnowledgeEntry) bool {
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return limit(out, n), nil
}

func (r *knowledgeRepository) DeleteByDocument(_ context.Context, documentId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, k := range scan[*entity.KnowledgeEntry](r.store, tableKnowledge) {
		if k.DocumentId != nil && *k.DocumentId == documentId {
			r.store.remove(tableKnowledge, k.Id.String())
		}
	}
	return nil
}

func (r *knowledgeRepository) Count(_ context.Context) (int64, error) {
	return int64(r.store.table(tableKnowledge).ItemCount()), nil
}

type userRepository struct{ store *Store }

func NewUserRepository(store *Store) contract.UserRepository {
	return &userRepository{store: store}
}

// Create enforces email uniqueness under the store lock.
func (r *userRepository) Create(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range scan[*entity.User](r.store, tableUsers) {
		if existing.Email == u.Email {
			return contract.ErrDuplicate
		}
	}
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	r.store.put(tableUsers, u.Id.String(), &cp)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	v, ok := r.store.get(tableUsers, id.String())
	if !ok {
		return nil, nil
	}
	cp := *v.(*entity.User)
	return &cp, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range scan[*entity.User](r.store, tableUsers) {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
