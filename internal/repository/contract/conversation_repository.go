package contract

import (
	"context"

	"maritime-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// Find* methods return nil, nil when nothing matches.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	// FindAll orders by most recent activity.
	FindAll(ctx context.Context) ([]*entity.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindByConversation returns messages oldest first.
	FindByConversation(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)
	DeleteByConversation(ctx context.Context, conversationId uuid.UUID) error
}
