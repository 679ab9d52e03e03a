package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type ConversationResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateMessageRequest struct {
	ConversationId uuid.UUID `json:"-"`
	Role           string    `json:"role" validate:"omitempty,oneof=user"`
	Content        string    `json:"content" validate:"required"`
}

type MessageResponse struct {
	Id             uuid.UUID       `json:"id"`
	ConversationId uuid.UUID       `json:"conversationId"`
	Role           string          `json:"role"`
	Content        string          `json:"content"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type MessageExchangeResponse struct {
	UserMessage MessageResponse `json:"userMessage"`
	AiMessage   MessageResponse `json:"aiMessage"`
}

// MessageMetadata is stored with each assistant message.
type MessageMetadata struct {
	Category          string   `json:"category"`
	Confidence        float64  `json:"confidence"`
	Mode              string   `json:"mode"`
	Handler           string   `json:"handler,omitempty"`
	Provider          string   `json:"provider,omitempty"`
	SuggestedActions  []string `json:"suggestedActions,omitempty"`
	RequiresDocuments bool     `json:"requiresDocuments"`
}
