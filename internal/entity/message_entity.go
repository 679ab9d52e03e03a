package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           MessageRole
	Content        string
	Metadata       json.RawMessage // classification and reply mode, assistant messages only
	CreatedAt      time.Time
}
