package mapper

import (
	"encoding/json"

	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:        c.Id,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:        c.Id,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	var metadata json.RawMessage
	if len(msg.Metadata) > 0 {
		metadata = json.RawMessage(msg.Metadata)
	}
	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           entity.MessageRole(msg.Role),
		Content:        msg.Content,
		Metadata:       metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	var metadata datatypes.JSON
	if len(msg.Metadata) > 0 {
		metadata = datatypes.JSON(msg.Metadata)
	}
	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           string(msg.Role),
		Content:        msg.Content,
		Metadata:       metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
