package service

import (
	"context"
	"encoding/json"
	"time"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/internal/repository/unitofwork"
	"maritime-assistant-be/pkg/ai/router"
	"maritime-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type IConversationService interface {
	GetAll(ctx context.Context) ([]*dto.ConversationResponse, error)
	Create(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ConversationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetMessages(ctx context.Context, id uuid.UUID) ([]*dto.MessageResponse, error)
	SendMessage(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageExchangeResponse, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	classifier QueryClassifier
	responder  Responder
	logger     logger.ILogger
	now        func() time.Time
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	queryClassifier QueryClassifier,
	responder Responder,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		classifier: queryClassifier,
		responder:  responder,
		logger:     log,
		now:        time.Now,
	}
}

func (s *conversationService) GetAll(ctx context.Context) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, toConversationResponse(c))
	}
	return result, nil
}

func (s *conversationService) Create(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()
	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}
	return toConversationResponse(&conversation), nil
}

func (s *conversationService) Show(ctx context.Context, id uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	return toConversationResponse(conversation), nil
}

func (s *conversationService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteByConversation(ctx, id); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *conversationService) GetMessages(ctx context.Context, id uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	messages, err := uow.MessageRepository().FindByConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		r := toMessageResponse(m)
		result = append(result, &r)
	}
	return result, nil
}

// SendMessage stores the user's message, answers it and stores the reply.
// Each message is written once; the answer is produced outside any transaction.
func (s *conversationService) SendMessage(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageExchangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindByID(ctx, req.ConversationId)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	previous, err := uow.MessageRepository().FindByConversation(ctx, conversation.Id)
	if err != nil {
		return nil, err
	}

	userMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           entity.MessageRoleUser,
		Content:        req.Content,
		CreatedAt:      s.now(),
	}
	if err := uow.MessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	c := s.classifier.Classify(ctx, req.Content)
	reply := s.responder.Respond(ctx, router.Query{Text: req.Content, History: toHistory(previous)}, c)

	metadata, err := json.Marshal(dto.MessageMetadata{
		Category:          c.Category.String(),
		Confidence:        c.Confidence,
		Mode:              string(reply.Mode),
		Handler:           reply.Handler,
		Provider:          reply.Provider,
		SuggestedActions:  c.SuggestedActions,
		RequiresDocuments: c.RequiresDocuments,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	aiMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           entity.MessageRoleAssistant,
		Content:        reply.Text,
		Metadata:       metadata,
		CreatedAt:      now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, &aiMessage); err != nil {
		return nil, err
	}
	conversation.UpdatedAt = now
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("CONVERSATION", "Message answered", map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"category":        c.Category.String(),
		"mode":            string(reply.Mode),
		"handler":         reply.Handler,
	})

	return &dto.MessageExchangeResponse{
		UserMessage: toMessageResponse(&userMessage),
		AiMessage:   toMessageResponse(&aiMessage),
	}, nil
}

func toHistory(messages []*entity.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	return history
}

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		Id:        c.Id,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMessageResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Role:           string(m.Role),
		Content:        m.Content,
		Metadata:       m.Metadata,
		CreatedAt:      m.CreatedAt,
	}
}
