package service

import (
	"context"
	"encoding/json"
	"time"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/internal/repository/unitofwork"
	"maritime-assistant-be/pkg/ingest"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// DocumentSummarizer is satisfied by *summarizer.Summarizer.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, content, documentType string) (string, bool)
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	summarizer DocumentSummarizer
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	summarizer DocumentSummarizer,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		summarizer: summarizer,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage acks malformed payloads and vanished documents; storage
// failures are nacked for redelivery.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessDocumentPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	details := map[string]interface{}{"document_id": payload.DocumentId.String()}
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindByID(ctx, payload.DocumentId)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to load document", withError(details, err))
		msg.Nack()
		return
	}
	if document == nil {
		cs.logger.Warn("CONSUMER", "Document no longer exists", details)
		msg.Ack()
		return
	}

	analysis := ingest.Analyze(document.Content, document.OriginalName)
	summary, generated := cs.summarizer.Summarize(ctx, document.Content, analysis.DocumentType)

	now := time.Now()
	entries := make([]*entity.KnowledgeEntry, 0, len(analysis.Entries))
	for _, e := range analysis.Entries {
		docID := document.Id
		entries = append(entries, &entity.KnowledgeEntry{
			Id:             uuid.New(),
			DocumentId:     &docID,
			Title:          e.Title,
			Content:        e.Content,
			Category:       e.Category.String(),
			RelevanceScore: e.RelevanceScore,
			Tags:           e.Tags,
			CreatedAt:      now,
		})
	}

	document.Summary = summary
	document.DocumentType = analysis.DocumentType
	document.Keywords = analysis.Keywords
	document.Processed = true
	document.ProcessedAt = &now

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("CONSUMER", "Failed to begin transaction", withError(details, err))
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.KnowledgeRepository().DeleteByDocument(ctx, document.Id); err != nil {
		cs.logger.Error("CONSUMER", "Failed to clear previous entries", withError(details, err))
		msg.Nack()
		return
	}
	if err := uow.KnowledgeRepository().CreateMany(ctx, entries); err != nil {
		cs.logger.Error("CONSUMER", "Failed to store knowledge entries", withError(details, err))
		msg.Nack()
		return
	}
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		cs.logger.Error("CONSUMER", "Failed to update document", withError(details, err))
		msg.Nack()
		return
	}
	if err := uow.Commit(); err != nil {
		cs.logger.Error("CONSUMER", "Failed to commit transaction", withError(details, err))
		msg.Nack()
		return
	}

	details["document_type"] = analysis.DocumentType
	details["entries"] = len(entries)
	details["llm_summary"] = generated
	cs.logger.Info("CONSUMER", "Document processed", details)
	msg.Ack()
}

func withError(details map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(details)+1)
	for k, v := range details {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
