package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const MaxUploadBytes = 10 * 1024 * 1024

var allowedDocumentTypes = map[string]string{
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
}

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	GetAll(ctx context.Context) ([]*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]*dto.DocumentResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	uploadDir        string
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	uploadDir string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		uploadDir:        uploadDir,
		logger:           log,
	}
}

// documentMimeType accepts text/plain and text/markdown by declared type or,
// when the client sent a generic type, by extension.
func documentMimeType(name, declared string) (string, bool) {
	base, _, err := mime.ParseMediaType(declared)
	if err == nil && (base == "text/plain" || base == "text/markdown" || base == "text/x-markdown") {
		return base, true
	}
	t, ok := allowedDocumentTypes[strings.ToLower(filepath.Ext(name))]
	return t, ok
}

// Upload stores the file, records the document unprocessed and queues it for
// analysis.
func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if req.Size > MaxUploadBytes || len(req.Content) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if len(req.Content) == 0 {
		return nil, ErrEmptyFile
	}
	mimeType, ok := documentMimeType(req.OriginalName, req.MimeType)
	if !ok || !utf8.Valid(req.Content) {
		return nil, ErrUnsupportedFileType
	}

	id := uuid.New()
	filename := id.String() + strings.ToLower(filepath.Ext(req.OriginalName))
	if s.uploadDir != "" {
		if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(s.uploadDir, filename), req.Content, 0o644); err != nil {
			return nil, fmt.Errorf("store upload: %w", err)
		}
	}

	document := entity.Document{
		Id:           id,
		Filename:     filename,
		OriginalName: filepath.Base(req.OriginalName),
		MimeType:     mimeType,
		Size:         int64(len(req.Content)),
		Content:      string(req.Content),
		Keywords:     []string{},
		CreatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.ProcessDocumentPayload{DocumentId: document.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// The document stays unprocessed; it is still listed and searchable.
		s.logger.Error("DOCUMENT", "Failed to queue document processing", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}

	s.logger.Info("DOCUMENT", "Document uploaded", map[string]interface{}{
		"document_id": document.Id.String(),
		"name":        document.OriginalName,
		"size":        document.Size,
	})
	return toDocumentResponse(&document), nil
}

func (s *documentService) GetAll(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(documents), nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	return toDocumentResponse(document), nil
}

// Delete removes the document, its knowledge entries and the stored file.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if document == nil {
		return ErrDocumentNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeRepository().DeleteByDocument(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if s.uploadDir != "" {
		path := filepath.Join(s.uploadDir, document.Filename)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("DOCUMENT", "Failed to remove stored file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (s *documentService) Search(ctx context.Context, query string) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(documents), nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	keywords := d.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &dto.DocumentResponse{
		Id:           d.Id,
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		Size:         d.Size,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		Keywords:     keywords,
		Processed:    d.Processed,
		CreatedAt:    d.CreatedAt,
		ProcessedAt:  d.ProcessedAt,
	}
}

func toDocumentResponses(documents []*entity.Document) []*dto.DocumentResponse {
	out := make([]*dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		out = append(out, toDocumentResponse(d))
	}
	return out
}
