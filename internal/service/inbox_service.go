package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/pkg/ingest"
)

type IInboxService interface {
	// Start watches the inbox until ctx is done. It returns once the watch is
	// established.
	Start(ctx context.Context) error
}

// inboxService uploads text documents dropped into a directory, the same way
// as the upload endpoint.
type inboxService struct {
	dir       string
	documents IDocumentService
	logger    logger.ILogger
}

func NewInboxService(dir string, documents IDocumentService, log logger.ILogger) IInboxService {
	return &inboxService{dir: dir, documents: documents, logger: log}
}

func (s *inboxService) Start(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	watcher, err := ingest.NewInboxWatcher(nil)
	if err != nil {
		return err
	}
	paths, err := watcher.Watch(ctx, s.dir, func(err error) {
		s.logger.Warn("INBOX", "Watcher error", map[string]interface{}{"error": err.Error()})
	})
	if err != nil {
		watcher.Close()
		return err
	}

	s.logger.Info("INBOX", "Watching knowledge inbox", map[string]interface{}{"dir": s.dir})
	go func() {
		defer watcher.Close()
		for path := range paths {
			s.ingest(ctx, path)
		}
	}()
	return nil
}

// ingest uploads then removes the file. The watcher only reports a path once
// writes to it have settled.
func (s *inboxService) ingest(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("INBOX", "Failed to read file", map[string]interface{}{"path": path, "error": err.Error()})
		}
		return
	}
	if len(content) == 0 {
		return
	}

	doc, err := s.documents.Upload(ctx, &dto.UploadDocumentRequest{
		OriginalName: filepath.Base(path),
		Size:         int64(len(content)),
		Content:      content,
	})
	if err != nil {
		s.logger.Warn("INBOX", "Failed to ingest file", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}
	if err := os.Remove(path); err != nil {
		s.logger.Warn("INBOX", "Failed to remove ingested file", map[string]interface{}{"path": path, "error": err.Error()})
	}
	s.logger.Info("INBOX", "File ingested", map[string]interface{}{"path": path, "document_id": doc.Id.String()})
}
