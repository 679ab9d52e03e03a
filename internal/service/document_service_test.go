package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/pkg/ai/summarizer"
	"maritime-assistant-be/pkg/ingest"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gencon = `GENCON CHARTER PARTY
Between Alpha Shipping (Owners) and Beta Grain (Charterers).

1. LAYTIME
Laytime for loading and discharge shall be 72 hours, weather working days, Sundays and holidays excepted.
Time lost waiting for berth counts as laytime.

2. DEMURRAGE
Demurrage at USD 15,000 per day pro rata, payable every 15 days.`

type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func upload(name, mimeType, content string) *dto.UploadDocumentRequest {
	return &dto.UploadDocumentRequest{
		OriginalName: name,
		MimeType:     mimeType,
		Size:         int64(len(content)),
		Content:      []byte(content),
	}
}

func TestUploadValidation(t *testing.T) {
	h := newHarness(t, nil)
	svc := NewDocumentService(h.factory, &capturePublisher{}, t.TempDir(), h.log)

	tests := []struct {
		name string
		req  *dto.UploadDocumentRequest
		want error
	}{
		{"pdf", upload("cp.pdf", "application/pdf", "%PDF-1.4"), ErrUnsupportedFileType},
		{"empty", upload("cp.txt", "text/plain", ""), ErrEmptyFile},
		{"binary", upload("cp.txt", "text/plain", string([]byte{0xff, 0xfe, 0x00})), ErrUnsupportedFileType},
		{"too large", &dto.UploadDocumentRequest{OriginalName: "big.txt", MimeType: "text/plain", Size: MaxUploadBytes + 1, Content: []byte("x")}, ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUploadStoresAndQueues(t *testing.T) {
	h := newHarness(t, nil)
	dir := t.TempDir()
	pub := &capturePublisher{}
	svc := NewDocumentService(h.factory, pub, dir, h.log)

	doc, err := svc.Upload(ctx(), upload("voyage-notes.md", "application/octet-stream", "# Voyage\nProceed to Santos."))
	require.NoError(t, err)
	assert.Equal(t, "text/markdown", doc.MimeType)
	assert.False(t, doc.Processed)
	assert.Equal(t, []string{}, doc.Keywords)
	assert.FileExists(t, filepath.Join(dir, doc.Filename))

	require.Len(t, pub.payloads, 1)
	var payload dto.ProcessDocumentPayload
	require.NoError(t, json.Unmarshal(pub.payloads[0], &payload))
	assert.Equal(t, doc.Id, payload.DocumentId)

	found, err := svc.Search(ctx(), "santos")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, svc.Delete(ctx(), doc.Id))
	assert.NoFileExists(t, filepath.Join(dir, doc.Filename))
	_, err = svc.Show(ctx(), doc.Id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func newConsumer(h *harness, sub message.Subscriber) *consumerService {
	return NewConsumerService(sub, "PROCESS_DOCUMENT", h.factory, summarizer.New(nil, time.Second), h.log).(*consumerService)
}

func TestConsumerProcessesDocument(t *testing.T) {
	h := newHarness(t, nil)
	pub := &capturePublisher{}
	docs := NewDocumentService(h.factory, pub, "", h.log)

	doc, err := docs.Upload(ctx(), upload("gencon.txt", "text/plain", gencon))
	require.NoError(t, err)

	msg := message.NewMessage(watermill.NewUUID(), pub.payloads[0])
	newConsumer(h, nil).processMessage(ctx(), msg)

	select {
	case <-msg.Acked():
	default:
		t.Fatal("message was not acked")
	}

	processed, err := docs.Show(ctx(), doc.Id)
	require.NoError(t, err)
	assert.True(t, processed.Processed)
	assert.NotNil(t, processed.ProcessedAt)
	assert.Equal(t, ingest.DocCharterParty, processed.DocumentType)
	assert.Contains(t, processed.Keywords, "laytime")
	assert.True(t, strings.HasPrefix(processed.Summary, "GENCON CHARTER PARTY Between Alpha Shipping"))

	entries, err := h.knowledge.Search(ctx(), "laytime", "laytime")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, doc.Id, *entries[0].DocumentId)

	// Reprocessing replaces entries instead of duplicating them.
	before, err := h.knowledge.List(ctx(), "")
	require.NoError(t, err)
	again := message.NewMessage(watermill.NewUUID(), pub.payloads[0])
	newConsumer(h, nil).processMessage(ctx(), again)
	after, err := h.knowledge.List(ctx(), "")
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestConsumerAcksUnusableMessages(t *testing.T) {
	h := newHarness(t, nil)
	consumer := newConsumer(h, nil)

	for _, payload := range [][]byte{
		[]byte("not json"),
		[]byte(`{"document_id":"` + uuid.NewString() + `"}`),
	} {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		consumer.processMessage(ctx(), msg)
		select {
		case <-msg.Acked():
		case <-msg.Nacked():
			t.Fatalf("payload %q was nacked", payload)
		}
	}
}

func TestUploadToConsumerOverGoChannel(t *testing.T) {
	h := newHarness(t, nil)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	c, cancel := context.WithCancel(ctx())
	defer cancel()
	require.NoError(t, newConsumer(h, pubSub).Consume(c))

	docs := NewDocumentService(h.factory, NewPublisherService("PROCESS_DOCUMENT", pubSub), "", h.log)
	doc, err := docs.Upload(ctx(), upload("gencon.txt", "text/plain", gencon))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		d, err := docs.Show(ctx(), doc.Id)
		return err == nil && d.Processed
	}, 5*time.Second, 20*time.Millisecond)
}

func TestInboxIngestsDroppedFiles(t *testing.T) {
	h := newHarness(t, nil)
	docs := NewDocumentService(h.factory, &capturePublisher{}, "", h.log)
	inbox := t.TempDir()

	c, cancel := context.WithCancel(ctx())
	defer cancel()
	require.NoError(t, NewInboxService(inbox, docs, h.log).Start(c))

	staging := filepath.Join(t.TempDir(), "orders.txt")
	require.NoError(t, os.WriteFile(staging, []byte("Voyage orders: proceed to Rotterdam."), 0o644))
	require.NoError(t, os.Rename(staging, filepath.Join(inbox, "orders.txt")))

	assert.Eventually(t, func() bool {
		all, err := docs.GetAll(ctx())
		return err == nil && len(all) == 1 && all[0].OriginalName == "orders.txt"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestInboxWaitsForFilesWrittenInPlace(t *testing.T) {
	h := newHarness(t, nil)
	docs := NewDocumentService(h.factory, &capturePublisher{}, "", h.log)
	inbox := t.TempDir()

	c, cancel := context.WithCancel(ctx())
	defer cancel()
	require.NoError(t, NewInboxService(inbox, docs, h.log).Start(c))

	first := "Voyage orders: proceed to Rotterdam.\n"
	second := "Load 50,000 MT grain, laytime 72 hours SHINC.\n"
	f, err := os.Create(filepath.Join(inbox, "orders.txt"))
	require.NoError(t, err)
	_, err = f.WriteString(first)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	_, err = f.WriteString(second)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Eventually(t, func() bool {
		all, err := docs.GetAll(ctx())
		return err == nil && len(all) == 1
	}, 5*time.Second, 20*time.Millisecond)

	time.Sleep(700 * time.Millisecond)
	all, err := docs.GetAll(ctx())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(len(first)+len(second)), all[0].Size)
}
