package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/llmtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationCRUD(t *testing.T) {
	svc := newHarness(t, nil).conversations()

	first, err := svc.Create(ctx(), &dto.CreateConversationRequest{Title: "Santos discharge"})
	require.NoError(t, err)
	_, err = svc.Create(ctx(), &dto.CreateConversationRequest{Title: "Hamburg fixture"})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shown, err := svc.Show(ctx(), first.Id)
	require.NoError(t, err)
	assert.Equal(t, "Santos discharge", shown.Title)

	require.NoError(t, svc.Delete(ctx(), first.Id))
	_, err = svc.Show(ctx(), first.Id)
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.ErrorIs(t, svc.Delete(ctx(), first.Id), ErrConversationNotFound)
}

func TestSendMessageLaytime(t *testing.T) {
	h := newHarness(t, nil)
	svc := h.conversations()
	conv, err := svc.Create(ctx(), &dto.CreateConversationRequest{Title: "Laytime"})
	require.NoError(t, err)

	clock := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.(*conversationService).now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	res, err := svc.SendMessage(ctx(), &dto.CreateMessageRequest{
		ConversationId: conv.Id,
		Content:        "Please calculate laytime. Vessel arrived at 14:30 and completed loading at 08:15 the next day",
	})
	require.NoError(t, err)

	assert.Equal(t, "user", res.UserMessage.Role)
	assert.Equal(t, "assistant", res.AiMessage.Role)
	assert.Contains(t, res.AiMessage.Content, "17.75 hours (0.74 days)")

	var meta dto.MessageMetadata
	require.NoError(t, json.Unmarshal(res.AiMessage.Metadata, &meta))
	assert.Equal(t, "laytime", meta.Category)
	assert.Equal(t, "calculation", meta.Mode)

	messages, err := svc.GetMessages(ctx(), conv.Id)
	require.NoError(t, err)
	require.Len(t, messages, 2, "each side of the exchange is stored once")
	assert.Equal(t, res.UserMessage.Id, messages[0].Id)
	assert.Equal(t, res.AiMessage.Id, messages[1].Id)

	shown, err := svc.Show(ctx(), conv.Id)
	require.NoError(t, err)
	assert.True(t, shown.UpdatedAt.Equal(res.AiMessage.CreatedAt))
	assert.True(t, shown.UpdatedAt.After(conv.CreatedAt))
}

func TestSendMessageUnknownConversation(t *testing.T) {
	svc := newHarness(t, nil).conversations()

	_, err := svc.SendMessage(ctx(), &dto.CreateMessageRequest{ConversationId: uuid.New(), Content: "hello"})
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSendMessageCarriesHistory(t *testing.T) {
	fake := &llmtest.Fake{Fn: func(_ context.Context, history []llm.Message, _ llm.Options) (string, error) {
		if strings.Contains(history[0].Content, "categorize") {
			return `{"category":"general","confidence":0.7,"suggestedActions":[],"requiresDocuments":false}`, nil
		}
		return "Ballast water exchange must follow the BWM Convention.", nil
	}}
	h := newHarness(t, fake)
	svc := h.conversations()

	conv, err := svc.Create(ctx(), &dto.CreateConversationRequest{Title: "Ballast"})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx(), &dto.CreateMessageRequest{ConversationId: conv.Id, Content: "Tell me about ballast water"})
	require.NoError(t, err)
	res, err := svc.SendMessage(ctx(), &dto.CreateMessageRequest{ConversationId: conv.Id, Content: "And in port?"})
	require.NoError(t, err)
	assert.Equal(t, "Ballast water exchange must follow the BWM Convention.", res.AiMessage.Content)

	calls := fake.Calls()
	last := calls[len(calls)-1].History
	var contents []string
	for _, m := range last {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "Tell me about ballast water")
	assert.Equal(t, "And in port?", last[len(last)-1].Content)

	messages, err := svc.GetMessages(ctx(), conv.Id)
	require.NoError(t, err)
	assert.Len(t, messages, 4)
}
