package llm_test

import (
	"context"
	"sync"
	"testing"

	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []map[string]interface{}
	levels  []string
}

func (r *recordingLogger) record(level string, details map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels = append(r.levels, level)
	r.entries = append(r.entries, details)
}

func (r *recordingLogger) Info(_, _ string, details map[string]interface{}) {
	r.record("info", details)
}

func (r *recordingLogger) Warn(_, _ string, details map[string]interface{}) {
	r.record("warn", details)
}

func TestWithCallLog(t *testing.T) {
	log := &recordingLogger{}
	fake := &llmtest.Fake{Response: "Laytime counts from NOR."}
	p := llm.WithCallLog(fake, log)
	assert.Equal(t, "fake", p.Name())

	reply, err := p.Generate(context.Background(), "When does laytime start?")
	require.NoError(t, err)
	assert.Equal(t, "Laytime counts from NOR.", reply)

	fake.Err = &llm.ProviderError{Provider: "fake", StatusCode: 429}
	_, err = p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "again"}})
	require.Error(t, err)

	require.Len(t, log.entries, 2)
	assert.Equal(t, []string{"info", "warn"}, log.levels)
	assert.Equal(t, len("Laytime counts from NOR."), log.entries[0]["reply_chars"])
	assert.Equal(t, llm.KindRateLimited.String(), log.entries[1]["kind"])
	assert.NotContains(t, log.entries[0], "prompt")
}

func TestWithCallLogKeepsNil(t *testing.T) {
	assert.Nil(t, llm.WithCallLog(nil, &recordingLogger{}))
}

func TestWithCallLogForwardsClose(t *testing.T) {
	fake := &llmtest.Fake{}
	p := llm.WithCallLog(fake, &recordingLogger{})

	require.NoError(t, llm.Close(p))
	assert.Equal(t, 1, fake.Closed())

	// Nothing to release.
	assert.NoError(t, llm.Close(nil))
}
