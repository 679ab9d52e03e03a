package router

import (
	"context"

	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/maritime"
)

// Mode records which kind of answer a handler produced
type Mode string

const (
	ModeCalculation   Mode = "calculation"   // Deterministic engine ran
	ModeClarification Mode = "clarification" // Parameters missing, user asked for them
	ModeGenerative    Mode = "generative"    // LLM or its static fallback
)

// Query is the user's message plus prior turns, oldest first
type Query struct {
	Text      string
	History   []llm.Message
	Documents []fallback.Snippet
}

type Reply struct {
	Text     string        `json:"text"`
	Mode     Mode          `json:"mode"`
	Handler  string        `json:"handler"`
	Provider string        `json:"provider,omitempty"`
	Failure  llm.ErrorKind `json:"-"`
}

type Handler func(ctx context.Context, q Query, c classifier.Classification) Reply

// KnowledgeSource supplies knowledge base entries for generative answers
type KnowledgeSource interface {
	Relevant(ctx context.Context, query string, category maritime.Category, limit int) ([]fallback.Snippet, error)
}

// Logger is the slice of the application logger the router needs
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{}) {}
func (nopLogger) Warn(string, string, map[string]interface{}) {}
