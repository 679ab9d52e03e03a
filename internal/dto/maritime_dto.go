package dto

import "maritime-assistant-be/pkg/maritime"

type WeatherRequest struct {
	Location string `json:"location" validate:"required"`
}

// Times accept RFC 3339 or the "2006-01-02T15:04" form sent by datetime-local inputs.
type LaytimeRequest struct {
	ArrivalTime     string   `json:"arrivalTime" validate:"required"`
	CompletionTime  string   `json:"completionTime" validate:"required"`
	ExcludeWeekends bool     `json:"excludeWeekends"`
	Holidays        []string `json:"holidays,omitempty"`
}

type DistanceRequest struct {
	FromPort string `json:"fromPort" validate:"required"`
	ToPort   string `json:"toPort" validate:"required"`
}

type ClauseRequest struct {
	ClauseText string `json:"clauseText" validate:"required"`
}

type RouteRequest struct {
	SourcePort      *maritime.LatLng `json:"sourcePort" validate:"required"`
	DestinationPort *maritime.LatLng `json:"destinationPort" validate:"required"`
}

type AIChatRequest struct {
	Message string         `json:"message" validate:"required"`
	Context *AIChatContext `json:"context,omitempty"`
}

type AIChatContext struct {
	ConversationId string     `json:"conversationId,omitempty"`
	History        []ChatTurn `json:"history,omitempty" validate:"omitempty,dive"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content"`
}

type AIChatResponse struct {
	Response string `json:"response"`
	Provider string `json:"provider,omitempty"`
}

type ConfigureAIRequest struct {
	Provider string `json:"provider" validate:"required,oneof=openai gemini ollama none"`
	ApiKey   string `json:"apiKey"`
	Model    string `json:"model"`
}

type ConfigureAIResponse struct {
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

type PortResponse struct {
	Ports   []maritime.Port     `json:"ports"`
	Regions map[string][]string `json:"regions"`
}

type ClassifyRequest struct {
	Text string `json:"text" validate:"required"`
}
