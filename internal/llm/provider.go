// Package llm provides a thin client interface to the external completion
// service (OpenRouter's OpenAI-compatible Chat Completions API).
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/soccerhub/soccerhub/internal/config"
)

// Common errors returned by completion providers.
var (
	ErrNoAPIKey     = errors.New("llm: API key not configured")
	ErrRateLimit    = errors.New("llm: rate limit exceeded")
	ErrProviderDown = errors.New("llm: provider unavailable")
	ErrInvalidModel = errors.New("llm: invalid model")
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a system prompt message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ChatOptions configures a single chat request.
type ChatOptions struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// Usage tracks token consumption for a request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response represents a complete response from the completion service.
type Response struct {
	Content string        `json:"content"`
	Model   string        `json:"model"`
	Usage   Usage         `json:"usage"`
	Latency time.Duration `json:"latency"`
}

// Provider is the interface a completion backend must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openrouter").
	Name() string

	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error)
}

// NewFromConfig builds the configured provider.
func NewFromConfig(cfg *config.Config) (Provider, error) {
	return NewOpenRouterProvider(cfg.LLM.APIKey,
		WithBaseURL(cfg.LLM.BaseURL),
		WithModel(cfg.LLM.Model),
		WithReferer(cfg.LLM.Referer),
	)
}
