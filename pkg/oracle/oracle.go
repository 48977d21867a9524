// Package oracle provides the language-model client used for language
// detection and text translation.
//
// Both jobs go through the same single-turn chat interface and differ
// only in the system instruction sent, so the package exposes one
// Provider interface plus the two high-level helpers DetectLanguage
// and Translate.
//
// Example usage:
//
//	client, _ := oracle.NewClient(
//	    oracle.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    oracle.WithModel("gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	translated, _ := oracle.Translate(ctx, client, "Guten Tag", "German", "English")
package oracle

import "context"

// Provider is the chat-completion interface for the translation oracle.
// All implementations must satisfy this interface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Role defines message roles in a conversation.
type Role string

const (
	// RoleSystem is for system instructions.
	RoleSystem Role = "system"

	// RoleUser is for user messages.
	RoleUser Role = "user"

	// RoleAssistant is for assistant responses.
	RoleAssistant Role = "assistant"
)

// Message is one turn in a chat conversation.
type Message struct {
	// Role identifies the message sender.
	Role Role

	// Content is the message text.
	Content string
}

// NewSystemMessage creates a system instruction message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ChatRequest for chat completions.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64
}

// ChatResponse from chat completion.
type ChatResponse struct {
	// Content is the assistant's response text.
	Content string

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
