// Package runway provides the core abstractions of the fashion event tracker.
// It defines the conversation message types, the selectable models, the request
// context handed to a completion backend and the failure taxonomy shared by the
// completion client and the chat controller.
package runway

import (
	"context"
	"fmt"
	"strings"
)

// Selectable model identifiers.
const (
	ModelDeepSeekR1Zero = "deepseek/deepseek-r1-zero:free"
	ModelPaLM2ChatBison = "google/palm-2-chat-bison"
)

// DefaultModel is the model selected when nothing else is configured.
const DefaultModel = ModelDeepSeekR1Zero

// ModelInfo describes a selectable model.
type ModelInfo struct {
	ID          string // OpenRouter model identifier
	Description string // Human-readable description of the model
	IsDefault   bool   // Whether this is the default model
}

// Models returns the fixed set of models a user may select.
func Models() []ModelInfo {
	return []ModelInfo{
		{ID: ModelDeepSeekR1Zero, Description: "DeepSeek R1 Zero (free tier)", IsDefault: true},
		{ID: ModelPaLM2ChatBison, Description: "Google PaLM 2 Chat Bison"},
	}
}

// ValidateModel reports an error if id is not one of the selectable models.
//
// Example:
//
//	err := ValidateModel("google/palm-2-chat-bison") // nil
func ValidateModel(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("model cannot be empty")
	}
	var ids []string
	for _, m := range Models() {
		if m.ID == id {
			return nil
		}
		ids = append(ids, m.ID)
	}
	return fmt.Errorf("unsupported model: %s (expected one of: %s)", id, strings.Join(ids, ", "))
}

// RecentWindow is the number of trailing conversation messages sent with each request.
const RecentWindow = 4

// RequestContext carries everything needed for one submitted prompt.
// It is created when the prompt enters the Requesting state and discarded
// once the turn ends.
type RequestContext struct {
	APIKey       string
	Model        string
	Temperature  float64
	MaxRetries   int
	SystemPrompt string
	Recent       []Message

	// Attempts is incremented by the completion backend for every request it sends.
	Attempts int
}

// Completion is a successful answer from the completion endpoint.
type Completion struct {
	Content  string
	Attempts int
}

// Completer obtains a completion for a request context.
// Failures are reported as *Error values carrying a Kind.
type Completer interface {
	Complete(ctx context.Context, rc *RequestContext) (*Completion, error)
}
