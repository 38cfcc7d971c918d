// Package session holds the state of the single active chat session: its
// configuration and its conversation. Nothing here outlives the process.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/longkey1/runway/internal/runway"
	"github.com/longkey1/runway/internal/runway/config"
)

// Seed messages
const (
	GreetingMessage = "Bonjour! I'm your Fashion Event Tracker 👗 Ask me about runway shows, designer events, or industry trends!"
	ClearedMessage  = "Chat cleared! Ask me about fashion week events or designer collections!"
)

// Session represents the active conversation session
type Session struct {
	ID        string
	Config    *config.Config
	CreatedAt time.Time
	UpdatedAt time.Time

	messages []runway.Message
}

// NewSession creates a new session seeded with the greeting message
func NewSession(cfg *config.Config) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
		messages:  []runway.Message{runway.AssistantMessage(GreetingMessage)},
	}
}

// AddMessage adds a new message to the session
func (s *Session) AddMessage(role runway.Role, content string) {
	s.messages = append(s.messages, runway.Message{Role: role, Content: content})
	s.UpdatedAt = time.Now()
}

// Clear replaces the conversation with a single seed message
func (s *Session) Clear() {
	s.messages = []runway.Message{runway.AssistantMessage(ClearedMessage)}
	s.UpdatedAt = time.Now()
}

// Messages returns a copy of the conversation
func (s *Session) Messages() []runway.Message {
	return append([]runway.Message(nil), s.messages...)
}

// Recent returns a copy of the last n messages
func (s *Session) Recent(n int) []runway.Message {
	if n <= 0 {
		return []runway.Message{}
	}
	start := len(s.messages) - n
	if start < 0 {
		start = 0
	}
	return append([]runway.Message(nil), s.messages[start:]...)
}

// LastMessage returns the most recent message
func (s *Session) LastMessage() runway.Message {
	return s.messages[len(s.messages)-1]
}

// MessageCount returns the number of messages in the session
func (s *Session) MessageCount() int {
	return len(s.messages)
}

// GetShortID returns the shortened session ID (first 8 characters)
func (s *Session) GetShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// NewRequest snapshots the config and the recent conversation for one prompt
func (s *Session) NewRequest(systemPrompt string) *runway.RequestContext {
	return &runway.RequestContext{
		APIKey:       s.Config.APIKey,
		Model:        s.Config.Model,
		Temperature:  s.Config.Temperature,
		MaxRetries:   s.Config.MaxRetries,
		SystemPrompt: systemPrompt,
		Recent:       s.Recent(runway.RecentWindow),
	}
}
