package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/longkey1/runway/internal/runway"
	"github.com/longkey1/runway/internal/runway/config"
)

func TestNewSessionHasGreeting(t *testing.T) {
	s := NewSession(config.NewDefaultConfig())

	want := []runway.Message{runway.AssistantMessage(GreetingMessage)}
	if diff := cmp.Diff(want, s.Messages()); diff != "" {
		t.Errorf("Messages() mismatch (-want +got):\n%s", diff)
	}
	if len(s.GetShortID()) != 8 {
		t.Errorf("GetShortID() = %q, want 8 characters", s.GetShortID())
	}
}

func TestClearResetsToSingleSeed(t *testing.T) {
	s := NewSession(config.NewDefaultConfig())
	for i := 0; i < 5; i++ {
		s.AddMessage(runway.RoleUser, "question")
		s.AddMessage(runway.RoleAssistant, "answer")
	}

	s.Clear()

	want := []runway.Message{runway.AssistantMessage(ClearedMessage)}
	if diff := cmp.Diff(want, s.Messages()); diff != "" {
		t.Errorf("Messages() after Clear mismatch (-want +got):\n%s", diff)
	}

	s.Clear()
	if s.MessageCount() != 1 {
		t.Errorf("MessageCount() after second Clear = %d, want 1", s.MessageCount())
	}
}

func TestRecent(t *testing.T) {
	s := NewSession(config.NewDefaultConfig())
	s.AddMessage(runway.RoleUser, "u1")
	s.AddMessage(runway.RoleAssistant, "a1")
	s.AddMessage(runway.RoleUser, "u2")
	s.AddMessage(runway.RoleAssistant, "a2")

	tests := []struct {
		name string
		n    int
		want []runway.Message
	}{
		{
			name: "window of four",
			n:    4,
			want: []runway.Message{
				runway.UserMessage("u1"),
				runway.AssistantMessage("a1"),
				runway.UserMessage("u2"),
				runway.AssistantMessage("a2"),
			},
		},
		{
			name: "larger than history",
			n:    10,
			want: s.Messages(),
		},
		{
			name: "zero",
			n:    0,
			want: []runway.Message{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, s.Recent(tt.n)); diff != "" {
				t.Errorf("Recent(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := NewSession(config.NewDefaultConfig())
	msgs := s.Messages()
	msgs[0].Content = "changed"

	if s.LastMessage().Content != GreetingMessage {
		t.Errorf("mutating the returned slice changed the session")
	}
}

func TestNewRequestSnapshotsConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.APIKey = "key"
	cfg.MaxRetries = 3
	s := NewSession(cfg)
	s.AddMessage(runway.RoleUser, "What's trending")

	rc := s.NewRequest("system")
	cfg.MaxRetries = 5

	if rc.MaxRetries != 3 || rc.APIKey != "key" || rc.Model != cfg.Model || rc.SystemPrompt != "system" {
		t.Errorf("NewRequest() = %+v", rc)
	}
	if rc.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", rc.Attempts)
	}
	want := []runway.Message{runway.AssistantMessage(GreetingMessage), runway.UserMessage("What's trending")}
	if diff := cmp.Diff(want, rc.Recent); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}
}
