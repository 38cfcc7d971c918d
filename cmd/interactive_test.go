package cmd

import (
	"bytes"
	"testing"

	"github.com/longkey1/runway/internal/runway"
	"github.com/longkey1/runway/internal/runway/chat"
	"github.com/longkey1/runway/internal/runway/config"
	"github.com/longkey1/runway/internal/runway/session"
	"github.com/longkey1/runway/internal/terminal"
	"github.com/stretchr/testify/assert"
)

func newTestController() (*chat.Controller, *terminal.Presenter, *bytes.Buffer) {
	var screen bytes.Buffer
	view := terminal.New(&screen)
	cfg := config.NewDefaultConfig()
	cfg.APIKey = ""
	ctrl := chat.NewController(session.NewSession(cfg), newClient(cfg), view)
	return ctrl, view, &screen
}

func TestHandleSpecialCommandSettings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		check  func(t *testing.T, cfg *config.Config)
		output string
	}{
		{
			name:   "key",
			input:  "/key sk-or-v1-abcdefghijkl",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, "sk-or-v1-abcdefghijkl", cfg.APIKey) },
			output: "API key set: sk-o...ijkl",
		},
		{
			name:   "model",
			input:  "/model google/palm-2-chat-bison",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, runway.ModelPaLM2ChatBison, cfg.Model) },
			output: "Model: google/palm-2-chat-bison",
		},
		{
			name:   "unknown model keeps current",
			input:  "/model openai/gpt-4o",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, runway.DefaultModel, cfg.Model) },
			output: "Error:",
		},
		{
			name:   "temperature",
			input:  "/temperature 0.9",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, 0.9, cfg.Temperature) },
			output: "Temperature: 0.9",
		},
		{
			name:   "temperature out of range",
			input:  "/temperature 1.5",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, 0.4, cfg.Temperature) },
			output: "Error:",
		},
		{
			name:   "retries",
			input:  "/retries 5",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, 5, cfg.MaxRetries) },
			output: "Max Retries: 5",
		},
		{
			name:   "retries not a number",
			input:  "/retries many",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, 2, cfg.MaxRetries) },
			output: "Error: invalid number of retries",
		},
		{
			name:   "season",
			input:  "/season fall/winter",
			check:  func(t *testing.T, cfg *config.Config) { assert.Equal(t, "Fall/Winter", cfg.Season) },
			output: "Season: Fall/Winter",
		},
		{
			name:  "cities",
			input: "/cities milan, Paris, MILAN",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"Milan", "Paris"}, cfg.Cities)
			},
			output: "Cities: Milan, Paris",
		},
		{
			name:   "cities cleared",
			input:  "/cities",
			check:  func(t *testing.T, cfg *config.Config) { assert.Empty(t, cfg.Cities) },
			output: "Cities: (none)",
		},
		{
			name:   "unknown city",
			input:  "/cities Berlin",
			check:  func(t *testing.T, cfg *config.Config) { assert.Empty(t, cfg.Cities) },
			output: "Error: unknown city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, view, _ := newTestController()
			var out bytes.Buffer

			assert.True(t, handleSpecialCommand(tt.input, ctrl, view, &out))
			tt.check(t, ctrl.Session.Config)
			assert.Contains(t, out.String(), tt.output)
		})
	}
}

func TestHandleSpecialCommandClear(t *testing.T) {
	ctrl, view, screen := newTestController()
	ctrl.Session.AddMessage(runway.RoleUser, "What's trending")
	var out bytes.Buffer

	assert.True(t, handleSpecialCommand("/clear", ctrl, view, &out))

	assert.Equal(t, []runway.Message{runway.AssistantMessage(session.ClearedMessage)}, ctrl.Session.Messages())
	assert.Contains(t, screen.String(), session.ClearedMessage)
}

func TestHandleSpecialCommandExit(t *testing.T) {
	ctrl, view, _ := newTestController()
	var out bytes.Buffer

	assert.False(t, handleSpecialCommand("/exit", ctrl, view, &out))
	assert.False(t, handleSpecialCommand("/QUIT", ctrl, view, &out))
	assert.True(t, handleSpecialCommand("/dance", ctrl, view, &out))
	assert.Contains(t, out.String(), "Unknown command: /dance")
}

func TestHandleSpecialCommandInfo(t *testing.T) {
	ctrl, view, _ := newTestController()
	var out bytes.Buffer

	handleSpecialCommand("/info", ctrl, view, &out)

	assert.Contains(t, out.String(), "API Key: (not set)")
	assert.Contains(t, out.String(), "Model: "+runway.DefaultModel)
	assert.Contains(t, out.String(), "Season: All")
	assert.Contains(t, out.String(), "Messages: 1")
}
