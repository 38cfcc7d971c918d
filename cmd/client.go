package cmd

import (
	"fmt"
	"log/slog"

	"github.com/longkey1/runway/internal/openrouter"
	"github.com/longkey1/runway/internal/runway/chat"
	"github.com/longkey1/runway/internal/runway/config"
	"github.com/longkey1/runway/internal/runway/prompt"
	"github.com/longkey1/runway/internal/runway/session"
)

// newClient creates an OpenRouter client from the configuration
func newClient(cfg *config.Config) *openrouter.Client {
	return openrouter.NewClient(openrouter.Options{
		BaseURL: cfg.BaseURL,
		Referer: cfg.Referer,
		Title:   cfg.Title,
		Timeout: cfg.Timeout,
		Backoff: cfg.RetryBackoff,
		Logger:  slog.Default(),
	})
}

// newController creates a fresh session and the controller driving it
func newController(cfg *config.Config, view chat.View, instant bool) (*chat.Controller, error) {
	p, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("loading prompt: %w", err)
	}

	sess := session.NewSession(cfg)
	ctrl := chat.NewController(sess, newClient(cfg), view)
	ctrl.Prompt = prompt.NewBuilder(p)
	ctrl.Renderer.Instant = instant
	slog.Debug("session started", "session", sess.GetShortID(), "model", cfg.Model, "api_key", config.MaskToken(cfg.APIKey))
	return ctrl, nil
}
