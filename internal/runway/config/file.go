package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// File is the on-disk form of Config. Durations are written as strings
// such as "15s" so the file stays readable.
type File struct {
	APIKey       string   `toml:"api_key"`
	Model        string   `toml:"model"`
	Temperature  float64  `toml:"temperature"`
	MaxRetries   int      `toml:"max_retries"`
	Season       string   `toml:"season"`
	Cities       []string `toml:"cities"`
	BaseURL      string   `toml:"base_url"`
	Referer      string   `toml:"referer"`
	Title        string   `toml:"title"`
	Timeout      string   `toml:"timeout"`
	RetryBackoff string   `toml:"retry_backoff"`
	RevealDelay  string   `toml:"reveal_delay"`
	SpinnerDelay string   `toml:"spinner_delay"`
	PromptFile   string   `toml:"prompt_file,omitempty"`
	Trace        bool     `toml:"trace"`
}

// File returns the on-disk form of the config
func (c *Config) File() File {
	cities := c.Cities
	if cities == nil {
		cities = []string{}
	}
	return File{
		APIKey:       c.APIKey,
		Model:        c.Model,
		Temperature:  c.Temperature,
		MaxRetries:   c.MaxRetries,
		Season:       c.Season,
		Cities:       cities,
		BaseURL:      c.BaseURL,
		Referer:      c.Referer,
		Title:        c.Title,
		Timeout:      c.Timeout.String(),
		RetryBackoff: c.RetryBackoff.String(),
		RevealDelay:  c.RevealDelay.String(),
		SpinnerDelay: c.SpinnerDelay.String(),
		PromptFile:   c.PromptFile,
		Trace:        c.Trace,
	}
}

// Encode writes the config as TOML
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c.File()); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}
