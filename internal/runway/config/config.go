package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/longkey1/runway/internal/runway"
	"github.com/spf13/viper"
)

// Endpoint defaults
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultReferer = "https://fashion-tracker.streamlit.app"
	DefaultTitle   = "Fashion Event Tracker"
)

// Limits for user-adjustable settings
const (
	MinTemperature = 0.0
	MaxTemperature = 1.0
	MinRetries     = 1
	MaxRetries     = 5
)

// SeasonAll disables season filtering
const SeasonAll = "All"

// Seasons lists the selectable season filters
var Seasons = []string{SeasonAll, "Spring/Summer", "Fall/Winter", "Resort", "Pre-Fall"}

// Cities lists the selectable fashion capitals
var Cities = []string{"New York", "Paris", "Milan", "London", "Tokyo"}

// Config holds the settings of one chat session
type Config struct {
	APIKey      string   `toml:"api_key" mapstructure:"api_key"`   // May reference an environment variable ("$OPENROUTER_API_KEY")
	Model       string   `toml:"model" mapstructure:"model"`       // One of runway.Models()
	Temperature float64  `toml:"temperature" mapstructure:"temperature"`
	MaxRetries  int      `toml:"max_retries" mapstructure:"max_retries"`
	Season      string   `toml:"season" mapstructure:"season"`
	Cities      []string `toml:"cities" mapstructure:"cities"`

	BaseURL string `toml:"base_url" mapstructure:"base_url"`
	Referer string `toml:"referer" mapstructure:"referer"`
	Title   string `toml:"title" mapstructure:"title"`

	Timeout      time.Duration `toml:"timeout" mapstructure:"timeout"`
	RetryBackoff time.Duration `toml:"retry_backoff" mapstructure:"retry_backoff"`
	RevealDelay  time.Duration `toml:"reveal_delay" mapstructure:"reveal_delay"`
	SpinnerDelay time.Duration `toml:"spinner_delay" mapstructure:"spinner_delay"`

	PromptFile string `toml:"prompt_file" mapstructure:"prompt_file"` // Optional system prompt template (TOML)

	Trace bool `toml:"trace" mapstructure:"trace"` // Export spans over OTLP/HTTP
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		APIKey:       "$OPENROUTER_API_KEY", // Default to env var
		Model:        runway.DefaultModel,
		Temperature:  0.4,
		MaxRetries:   2,
		Season:       SeasonAll,
		Cities:       []string{},
		BaseURL:      DefaultBaseURL,
		Referer:      DefaultReferer,
		Title:        DefaultTitle,
		Timeout:      15 * time.Second,
		RetryBackoff: 500 * time.Millisecond,
		RevealDelay:  30 * time.Millisecond,
		SpinnerDelay: 300 * time.Millisecond,
		PromptFile:   "",
		Trace:        false,
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	apiKey, err := expandEnvVar(strings.TrimSpace(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("error expanding api_key: %w", err)
	}
	config.APIKey = apiKey

	if config.PromptFile != "" {
		absPath, err := ResolvePath(config.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt file path '%s': %w", config.PromptFile, err)
		}
		config.PromptFile = absPath
	}

	if config.Season == "" {
		config.Season = SeasonAll
	}
	if config.Season, err = ParseSeason(config.Season); err != nil {
		return nil, err
	}
	if config.Cities, err = ParseCities(config.Cities); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that every setting is within its allowed range
func (c *Config) Validate() error {
	if err := runway.ValidateModel(c.Model); err != nil {
		return err
	}
	if err := validateTemperature(c.Temperature); err != nil {
		return err
	}
	if err := validateRetries(c.MaxRetries); err != nil {
		return err
	}
	if _, err := ParseSeason(c.Season); err != nil {
		return err
	}
	if _, err := ParseCities(c.Cities); err != nil {
		return err
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is not configured. Set it in config file (base_url) or environment variable (RUNWAY_BASE_URL)")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	if c.RetryBackoff < 0 || c.RevealDelay < 0 || c.SpinnerDelay < 0 {
		return fmt.Errorf("delays cannot be negative")
	}
	return nil
}

// HasAPIKey reports whether a credential is present
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SetAPIKey replaces the credential
func (c *Config) SetAPIKey(key string) {
	c.APIKey = strings.TrimSpace(key)
}

// SetModel selects a model after validating it
func (c *Config) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if err := runway.ValidateModel(model); err != nil {
		return err
	}
	c.Model = model
	return nil
}

// SetTemperature sets the sampling temperature after validating it
func (c *Config) SetTemperature(t float64) error {
	if err := validateTemperature(t); err != nil {
		return err
	}
	c.Temperature = t
	return nil
}

// SetMaxRetries sets the attempt budget after validating it
func (c *Config) SetMaxRetries(n int) error {
	if err := validateRetries(n); err != nil {
		return err
	}
	c.MaxRetries = n
	return nil
}

// SetSeason selects a season filter
func (c *Config) SetSeason(season string) error {
	s, err := ParseSeason(season)
	if err != nil {
		return err
	}
	c.Season = s
	return nil
}

// SetCities replaces the city filter. An empty list clears it.
func (c *Config) SetCities(cities []string) error {
	parsed, err := ParseCities(cities)
	if err != nil {
		return err
	}
	c.Cities = parsed
	return nil
}

// Filters returns the active event filters in display form,
// e.g. ["Season: Resort", "Cities: Paris, Milan"]
func (c *Config) Filters() []string {
	var filters []string
	if c.Season != "" && c.Season != SeasonAll {
		filters = append(filters, "Season: "+c.Season)
	}
	if len(c.Cities) > 0 {
		filters = append(filters, "Cities: "+strings.Join(c.Cities, ", "))
	}
	return filters
}

// Clone returns a deep copy of the config
func (c *Config) Clone() *Config {
	clone := *c
	clone.Cities = append([]string(nil), c.Cities...)
	return &clone
}

// ParseSeason returns the canonical spelling of a season filter
func ParseSeason(season string) (string, error) {
	season = strings.TrimSpace(season)
	for _, s := range Seasons {
		if strings.EqualFold(s, season) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown season: %q (expected one of: %s)", season, strings.Join(Seasons, ", "))
}

// ParseCities returns the canonical spelling of each city, dropping duplicates
// and keeping the order of first appearance
func ParseCities(cities []string) ([]string, error) {
	result := []string{}
	seen := make(map[string]bool)
	for _, city := range cities {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		canonical := ""
		for _, c := range Cities {
			if strings.EqualFold(c, city) {
				canonical = c
				break
			}
		}
		if canonical == "" {
			return nil, fmt.Errorf("unknown city: %q (expected any of: %s)", city, strings.Join(Cities, ", "))
		}
		if !seen[canonical] {
			seen[canonical] = true
			result = append(result, canonical)
		}
	}
	return result, nil
}

// MaskToken returns a masked version of the token for display
func MaskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func validateTemperature(t float64) error {
	if t < MinTemperature || t > MaxTemperature {
		return fmt.Errorf("temperature must be between %.1f and %.1f (got %g)", MinTemperature, MaxTemperature, t)
	}
	return nil
}

func validateRetries(n int) error {
	if n < MinRetries || n > MaxRetries {
		return fmt.Errorf("max retries must be between %d and %d (got %d)", MinRetries, MaxRetries, n)
	}
	return nil
}

// RegisterDefaults registers the default values of every key with viper
func RegisterDefaults() {
	d := NewDefaultConfig()
	viper.SetDefault("api_key", d.APIKey)
	viper.SetDefault("model", d.Model)
	viper.SetDefault("temperature", d.Temperature)
	viper.SetDefault("max_retries", d.MaxRetries)
	viper.SetDefault("season", d.Season)
	viper.SetDefault("cities", d.Cities)
	viper.SetDefault("base_url", d.BaseURL)
	viper.SetDefault("referer", d.Referer)
	viper.SetDefault("title", d.Title)
	viper.SetDefault("timeout", d.Timeout)
	viper.SetDefault("retry_backoff", d.RetryBackoff)
	viper.SetDefault("reveal_delay", d.RevealDelay)
	viper.SetDefault("spinner_delay", d.SpinnerDelay)
	viper.SetDefault("prompt_file", d.PromptFile)
	viper.SetDefault("trace", d.Trace)
}
