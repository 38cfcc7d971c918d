package cmd

import (
	"fmt"
	"strings"

	"github.com/longkey1/runway/internal/runway/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, api_key, model, temperature, max_retries, season, cities, base_url, referer, title, timeout, retry_backoff, reveal_delay, spinner_delay, prompt_file, trace"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.
The API key is always masked.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  runway config              # Show all configuration
  runway config model        # Show only model
  runway config cities       # Show only the city filter`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		values := configValues(cfg)

		// If a field is specified, show only that field
		if len(args) > 0 {
			field := strings.ToLower(args[0])
			for _, v := range values {
				if v.key == field {
					fmt.Println(v.value)
					return nil
				}
			}
			return fmt.Errorf("unknown field: %s (available fields: %s)", args[0], configFields)
		}

		for _, v := range values {
			fmt.Printf("%s: %s\n", v.label, v.value)
		}
		return nil
	},
}

type configValue struct {
	key   string
	label string
	value string
}

func configValues(cfg *config.Config) []configValue {
	return []configValue{
		{"configfile", "ConfigFile", viper.ConfigFileUsed()},
		{"api_key", "APIKey", config.MaskToken(cfg.APIKey)},
		{"model", "Model", cfg.Model},
		{"temperature", "Temperature", fmt.Sprintf("%.1f", cfg.Temperature)},
		{"max_retries", "MaxRetries", fmt.Sprintf("%d", cfg.MaxRetries)},
		{"season", "Season", cfg.Season},
		{"cities", "Cities", strings.Join(cfg.Cities, ",")},
		{"base_url", "BaseURL", cfg.BaseURL},
		{"referer", "Referer", cfg.Referer},
		{"title", "Title", cfg.Title},
		{"timeout", "Timeout", cfg.Timeout.String()},
		{"retry_backoff", "RetryBackoff", cfg.RetryBackoff.String()},
		{"reveal_delay", "RevealDelay", cfg.RevealDelay.String()},
		{"spinner_delay", "SpinnerDelay", cfg.SpinnerDelay.String()},
		{"prompt_file", "PromptFile", cfg.PromptFile},
		{"trace", "Trace", fmt.Sprintf("%t", cfg.Trace)},
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
}
