/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/longkey1/runway/internal/runway/config"
	"github.com/longkey1/runway/internal/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	apiKey      string
	model       string
	temperature float64
	maxRetries  int
	season      string
	cities      []string
	noReveal    bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask about fashion events",
	Long: `Ask about runway shows, designer events and industry trends.

With a message, one question is answered and the command exits.
Without a message, an interactive session starts; type '/help' there for the
available commands. When stdin is not a terminal the message is read from it.

Flags override the configuration file for this run only.

Examples:
  runway chat "What's on at Paris Fashion Week?"
  runway chat --season Resort --city Milan --city Paris
  echo "Who is showing in Tokyo?" | runway chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := applyChatFlags(cmd, cfg); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		view := terminal.New(os.Stdout)
		ctrl, err := newController(cfg, view, noReveal)
		if err != nil {
			return err
		}

		var message string
		if len(args) > 0 {
			message = strings.Join(args, " ")
		} else if !term.IsTerminal(int(os.Stdin.Fd())) {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		if message == "" {
			if err := runInteractiveMode(ctx, ctrl, view); err != nil {
				return fmt.Errorf("interactive mode: %w", err)
			}
			return nil
		}

		turn := ctrl.Submit(ctx, message)
		if turn.Err != nil {
			return fmt.Errorf("chat request failed: %w", turn.Err)
		}
		return nil
	},
}

// applyChatFlags overrides the loaded configuration with the flags that were set
func applyChatFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.SetAPIKey(apiKey)
	}
	if flags.Changed("model") {
		if err := cfg.SetModel(model); err != nil {
			return fmt.Errorf("invalid model from flag: %w", err)
		}
	}
	if flags.Changed("temperature") {
		if err := cfg.SetTemperature(temperature); err != nil {
			return fmt.Errorf("invalid temperature from flag: %w", err)
		}
	}
	if flags.Changed("max-retries") {
		if err := cfg.SetMaxRetries(maxRetries); err != nil {
			return fmt.Errorf("invalid max retries from flag: %w", err)
		}
	}
	if flags.Changed("season") {
		if err := cfg.SetSeason(season); err != nil {
			return fmt.Errorf("invalid season from flag: %w", err)
		}
	}
	if flags.Changed("city") {
		if err := cfg.SetCities(cities); err != nil {
			return fmt.Errorf("invalid city from flag: %w", err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)

	// Add command options
	chatCmd.Flags().StringVar(&apiKey, "api-key", "", "OpenRouter API key (overrides api_key)")
	chatCmd.Flags().StringVarP(&model, "model", "m", "", "Model to use (see 'runway models')")
	chatCmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "Response style from 0.0 (factual) to 1.0 (creative)")
	chatCmd.Flags().IntVarP(&maxRetries, "max-retries", "r", 0, "Attempts allowed when a response cannot be read (1-5)")
	chatCmd.Flags().StringVar(&season, "season", "", "Season filter (see 'runway filters')")
	chatCmd.Flags().StringSliceVar(&cities, "city", []string{}, "Fashion capital filter, repeatable")
	chatCmd.Flags().BoolVar(&noReveal, "no-reveal", false, "Draw answers at once instead of word by word")
}
