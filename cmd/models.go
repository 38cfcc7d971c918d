/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/longkey1/runway/internal/runway"
	"github.com/longkey1/runway/internal/runway/config"
	"github.com/spf13/cobra"
)

var remote bool

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models a session can use",
	Long: `List the models a chat session can select.

With --remote, the live OpenRouter model catalogue is fetched instead; this
requires an API key.

Example:
  runway models            # List selectable models
  runway models --remote   # List every model served by OpenRouter`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !remote {
			printModels(runway.Models())
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		models, err := newClient(cfg).ListModels(cmd.Context(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		if len(models) == 0 {
			return fmt.Errorf("no models returned from API")
		}

		width := len("MODEL ID")
		for _, m := range models {
			if len(m.ID) > width {
				width = len(m.ID)
			}
		}
		fmt.Printf("%-*s  %s\n", width, "MODEL ID", "OWNED BY")
		fmt.Printf("%s  %s\n", strings.Repeat("-", width), strings.Repeat("-", 20))
		for _, m := range models {
			fmt.Printf("%-*s  %s\n", width, m.ID, m.OwnedBy)
		}
		return nil
	},
}

func printModels(models []runway.ModelInfo) {
	width := len("MODEL ID")
	for _, m := range models {
		if len(m.ID) > width {
			width = len(m.ID)
		}
	}

	fmt.Printf("%-*s  %-10s  %s\n", width, "MODEL ID", "DEFAULT", "DESCRIPTION")
	fmt.Printf("%s  %s  %s\n", strings.Repeat("-", width), strings.Repeat("-", 10), strings.Repeat("-", 40))
	for _, m := range models {
		defaultMark := ""
		if m.IsDefault {
			defaultMark = "Yes"
		}
		fmt.Printf("%-*s  %-10s  %s\n", width, m.ID, defaultMark, m.Description)
	}
	fmt.Printf("\nUse a model with: runway chat --model <model> [message]\n")
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().BoolVar(&remote, "remote", false, "List the live OpenRouter catalogue")
}
