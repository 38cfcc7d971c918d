package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/runway/internal/runway/config"
	"github.com/longkey1/runway/internal/runway/prompt"
	"github.com/spf13/cobra"
)

const promptFileName = "prompt.toml"

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/runway/config.toml by default.
You can specify a different location using the --config option.

A prompt.toml holding the default system instruction is written next to it
and referenced from the config, so the instruction can be edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configFile := filepath.Join(home, ".config", "runway", "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}

		configDir := filepath.Dir(configFile)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("config file already exists at: %s", configFile)
		}

		promptFile := filepath.Join(configDir, promptFileName)
		if _, err := os.Stat(promptFile); err == nil {
			return fmt.Errorf("prompt file already exists at: %s", promptFile)
		}

		// Write the prompt first so the config never points at a missing file
		pf, err := os.Create(promptFile)
		if err != nil {
			return fmt.Errorf("failed to create prompt file: %w", err)
		}
		defer pf.Close()
		if err := toml.NewEncoder(pf).Encode(prompt.Default()); err != nil {
			return fmt.Errorf("failed to encode prompt: %w", err)
		}

		cfg := config.NewDefaultConfig()
		cfg.PromptFile = promptFileName

		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		defer f.Close()
		if err := cfg.Encode(f); err != nil {
			return err
		}

		fmt.Printf("Configuration file created at: %s\n", configFile)
		fmt.Printf("Prompt file created at: %s\n", promptFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
