/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/longkey1/runway/internal/runway/config"
	"github.com/longkey1/runway/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logFile string

	logOutput     io.Closer
	traceShutdown telemetry.Shutdown
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Track fashion weeks, runway shows and designer events from the terminal",
	Long: `runway is a chat client that answers questions about fashion events:
runway shows, designer collections, fashion weeks and industry trends.

Answers come from a model served by OpenRouter. An OpenRouter API key is
required; it can be set in the config file (api_key), the RUNWAY_API_KEY or
OPENROUTER_API_KEY environment variables, or a .env file in the working
directory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	closeResources()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging, initConfig, initTracing)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/runway/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// initLogging installs the default slog logger
func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		} else {
			out = f
			logOutput = f
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	// Set environment variable prefix and automatic env
	viper.SetEnvPrefix("RUNWAY")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "runway")

	config.RegisterDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// Load system-wide config first (lower priority)
		for _, path := range []string{"/etc/runway", "/usr/local/etc/runway"} {
			viper.AddConfigPath(path)
		}
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		systemConfigLoaded := false
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			slog.Debug("loaded system-wide config", "path", viper.ConfigFileUsed())
		}

		// Load user config (higher priority) - merge with system config
		viper.AddConfigPath(userConfigDir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			}
		} else {
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				}
			}
		}
	}

	slog.Debug("configuration",
		"config_file", viper.ConfigFileUsed(),
		"model", viper.GetString("model"),
		"base_url", viper.GetString("base_url"),
		"season", viper.GetString("season"),
		"cities", viper.GetStringSlice("cities"),
	)
}

// initTracing installs the OTLP tracer provider when the trace key is set or
// an OTLP endpoint is configured in the environment.
func initTracing() {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Enabled(viper.GetBool("trace")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up tracing: %v\n", err)
	}
	traceShutdown = shutdown
}

// closeResources flushes spans and closes the log file. It runs whether or
// not the command succeeded, and only once.
func closeResources() {
	if traceShutdown != nil {
		if err := traceShutdown(context.Background()); err != nil {
			slog.Warn("trace shutdown failed", "err", err)
		}
		traceShutdown = nil
	}
	if logOutput != nil {
		logOutput.Close()
		logOutput = nil
	}
}
