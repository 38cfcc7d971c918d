package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/longkey1/runway/internal/runway"
	"github.com/longkey1/runway/internal/runway/chat"
	"github.com/longkey1/runway/internal/runway/config"
	"github.com/longkey1/runway/internal/terminal"
	"github.com/peterh/liner"
)

const inputPrompt = "Ask about fashion events> "

// runInteractiveMode starts an interactive chat session
func runInteractiveMode(ctx context.Context, ctrl *chat.Controller, view *terminal.Presenter) error {
	view.ShowBanner()
	fmt.Fprintf(os.Stderr, "Session %s | Model: %s\n", ctrl.Session.GetShortID(), ctrl.Session.Config.Model)
	fmt.Fprintf(os.Stderr, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n\n")
	view.ShowMessage(ctrl.Session.LastMessage())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for ctx.Err() == nil {
		input, err := line.Prompt(inputPrompt)
		if err != nil {
			// Ctrl+C, Ctrl+D or a closed stdin
			fmt.Fprintln(os.Stderr, "\nGoodbye!")
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if handleSpecialCommand(input, ctrl, view, os.Stderr) {
				continue
			}
			break
		}

		ctrl.Submit(ctx, input)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

// handleSpecialCommand processes special commands in interactive mode
// Returns true to continue the loop, false to exit
func handleSpecialCommand(input string, ctrl *chat.Controller, view *terminal.Presenter, w io.Writer) bool {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
	cfg := ctrl.Session.Config

	switch command {
	case "/help", "/h":
		fmt.Fprintln(w, "\nAvailable commands:")
		fmt.Fprintln(w, "  /help, /h              - Show this help message")
		fmt.Fprintln(w, "  /info, /i              - Show session settings")
		fmt.Fprintln(w, "  /clear, /c             - Clear the chat")
		fmt.Fprintln(w, "  /key <key>             - Set the OpenRouter API key")
		fmt.Fprintln(w, "  /model [id]            - Show or select the model")
		fmt.Fprintln(w, "  /temperature <0.0-1.0> - Set the response style")
		fmt.Fprintln(w, "  /retries <1-5>         - Set the attempts allowed per question")
		fmt.Fprintln(w, "  /season [name]         - Show or set the season filter")
		fmt.Fprintln(w, "  /cities [a, b, ...]    - Set the fashion capitals filter (empty clears it)")
		fmt.Fprintln(w, "  /exit, /quit           - Exit interactive mode")
		fmt.Fprintln(w, "  Ctrl+D                 - Exit interactive mode")
		fmt.Fprintln(w, "")

	case "/info", "/i":
		fmt.Fprintln(w, "\nSession Information:")
		fmt.Fprintf(w, "  ID: %s\n", ctrl.Session.GetShortID())
		fmt.Fprintf(w, "  API Key: %s\n", config.MaskToken(cfg.APIKey))
		fmt.Fprintf(w, "  Model: %s\n", cfg.Model)
		fmt.Fprintf(w, "  Temperature: %.1f\n", cfg.Temperature)
		fmt.Fprintf(w, "  Max Retries: %d\n", cfg.MaxRetries)
		fmt.Fprintf(w, "  Season: %s\n", cfg.Season)
		fmt.Fprintf(w, "  Cities: %s\n", joinOrNone(cfg.Cities))
		fmt.Fprintf(w, "  Messages: %d\n", ctrl.Session.MessageCount())
		fmt.Fprintf(w, "  Created: %s\n", ctrl.Session.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(w, "")

	case "/clear", "/c":
		ctrl.Clear()
		view.ShowMessage(ctrl.Session.LastMessage())

	case "/key":
		if arg == "" {
			fmt.Fprintf(w, "API Key: %s\n", config.MaskToken(cfg.APIKey))
			return true
		}
		cfg.SetAPIKey(arg)
		fmt.Fprintf(w, "API key set: %s\n", config.MaskToken(cfg.APIKey))

	case "/model", "/m":
		if arg == "" {
			for _, m := range runway.Models() {
				marker := " "
				if m.ID == cfg.Model {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %s - %s\n", marker, m.ID, m.Description)
			}
			return true
		}
		if err := cfg.SetModel(arg); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(w, "Model: %s\n", cfg.Model)

	case "/temperature", "/temp":
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid temperature: %q\n", arg)
			return true
		}
		if err := cfg.SetTemperature(t); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(w, "Temperature: %.1f\n", cfg.Temperature)

	case "/retries":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid number of retries: %q\n", arg)
			return true
		}
		if err := cfg.SetMaxRetries(n); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(w, "Max Retries: %d\n", cfg.MaxRetries)

	case "/season":
		if arg == "" {
			fmt.Fprintf(w, "Season: %s (available: %s)\n", cfg.Season, strings.Join(config.Seasons, ", "))
			return true
		}
		if err := cfg.SetSeason(arg); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(w, "Season: %s\n", cfg.Season)

	case "/cities":
		if err := cfg.SetCities(strings.Split(arg, ",")); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(w, "Cities: %s\n", joinOrNone(cfg.Cities))

	case "/exit", "/quit", "/q":
		fmt.Fprintln(w, "Goodbye!")
		return false

	default:
		fmt.Fprintf(w, "Unknown command: %s (type '/help' for available commands)\n", command)
	}
	return true
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
