// Package cmd implements the CLI commands for askweb.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/google/uuid"

	"github.com/quocvuong92/askweb/internal/assistant"
	"github.com/quocvuong92/askweb/internal/display"
	"github.com/quocvuong92/askweb/internal/logging"
)

// InteractiveSession holds the state for an interactive session. Each
// submitted line is answered on its own; no conversation state carries
// over between lines.
type InteractiveSession struct {
	app       *App
	assistant *assistant.Assistant
	ctx       context.Context
	sessionID string
	exitFlag  bool
}

// completer suggests slash commands. Plain queries get no suggestions.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if !strings.HasPrefix(text, "/") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "/help", Description: "Show available commands"},
		{Text: "/render", Description: "Toggle markdown rendering"},
		{Text: "/exit", Description: "Exit interactive mode"},
		{Text: "/q", Description: "Exit (alias)"},
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the prompt loop. It returns when the user
// exits; the session context comes from the root command, so an
// interrupt during a query cancels that query.
func (app *App) runInteractive(ctx context.Context, asst *assistant.Assistant) {
	fmt.Println("askweb - Interactive Mode")
	fmt.Printf("Model: %s\n", app.cfg.Model)
	fmt.Printf("Tool service: %s\n", app.cfg.ToolServerURL)
	fmt.Println("Each line is answered on its own. Type /help for commands, Ctrl+C or Ctrl+D to quit")
	fmt.Println()

	session := &InteractiveSession{
		app:       app,
		assistant: asst,
		ctx:       ctx,
		sessionID: uuid.New().String(),
	}
	logging.Debug("interactive session started", logging.Fields{"session_id": session.sessionID})

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("> "),
		prompt.WithTitle("askweb"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithMaxSuggestion(5),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()

	logging.Debug("interactive session ended", logging.Fields{"session_id": session.sessionID})
}

// executor handles one submitted line.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	if strings.HasPrefix(input, "/") {
		s.handleCommand(input)
		return
	}

	fmt.Println()
	if err := s.app.runQuery(s.ctx, s.assistant, input); err != nil {
		display.ShowError(err.Error())
	}
	fmt.Println()
}

// handleCommand processes a slash command.
func (s *InteractiveSession) handleCommand(input string) {
	switch strings.ToLower(input) {
	case "/exit", "/quit", "/q":
		fmt.Println("Goodbye!")
		s.exitFlag = true
	case "/render":
		s.app.cfg.Render = !s.app.cfg.Render
		if s.app.cfg.Render {
			if err := display.InitRenderer(); err != nil {
				display.ShowError(fmt.Sprintf("Failed to initialize renderer: %v", err))
				s.app.cfg.Render = false
				return
			}
			fmt.Println("Markdown rendering: on")
		} else {
			fmt.Println("Markdown rendering: off")
		}
	case "/help", "/h":
		fmt.Println("Commands:")
		fmt.Println("  /help    Show this help")
		fmt.Println("  /render  Toggle markdown rendering")
		fmt.Println("  /exit    Exit interactive mode (aliases: /quit, /q)")
		fmt.Println()
		fmt.Println("Anything else is sent to the model as a query.")
	default:
		fmt.Printf("Unknown command: %s (try /help)\n", input)
	}
}
