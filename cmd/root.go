package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/askweb/internal/api"
	"github.com/quocvuong92/askweb/internal/assistant"
	"github.com/quocvuong92/askweb/internal/config"
	"github.com/quocvuong92/askweb/internal/display"
	"github.com/quocvuong92/askweb/internal/logging"
	"github.com/quocvuong92/askweb/internal/tool"
)

// Exit codes by failure class.
const (
	exitOK            = 0
	exitNoCredentials = 1
	exitUsage         = 2
	exitAPIError      = 3
	exitRuntime       = 4
)

// App holds the application state
type App struct {
	cfg     *config.Config
	verbose bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	// Load .env if present; plain environment variables still apply.
	_ = godotenv.Load()

	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "askweb [query...]",
		Short: "Ask questions on the command line with web search",
		Long: `Askweb is a command-line assistant backed by Claude, with web lookups
through the askweb tool service.

The model decides when a query needs a web lookup. The lookup runs
against the tool service (start it with "askweb serve"), and the model
then summarizes what it found.

Examples:
  askweb "What is Kubernetes?"
  askweb -r "Latest news on Go"         # render the answer as markdown
  askweb -m claude-3-haiku-20240307 "Explain Docker"
  askweb -i                             # Interactive mode
  askweb serve                          # Run the tool service`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render markdown with colors and formatting")
	rootCmd.Flags().BoolVarP(&app.cfg.Interactive, "interactive", "i", false, "Interactive mode")
	rootCmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Model name (e.g., claude-3-opus-20240229)")
	rootCmd.Flags().StringVar(&app.cfg.ToolServerURL, "server", "", "Tool service base URL (default http://localhost:5001)")

	// Add subcommands
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewInitCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if app.verbose {
		logging.SetLevel(logging.LevelDebug)
		app.cfg.Debug = true
	}

	// Validate config
	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		os.Exit(exitCodeFor(err))
	}

	// Initialize markdown renderer if render flag is set
	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logging.Warn("failed to initialize markdown renderer", logging.Fields{"error": err.Error()})
		}
	}

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nCancelled.")
		cancel()
	}()

	client, err := api.NewClient(app.cfg)
	if err != nil {
		display.ShowError(err.Error())
		os.Exit(exitCodeFor(err))
	}
	defer client.Close()

	asst := assistant.New(client, tool.NewClient(app.cfg.ToolServerURL))

	// The probe is informational; the query proceeds either way.
	if !asst.ToolServiceAvailable(ctx) {
		display.ShowWarning(fmt.Sprintf(
			"Tool service at %s is not reachable. Web lookups will fail; start it with \"askweb serve\".",
			app.cfg.ToolServerURL))
	}

	// Interactive mode, explicit or implied by a missing query
	if app.cfg.Interactive || len(args) == 0 {
		app.runInteractive(ctx, asst)
		return
	}

	query := strings.Join(args, " ")
	logging.Debug("running query", logging.Fields{
		"query": query,
		"model": app.cfg.Model,
	})

	if err := app.runQuery(ctx, asst, query); err != nil {
		display.ShowError(err.Error())
		os.Exit(exitCodeFor(err))
	}
}

// runQuery asks one question and prints the answer.
func (app *App) runQuery(ctx context.Context, asst *assistant.Assistant, query string) error {
	sp := display.NewSpinner("Thinking...")
	sp.Start()
	answer, err := asst.Ask(ctx, query)
	sp.Stop()

	if err != nil {
		return err
	}

	if app.cfg.Render {
		display.ShowContentRendered(answer)
	} else {
		display.ShowContent(answer)
	}
	return nil
}

// exitCodeFor maps an error to the process exit code for its failure
// class.
func exitCodeFor(err error) int {
	var apiErr *api.APIError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrAPIKeyNotFound):
		return exitNoCredentials
	case errors.As(err, &apiErr):
		return exitAPIError
	default:
		return exitRuntime
	}
}
