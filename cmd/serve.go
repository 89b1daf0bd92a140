package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/askweb/internal/config"
	"github.com/quocvuong92/askweb/internal/constants"
	"github.com/quocvuong92/askweb/internal/display"
	"github.com/quocvuong92/askweb/internal/search"
	"github.com/quocvuong92/askweb/internal/toolserver"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tool service",
		Long: `Run the HTTP tool service that performs web lookups for askweb.

The service answers liveness probes on /health, tool calls on
/tool_call, and exposes Prometheus metrics on /metrics. The askweb root
command dispatches web lookups to it.

Examples:
  askweb serve
  askweb serve --addr :8080`,
		Run: func(cmd *cobra.Command, args []string) {
			// The config file may set the listen address; the flag wins.
			if !cmd.Flags().Changed("addr") {
				if fileCfg, err := config.LoadConfigFile(); err == nil {
					if fileCfg.ToolServer != nil && fileCfg.ToolServer.Addr != "" {
						addr = fileCfg.ToolServer.Addr
					}
				}
			}
			runServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", constants.DefaultToolServerAddr, "Listen address")

	return cmd
}

func runServe(addr string) {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	srv := toolserver.New(addr, search.NewClient())
	if err := srv.Start(ctx); err != nil {
		display.ShowError(err.Error())
		os.Exit(exitRuntime)
	}
}
