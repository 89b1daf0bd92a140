package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/askweb/internal/config"
	"github.com/quocvuong92/askweb/internal/display"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a commented default config file.

The file documents every setting askweb reads: the model, the Claude
API connection, the tool service, and output defaults. Settings from
the file are overridden by environment variables and flags.

Examples:
  askweb init`,
		Run: func(cmd *cobra.Command, args []string) {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				display.ShowError(err.Error())
				os.Exit(exitRuntime)
			}
			fmt.Printf("Wrote config file to %s\n", path)
			fmt.Println("Edit it to set your model and tool service, then run askweb.")
		},
	}
}
