// Package cmd implements the CLI commands for askweb.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, flags,
//     and exit codes
//   - interactive.go: Interactive prompt loop where each submitted line
//     is an independent query
//
// ## Services
//
//   - serve.go: The tool service command (HTTP server for web lookups)
//   - init.go: Default config file creation
//
// # Key Components
//
// ## App
//
// The App struct holds application state and configuration. It's created
// in Execute() and passed through command handlers.
//
// ## InteractiveSession
//
// Manages an interactive prompt session:
//   - Slash command handling (/help, /render, /exit)
//   - Query execution with a spinner
//   - Graceful Ctrl+C and Ctrl+D exits
//
// ## Exit Codes
//
// The root command exits 0 on success, 1 when the Claude credential is
// missing, 2 on usage errors, 3 on Claude API errors, and 4 on
// transport or other runtime failures.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
