// Package application provides the application interface for litmap commands.
//
// The Application interface is the contract between the application layer
// and command implementations. Commands accept it instead of the concrete
// App so they can be tested with Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            lm, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            top, err := lm.TopByDownloads(cmd.Context(), 10)
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/litmap"
)

// Application provides what commands need from the app.
// All methods must be safe for concurrent access.
type Application interface {
	// Client returns the shared litmap client, creating it on first use.
	// Nothing is fetched until a query runs.
	Client() (litmap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, markdown).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
