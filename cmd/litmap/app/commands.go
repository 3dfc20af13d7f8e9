package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/litmap/cmd/litmap/cmd/authors"
	"github.com/agentstation/litmap/cmd/litmap/cmd/languages"
	"github.com/agentstation/litmap/cmd/litmap/cmd/refresh"
	"github.com/agentstation/litmap/cmd/litmap/cmd/search"
	"github.com/agentstation/litmap/cmd/litmap/cmd/show"
	"github.com/agentstation/litmap/cmd/litmap/cmd/stats"
	"github.com/agentstation/litmap/cmd/litmap/cmd/top"
	"github.com/agentstation/litmap/cmd/litmap/cmd/works"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(works.NewCommand(a))
	rootCmd.AddCommand(search.NewCommand(a))
	rootCmd.AddCommand(authors.NewCommand(a))
	rootCmd.AddCommand(top.NewCommand(a))
	rootCmd.AddCommand(stats.NewCommand(a))
	rootCmd.AddCommand(languages.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(refresh.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("litmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
