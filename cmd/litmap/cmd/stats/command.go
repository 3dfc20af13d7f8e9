// Package stats implements the stats command.
package stats

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/query"
)

// NewCommand creates the stats command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		GroupID: "core",
		Short:   "Summarize download counts",
		Long:    `Stats reports the count, total, minimum, maximum and mean download counts of the snapshot.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			var s query.Stats
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				s, err = lm.Stats(ctx)
				return err
			})
			if err != nil {
				return err
			}

			return output.Stats(cmd.OutOrStdout(), format, s)
		},
	}
}
