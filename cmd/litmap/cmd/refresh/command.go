// Package refresh implements the refresh command.
package refresh

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/alerts"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/internal/cmd/table"
)

// NewCommand creates the refresh command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "refresh",
		GroupID: "management",
		Short:   "Rebuild the catalog snapshot",
		Long: `Refresh fetches the catalog again and reports what changed since the
previous snapshot. If the first page cannot be fetched the previous
snapshot is kept and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			var result *litmap.RefreshResult
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				result, err = lm.Refresh(ctx)
				return err
			})
			if err != nil {
				return err
			}

			if notice := alerts.NewPartialSnapshot(result.Snapshot); notice != nil {
				if err := cmdutil.Alerts(cmd, format).WriteAlert(notice); err != nil {
					return err
				}
			}

			return output.Write(cmd.OutOrStdout(), format, table.RefreshToTableData(result), result)
		},
	}
}
