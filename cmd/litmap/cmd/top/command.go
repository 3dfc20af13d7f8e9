// Package top implements the top command.
package top

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/constants"
)

// NewCommand creates the top command.
func NewCommand(app application.Application) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:     "top",
		GroupID: "core",
		Short:   "Show the most downloaded works",
		Long: `Top ranks the snapshot by download count, highest first. Works with
equal counts keep their catalog order.`,
		Example: `  litmap top
  litmap top -n 25 -o markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			var ranked []catalogs.Work
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				ranked, err = lm.TopByDownloads(ctx, n)
				return err
			})
			if err != nil {
				return err
			}

			return output.Works(cmd.OutOrStdout(), format, ranked)
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", constants.DefaultTopN, "number of works to show")

	return cmd
}
