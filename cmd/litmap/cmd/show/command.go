// Package show implements the show command.
package show

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
	"github.com/agentstation/litmap/pkg/query"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		GroupID: "core",
		Short:   "Show one work",
		Long: `Show prints every known detail of a work. The snapshot is searched first;
works outside it are fetched from the catalog.`,
		Example: `  litmap show 1342`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.NewValidationError("id", args[0], "must be a number")
			}

			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			var (
				work   catalogs.Work
				source query.Source
			)
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				work, source, err = lm.Work(ctx, id)
				return err
			})
			if err != nil {
				return err
			}

			app.Logger().Debug().Int("work_id", id).Str("source", string(source)).Msg("Found work")
			return output.Work(cmd.OutOrStdout(), format, work)
		},
	}
}
