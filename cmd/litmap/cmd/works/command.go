// Package works implements the works command.
package works

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/alerts"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/query"
)

// NewCommand creates the works command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		lang  string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "works",
		GroupID: "core",
		Short:   "List works in the catalog",
		Long: `Works lists the catalog in remote order.

With --lang the catalog is asked for works in that language. If it cannot
be reached, the cached snapshot is filtered instead and a notice is printed.`,
		Example: `  litmap works                 # Every work in the snapshot
  litmap works --lang fr       # Works in French
  litmap works -l 20 -o json   # First 20 works as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			var result *query.WorksResult
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				result, err = lm.WorksByLanguage(ctx, lang)
				return err
			})
			if err != nil {
				return err
			}

			if result.Fallback != nil {
				notice := alerts.NewCacheFallback(result.Fallback)
				if err := cmdutil.Alerts(cmd, format).WriteAlert(notice); err != nil {
					return err
				}
			}

			found := cmdutil.Limit(result.Works, limit)
			app.Logger().Debug().
				Str("language", lang).
				Str("source", string(result.Source)).
				Int("works", len(found)).
				Msg("Listed works")

			return output.Works(cmd.OutOrStdout(), format, found)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "only works in this language code (e.g. en, fr)")
	cmdutil.AddLimitFlag(cmd, &limit)

	return cmd
}
