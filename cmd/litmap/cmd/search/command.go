// Package search implements the search command.
package search

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/catalogs"
)

// NewCommand creates the search command.
func NewCommand(app application.Application) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:     "search <term>",
		GroupID: "core",
		Short:   "Search titles and authors in the live catalog",
		Long: `Search asks the catalog for works whose title or author matches the
term. The cached snapshot is not consulted, so the catalog must be reachable.`,
		Example: `  litmap search dickens
  litmap search "war and peace" --lang en`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			term := strings.Join(args, " ")
			var found []catalogs.Work
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				found, err = lm.SearchTitles(ctx, term, lang)
				return err
			})
			if err != nil {
				return err
			}

			app.Logger().Debug().Str("term", term).Int("works", len(found)).Msg("Search complete")
			return output.Works(cmd.OutOrStdout(), format, found)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "only keep results in this language code")

	return cmd
}
