// Package languages implements the languages command.
package languages

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/query"
)

// NewCommand creates the languages command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "languages",
		GroupID: "core",
		Short:   "List languages in the catalog",
		Long:    `Languages lists each language code in the snapshot with its display name and number of works.`,
		Aliases: []string{"langs"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			var counts []query.LanguageCount
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				counts, err = lm.Languages(ctx)
				return err
			})
			if err != nil {
				return err
			}

			return output.Languages(cmd.OutOrStdout(), format, counts)
		},
	}
}
