// Package authors implements the authors command.
package authors

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/cmdutil"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

// NewCommand creates the authors command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		aliveIn int
		search  string
		remote  bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:     "authors",
		GroupID: "core",
		Short:   "List unique authors",
		Long: `Authors lists every distinct author in the snapshot, in order of first
appearance.

--alive-in keeps authors who could have been alive in that year; unknown
birth or death years never exclude anyone. --search matches a name
fragment, against the snapshot or, with --remote, the live catalog.`,
		Example: `  litmap authors
  litmap authors --alive-in 1850
  litmap authors --search austen --remote`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.Format(app)
			if err != nil {
				return err
			}

			aliveSet := cmd.Flags().Changed("alive-in")
			if remote && search == "" {
				return errors.NewValidationError("remote", remote, "requires --search")
			}
			if aliveSet && search != "" {
				return errors.NewValidationError("alive-in", aliveIn, "cannot be combined with --search")
			}

			var persons []catalogs.Person
			err = cmdutil.Run(cmd, app, func(ctx context.Context, lm litmap.Client) error {
				var err error
				switch {
				case search != "" && remote:
					persons, err = lm.SearchAuthors(ctx, search)
				case search != "":
					persons, err = lm.FindAuthors(ctx, search)
				case aliveSet:
					persons, err = lm.AuthorsAliveIn(ctx, aliveIn)
				default:
					persons, err = lm.Authors(ctx)
				}
				return err
			})
			if err != nil {
				return err
			}

			persons = cmdutil.Limit(persons, limit)
			app.Logger().Debug().Int("authors", len(persons)).Msg("Listed authors")
			return output.Authors(cmd.OutOrStdout(), format, persons)
		},
	}

	cmd.Flags().IntVar(&aliveIn, "alive-in", 0, "only authors who could have been alive in this year")
	cmd.Flags().StringVar(&search, "search", "", "only authors whose name contains this fragment")
	cmd.Flags().BoolVar(&remote, "remote", false, "search the live catalog instead of the snapshot")
	cmdutil.AddLimitFlag(cmd, &limit)

	return cmd
}
