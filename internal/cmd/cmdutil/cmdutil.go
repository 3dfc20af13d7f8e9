// Package cmdutil provides helpers shared by litmap commands.
package cmdutil

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/alerts"
	"github.com/agentstation/litmap/internal/cmd/globals"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/internal/cmd/progress"
	"github.com/agentstation/litmap/pkg/errors"
)

// ErrNoClient is returned when the application has no catalog client.
var ErrNoClient = errors.New("no catalog client configured")

// LoadingTitle is shown next to the spinner while the catalog is fetched.
const LoadingTitle = "Fetching catalog"

// Run resolves the client and calls fn. While the snapshot has not been
// built yet a spinner runs on stderr, unless --quiet is set.
func Run(cmd *cobra.Command, app application.Application, fn func(context.Context, litmap.Client) error) error {
	lm, err := app.Client()
	if err != nil {
		return err
	}
	if lm == nil {
		return ErrNoClient
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if globals.Parse(cmd).Quiet || lm.State() == litmap.StateReady {
		return fn(ctx, lm)
	}
	return progress.Run(ctx, cmd.ErrOrStderr(), LoadingTitle, func(ctx context.Context) error {
		return fn(ctx, lm)
	})
}

// Format returns the validated output format.
func Format(app application.Application) (output.Format, error) {
	return output.ParseFormat(app.OutputFormat())
}

// Alerts returns a writer for status notices on stderr.
func Alerts(cmd *cobra.Command, format output.Format) alerts.Writer {
	flags := globals.Parse(cmd)
	if flags.Quiet {
		return alerts.DiscardWriter
	}
	w := alerts.NewFormatWriter(cmd.ErrOrStderr(), format)
	if flags.NoColor {
		w = w.WithColor(false)
	}
	return w
}

// AddLimitFlag registers --limit/-l on cmd.
func AddLimitFlag(cmd *cobra.Command, limit *int) {
	cmd.Flags().IntVarP(limit, "limit", "l", 0, "limit number of results (0 for all)")
}

// Limit returns at most n items; n <= 0 keeps all.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
