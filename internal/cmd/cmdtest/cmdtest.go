// Package cmdtest runs litmap commands against an in-memory catalog.
package cmdtest

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/sources/gutendex/gutendextest"
)

// NewClient returns a client for srv with rate limiting disabled.
func NewClient(t testing.TB, srv *gutendextest.Server, opts ...litmap.Option) litmap.Client {
	t.Helper()
	opts = append([]litmap.Option{
		litmap.WithBaseURL(srv.URL),
		litmap.WithRequestsPerSecond(0),
		litmap.WithHTTPTimeout(5 * time.Second),
	}, opts...)
	lm, err := litmap.New(opts...)
	require.NoError(t, err)
	return lm
}

// NewApp returns an application whose client talks to lm and whose output
// format is format.
func NewApp(lm litmap.Client, format string) *application.Mock {
	return &application.Mock{
		ClientFunc:       func() (litmap.Client, error) { return lm, nil },
		OutputFormatFunc: func() string { return format },
	}
}

// Result is the captured outcome of a command run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Execute runs cmd with args and captures its output.
func Execute(cmd *cobra.Command, args ...string) Result {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
