package refresh_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/litmap/cmd/refresh"
	"github.com/agentstation/litmap/internal/cmd/cmdtest"
	"github.com/agentstation/litmap/internal/sources/gutendex/gutendextest"
	"github.com/agentstation/litmap/pkg/errors"
)

func decode(t *testing.T, out string) litmap.RefreshResult {
	t.Helper()
	var got litmap.RefreshResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func TestRefreshReportsChanges(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(3))
	lm := cmdtest.NewClient(t, srv)
	app := cmdtest.NewApp(lm, "json")

	res := cmdtest.Execute(refresh.NewCommand(app))
	require.NoError(t, res.Err)
	first := decode(t, res.Stdout)
	assert.Equal(t, litmap.Changes{Added: 3}, first.Changes)
	assert.Equal(t, 3, first.Snapshot.Works)
	assert.True(t, first.Snapshot.Complete)

	ws := gutendextest.Works(4)[1:]
	ws[0].Title = "Work 2, revised"
	srv.SetWorks(ws)

	res = cmdtest.Execute(refresh.NewCommand(app))
	require.NoError(t, res.Err)
	second := decode(t, res.Stdout)
	// IDs 2 and 3 changed title or downloads, 4 is new and 1 is gone.
	assert.Equal(t, litmap.Changes{Added: 1, Updated: 2, Removed: 1}, second.Changes)
	assert.NotEqual(t, first.Snapshot.ID, second.Snapshot.ID)
}

func TestRefreshPartialSnapshot(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(5),
		gutendextest.WithPageSize(2),
		gutendextest.WithFailingPage(2, http.StatusBadGateway),
	)
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(refresh.NewCommand(app))
	require.NoError(t, res.Err)
	got := decode(t, res.Stdout)
	assert.False(t, got.Snapshot.Complete)
	assert.Equal(t, 2, got.Snapshot.Works)
	assert.NotEmpty(t, got.Snapshot.Error)
	assert.Contains(t, res.Stderr, "partial")
}

func TestRefreshFirstPageFailureKeepsSnapshot(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(2))
	lm := cmdtest.NewClient(t, srv)
	app := cmdtest.NewApp(lm, "json")

	require.NoError(t, cmdtest.Execute(refresh.NewCommand(app)).Err)
	before := lm.Current()

	srv.SetDown(true)
	res := cmdtest.Execute(refresh.NewCommand(app))
	require.Error(t, res.Err)
	assert.True(t, errors.IsRemoteUnavailable(res.Err))
	assert.Same(t, before, lm.Current())
}
