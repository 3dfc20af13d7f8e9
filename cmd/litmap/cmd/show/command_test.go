package show_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/litmap/cmd/show"
	"github.com/agentstation/litmap/internal/cmd/cmdtest"
	"github.com/agentstation/litmap/internal/sources/gutendex/gutendextest"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

func decode(t *testing.T, out string) catalogs.Work {
	t.Helper()
	var got catalogs.Work
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func TestShowFromSnapshot(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(3))
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(show.NewCommand(app), "2")
	require.NoError(t, res.Err)
	assert.Equal(t, "Work 2", decode(t, res.Stdout).Title)
	assert.Equal(t, 1, srv.Hits("page", "1"))
}

func TestShowBeyondSnapshotFetchesRemote(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(5), gutendextest.WithPageSize(2))
	lm := cmdtest.NewClient(t, srv, litmap.WithMaxPages(1))
	app := cmdtest.NewApp(lm, "json")

	res := cmdtest.Execute(show.NewCommand(app), "5")
	require.NoError(t, res.Err)
	assert.Equal(t, "Work 5", decode(t, res.Stdout).Title)
	assert.Equal(t, 2, lm.Current().Len())
}

func TestShowTable(t *testing.T) {
	ws := gutendextest.Works(1)
	ws[0].Authors[0].BirthYear = catalogs.Year(1800)
	srv := gutendextest.NewServer(t, ws)
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "table")

	res := cmdtest.Execute(show.NewCommand(app), "1")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Author 1 (1800-?)")
	assert.Contains(t, res.Stdout, "English (en)")
}

func TestShowErrors(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(2))
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(show.NewCommand(app), "abc")
	assert.True(t, errors.IsValidationError(res.Err))

	res = cmdtest.Execute(show.NewCommand(app), "0")
	assert.True(t, errors.IsValidationError(res.Err))

	res = cmdtest.Execute(show.NewCommand(app), "99")
	require.Error(t, res.Err)
	assert.True(t, errors.IsNotFound(res.Err))

	assert.Error(t, cmdtest.Execute(show.NewCommand(app)).Err)
}
