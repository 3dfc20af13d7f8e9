package search_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/litmap/cmd/litmap/cmd/search"
	"github.com/agentstation/litmap/internal/cmd/cmdtest"
	"github.com/agentstation/litmap/internal/sources/gutendex/gutendextest"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

func TestSearchTitles(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(5))
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(search.NewCommand(app), "work", "3")
	require.NoError(t, res.Err)

	var got []catalogs.Work
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 1, srv.Hits("search", "work 3"))
	assert.Equal(t, 0, srv.Hits("page", "1"), "search never builds the snapshot")
}

func TestSearchFiltersLanguage(t *testing.T) {
	ws := gutendextest.Works(3)
	ws[2].Languages = []string{"fr"}
	srv := gutendextest.NewServer(t, ws)
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(search.NewCommand(app), "work", "--lang", "fr")
	require.NoError(t, res.Err)

	var got []catalogs.Work
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestSearchRequiresTerm(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(1))
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	assert.Error(t, cmdtest.Execute(search.NewCommand(app)).Err)

	res := cmdtest.Execute(search.NewCommand(app), "  ")
	require.Error(t, res.Err)
	assert.True(t, errors.IsValidationError(res.Err))
}

func TestSearchRemoteUnavailable(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(1))
	srv.SetDown(true)
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(search.NewCommand(app), "work")
	require.Error(t, res.Err)
	assert.True(t, errors.IsRemoteUnavailable(res.Err))
}
