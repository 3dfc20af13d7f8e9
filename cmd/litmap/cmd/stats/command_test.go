package stats_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/litmap/cmd/litmap/cmd/stats"
	"github.com/agentstation/litmap/internal/cmd/cmdtest"
	"github.com/agentstation/litmap/internal/sources/gutendex/gutendextest"
	"github.com/agentstation/litmap/pkg/errors"
	"github.com/agentstation/litmap/pkg/query"
)

func TestStats(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(4))
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(stats.NewCommand(app))
	require.NoError(t, res.Err)

	var got query.Stats
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, query.Stats{Count: 4, Sum: 100, Min: 10, Max: 40, Mean: 25}, got)
}

func TestStatsTable(t *testing.T) {
	srv := gutendextest.NewServer(t, gutendextest.Works(4))
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "table")

	res := cmdtest.Execute(stats.NewCommand(app))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "25.0")
}

func TestStatsEmptyCatalog(t *testing.T) {
	srv := gutendextest.NewServer(t, nil)
	app := cmdtest.NewApp(cmdtest.NewClient(t, srv), "json")

	res := cmdtest.Execute(stats.NewCommand(app))
	require.Error(t, res.Err)
	assert.True(t, errors.IsEmptyCatalog(res.Err))
	assert.Empty(t, res.Stdout)
}
