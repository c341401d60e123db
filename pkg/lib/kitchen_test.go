package lib_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/kitchen/internal/dough/server"
	"github.com/slok/kitchen/pkg/lib"
)

// newTestClient creates a client baking against a local mock dough API.
func newTestClient(t *testing.T, total, failEvery int) *lib.Client {
	t.Helper()

	srv, err := server.New(server.Config{FailEvery: failEvery})
	require.NoError(t, err)
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	client, err := lib.New(lib.Config{
		Endpoint:   api.URL + "/makePizza",
		TotalItems: total,
	})
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg    lib.Config
		expErr error
	}{
		"An empty config should use the defaults.": {
			cfg: lib.Config{},
		},

		"A non HTTP endpoint should fail.": {
			cfg:    lib.Config{Endpoint: "ftp://dough"},
			expErr: lib.ErrNotValid,
		},

		"A negative total should fail.": {
			cfg:    lib.Config{TotalItems: -1},
			expErr: lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := lib.New(test.cfg)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBake(t *testing.T) {
	tests := map[string]struct {
		total     int
		failEvery int
		workers   int
		expStatus lib.BakeStatus
		expGroups []int
		expErr    bool
	}{
		"Baking should make every item.": {
			total:     10,
			workers:   4,
			expStatus: lib.BakeStatusCompleted,
			expGroups: []int{4, 4, 2},
		},

		"Baking with no workers should use one.": {
			total:     3,
			workers:   0,
			expStatus: lib.BakeStatusCompleted,
			expGroups: []int{1, 1, 1},
		},

		"Baking with a failing item should return the failed run.": {
			total:     10,
			failEvery: 5,
			workers:   5,
			expStatus: lib.BakeStatusFailed,
			expGroups: []int{5, 5},
			expErr:    true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			client := newTestClient(t, test.total, test.failEvery)

			run, err := client.Bake(context.Background(), lib.BakeOpts{Workers: test.workers})
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
			require.NotNil(run)

			assert.Equal(test.expStatus, run.Status)
			assert.Equal(test.expGroups, run.Groups)
			assert.NotNil(run.FinishedAt)
			if !test.expErr {
				assert.Len(run.CompletedItems, test.total)
			}

			got, err := client.GetBakeRun(context.Background(), run.ID)
			require.NoError(err)
			assert.Equal(run.ID, got.ID)
			assert.Equal(run.Status, got.Status)

			runs, err := client.ListBakeRuns(context.Background())
			require.NoError(err)
			assert.Len(runs, 1)
			assert.False(client.Processing())
		})
	}
}

func TestGetBakeRunMissing(t *testing.T) {
	client := newTestClient(t, 1, 0)

	_, err := client.GetBakeRun(context.Background(), "missing")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestPlan(t *testing.T) {
	client := newTestClient(t, 100, 0)

	p, err := client.Plan(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, p.Workers)
	assert.Len(t, p.Groups, 15)
	assert.Equal(t, 2, p.Groups[14])
}

func TestClean(t *testing.T) {
	tests := map[string]struct {
		actions  []string
		expOrder bool
		expBrush string
		expClear bool
		expErr   error
	}{
		"A new session should be ready.": {
			expBrush: "READY",
		},

		"Ordering should start both tools.": {
			actions:  []string{"order"},
			expOrder: true,
			expBrush: "IN_PROGRESS",
		},

		"Finishing every tool and the session should clear it.": {
			actions:  []string{"order", "brush", "mop", "done"},
			expOrder: true,
			expBrush: "COMPLETED",
			expClear: true,
		},

		"Unknown actions should fail.": {
			actions: []string{"order", "sweep"},
			expErr:  lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			client := newTestClient(t, 1, 0)

			c, err := client.Clean(context.Background(), "", test.actions...)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			require.NoError(err)

			assert.Equal("default", c.Name)
			assert.Equal(test.expOrder, c.Order)
			assert.Equal(test.expBrush, c.Brush)
			assert.Equal(test.expClear, c.Clear)
			assert.Len(c.Buttons, 4)
		})
	}
}

func TestCleanKeepsSessionState(t *testing.T) {
	client := newTestClient(t, 1, 0)
	ctx := context.Background()

	_, err := client.Clean(ctx, "kitchen-1", "order", "brush")
	require.NoError(t, err)

	c, err := client.Clean(ctx, "kitchen-1", "mop", "done")
	require.NoError(t, err)
	assert.True(t, c.Clear)

	other, err := client.Clean(ctx, "kitchen-2")
	require.NoError(t, err)
	assert.False(t, other.Order)
}
