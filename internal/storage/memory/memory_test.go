package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/storage/memory"
)

func newRun(id string, total int) model.BakeRun {
	return model.BakeRun{
		ID:         id,
		Status:     model.BakeStatusProcessing,
		Workers:    5,
		TotalItems: total,
		Groups:     model.SplitGroups(total, 5),
		StartedAt:  time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
	}
}

func TestRepositoryBakeRuns(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  error
	}{
		"Creating a bake run should work": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateBakeRun(ctx, newRun("run-1", 10))
				require.NoError(t, err)

				retrieved, err := repo.GetBakeRun(ctx, "run-1")
				require.NoError(t, err)
				assert.Equal(t, newRun("run-1", 10), *retrieved)

				return nil
			},
		},

		"Creating a bake run without ID should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				return repo.CreateBakeRun(ctx, newRun("", 10))
			},
			expErr: model.ErrNotValid,
		},

		"Creating a duplicate bake run should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 10)))
				return repo.CreateBakeRun(ctx, newRun("run-1", 10))
			},
			expErr: model.ErrAlreadyExists,
		},

		"Getting a missing bake run should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				_, err := repo.GetBakeRun(ctx, "missing")
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Adding items should accumulate them in arrival order": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 10)))

				_, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 3, Status: model.ItemStatusCompleted})
				require.NoError(t, err)
				run, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 1, Status: model.ItemStatusCompleted})
				require.NoError(t, err)

				assert.Equal(t, 2, run.CompletedCount())
				assert.Equal(t, 3, run.CompletedItems[0].ID)
				assert.Equal(t, 1, run.CompletedItems[1].ID)

				return nil
			},
		},

		"Adding the same item twice should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 10)))
				_, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 3})
				require.NoError(t, err)

				_, err = repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 3})
				return err
			},
			expErr: model.ErrAlreadyExists,
		},

		"Adding more items than the total should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 1)))
				_, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 1})
				require.NoError(t, err)

				_, err = repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 2})
				return err
			},
			expErr: model.ErrNotValid,
		},

		"Adding items to a missing run should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				_, err := repo.AddBakeRunItem(ctx, "missing", model.Item{ID: 1})
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Finishing a run should keep its items": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 10)))
				_, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 1})
				require.NoError(t, err)

				at := time.Date(2026, 10, 19, 10, 0, 1, 0, time.UTC)
				run, err := repo.FinishBakeRun(ctx, "run-1", model.BakeStatusFailed, "boom", at)
				require.NoError(t, err)

				assert.Equal(t, model.BakeStatusFailed, run.Status)
				assert.Equal(t, "boom", run.Error)
				assert.Equal(t, at, *run.FinishedAt)
				assert.Equal(t, 1, run.CompletedCount())

				// Late completions still land on the finished run.
				run, err = repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 2})
				require.NoError(t, err)
				assert.Equal(t, 2, run.CompletedCount())
				assert.Equal(t, model.BakeStatusFailed, run.Status)

				return nil
			},
		},

		"Listing runs should return them sorted by ID": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-2", 10)))
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 10)))

				runs, err := repo.ListBakeRuns(ctx)
				require.NoError(t, err)
				require.Len(t, runs, 2)
				assert.Equal(t, "run-1", runs[0].ID)
				assert.Equal(t, "run-2", runs[1].ID)

				return nil
			},
		},

		"Returned runs should be copies": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", 10)))
				run, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: 1})
				require.NoError(t, err)

				run.CompletedItems[0].ID = 99
				run.Groups[0] = 99

				stored, err := repo.GetBakeRun(ctx, "run-1")
				require.NoError(t, err)
				assert.Equal(t, 1, stored.CompletedItems[0].ID)
				assert.Equal(t, 5, stored.Groups[0])

				return nil
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			repo, err := memory.NewRepository(memory.RepositoryConfig{
				Logger: log.Noop,
			})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, repo)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestRepositoryAddBakeRunItemConcurrently(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	require.NoError(t, repo.CreateBakeRun(ctx, newRun("run-1", model.DefaultTotalItems)))

	var wg sync.WaitGroup
	for i := 1; i <= model.DefaultTotalItems; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := repo.AddBakeRunItem(ctx, "run-1", model.Item{ID: id, Status: model.ItemStatusCompleted})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	run, err := repo.GetBakeRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTotalItems, run.CompletedCount())
}

func TestRepositoryCleanings(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  error
	}{
		"Creating a cleaning should work": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				c := model.NewCleaning("c-1", "default", now)
				require.NoError(t, repo.CreateCleaning(ctx, c))

				byID, err := repo.GetCleaning(ctx, "c-1")
				require.NoError(t, err)
				assert.Equal(t, c, *byID)

				byName, err := repo.GetCleaningByName(ctx, "default")
				require.NoError(t, err)
				assert.Equal(t, c, *byName)

				return nil
			},
		},

		"Creating a cleaning with a duplicate name should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateCleaning(ctx, model.NewCleaning("c-1", "default", now)))
				return repo.CreateCleaning(ctx, model.NewCleaning("c-2", "default", now))
			},
			expErr: model.ErrAlreadyExists,
		},

		"Creating a cleaning with a duplicate ID should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateCleaning(ctx, model.NewCleaning("c-1", "default", now)))
				return repo.CreateCleaning(ctx, model.NewCleaning("c-1", "other", now))
			},
			expErr: model.ErrAlreadyExists,
		},

		"Updating a cleaning should store the new state": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				c := model.NewCleaning("c-1", "default", now)
				require.NoError(t, repo.CreateCleaning(ctx, c))

				c, _ = c.Apply(model.CleaningActionToggleOrder)
				require.NoError(t, repo.UpdateCleaning(ctx, c))

				got, err := repo.GetCleaning(ctx, "c-1")
				require.NoError(t, err)
				assert.True(t, got.Order)

				return nil
			},
		},

		"Updating a missing cleaning should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				return repo.UpdateCleaning(ctx, model.NewCleaning("c-1", "default", now))
			},
			expErr: model.ErrNotFound,
		},

		"Getting a missing cleaning by name should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				_, err := repo.GetCleaningByName(ctx, "missing")
				return err
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			repo, err := memory.NewRepository(memory.RepositoryConfig{
				Logger: log.Noop,
			})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, repo)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else {
				assert.NoError(err)
			}
		})
	}
}
