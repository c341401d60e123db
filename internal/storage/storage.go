package storage

import (
	"context"
	"time"

	"github.com/slok/kitchen/internal/model"
)

// BakeRunRepository is the interface for bake run storage.
type BakeRunRepository interface {
	CreateBakeRun(ctx context.Context, r model.BakeRun) error
	GetBakeRun(ctx context.Context, id string) (*model.BakeRun, error)
	ListBakeRuns(ctx context.Context) ([]model.BakeRun, error)
	// AddBakeRunItem appends a completed item to the run atomically and returns the
	// run after the update.
	AddBakeRunItem(ctx context.Context, runID string, item model.Item) (*model.BakeRun, error)
	// FinishBakeRun sets the final status of a run without touching its completed items.
	FinishBakeRun(ctx context.Context, runID string, status model.BakeStatus, errMsg string, at time.Time) (*model.BakeRun, error)
}

// CleaningRepository is the interface for cleaning session storage.
type CleaningRepository interface {
	CreateCleaning(ctx context.Context, c model.Cleaning) error
	GetCleaning(ctx context.Context, id string) (*model.Cleaning, error)
	GetCleaningByName(ctx context.Context, name string) (*model.Cleaning, error)
	UpdateCleaning(ctx context.Context, c model.Cleaning) error
}

// Repository is the interface for all the kitchen state.
type Repository interface {
	BakeRunRepository
	CleaningRepository
}
