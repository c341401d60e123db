package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	runs      map[string]model.BakeRun
	cleanings map[string]model.Cleaning
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		runs:      make(map[string]model.BakeRun),
		cleanings: make(map[string]model.Cleaning),
		logger:    cfg.Logger,
	}, nil
}

// CreateBakeRun creates a new bake run in the repository.
func (r *Repository) CreateBakeRun(ctx context.Context, run model.BakeRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("bake run id is required: %w", model.ErrNotValid)
	}

	if _, ok := r.runs[run.ID]; ok {
		return fmt.Errorf("bake run with id %s: %w", run.ID, model.ErrAlreadyExists)
	}

	r.runs[run.ID] = copyRun(run)
	r.logger.Debugf("Created bake run in repository: %s", run.ID)

	return nil
}

// GetBakeRun retrieves a bake run by ID.
func (r *Repository) GetBakeRun(ctx context.Context, id string) (*model.BakeRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("bake run %s: %w", id, model.ErrNotFound)
	}

	runCopy := copyRun(run)
	return &runCopy, nil
}

// ListBakeRuns returns all bake runs, oldest first.
func (r *Repository) ListBakeRuns(ctx context.Context) ([]model.BakeRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]model.BakeRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, copyRun(run))
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })

	return runs, nil
}

// AddBakeRunItem appends a completed item to a bake run.
func (r *Repository) AddBakeRunItem(ctx context.Context, runID string, item model.Item) (*model.BakeRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return nil, fmt.Errorf("bake run %s: %w", runID, model.ErrNotFound)
	}

	if run.CompletedCount() >= run.TotalItems {
		return nil, fmt.Errorf("bake run %s already has %d items: %w", runID, run.TotalItems, model.ErrNotValid)
	}

	for _, existing := range run.CompletedItems {
		if existing.ID == item.ID {
			return nil, fmt.Errorf("item %d on bake run %s: %w", item.ID, runID, model.ErrAlreadyExists)
		}
	}

	run.CompletedItems = append(run.CompletedItems, item)
	r.runs[runID] = run

	runCopy := copyRun(run)
	return &runCopy, nil
}

// FinishBakeRun sets the final status of a bake run.
func (r *Repository) FinishBakeRun(ctx context.Context, runID string, status model.BakeStatus, errMsg string, at time.Time) (*model.BakeRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return nil, fmt.Errorf("bake run %s: %w", runID, model.ErrNotFound)
	}

	run.Status = status
	run.Error = errMsg
	run.FinishedAt = &at
	r.runs[runID] = run
	r.logger.Debugf("Finished bake run in repository: %s (%s)", runID, status)

	runCopy := copyRun(run)
	return &runCopy, nil
}

// CreateCleaning creates a new cleaning session in the repository.
func (r *Repository) CreateCleaning(ctx context.Context, c model.Cleaning) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cleanings[c.ID]; ok {
		return fmt.Errorf("cleaning with id %s: %w", c.ID, model.ErrAlreadyExists)
	}

	for _, existing := range r.cleanings {
		if existing.Name == c.Name {
			return fmt.Errorf("cleaning with name %s: %w", c.Name, model.ErrAlreadyExists)
		}
	}

	r.cleanings[c.ID] = c
	r.logger.Debugf("Created cleaning in repository: %s", c.ID)

	return nil
}

// GetCleaning retrieves a cleaning session by ID.
func (r *Repository) GetCleaning(ctx context.Context, id string) (*model.Cleaning, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cleanings[id]
	if !ok {
		return nil, fmt.Errorf("cleaning %s: %w", id, model.ErrNotFound)
	}

	return &c, nil
}

// GetCleaningByName retrieves a cleaning session by name.
func (r *Repository) GetCleaningByName(ctx context.Context, name string) (*model.Cleaning, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cleanings {
		if c.Name == name {
			cleaningCopy := c
			return &cleaningCopy, nil
		}
	}

	return nil, fmt.Errorf("cleaning with name %s: %w", name, model.ErrNotFound)
}

// UpdateCleaning updates an existing cleaning session.
func (r *Repository) UpdateCleaning(ctx context.Context, c model.Cleaning) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cleanings[c.ID]; !ok {
		return fmt.Errorf("cleaning %s: %w", c.ID, model.ErrNotFound)
	}

	r.cleanings[c.ID] = c
	r.logger.Debugf("Updated cleaning in repository: %s", c.ID)

	return nil
}

func copyRun(run model.BakeRun) model.BakeRun {
	run.Groups = append([]int(nil), run.Groups...)
	run.CompletedItems = append([]model.Item(nil), run.CompletedItems...)
	if run.FinishedAt != nil {
		t := *run.FinishedAt
		run.FinishedAt = &t
	}
	return run
}
