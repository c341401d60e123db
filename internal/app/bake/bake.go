package bake

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/kitchen/internal/dough"
	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/storage"
)

// ItemCompletedFunc is called every time an item of a run is made. It can be
// called concurrently.
type ItemCompletedFunc func(run model.BakeRun, item model.Item)

// ServiceConfig is the configuration for the bake service.
type ServiceConfig struct {
	Maker      dough.Maker
	Repository storage.BakeRunRepository
	Logger     log.Logger
	// TotalItems is the number of items every run makes.
	TotalItems      int
	OnItemCompleted ItemCompletedFunc
	Now             func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.Maker == nil {
		return fmt.Errorf("maker is required")
	}

	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Bake"})

	if c.TotalItems == 0 {
		c.TotalItems = model.DefaultTotalItems
	}
	if c.TotalItems < 0 {
		return fmt.Errorf("total items must be positive, got: %d", c.TotalItems)
	}

	if c.OnItemCompleted == nil {
		c.OnItemCompleted = func(model.BakeRun, model.Item) {}
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	return nil
}

// Service dispatches all the items of a bake run to the dough API.
type Service struct {
	maker           dough.Maker
	repo            storage.BakeRunRepository
	logger          log.Logger
	totalItems      int
	onItemCompleted ItemCompletedFunc
	now             func() time.Time

	processing atomic.Bool
}

// NewService creates a new bake service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		maker:           cfg.Maker,
		repo:            cfg.Repository,
		logger:          cfg.Logger,
		totalItems:      cfg.TotalItems,
		onItemCompleted: cfg.OnItemCompleted,
		now:             cfg.Now,
	}, nil
}

// Request represents the bake request parameters.
type Request struct {
	// Workers is the group size, values below 1 are clamped to 1.
	Workers int
}

// Processing returns true while a run is being dispatched.
func (s *Service) Processing() bool { return s.processing.Load() }

// Run dispatches every item of a new run and waits for all of them.
//
// All the items of all the groups are made concurrently, groups only set the
// batch sizes. The first failed item stops the wait and the run is returned as
// failed together with the error. Items already in flight are not cancelled and
// keep landing on the returned run's record in the repository.
func (s *Service) Run(ctx context.Context, req Request) (*model.BakeRun, error) {
	if !s.processing.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("could not start bake run: %w", model.ErrAlreadyProcessing)
	}
	defer s.processing.Store(false)

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	groups := model.SplitGroups(s.totalItems, workers)

	run := model.BakeRun{
		ID:         ulid.MustNew(ulid.Timestamp(s.now()), rand.Reader).String(),
		Status:     model.BakeStatusProcessing,
		Workers:    workers,
		TotalItems: s.totalItems,
		Groups:     groups,
		StartedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateBakeRun(ctx, run); err != nil {
		return nil, fmt.Errorf("could not create bake run: %w", err)
	}

	logger := s.logger.WithValues(log.Kv{"run": run.ID})
	logger.Infof("baking %d items with %d workers (%d groups)", run.TotalItems, workers, len(groups))

	// Buffered so items finishing after the wait is over never block.
	errCh := make(chan error, s.totalItems)
	var wg sync.WaitGroup
	for i, ids := range model.GroupItemIDs(groups) {
		i, ids := i, ids // Per-iteration copies (go directive is < 1.22).
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.processGroup(ctx, logger, run.ID, i, ids, errCh)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var runErr error
	select {
	case <-done:
		// Every item finished, but one may have failed at the same time.
		select {
		case runErr = <-errCh:
		default:
		}
	case runErr = <-errCh:
	}

	status := model.BakeStatusCompleted
	errMsg := ""
	if runErr != nil {
		status = model.BakeStatusFailed
		errMsg = runErr.Error()
		logger.Errorf("bake run failed: %s", runErr)
	}

	finished, err := s.repo.FinishBakeRun(ctx, run.ID, status, errMsg, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("could not finish bake run: %w", err)
	}

	if runErr != nil {
		return finished, fmt.Errorf("could not make all items: %w", runErr)
	}

	logger.Infof("baked %d/%d items", finished.CompletedCount(), finished.TotalItems)
	return finished, nil
}

// processGroup makes every item of a group concurrently and waits for all of them.
func (s *Service) processGroup(ctx context.Context, logger log.Logger, runID string, group int, ids []int, errCh chan<- error) {
	logger.Debugf("dispatching group %d with %d items", group, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		id := id // Per-iteration copy (go directive is < 1.22).
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.processItem(ctx, logger, runID, id); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
}

func (s *Service) processItem(ctx context.Context, logger log.Logger, runID string, id int) error {
	item, err := s.maker.MakeItem(ctx, id)
	if err != nil {
		var apiErr *dough.APIError
		if errors.As(err, &apiErr) {
			logger.Debugf("item %d rejected by dough API with status %d", id, apiErr.Status)
		}
		return fmt.Errorf("item %d: %w", id, err)
	}

	run, err := s.repo.AddBakeRunItem(ctx, runID, item)
	if err != nil {
		return fmt.Errorf("could not store item %d: %w", id, err)
	}

	logger.Debugf("item %d made (%d/%d)", id, run.CompletedCount(), run.TotalItems)
	s.onItemCompleted(*run, item)

	return nil
}
