package clean

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/storage"
)

// ServiceConfig is the configuration for the clean service.
type ServiceConfig struct {
	Repository storage.CleaningRepository
	Logger     log.Logger
	Now        func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Clean"})

	if c.Now == nil {
		c.Now = time.Now
	}

	return nil
}

// Service applies cleaning actions to a cleaning session.
type Service struct {
	repo   storage.CleaningRepository
	logger log.Logger
	now    func() time.Time
}

// NewService creates a new clean service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		now:    cfg.Now,
	}, nil
}

// Request represents the clean request parameters.
type Request struct {
	// Session is the cleaning session name, it is created on first use.
	Session string
	// Actions are applied in order.
	Actions []model.CleaningAction
}

// Run applies the actions to the session and returns its resulting state.
// Actions not allowed by the current state are ignored.
func (s *Service) Run(ctx context.Context, req Request) (*model.Cleaning, error) {
	if req.Session == "" {
		req.Session = conventions.DefaultCleaningSession
	}

	cleaning, err := s.getOrCreate(ctx, req.Session)
	if err != nil {
		return nil, err
	}

	logger := s.logger.WithValues(log.Kv{"session": cleaning.Name})

	changed := false
	for _, a := range req.Actions {
		resolved := cleaning.Resolve(a)
		next, fired := cleaning.Apply(a)
		if !fired {
			logger.Debugf("ignoring %q action (order: %t, brush: %s, mop: %s, clear: %t)", a, cleaning.Order, cleaning.Brush, cleaning.Mop, cleaning.Clear)
			continue
		}

		next.UpdatedAt = s.now().UTC()
		cleaning = &next
		changed = true
		logger.Debugf("applied %q action", resolved)
	}

	if !changed {
		return cleaning, nil
	}

	if err := s.repo.UpdateCleaning(ctx, *cleaning); err != nil {
		return nil, fmt.Errorf("could not update cleaning: %w", err)
	}

	if cleaning.Clear {
		logger.Infof("cleaning %s finished", cleaning.Name)
	}

	return cleaning, nil
}

func (s *Service) getOrCreate(ctx context.Context, name string) (*model.Cleaning, error) {
	cleaning, err := s.repo.GetCleaningByName(ctx, name)
	if err == nil {
		return cleaning, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("could not get cleaning: %w", err)
	}

	now := s.now().UTC()
	c := model.NewCleaning(ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(), name, now)
	if err := s.repo.CreateCleaning(ctx, c); err != nil {
		return nil, fmt.Errorf("could not create cleaning: %w", err)
	}
	s.logger.Debugf("created cleaning session %s (ID: %s)", c.Name, c.ID)

	return &c, nil
}
