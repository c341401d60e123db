package plan

import (
	"context"
	"fmt"

	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
)

// ServiceConfig is the configuration for the plan service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Plan"})

	return nil
}

// Service computes how a bake run would split its items.
type Service struct {
	logger log.Logger
}

// NewService creates a new plan service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// Request represents the plan request parameters.
type Request struct {
	TotalItems int
	Workers    int
}

// Run returns the group plan.
func (s *Service) Run(ctx context.Context, req Request) (*model.BakePlan, error) {
	if req.TotalItems <= 0 {
		return nil, fmt.Errorf("total items must be positive, got: %d: %w", req.TotalItems, model.ErrNotValid)
	}

	p := model.NewBakePlan(req.TotalItems, req.Workers)
	s.logger.Debugf("planned %d items with %d workers in %d groups", p.TotalItems, p.Workers, len(p.Groups))

	return &p, nil
}
