package lib

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slok/kitchen/internal/app/bake"
	"github.com/slok/kitchen/internal/app/clean"
	"github.com/slok/kitchen/internal/app/plan"
	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/dough"
	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/storage/memory"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} bakes 100 items against the
// production dough API.
type Config struct {
	// Endpoint is the dough API URL items are POSTed to.
	// Default: https://dough.pizza.com/makePizza.
	Endpoint string

	// TotalItems is the number of items every bake run makes.
	// Default: 100.
	TotalItems int

	// HTTPClient is used to call the dough API.
	// Default: http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Endpoint == "" {
		c.Endpoint = conventions.DefaultEndpoint
	}

	if c.TotalItems == 0 {
		c.TotalItems = model.DefaultTotalItems
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	cfg := model.BakeConfig{Endpoint: c.Endpoint, TotalItems: c.TotalItems, Workers: 1}
	if err := cfg.Validate(); err != nil {
		return mapError(err)
	}

	return nil
}

// Client is the main SDK entry point. Bake runs and cleaning sessions are kept
// in memory for the life of the client.
type Client struct {
	repo     *memory.Repository
	bakeSvc  *bake.Service
	planSvc  *plan.Service
	cleanSvc *clean.Service
	total    int
}

// New creates a new SDK client.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	maker, err := dough.NewClient(dough.ClientConfig{
		Endpoint:   cfg.Endpoint,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create dough client: %w", err)
	}

	bakeSvc, err := bake.NewService(bake.ServiceConfig{
		Maker:      maker,
		Repository: repo,
		Logger:     cfg.Logger,
		TotalItems: cfg.TotalItems,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create bake service: %w", err)
	}

	planSvc, err := plan.NewService(plan.ServiceConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create plan service: %w", err)
	}

	cleanSvc, err := clean.NewService(clean.ServiceConfig{Repository: repo, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create clean service: %w", err)
	}

	return &Client{
		repo:     repo,
		bakeSvc:  bakeSvc,
		planSvc:  planSvc,
		cleanSvc: cleanSvc,
		total:    cfg.TotalItems,
	}, nil
}

// Bake dispatches all the items of a new run and waits for them.
//
// When an item fails the failed run is returned together with the error.
func (c *Client) Bake(ctx context.Context, opts BakeOpts) (*BakeRun, error) {
	run, err := c.bakeSvc.Run(ctx, bake.Request{Workers: opts.Workers})
	if run == nil {
		return nil, mapError(err)
	}

	r := fromInternalBakeRun(*run)
	return &r, mapError(err)
}

// Processing returns true while a bake run is being dispatched.
func (c *Client) Processing() bool { return c.bakeSvc.Processing() }

// GetBakeRun returns a bake run by ID. Items that finished after a run failed
// are visible here.
func (c *Client) GetBakeRun(ctx context.Context, id string) (*BakeRun, error) {
	run, err := c.repo.GetBakeRun(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	r := fromInternalBakeRun(*run)
	return &r, nil
}

// ListBakeRuns returns all the bake runs of the client.
func (c *Client) ListBakeRuns(ctx context.Context) ([]BakeRun, error) {
	runs, err := c.repo.ListBakeRuns(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	res := make([]BakeRun, 0, len(runs))
	for _, r := range runs {
		res = append(res, fromInternalBakeRun(r))
	}

	return res, nil
}

// Plan returns how the client's items would be split for a worker count.
func (c *Client) Plan(ctx context.Context, workers int) (*BakePlan, error) {
	p, err := c.planSvc.Run(ctx, plan.Request{TotalItems: c.total, Workers: workers})
	if err != nil {
		return nil, mapError(err)
	}

	res := fromInternalBakePlan(*p)
	return &res, nil
}

// Clean applies the actions in order to a cleaning session and returns its state.
// An empty session name uses the default session.
func (c *Client) Clean(ctx context.Context, session string, actions ...string) (*Cleaning, error) {
	parsed := make([]model.CleaningAction, 0, len(actions))
	for _, a := range actions {
		pa, err := model.ParseCleaningAction(a)
		if err != nil {
			return nil, mapError(err)
		}
		parsed = append(parsed, pa)
	}

	cleaning, err := c.cleanSvc.Run(ctx, clean.Request{Session: session, Actions: parsed})
	if err != nil {
		return nil, mapError(err)
	}

	res := fromInternalCleaning(*cleaning)
	return &res, nil
}
