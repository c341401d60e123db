package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/kitchen/internal/app/bake"
	"github.com/slok/kitchen/internal/dough"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/printer"
	"github.com/slok/kitchen/internal/storage/memory"
)

type BakeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	workers  string
	endpoint string
	format   string
	progress bool
}

// NewBakeCommand returns the bake command.
func NewBakeCommand(rootCmd *RootCommand, app *kingpin.Application) *BakeCommand {
	c := &BakeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("bake", "Dispatch all the items of a bake run to the dough API.")
	c.Cmd.Flag("workers", "Items per group, invalid values are clamped to 1 (defaults to the config value).").StringVar(&c.workers)
	c.Cmd.Flag("endpoint", "Dough API endpoint URL (defaults to the config value).").StringVar(&c.endpoint)
	c.Cmd.Flag("format", "Output format (table, json).").Default(printer.FormatTable).EnumVar(&c.format, printer.FormatTable, printer.FormatJSON)
	c.Cmd.Flag("progress", "Print a line to stderr for every made item.").BoolVar(&c.progress)

	return c
}

func (c BakeCommand) Name() string { return c.Cmd.FullCommand() }

func (c BakeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.LoadBakeConfig(ctx)
	if err != nil {
		return err
	}
	if c.workers != "" {
		cfg.Workers = model.ParseWorkerCount(c.workers)
	}
	if c.endpoint != "" {
		cfg.Endpoint = c.endpoint
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid bake configuration: %w", err)
	}
	if cfg.Workers > model.SuggestedMaxWorkers {
		logger.Warningf("using %d workers, more than %d may overload the dough API", cfg.Workers, model.SuggestedMaxWorkers)
	}

	repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	client, err := dough.NewClient(dough.ClientConfig{
		Endpoint: cfg.Endpoint,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create dough client: %w", err)
	}

	var mu sync.Mutex
	onItem := func(run model.BakeRun, item model.Item) {
		if !c.progress {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(c.rootCmd.Stderr, "item %d made (%d/%d)\n", item.ID, run.CompletedCount(), run.TotalItems)
	}

	svc, err := bake.NewService(bake.ServiceConfig{
		Maker:           client,
		Repository:      repo,
		Logger:          logger,
		TotalItems:      cfg.TotalItems,
		OnItemCompleted: onItem,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	run, runErr := svc.Run(ctx, bake.Request{Workers: cfg.Workers})
	if run == nil {
		return fmt.Errorf("could not bake: %w", runErr)
	}

	p := printer.New(c.format, c.rootCmd.Stdout)
	if err := p.PrintBakeRun(*run); err != nil {
		return fmt.Errorf("could not print bake run: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("bake run %s failed: %w", run.ID, runErr)
	}

	return nil
}
