package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/kitchen/internal/app/plan"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/printer"
)

type PlanCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	workers string
	total   int
	format  string
}

// NewPlanCommand returns the plan command.
func NewPlanCommand(rootCmd *RootCommand, app *kingpin.Application) *PlanCommand {
	c := &PlanCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("plan", "Show how the items of a bake run are split in groups.")
	c.Cmd.Flag("workers", "Items per group, invalid values are clamped to 1 (defaults to the config value).").StringVar(&c.workers)
	c.Cmd.Flag("total", "Total items to split (defaults to the config value).").IntVar(&c.total)
	c.Cmd.Flag("format", "Output format (table, json).").Default(printer.FormatTable).EnumVar(&c.format, printer.FormatTable, printer.FormatJSON)

	return c
}

func (c PlanCommand) Name() string { return c.Cmd.FullCommand() }

func (c PlanCommand) Run(ctx context.Context) error {
	cfg, err := c.rootCmd.LoadBakeConfig(ctx)
	if err != nil {
		return err
	}
	if c.workers != "" {
		cfg.Workers = model.ParseWorkerCount(c.workers)
	}
	if c.total != 0 {
		cfg.TotalItems = c.total
	}

	svc, err := plan.NewService(plan.ServiceConfig{Logger: c.rootCmd.Logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p, err := svc.Run(ctx, plan.Request{
		TotalItems: cfg.TotalItems,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("could not plan: %w", err)
	}

	if err := printer.New(c.format, c.rootCmd.Stdout).PrintBakePlan(*p); err != nil {
		return fmt.Errorf("could not print plan: %w", err)
	}

	return nil
}
