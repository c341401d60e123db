package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/kitchen/internal/app/clean"
	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/model"
	"github.com/slok/kitchen/internal/printer"
	"github.com/slok/kitchen/internal/storage/memory"
)

type CleanCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	actions     []string
	session     string
	interactive bool
	format      string
}

// NewCleanCommand returns the clean command.
func NewCleanCommand(rootCmd *RootCommand, app *kingpin.Application) *CleanCommand {
	c := &CleanCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("clean", "Drive the cleaning panel (order, brush, mop, done).")
	c.Cmd.Arg("actions", "Actions applied in order.").StringsVar(&c.actions)
	c.Cmd.Flag("session", "Cleaning session name.").Default(conventions.DefaultCleaningSession).StringVar(&c.session)
	c.Cmd.Flag("interactive", "Read one action per line from stdin.").Short('i').BoolVar(&c.interactive)
	c.Cmd.Flag("format", "Output format (table, json).").Default(printer.FormatTable).EnumVar(&c.format, printer.FormatTable, printer.FormatJSON)

	return c
}

func (c CleanCommand) Name() string { return c.Cmd.FullCommand() }

func (c CleanCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	actions, err := parseCleaningActions(c.actions)
	if err != nil {
		return err
	}

	repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := clean.NewService(clean.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p := printer.New(c.format, c.rootCmd.Stdout)

	cleaning, err := svc.Run(ctx, clean.Request{Session: c.session, Actions: actions})
	if err != nil {
		return fmt.Errorf("could not apply cleaning actions: %w", err)
	}
	if err := p.PrintCleaning(*cleaning); err != nil {
		return fmt.Errorf("could not print cleaning: %w", err)
	}

	if !c.interactive {
		return nil
	}

	scanner := bufio.NewScanner(c.rootCmd.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		actions, err := parseCleaningActions(strings.Fields(line))
		if err != nil {
			// A typo should not end the session.
			_ = p.PrintMessage(err.Error())
			continue
		}

		cleaning, err = svc.Run(ctx, clean.Request{Session: c.session, Actions: actions})
		if err != nil {
			return fmt.Errorf("could not apply cleaning actions: %w", err)
		}
		if err := p.PrintCleaning(*cleaning); err != nil {
			return fmt.Errorf("could not print cleaning: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read actions: %w", err)
	}

	return nil
}

func parseCleaningActions(raw []string) ([]model.CleaningAction, error) {
	actions := make([]model.CleaningAction, 0, len(raw))
	for _, r := range raw {
		a, err := model.ParseCleaningAction(r)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	return actions, nil
}
