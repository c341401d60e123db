package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/dough/server"
)

type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr string
	failEvery  int
	latency    time.Duration
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Run a mock dough API to bake against locally.")
	c.Cmd.Flag("listen", "Address the mock API listens on.").Default(conventions.MockAPIListenAddr).StringVar(&c.listenAddr)
	c.Cmd.Flag("fail-every", "Fail every item whose ID is a multiple of N (0 disables it).").Default("0").IntVar(&c.failEvery)
	c.Cmd.Flag("latency", "Delay added to every make item response.").Default("0s").DurationVar(&c.latency)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	srv, err := server.New(server.Config{
		ListenAddr: c.listenAddr,
		FailEvery:  c.failEvery,
		Latency:    c.latency,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create mock dough API: %w", err)
	}

	return srv.Run(ctx)
}
