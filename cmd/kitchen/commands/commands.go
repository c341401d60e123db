package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
	kitchenio "github.com/slok/kitchen/internal/storage/io"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger

	defaultConfigPath string
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{
		defaultConfigPath: conventions.ConfigPath(homedir.HomeDir()),
	}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("config", "Path to the kitchen YAML configuration file.").Envar("KITCHEN_CONFIG").Default(c.defaultConfigPath).StringVar(&c.ConfigPath)

	return c
}

// LoadBakeConfig loads the bake configuration file. A missing file on the
// default path is not an error, the defaults are used instead.
func (r RootCommand) LoadBakeConfig(ctx context.Context) (model.BakeConfig, error) {
	configPath := r.ConfigPath
	if configPath == "" {
		return kitchenio.DefaultBakeConfig(), nil
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return model.BakeConfig{}, fmt.Errorf("could not resolve config path: %w", err)
		}
		configPath = absPath
	}

	configRepo := kitchenio.NewConfigYAMLRepository(os.DirFS("/"))
	cfg, err := configRepo.GetBakeConfig(ctx, configPath[1:])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && r.ConfigPath == r.defaultConfigPath {
			r.Logger.Debugf("no config file at %s, using defaults", configPath)
			return kitchenio.DefaultBakeConfig(), nil
		}
		return model.BakeConfig{}, fmt.Errorf("could not load config: %w", err)
	}

	r.Logger.Debugf("loaded config from %s", configPath)
	return cfg, nil
}
