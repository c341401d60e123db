package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/model"
)

// ConfigYAMLRepository loads kitchen configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetBakeConfig loads the bake configuration from a YAML file and returns a validated
// domain model. Fields missing on the file get their default values.
func (r *ConfigYAMLRepository) GetBakeConfig(ctx context.Context, path string) (model.BakeConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.BakeConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.BakeConfig{}, ctx.Err()
	}

	var cfg KitchenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.BakeConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	bakeCfg := cfg.Bake.toModel()
	if err := bakeCfg.Validate(); err != nil {
		return model.BakeConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return bakeCfg, nil
}

// DefaultBakeConfig returns the bake configuration used when there is no config file.
func DefaultBakeConfig() model.BakeConfig {
	return BakeConfig{}.toModel()
}

// KitchenConfig represents the YAML structure for the kitchen configuration.
type KitchenConfig struct {
	Bake BakeConfig `yaml:"bake"`
}

// BakeConfig represents the YAML structure for the bake configuration.
type BakeConfig struct {
	Endpoint   string `yaml:"endpoint"`
	TotalItems *int   `yaml:"total_items,omitempty"`
	Workers    *int   `yaml:"workers,omitempty"`
}

func (c BakeConfig) toModel() model.BakeConfig {
	cfg := model.BakeConfig{
		Endpoint:   c.Endpoint,
		TotalItems: model.DefaultTotalItems,
		Workers:    model.DefaultWorkers,
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = conventions.DefaultEndpoint
	}
	if c.TotalItems != nil {
		cfg.TotalItems = *c.TotalItems
	}
	if c.Workers != nil {
		cfg.Workers = *c.Workers
	}

	return cfg
}
