package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default kitchen data directory name (relative to home).
	DefaultDataDir = ".kitchen"
	// ConfigFile is the kitchen configuration filename inside the data directory.
	ConfigFile = "kitchen.yaml"

	// DefaultEndpoint is the dough API endpoint items are made on.
	DefaultEndpoint = "https://dough.pizza.com/makePizza"

	// Mock dough API.

	// MockAPIListenAddr is the default listen address of the mock dough API.
	MockAPIListenAddr = ":8080"
	// MockAPIMakePizzaPath is the mock dough API path compatible with DefaultEndpoint.
	MockAPIMakePizzaPath = "/makePizza"
	// MockAPIMakeItemPath is the generic item path of the mock dough API.
	MockAPIMakeItemPath = "/makeItem"
	// MockAPIHealthPath is the health check path of the mock dough API.
	MockAPIHealthPath = "/health"

	// DefaultCleaningSession is the cleaning session name used when none is set.
	DefaultCleaningSession = "default"
)

// ConfigPath returns the kitchen configuration file path inside a home directory.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir, ConfigFile)
}
