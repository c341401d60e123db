package kitchen

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/slok/kitchen/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		return fmt.Errorf("kitchen binary path is required (KITCHEN_INTEGRATION_BINARY)")
	}

	// go test changes the CWD to the test package directory.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("KITCHEN_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("kitchen binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "KITCHEN_INTEGRATION"
		envBinary     = "KITCHEN_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunCmd runs a kitchen command with a specific config file, logging disabled.
func RunCmd(ctx context.Context, config Config, configPath, cmdArgs string) (stdout, stderr []byte, err error) {
	args := fmt.Sprintf("--config %s %s", configPath, cmdArgs)
	return testutils.RunKitchen(ctx, nil, config.Binary, args, true)
}

// RunClean runs the interactive clean command feeding stdin.
func RunClean(ctx context.Context, config Config, configPath, stdin string) (stdout, stderr []byte, err error) {
	args := []string{"--config", configPath, "clean", "--interactive", "--format", "json"}
	return testutils.RunKitchenArgs(ctx, nil, config.Binary, args, stdin, true)
}

// StartServe runs the mock dough API in the background and waits until it accepts
// connections. It is stopped when the test finishes.
func StartServe(t *testing.T, config Config, failEvery int) (endpoint string) {
	t.Helper()

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		args := fmt.Sprintf("serve --listen %s --fail-every %d", addr, failEvery)
		_, _, _ = testutils.RunKitchen(ctx, nil, config.Binary, args, true)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			_ = conn.Close()
			return fmt.Sprintf("http://%s/makePizza", addr)
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("mock dough API did not start on %s", addr)
	return ""
}

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("could not get a free port: %s", err)
	}
	defer l.Close()

	return l.Addr().String()
}
