package dough

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/log"
	"github.com/slok/kitchen/internal/model"
)

// Maker makes a single item on the dough API.
type Maker interface {
	MakeItem(ctx context.Context, itemID int) (model.Item, error)
}

// APIError is returned when the dough API answers with a non success status.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dough api error: %d %s", e.Status, http.StatusText(e.Status))
}

// ClientConfig is the configuration of the dough API client.
type ClientConfig struct {
	// Endpoint is the full URL items are POSTed to.
	Endpoint   string
	HTTPClient *http.Client
	Logger     log.Logger
	// Now is used to timestamp made items.
	Now func() time.Time
}

func (c *ClientConfig) defaults() error {
	if c.Endpoint == "" {
		c.Endpoint = conventions.DefaultEndpoint
	}

	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "dough.Client"})

	if c.Now == nil {
		c.Now = time.Now
	}

	return nil
}

// Client is the HTTP implementation of Maker.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     log.Logger
	now        func() time.Time
}

// NewClient returns a new dough API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}, nil
}

type makeItemRequest struct {
	ItemID int `json:"itemId"`
}

// makeItemResponse is optional, the API may answer with an empty body.
type makeItemResponse struct {
	ItemID int    `json:"itemId"`
	Status string `json:"status"`
}

// MakeItem POSTs a single item to the dough API.
func (c *Client) MakeItem(ctx context.Context, itemID int) (model.Item, error) {
	body, err := json.Marshal(makeItemRequest{ItemID: itemID})
	if err != nil {
		return model.Item{}, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.Item{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Item{}, fmt.Errorf("could not make item %d: %w", itemID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.Item{}, &APIError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Item{}, fmt.Errorf("could not read response: %w", err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		var payload makeItemResponse
		if err := json.Unmarshal(data, &payload); err != nil {
			return model.Item{}, fmt.Errorf("could not decode response: %w", err)
		}
		c.logger.Debugf("item %d made (api status: %q)", itemID, payload.Status)
	}

	return model.Item{
		ID:          itemID,
		Status:      model.ItemStatusCompleted,
		CompletedAt: c.now().UTC(),
	}, nil
}
