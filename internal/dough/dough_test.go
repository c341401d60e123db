package dough_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/kitchen/internal/dough"
	"github.com/slok/kitchen/internal/model"
)

func TestClientMakeItem(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		handler http.HandlerFunc
		itemID  int
		expItem model.Item
		expErr  bool
		expAPI  int
	}{
		"A JSON success response should make the item.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"itemId": 7, "status": "completed"}`))
			},
			itemID:  7,
			expItem: model.Item{ID: 7, Status: model.ItemStatusCompleted, CompletedAt: now},
		},
		"An empty success response should make the item.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			itemID:  3,
			expItem: model.Item{ID: 3, Status: model.ItemStatusCompleted, CompletedAt: now},
		},
		"A server error should return an API error with the status.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "oven on fire", http.StatusInternalServerError)
			},
			itemID: 1,
			expErr: true,
			expAPI: http.StatusInternalServerError,
		},
		"A client error should return an API error with the status.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			itemID: 1,
			expErr: true,
			expAPI: http.StatusTooManyRequests,
		},
		"An undecodable success response should fail.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>not json</html>`))
			},
			itemID: 1,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(test.handler)
			t.Cleanup(srv.Close)

			c, err := dough.NewClient(dough.ClientConfig{
				Endpoint: srv.URL + "/makePizza",
				Now:      func() time.Time { return now },
			})
			require.NoError(t, err)

			item, err := c.MakeItem(context.Background(), test.itemID)
			if test.expErr {
				require.Error(t, err)
				if test.expAPI != 0 {
					var apiErr *dough.APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, test.expAPI, apiErr.Status)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expItem, item)
		})
	}
}

func TestClientMakeItemRequest(t *testing.T) {
	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotBody        map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c, err := dough.NewClient(dough.ClientConfig{Endpoint: srv.URL + "/makePizza"})
	require.NoError(t, err)

	_, err = c.MakeItem(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/makePizza", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"itemId": float64(42)}, gotBody)
}

func TestClientMakeItemNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c, err := dough.NewClient(dough.ClientConfig{Endpoint: endpoint})
	require.NoError(t, err)

	_, err = c.MakeItem(context.Background(), 1)
	require.Error(t, err)

	var apiErr *dough.APIError
	assert.False(t, errors.As(err, &apiErr))
}
