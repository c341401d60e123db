package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultTotalItems is the number of items a bake run makes.
	DefaultTotalItems = 100
	// DefaultWorkers is the worker count used when none is set.
	DefaultWorkers = 5
	// SuggestedMaxWorkers is only a hint, the worker count has no enforced maximum.
	SuggestedMaxWorkers = 20
)

// BakeStatus represents the status of a bake run.
type BakeStatus string

const (
	// BakeStatusProcessing indicates the run is dispatching items.
	BakeStatusProcessing BakeStatus = "processing"
	// BakeStatusCompleted indicates every item of the run was made.
	BakeStatusCompleted BakeStatus = "completed"
	// BakeStatusFailed indicates at least one item call failed.
	BakeStatusFailed BakeStatus = "failed"
)

// ItemStatus represents the status of a single made item.
type ItemStatus string

const (
	// ItemStatusCompleted is the only status an accumulated item can have.
	ItemStatusCompleted ItemStatus = "completed"
)

// Item is a single made item.
type Item struct {
	ID          int
	Status      ItemStatus
	CompletedAt time.Time
}

// BakeConfig is the configuration used to dispatch bake runs.
type BakeConfig struct {
	Endpoint   string
	TotalItems int
	Workers    int
}

// Validate validates the bake configuration.
func (c BakeConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required: %w", ErrNotValid)
	}

	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("endpoint must be an http(s) URL, got %q: %w", c.Endpoint, ErrNotValid)
	}

	if c.TotalItems <= 0 {
		return fmt.Errorf("total items must be positive, got: %d: %w", c.TotalItems, ErrNotValid)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d: %w", c.Workers, ErrNotValid)
	}

	return nil
}

// BakeRun is a single dispatch of all the items.
type BakeRun struct {
	ID             string
	Status         BakeStatus
	Workers        int
	TotalItems     int
	Groups         []int
	CompletedItems []Item
	Error          string
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// CompletedCount returns the number of items completed so far.
func (r BakeRun) CompletedCount() int {
	return len(r.CompletedItems)
}

// ParseWorkerCount parses a raw worker count the same way the worker input field
// does: leading integer digits are used, anything else (or a value below 1) clamps to 1.
func ParseWorkerCount(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return 1
	}

	return n
}

// SplitGroups partitions total items into groups of at most workers items. There
// are total/workers full groups followed by a single trailing group with the
// remainder, if any.
func SplitGroups(total, workers int) []int {
	if total <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	full := total / workers
	groups := make([]int, 0, full+1)
	for i := 0; i < full; i++ {
		groups = append(groups, workers)
	}

	if rem := total % workers; rem > 0 {
		groups = append(groups, rem)
	}

	return groups
}

// GroupCount returns the number of groups SplitGroups creates.
func GroupCount(total, workers int) int {
	if total <= 0 {
		return 0
	}
	if workers < 1 {
		workers = 1
	}

	return (total + workers - 1) / workers
}

// GroupItemIDs assigns sequential item IDs (starting at 1) to each group in order.
func GroupItemIDs(groups []int) [][]int {
	ids := make([][]int, 0, len(groups))
	next := 1
	for _, size := range groups {
		group := make([]int, size)
		for i := range group {
			group[i] = next
			next++
		}
		ids = append(ids, group)
	}

	return ids
}

// BakePlan is how a run splits its items into groups.
type BakePlan struct {
	TotalItems int
	Workers    int
	Groups     []int
}

// NewBakePlan returns the plan for the total items and workers, workers are clamped to 1.
func NewBakePlan(total, workers int) BakePlan {
	if workers < 1 {
		workers = 1
	}

	return BakePlan{
		TotalItems: total,
		Workers:    workers,
		Groups:     SplitGroups(total, workers),
	}
}
