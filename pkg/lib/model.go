package lib

import (
	"time"

	"github.com/slok/kitchen/internal/model"
)

// BakeStatus is the status of a bake run.
type BakeStatus string

const (
	BakeStatusProcessing BakeStatus = "processing"
	BakeStatusCompleted  BakeStatus = "completed"
	BakeStatusFailed     BakeStatus = "failed"
)

// BakeRun is a single dispatch of all the items to the dough API.
type BakeRun struct {
	ID         string
	Status     BakeStatus
	Workers    int
	TotalItems int
	// Groups are the group sizes, all of them equal to Workers except the last one.
	Groups []int
	// CompletedItems are the made item IDs in completion order.
	CompletedItems []int
	Error          string
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// BakeOpts are the options of a bake run.
type BakeOpts struct {
	// Workers is the group size, values below 1 are clamped to 1.
	Workers int
}

// BakePlan is how the items of a run are split in groups.
type BakePlan struct {
	TotalItems int
	Workers    int
	Groups     []int
}

// Cleaning is the state of a cleaning session.
type Cleaning struct {
	Name  string
	Order bool
	// Brush and Mop are READY, IN_PROGRESS or COMPLETED.
	Brush string
	Mop   string
	// BrushDone and MopDone are true when the tool reported it finished.
	BrushDone bool
	MopDone   bool
	Clear     bool
	Buttons   []CleaningButton
}

// CleaningButton is a cleaning panel action for the current state.
type CleaningButton struct {
	Action  string
	Label   string
	Enabled bool
}

func fromInternalBakeRun(r model.BakeRun) BakeRun {
	items := make([]int, 0, len(r.CompletedItems))
	for _, it := range r.CompletedItems {
		items = append(items, it.ID)
	}

	run := BakeRun{
		ID:             r.ID,
		Status:         BakeStatus(r.Status),
		Workers:        r.Workers,
		TotalItems:     r.TotalItems,
		Groups:         append([]int{}, r.Groups...),
		CompletedItems: items,
		Error:          r.Error,
		StartedAt:      r.StartedAt,
	}
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		run.FinishedAt = &t
	}

	return run
}

func fromInternalBakePlan(p model.BakePlan) BakePlan {
	return BakePlan{
		TotalItems: p.TotalItems,
		Workers:    p.Workers,
		Groups:     append([]int{}, p.Groups...),
	}
}

func fromInternalCleaning(c model.Cleaning) Cleaning {
	buttons := []CleaningButton{}
	for _, b := range c.Buttons() {
		buttons = append(buttons, CleaningButton{Action: string(b.Action), Label: b.Label, Enabled: b.Enabled})
	}

	return Cleaning{
		Name:      c.Name,
		Order:     c.Order,
		Brush:     string(c.Brush),
		Mop:       string(c.Mop),
		BrushDone: c.Talk.Brush,
		MopDone:   c.Talk.Mop,
		Clear:     c.Clear,
		Buttons:   buttons,
	}
}
