package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/kitchen/internal/model"
)

// JSONPrinter prints kitchen information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// bakeRunOutput represents the bake run output.
type bakeRunOutput struct {
	ID             string       `json:"id"`
	Status         string       `json:"status"`
	Workers        int          `json:"workers"`
	TotalItems     int          `json:"total_items"`
	Groups         []int        `json:"groups"`
	CompletedCount int          `json:"completed_count"`
	CompletedItems []itemOutput `json:"completed_items"`
	Error          string       `json:"error,omitempty"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     *time.Time   `json:"finished_at"`
}

type itemOutput struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// bakePlanOutput represents the bake plan output.
type bakePlanOutput struct {
	TotalItems int   `json:"total_items"`
	Workers    int   `json:"workers"`
	GroupCount int   `json:"group_count"`
	Groups     []int `json:"groups"`
}

// cleaningOutput represents the cleaning state output.
type cleaningOutput struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Order   bool           `json:"order"`
	Brush   string         `json:"brush"`
	Mop     string         `json:"mop"`
	Talk    talkOutput     `json:"talk"`
	Clear   bool           `json:"clear"`
	Buttons []buttonOutput `json:"buttons"`
}

type talkOutput struct {
	Brush bool `json:"brush"`
	Mop   bool `json:"mop"`
}

type buttonOutput struct {
	Action  string `json:"action"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintBakeRun prints a bake run in JSON format.
func (j *JSONPrinter) PrintBakeRun(run model.BakeRun) error {
	items := make([]itemOutput, 0, len(run.CompletedItems))
	for _, it := range run.CompletedItems {
		items = append(items, itemOutput{ID: it.ID, Status: string(it.Status)})
	}

	output := bakeRunOutput{
		ID:             run.ID,
		Status:         string(run.Status),
		Workers:        run.Workers,
		TotalItems:     run.TotalItems,
		Groups:         run.Groups,
		CompletedCount: run.CompletedCount(),
		CompletedItems: items,
		Error:          run.Error,
		StartedAt:      run.StartedAt.UTC(),
	}

	if run.FinishedAt != nil {
		utcTime := run.FinishedAt.UTC()
		output.FinishedAt = &utcTime
	}

	return j.encode(output)
}

// PrintBakePlan prints a bake plan in JSON format.
func (j *JSONPrinter) PrintBakePlan(plan model.BakePlan) error {
	return j.encode(bakePlanOutput{
		TotalItems: plan.TotalItems,
		Workers:    plan.Workers,
		GroupCount: len(plan.Groups),
		Groups:     plan.Groups,
	})
}

// PrintCleaning prints the cleaning state in JSON format.
func (j *JSONPrinter) PrintCleaning(c model.Cleaning) error {
	buttons := []buttonOutput{}
	for _, b := range c.Buttons() {
		buttons = append(buttons, buttonOutput{Action: string(b.Action), Label: b.Label, Enabled: b.Enabled})
	}

	return j.encode(cleaningOutput{
		ID:      c.ID,
		Name:    c.Name,
		Order:   c.Order,
		Brush:   string(c.Brush),
		Mop:     string(c.Mop),
		Talk:    talkOutput{Brush: c.Talk.Brush, Mop: c.Talk.Mop},
		Clear:   c.Clear,
		Buttons: buttons,
	})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
