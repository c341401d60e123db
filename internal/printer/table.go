package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/kitchen/internal/model"
)

// TablePrinter prints kitchen information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintBakeRun prints a bake run summary.
func (t *TablePrinter) PrintBakeRun(run model.BakeRun) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", run.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", run.Status)
	fmt.Fprintf(t.writer, "Workers:    %d\n", run.Workers)
	fmt.Fprintf(t.writer, "Groups:     %d\n", len(run.Groups))
	fmt.Fprintf(t.writer, "Completed:  %d/%d\n", run.CompletedCount(), run.TotalItems)
	fmt.Fprintf(t.writer, "Started:    %s\n", FormatTimestamp(run.StartedAt))
	fmt.Fprintf(t.writer, "Duration:   %s\n", FormatElapsed(run.StartedAt, run.FinishedAt))

	if run.Error != "" {
		fmt.Fprintf(t.writer, "Error:      %s\n", run.Error)
	}

	return nil
}

// PrintBakePlan prints the groups of a bake plan.
func (t *TablePrinter) PrintBakePlan(plan model.BakePlan) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header.
	fmt.Fprintln(tw, "GROUP\tSIZE\tITEMS")

	// Print rows.
	for i, ids := range model.GroupItemIDs(plan.Groups) {
		fmt.Fprintf(tw, "%d\t%d\t%d-%d\n", i+1, len(ids), ids[0], ids[len(ids)-1])
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(t.writer, "\nTotal: %d items, %d workers, %d groups\n", plan.TotalItems, plan.Workers, len(plan.Groups))

	return nil
}

// PrintCleaning prints the cleaning state and its available actions.
func (t *TablePrinter) PrintCleaning(c model.Cleaning) error {
	fmt.Fprintf(t.writer, "Session:    %s\n", c.Name)
	fmt.Fprintf(t.writer, "Order:      %t\n", c.Order)
	fmt.Fprintf(t.writer, "Brush:      %s\n", c.Brush)
	fmt.Fprintf(t.writer, "Mop:        %s\n", c.Mop)
	fmt.Fprintf(t.writer, "Talk:       brush=%t mop=%t\n", c.Talk.Brush, c.Talk.Mop)
	fmt.Fprintf(t.writer, "Clear:      %t\n", c.Clear)
	fmt.Fprintln(t.writer)

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ACTION\tLABEL\tENABLED")
	for _, b := range c.Buttons() {
		enabled := "no"
		if b.Enabled {
			enabled = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Action, b.Label, enabled)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
