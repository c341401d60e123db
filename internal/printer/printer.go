package printer

import (
	"io"

	"github.com/slok/kitchen/internal/model"
)

// Printer knows how to print kitchen information in different formats.
type Printer interface {
	PrintBakeRun(run model.BakeRun) error
	PrintBakePlan(plan model.BakePlan) error
	PrintCleaning(cleaning model.Cleaning) error
	PrintMessage(msg string) error
}

// New returns the printer for a format ("json" or "table").
func New(format string, w io.Writer) Printer {
	if format == FormatJSON {
		return NewJSONPrinter(w)
	}
	return NewTablePrinter(w)
}

const (
	// FormatTable is the human readable output format.
	FormatTable = "table"
	// FormatJSON is the JSON output format.
	FormatJSON = "json"
)
