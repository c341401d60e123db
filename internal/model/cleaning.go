package model

import (
	"fmt"
	"strings"
	"time"
)

// CleaningStatus represents the status of a cleaning tool.
type CleaningStatus string

const (
	// CleaningStatusReady indicates the tool is waiting for an order.
	CleaningStatusReady CleaningStatus = "READY"
	// CleaningStatusInProgress indicates the tool is being used.
	CleaningStatusInProgress CleaningStatus = "IN_PROGRESS"
	// CleaningStatusCompleted indicates the tool finished its job.
	CleaningStatusCompleted CleaningStatus = "COMPLETED"
)

func (s CleaningStatus) String() string { return string(s) }

// IsValid returns true if the status is a known one.
func (s CleaningStatus) IsValid() bool {
	switch s {
	case CleaningStatusReady, CleaningStatusInProgress, CleaningStatusCompleted:
		return true
	}
	return false
}

// CleaningAction is an input of the cleaning state machine.
type CleaningAction string

const (
	// CleaningActionToggleOrder requests or cancels the cleaning.
	CleaningActionToggleOrder CleaningAction = "order"
	// CleaningActionPressBrush advances or reverts the brush depending on its status.
	CleaningActionPressBrush CleaningAction = "brush"
	// CleaningActionPressMop advances or reverts the mop depending on its status.
	CleaningActionPressMop CleaningAction = "mop"
	// CleaningActionAdvanceBrush marks the brush as completed.
	CleaningActionAdvanceBrush CleaningAction = "advance-brush"
	// CleaningActionRevertBrush marks the brush back as in progress.
	CleaningActionRevertBrush CleaningAction = "revert-brush"
	// CleaningActionAdvanceMop marks the mop as completed.
	CleaningActionAdvanceMop CleaningAction = "advance-mop"
	// CleaningActionRevertMop marks the mop back as in progress.
	CleaningActionRevertMop CleaningAction = "revert-mop"
	// CleaningActionFinalize ends the cleaning. It is terminal.
	CleaningActionFinalize CleaningAction = "finalize"
)

var cleaningActionAliases = map[string]CleaningAction{
	"done":   CleaningActionFinalize,
	"finish": CleaningActionFinalize,
	"toggle": CleaningActionToggleOrder,
}

// ParseCleaningAction parses an action name (case insensitive, aliases allowed).
func ParseCleaningAction(s string) (CleaningAction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if a, ok := cleaningActionAliases[name]; ok {
		return a, nil
	}

	a := CleaningAction(name)
	if _, ok := cleaningTransitions[a]; ok {
		return a, nil
	}
	switch a {
	case CleaningActionPressBrush, CleaningActionPressMop:
		return a, nil
	}

	return "", fmt.Errorf("unknown cleaning action %q: %w", s, ErrNotValid)
}

// CleaningTalk tracks which tools have reported they are done.
type CleaningTalk struct {
	Brush bool
	Mop   bool
}

// Cleaning is the state of a cleaning session.
type Cleaning struct {
	ID        string
	Name      string
	Order     bool
	Brush     CleaningStatus
	Mop       CleaningStatus
	Talk      CleaningTalk
	Clear     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCleaning returns a cleaning session in its initial state.
func NewCleaning(id, name string, now time.Time) Cleaning {
	return Cleaning{
		ID:        id,
		Name:      name,
		Brush:     CleaningStatusReady,
		Mop:       CleaningStatusReady,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type cleaningTransition struct {
	guard  func(c Cleaning) bool
	effect func(c *Cleaning)
}

// cleaningTransitions is the transition table. Every guard implicitly requires
// the session not to be cleared, Apply checks that before the table.
var cleaningTransitions = map[CleaningAction]cleaningTransition{
	CleaningActionToggleOrder: {
		guard: func(c Cleaning) bool { return true },
		effect: func(c *Cleaning) {
			c.Order = !c.Order
			if c.Order {
				c.Brush = CleaningStatusInProgress
				c.Mop = CleaningStatusInProgress
				return
			}
			c.Brush = CleaningStatusReady
			c.Mop = CleaningStatusReady
			c.Talk = CleaningTalk{}
		},
	},
	CleaningActionAdvanceBrush: {
		guard: func(c Cleaning) bool { return c.Brush == CleaningStatusInProgress },
		effect: func(c *Cleaning) {
			c.Brush = CleaningStatusCompleted
			c.Talk.Brush = true
		},
	},
	CleaningActionRevertBrush: {
		guard: func(c Cleaning) bool { return c.Brush == CleaningStatusCompleted },
		effect: func(c *Cleaning) {
			c.Brush = CleaningStatusInProgress
			c.Talk.Brush = false
		},
	},
	CleaningActionAdvanceMop: {
		guard: func(c Cleaning) bool { return c.Mop == CleaningStatusInProgress },
		effect: func(c *Cleaning) {
			c.Mop = CleaningStatusCompleted
			c.Talk.Mop = true
		},
	},
	CleaningActionRevertMop: {
		guard: func(c Cleaning) bool { return c.Mop == CleaningStatusCompleted },
		effect: func(c *Cleaning) {
			c.Mop = CleaningStatusInProgress
			c.Talk.Mop = false
		},
	},
	CleaningActionFinalize: {
		guard:  func(c Cleaning) bool { return c.Talk.Brush && c.Talk.Mop },
		effect: func(c *Cleaning) { c.Clear = true },
	},
}

// Resolve maps the tool buttons to the concrete transition for the current state.
func (c Cleaning) Resolve(a CleaningAction) CleaningAction {
	switch a {
	case CleaningActionPressBrush:
		if c.Brush == CleaningStatusCompleted {
			return CleaningActionRevertBrush
		}
		return CleaningActionAdvanceBrush
	case CleaningActionPressMop:
		if c.Mop == CleaningStatusCompleted {
			return CleaningActionRevertMop
		}
		return CleaningActionAdvanceMop
	}

	return a
}

// CanApply returns true if the action would change the state.
func (c Cleaning) CanApply(a CleaningAction) bool {
	if c.Clear {
		return false
	}

	t, ok := cleaningTransitions[c.Resolve(a)]
	if !ok {
		return false
	}

	return t.guard(c)
}

// Apply returns the state after applying the action and if the transition fired.
// Actions whose guard is not satisfied leave the state untouched.
func (c Cleaning) Apply(a CleaningAction) (Cleaning, bool) {
	if !c.CanApply(a) {
		return c, false
	}

	next := c
	cleaningTransitions[c.Resolve(a)].effect(&next)

	return next, true
}

// CleaningButton is the presentation of an action for the current state.
type CleaningButton struct {
	Action  CleaningAction
	Label   string
	Enabled bool
}

// Buttons returns the cleaning panel buttons for the current state.
func (c Cleaning) Buttons() []CleaningButton {
	orderLabel := "Order cleaning"
	if c.Order {
		orderLabel = "Cancel cleaning"
	}

	doneLabel := "All done"
	if c.Clear {
		doneLabel = "Finished"
	}

	return []CleaningButton{
		{Action: CleaningActionToggleOrder, Label: orderLabel, Enabled: !c.Clear},
		{Action: CleaningActionPressBrush, Label: toolLabel("Brush", c.Order, c.Brush), Enabled: c.toolEnabled(c.Brush)},
		{Action: CleaningActionPressMop, Label: toolLabel("Mop", c.Order, c.Mop), Enabled: c.toolEnabled(c.Mop)},
		{Action: CleaningActionFinalize, Label: doneLabel, Enabled: c.Talk.Brush && c.Talk.Mop && !c.Clear},
	}
}

func (c Cleaning) toolEnabled(s CleaningStatus) bool {
	return c.Order && s != CleaningStatusReady && !c.Clear
}

func toolLabel(tool string, order bool, s CleaningStatus) string {
	if !order {
		return tool
	}

	switch s {
	case CleaningStatusReady:
		return tool + " ready"
	case CleaningStatusInProgress:
		return "Finish " + strings.ToLower(tool)
	case CleaningStatusCompleted:
		return "Undo " + strings.ToLower(tool)
	}

	return tool
}
