// Package task holds the registry of PIQUANT analysis tasks.
//
// Every task is a row in a static table: the slots the user may edit, the
// slots that must be valid before the task can run, the slots whose values
// are passed as positional arguments (in order), and the command token that
// goes first on the PIQUANT command line. Nothing here is computed.
package task

import (
	"fmt"
	"strings"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
)

// Task is one of the fixed PIQUANT analysis modes, or None.
type Task int

const (
	None Task = iota
	EnergyCalibration
	PlotSpectrum
	CalculatePrimarySpectrum
	CalculateFullSpectrum
	Calibrate
	Quantify
	Evaluate
	Map
	CompareMeasuredCalculated
	FitOneStandardWithPlot
	BulkSumAndMaxValue
	OpticResponse

	numTasks = int(OpticResponse) + 1
)

// Entry is the registry row for one task.
type Entry struct {
	Name  string // Identifier, e.g. "Calibrate"
	Title string // Radio-button label
	Token string // First PIQUANT argument

	Enabled []field.Slot // Slots the user may edit
	Ready   []field.Slot // Slots that must be valid before execution
	Args    []field.Slot // Slots appended to the argument vector, in order
}

const (
	cfg   = field.ConfigFile
	calib = field.CalibrationFile
	std   = field.StandardsFile
	spec  = field.SpectrumFile
	mapf  = field.MapFile
	plot  = field.PlotFile
	logf  = field.LogFile
	elem  = field.ElementControls
)

func slots(s ...field.Slot) []field.Slot { return s }

var registry = [numTasks]Entry{
	None: {Name: "None", Title: "None"},
	EnergyCalibration: {
		Name: "EnergyCalibration", Title: "Energy calibration", Token: "energy",
		Enabled: slots(cfg, spec),
		Ready:   slots(cfg, spec),
		Args:    slots(cfg, spec, plot, logf),
	},
	PlotSpectrum: {
		Name: "PlotSpectrum", Title: "Plot spectrum", Token: "plot",
		Enabled: slots(cfg, spec),
		Ready:   slots(cfg, spec),
		Args:    slots(cfg, spec, plot),
	},
	CalculatePrimarySpectrum: {
		Name: "CalculatePrimarySpectrum", Title: "Calculate primary spectrum", Token: "primary",
		Enabled: slots(cfg),
		Ready:   slots(cfg),
		Args:    slots(cfg, plot),
	},
	CalculateFullSpectrum: {
		Name: "CalculateFullSpectrum", Title: "Calculate full spectrum", Token: "calc",
		Enabled: slots(cfg, elem),
		Ready:   slots(cfg, elem),
		Args:    slots(cfg, plot, elem),
	},
	Calibrate: {
		Name: "Calibrate", Title: "Calibrate", Token: "cal",
		Enabled: slots(cfg, calib, std, elem),
		Ready:   slots(cfg, calib, std, elem),
		Args:    slots(cfg, calib, std, elem),
	},
	Quantify: {
		Name: "Quantify", Title: "Quantify", Token: "quant",
		Enabled: slots(cfg, calib, spec, elem),
		Ready:   slots(cfg, calib, spec, elem),
		Args:    slots(cfg, calib, spec, plot, elem),
	},
	Evaluate: {
		Name: "Evaluate", Title: "Evaluate standards", Token: "eval",
		Enabled: slots(cfg, calib, std, elem),
		Ready:   slots(cfg, calib, std, elem),
		Args:    slots(cfg, calib, std, logf, elem),
	},
	Map: {
		Name: "Map", Title: "Map", Token: "map",
		Enabled: slots(cfg, calib, spec, mapf, elem),
		Ready:   slots(cfg, calib, spec, mapf, elem),
		Args:    slots(cfg, calib, spec, mapf, elem, logf),
	},
	CompareMeasuredCalculated: {
		Name: "CompareMeasuredCalculated", Title: "Compare measured and calculated", Token: "compare",
		Enabled: slots(cfg, spec, elem),
		Ready:   slots(cfg, spec, elem),
		Args:    slots(cfg, spec, plot, elem),
	},
	FitOneStandardWithPlot: {
		Name: "FitOneStandardWithPlot", Title: "Fit one standard with plot", Token: "fit",
		Enabled: slots(cfg, calib, std, elem),
		Ready:   slots(cfg, calib, std, elem),
		Args:    slots(cfg, calib, std, plot, elem),
	},
	BulkSumAndMaxValue: {
		Name: "BulkSumAndMaxValue", Title: "Bulk sum and max value", Token: "sum",
		Enabled: slots(cfg, spec, mapf),
		Ready:   slots(cfg, spec, mapf),
		Args:    slots(cfg, spec, mapf, plot),
	},
	OpticResponse: {
		Name: "OpticResponse", Title: "Optic response", Token: "optic",
		Enabled: slots(cfg, calib, std),
		Ready:   slots(cfg, calib, std),
		Args:    slots(cfg, calib, std, plot),
	},
}

// Valid reports whether t is None or one of the analysis tasks.
func (t Task) Valid() bool {
	return t >= None && int(t) < numTasks
}

// Lookup returns the registry row for t. Unknown values map to the None row.
func Lookup(t Task) Entry {
	if !t.Valid() {
		return registry[None]
	}
	return registry[t]
}

// String returns the task identifier.
func (t Task) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Task(%d)", int(t))
	}
	return registry[t].Name
}

// Title returns the label shown in the task selector.
func (t Task) Title() string { return Lookup(t).Title }

// Token returns the PIQUANT command token; empty for None.
func (t Task) Token() string { return Lookup(t).Token }

// EnabledSlots returns the slots the user may edit for t.
func (t Task) EnabledSlots() []field.Slot { return clone(Lookup(t).Enabled) }

// ReadySlots returns the slots that must be valid before t can execute.
func (t Task) ReadySlots() []field.Slot { return clone(Lookup(t).Ready) }

// ArgSlots returns the slots whose values follow the token, in order.
func (t Task) ArgSlots() []field.Slot { return clone(Lookup(t).Args) }

func clone(s []field.Slot) []field.Slot {
	if len(s) == 0 {
		return nil
	}
	out := make([]field.Slot, len(s))
	copy(out, s)
	return out
}

// All returns every analysis task (None excluded) in display order.
func All() []Task {
	tasks := make([]Task, 0, numTasks-1)
	for t := EnergyCalibration; int(t) < numTasks; t++ {
		tasks = append(tasks, t)
	}
	return tasks
}

// Parse resolves a task from its identifier, title or command token,
// case-insensitively. "none" and the empty string resolve to None.
func Parse(s string) (Task, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return None, nil
	}
	for _, t := range All() {
		e := registry[t]
		if strings.EqualFold(s, e.Name) || strings.EqualFold(s, e.Title) || strings.EqualFold(s, e.Token) {
			return t, nil
		}
	}
	return None, fmt.Errorf("%w: %q", errors.ErrUnknownTask, s)
}

// FromTitle resolves a task from its selector label; unknown labels give None.
func FromTitle(title string) Task {
	for _, t := range All() {
		if registry[t].Title == title {
			return t
		}
	}
	return None
}

// Titles returns the selector labels of all analysis tasks in display order.
func Titles() []string {
	titles := make([]string, 0, numTasks-1)
	for _, t := range All() {
		titles = append(titles, registry[t].Title)
	}
	return titles
}
