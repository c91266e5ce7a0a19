// Package field models the nine input slots of the front-end form.
//
// Each slot is one record (value, enabled, valid, display hint) in a
// fixed-size array indexed by a named Slot, so enablement, validity and
// value can never drift out of step with each other.
package field

import "fmt"

// Slot identifies one input location on the form. The numeric values are
// fixed for the life of the program.
type Slot int

const (
	ConfigFile Slot = iota
	CalibrationFile
	StandardsFile
	SpectrumFile
	MapFile
	PlotFile
	LogFile
	ElementControls
	CLIArgs

	// Count is the number of slots.
	Count = int(CLIArgs) + 1
)

// Kind describes what a slot's value must satisfy to be valid.
type Kind int

const (
	// KindPath must name an existing filesystem entry.
	KindPath Kind = iota
	// KindOptionalPath is valid when empty or naming an existing entry.
	KindOptionalPath
	// KindText must be non-blank.
	KindText
	// KindFreeText is always valid.
	KindFreeText
)

var slotInfo = [Count]struct {
	name  string
	label string
	kind  Kind
}{
	ConfigFile:      {"config_file", "Configuration file", KindPath},
	CalibrationFile: {"calib_file", "Calibration file", KindPath},
	StandardsFile:   {"standards_file", "Standards file", KindPath},
	SpectrumFile:    {"spectrum_file", "Spectrum file", KindPath},
	MapFile:         {"map_file", "Map file", KindPath},
	PlotFile:        {"plot_file", "Plot file (optional)", KindOptionalPath},
	LogFile:         {"log_file", "Log file (optional)", KindOptionalPath},
	ElementControls: {"element_controls", "Element list", KindText},
	CLIArgs:         {"cli_args", "Extra arguments", KindFreeText},
}

// All returns every slot in slot order.
func All() []Slot {
	slots := make([]Slot, Count)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// Valid reports whether s is one of the nine slots.
func (s Slot) Valid() bool {
	return s >= 0 && int(s) < Count
}

// String returns the snake_case slot name.
func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotInfo[s].name
}

// Label returns the human-readable label shown next to the control.
func (s Slot) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return slotInfo[s].label
}

// Kind returns the validity rule that applies to the slot.
func (s Slot) Kind() Kind {
	if !s.Valid() {
		return KindFreeText
	}
	return slotInfo[s].kind
}

// IsPath reports whether the slot holds a filesystem path.
func (s Slot) IsPath() bool {
	k := s.Kind()
	return k == KindPath || k == KindOptionalPath
}

// IsOptional reports whether an empty value is acceptable.
func (s Slot) IsOptional() bool {
	k := s.Kind()
	return k == KindOptionalPath || k == KindFreeText
}

// Hint is the presentational colour hint derived from validity.
type Hint int

const (
	// HintNone leaves the control uncoloured.
	HintNone Hint = iota
	// HintSuccess marks a satisfied slot.
	HintSuccess
	// HintNeutral marks an unsatisfied slot with the default colour.
	HintNeutral
)

func (h Hint) String() string {
	switch h {
	case HintSuccess:
		return "success"
	case HintNeutral:
		return "neutral"
	default:
		return "none"
	}
}

// Field is the state of a single slot.
type Field struct {
	Value   string
	Enabled bool
	Valid   bool
	Hint    Hint
}

// Set holds the state of all nine slots.
type Set [Count]Field

// Get returns a copy of the slot's record.
func (s *Set) Get(slot Slot) Field {
	return s[slot]
}

// Value returns the slot's current string value.
func (s *Set) Value(slot Slot) string {
	return s[slot].Value
}

// SetValue overwrites the slot's string value verbatim.
func (s *Set) SetValue(slot Slot, value string) {
	s[slot].Value = value
}

// DisableAll clears the enabled flag of every slot.
func (s *Set) DisableAll() {
	for i := range s {
		s[i].Enabled = false
	}
}

// Enable sets the enabled flag of the given slots, leaving all others
// untouched. Call DisableAll first for a clean reset.
func (s *Set) Enable(slots []Slot) {
	for _, slot := range slots {
		if slot.Valid() {
			s[slot].Enabled = true
		}
	}
}

// EnabledSlots returns the enabled slots in slot order.
func (s *Set) EnabledSlots() []Slot {
	var out []Slot
	for i := range s {
		if s[i].Enabled {
			out = append(out, Slot(i))
		}
	}
	return out
}

// Values returns a snapshot of every slot's value.
func (s *Set) Values() Values {
	var v Values
	for i := range s {
		v[i] = s[i].Value
	}
	return v
}

// Values is a snapshot of the nine slot values, indexed by Slot.
type Values [Count]string

// Get returns the value held for slot.
func (v Values) Get(slot Slot) string {
	if !slot.Valid() {
		return ""
	}
	return v[slot]
}
