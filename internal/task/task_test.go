package task

import (
	"reflect"
	"testing"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
)

func TestNoneEntry(t *testing.T) {
	if None.Token() != "" {
		t.Errorf("None token = %q; want empty", None.Token())
	}
	if len(None.EnabledSlots()) != 0 {
		t.Errorf("None enabled = %v; want none", None.EnabledSlots())
	}
	if len(None.ReadySlots()) != 0 || len(None.ArgSlots()) != 0 {
		t.Error("None should have no ready or argument slots")
	}
}

func TestEnabledSlotsSubset(t *testing.T) {
	allowed := map[field.Slot]bool{
		field.ConfigFile:      true,
		field.CalibrationFile: true,
		field.StandardsFile:   true,
		field.SpectrumFile:    true,
		field.MapFile:         true,
		field.ElementControls: true,
	}

	for _, tk := range All() {
		enabled := tk.EnabledSlots()
		if len(enabled) == 0 {
			t.Errorf("%s enables no slots", tk)
		}
		for _, s := range enabled {
			if !allowed[s] {
				t.Errorf("%s enables %s, outside the gated set", tk, s)
			}
		}
	}
}

func TestTableConsistency(t *testing.T) {
	tokens := map[string]Task{}

	for _, tk := range All() {
		e := Lookup(tk)
		if e.Token == "" {
			t.Errorf("%s has no token", tk)
		}
		if prev, dup := tokens[e.Token]; dup {
			t.Errorf("token %q shared by %s and %s", e.Token, prev, tk)
		}
		tokens[e.Token] = tk

		// Every ready slot is editable
		enabled := map[field.Slot]bool{}
		for _, s := range e.Enabled {
			enabled[s] = true
		}
		for _, s := range e.Ready {
			if !enabled[s] {
				t.Errorf("%s requires %s but never enables it", tk, s)
			}
		}

		// Every non-optional argument slot must be checked before execution
		ready := map[field.Slot]bool{}
		for _, s := range e.Ready {
			ready[s] = true
		}
		seen := map[field.Slot]bool{}
		for _, s := range e.Args {
			if seen[s] {
				t.Errorf("%s lists %s twice in its arguments", tk, s)
			}
			seen[s] = true
			if !s.IsOptional() && !ready[s] {
				t.Errorf("%s passes %s without requiring it", tk, s)
			}
		}
	}
}

func TestCalibrateEntry(t *testing.T) {
	want := []field.Slot{field.ConfigFile, field.CalibrationFile, field.StandardsFile, field.ElementControls}
	if Calibrate.Token() != "cal" {
		t.Errorf("Calibrate token = %q; want \"cal\"", Calibrate.Token())
	}
	if got := Calibrate.ArgSlots(); !reflect.DeepEqual(got, want) {
		t.Errorf("Calibrate args = %v; want %v", got, want)
	}
	if got := Calibrate.ReadySlots(); !reflect.DeepEqual(got, want) {
		t.Errorf("Calibrate ready = %v; want %v", got, want)
	}
}

func TestSlotListsAreCopies(t *testing.T) {
	s := Calibrate.EnabledSlots()
	s[0] = field.CLIArgs
	if Calibrate.EnabledSlots()[0] != field.ConfigFile {
		t.Error("mutating a returned slot list changed the registry")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Task
	}{
		{"", None},
		{"none", None},
		{"Calibrate", Calibrate},
		{"cal", Calibrate},
		{"CAL", Calibrate},
		{"energy", EnergyCalibration},
		{"Energy calibration", EnergyCalibration},
		{"bulksumandmaxvalue", BulkSumAndMaxValue},
		{" optic ", OpticResponse},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}

	_, err := Parse("bake")
	if !errors.Is(err, errors.ErrUnknownTask) {
		t.Errorf("Parse(bake) error = %v; want ErrUnknownTask", err)
	}
}

func TestTitles(t *testing.T) {
	titles := Titles()
	if len(titles) != 12 {
		t.Fatalf("len(Titles()) = %d; want 12", len(titles))
	}
	for i, title := range titles {
		if FromTitle(title) != All()[i] {
			t.Errorf("FromTitle(%q) = %s; want %s", title, FromTitle(title), All()[i])
		}
	}
	if FromTitle("Bogus") != None {
		t.Error("FromTitle of an unknown label should be None")
	}
}

func TestInvalidTask(t *testing.T) {
	bogus := Task(77)
	if bogus.Valid() {
		t.Error("Task(77) should be invalid")
	}
	if bogus.Token() != "" || len(bogus.EnabledSlots()) != 0 {
		t.Error("invalid tasks should behave like None")
	}
	if bogus.String() != "Task(77)" {
		t.Errorf("String() = %q", bogus.String())
	}
}
