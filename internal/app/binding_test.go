package app

import (
	"strings"
	"testing"

	"piquant-gui/internal/field"
	"piquant-gui/internal/task"

	"fyne.io/fyne/v2/test"
)

func TestBoundStateDefaults(t *testing.T) {
	test.NewApp()
	b := NewBoundState()

	if s, _ := b.Run.MainStatus.Get(); s != "Select a task" {
		t.Errorf("MainStatus = %q", s)
	}
	if s, _ := b.Input.ImageLabel.Get(); s != "No image loaded" {
		t.Errorf("ImageLabel = %q", s)
	}
	for _, slot := range field.All() {
		if b.Input.Slot(slot) == nil {
			t.Errorf("binding for %s is nil", slot)
		}
	}
}

func TestSyncFromState(t *testing.T) {
	test.NewApp()
	b := NewBoundState()
	state := NewState()
	_ = state.SelectTask(task.CalculatePrimarySpectrum)
	_ = state.SetValue(field.ConfigFile, touch(t, t.TempDir(), "my config.msa"))
	state.AppendResults("done\n")
	state.SetImage("/data/run1/sample.tif")

	b.SyncFromState(state)

	if ready, _ := b.Run.Ready.Get(); !ready {
		t.Error("Ready binding should be true")
	}
	if cmd, _ := b.Run.Command.Get(); !strings.HasPrefix(cmd, "$ PIQUANT primary '") {
		t.Errorf("Command = %q", cmd)
	}
	if res, _ := b.Run.Results.Get(); res != "done\n" {
		t.Errorf("Results = %q", res)
	}
	if v, _ := b.Input.Slot(field.ConfigFile).Get(); v != state.Field(field.ConfigFile).Value {
		t.Errorf("config binding = %q", v)
	}
	if img, _ := b.Input.ImageLabel.Get(); !strings.HasSuffix(img, "sample.tif") {
		t.Errorf("ImageLabel = %q", img)
	}
}

func TestSyncToState(t *testing.T) {
	test.NewApp()
	b := NewBoundState()
	state := NewState()
	_ = state.SelectTask(task.Calibrate)

	_ = b.Input.Slot(field.ElementControls).Set("FE_K 1")
	if err := b.SyncToState(state); err != nil {
		t.Fatal(err)
	}
	if got := state.Field(field.ElementControls); got.Value != "FE_K 1" || !got.Valid {
		t.Errorf("element_controls = %+v", got)
	}

	state.Working = true
	_ = b.Input.Slot(field.ConfigFile).Set("changed")
	if err := b.SyncToState(state); err == nil {
		t.Error("SyncToState should fail while working")
	}
}

func TestBoundRunAppendAndReset(t *testing.T) {
	test.NewApp()
	b := NewBoundRun()
	b.AppendResults("a")
	b.AppendResults("b")
	if s, _ := b.Results.Get(); s != "ab" {
		t.Errorf("Results = %q; want ab", s)
	}
	b.Reset()
	if s, _ := b.Results.Get(); s != "" {
		t.Errorf("Results after Reset = %q", s)
	}
}
