package app

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/task"
	"piquant-gui/internal/util"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewState(t *testing.T) {
	state := NewState()

	if state.Task != task.None {
		t.Errorf("Task = %s; want None", state.Task)
	}
	if state.Ready {
		t.Error("Ready should be false with no task")
	}
	if len(state.Args) != 0 {
		t.Errorf("Args = %q; want empty", state.Args)
	}
	if got := state.Fields.EnabledSlots(); len(got) != 0 {
		t.Errorf("enabled slots = %v; want none", got)
	}
	if state.Stage != StageIdle {
		t.Errorf("Stage = %s; want Idle", state.Stage)
	}
	if state.MainStatus != "Select a task" {
		t.Errorf("MainStatus = %q; want 'Select a task'", state.MainStatus)
	}
	if state.MainStatusColor != util.WHITE {
		t.Error("MainStatusColor should be WHITE")
	}
}

func TestUpdateStageOrder(t *testing.T) {
	state := NewState()
	var stages []Stage
	state.OnStage = func(s Stage) { stages = append(stages, s) }

	if err := state.SelectTask(task.PlotSpectrum); err != nil {
		t.Fatal(err)
	}

	want := []Stage{
		StageEnablementUpdated,
		StageValidityRecomputed,
		StageArgumentsAssembled,
		StageReadinessEvaluated,
		StageIdle,
	}
	if !reflect.DeepEqual(stages, want) {
		t.Errorf("stages = %v; want %v", stages, want)
	}
}

func TestOnStageMayReadState(t *testing.T) {
	state := NewState()
	var seen []task.Task
	state.OnStage = func(s Stage) {
		if s == StageIdle {
			seen = append(seen, state.CurrentTask())
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = state.SelectTask(task.Map)
		_ = state.SetValue(field.ConfigFile, "cfg.msa")
		state.Update()
		_ = state.Reset()
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("OnStage deadlocked calling back into State")
	}

	want := []task.Task{task.Map, task.Map, task.Map, task.None}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("tasks seen = %v; want %v", seen, want)
	}
}

func TestSelectTaskEnablement(t *testing.T) {
	state := NewState()

	for _, tk := range task.All() {
		if err := state.SelectTask(tk); err != nil {
			t.Fatal(err)
		}
		first := state.Fields.EnabledSlots()
		if !reflect.DeepEqual(first, tk.EnabledSlots()) {
			t.Errorf("%s enabled = %v; want %v", tk, first, tk.EnabledSlots())
		}

		// Idempotent
		state.Update()
		if second := state.Fields.EnabledSlots(); !reflect.DeepEqual(first, second) {
			t.Errorf("%s enabled changed on re-update: %v then %v", tk, first, second)
		}
	}

	if err := state.SelectTask(task.None); err != nil {
		t.Fatal(err)
	}
	if got := state.Fields.EnabledSlots(); len(got) != 0 {
		t.Errorf("None enabled = %v; want none", got)
	}
	if err := state.SelectTask(task.Task(42)); !errors.Is(err, errors.ErrUnknownTask) {
		t.Errorf("SelectTask(42) = %v; want ErrUnknownTask", err)
	}
}

func TestCalibrateScenario(t *testing.T) {
	dir := t.TempDir()
	cfg := touch(t, dir, "config.msa")
	calib := touch(t, dir, "calib.csv")
	std := touch(t, dir, "standards.csv")

	state := NewState()
	if err := state.SelectTask(task.Calibrate); err != nil {
		t.Fatal(err)
	}
	if state.IsReady() {
		t.Error("Calibrate should not be ready before inputs are set")
	}

	for slot, v := range map[field.Slot]string{
		field.ConfigFile:      cfg,
		field.CalibrationFile: calib,
		field.StandardsFile:   std,
		field.ElementControls: "FE_K 1",
	} {
		if err := state.SetValue(slot, v); err != nil {
			t.Fatal(err)
		}
	}

	if !state.IsReady() {
		t.Fatalf("Calibrate should be ready; invalid = %v", state.Snapshot().Invalid)
	}
	want := []string{"cal", cfg, calib, std, "FE_K 1"}
	if got := state.Arguments(); !reflect.DeepEqual(got, want) {
		t.Errorf("Arguments = %q; want %q", got, want)
	}

	// Removing a file drops readiness on the next update
	if err := os.Remove(std); err != nil {
		t.Fatal(err)
	}
	state.Update()
	if state.IsReady() {
		t.Error("Calibrate should not be ready once standards are gone")
	}
	if got := state.Snapshot().Invalid; !reflect.DeepEqual(got, []field.Slot{field.StandardsFile}) {
		t.Errorf("Invalid = %v; want [standards_file]", got)
	}
}

func TestNoTaskScenario(t *testing.T) {
	dir := t.TempDir()
	state := NewState()
	for _, slot := range field.All() {
		if err := state.SetValue(slot, touch(t, dir, slot.String())); err != nil {
			t.Fatal(err)
		}
	}

	snap := state.Snapshot()
	if snap.Ready {
		t.Error("no task must never be ready")
	}
	if len(snap.Args) != 0 {
		t.Errorf("Args = %q; want empty", snap.Args)
	}
	if len(snap.Fields.EnabledSlots()) != 0 {
		t.Error("every slot should be disabled with no task")
	}
}

func TestSetValueInvalidSlot(t *testing.T) {
	state := NewState()
	var ve *errors.ValidationError
	if err := state.SetValue(field.Slot(20), "x"); !errors.As(err, &ve) {
		t.Errorf("SetValue(20) = %v; want ValidationError", err)
	}
}

func TestWorkingBlocksChanges(t *testing.T) {
	state := NewState()
	state.Working = true

	if err := state.SelectTask(task.Map); !errors.Is(err, errors.ErrWorking) {
		t.Errorf("SelectTask while working = %v; want ErrWorking", err)
	}
	if err := state.SetValue(field.ConfigFile, "x"); !errors.Is(err, errors.ErrWorking) {
		t.Errorf("SetValue while working = %v; want ErrWorking", err)
	}
	if err := state.Reset(); !errors.Is(err, errors.ErrWorking) {
		t.Errorf("Reset while working = %v; want ErrWorking", err)
	}
	if state.IsReady() {
		t.Error("IsReady should be false while working")
	}
}

func TestStateReset(t *testing.T) {
	dir := t.TempDir()
	state := NewState()
	_ = state.SelectTask(task.CalculatePrimarySpectrum)
	_ = state.SetValue(field.ConfigFile, touch(t, dir, "c.msa"))
	state.AppendResults("output\n")
	state.SetImage("/data/sample.tif")
	state.SetStatus("Completed", util.GREEN)

	if !state.IsReady() {
		t.Fatal("primary spectrum should be ready with a config file")
	}
	if err := state.Reset(); err != nil {
		t.Fatal(err)
	}

	if state.CurrentTask() != task.None || state.IsReady() {
		t.Error("Reset should deselect the task")
	}
	if state.Field(field.ConfigFile).Value != "" {
		t.Error("Reset should clear slot values")
	}
	if state.ResultsText() != "" || state.Image() != "" {
		t.Error("Reset should clear results and image")
	}
	if text, c := state.Status(); text != "Select a task" || c != util.WHITE {
		t.Errorf("Status = %q, %v", text, c)
	}
}

func TestResults(t *testing.T) {
	state := NewState()
	state.AppendResults("a\n")
	state.AppendResults("b\n")
	if got := state.ResultsText(); got != "a\nb\n" {
		t.Errorf("ResultsText = %q", got)
	}
	state.ClearResults()
	if got := state.ResultsText(); got != "" {
		t.Errorf("ResultsText after clear = %q", got)
	}
}

func TestArgumentsAreCopies(t *testing.T) {
	state := NewState()
	_ = state.SelectTask(task.CalculatePrimarySpectrum)
	args := state.Arguments()
	args[0] = "mutated"
	if state.Arguments()[0] != "primary" {
		t.Error("Arguments should return a copy")
	}
}

func TestStageString(t *testing.T) {
	if StageReadinessEvaluated.String() != "ReadinessEvaluated" {
		t.Errorf("String() = %q", StageReadinessEvaluated.String())
	}
	if Stage(99).String() != "Unknown" {
		t.Errorf("String() = %q", Stage(99).String())
	}
}

func TestStateConcurrency(t *testing.T) {
	state := NewState()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_ = state.SelectTask(task.All()[i%12])
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = state.SetValue(field.Slot(i%field.Count), "value")
		}(i)
		go func() {
			defer wg.Done()
			_ = state.Snapshot()
			_ = state.IsReady()
		}()
	}
	wg.Wait()
}

func TestStateVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}
