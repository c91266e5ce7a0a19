// Package app provides the session state and execution orchestration.
//
// This package serves two main purposes:
//
//  1. Session State (state.go):
//     The State struct owns the selected task, the nine field slots, the
//     assembled argument vector, the readiness flag and the status display.
//     Every state-changing call runs the update pipeline to completion:
//     enablement, validity, arguments, readiness. All access is thread-safe
//     via sync.RWMutex.
//
//  2. Execution (runner.go, reporter.go):
//     The Runner hands the assembled arguments to PIQUANT and routes the
//     outcome through a Reporter, so the GUI and the CLI can present runs
//     their own way.
package app

import (
	"image/color"
	"strings"
	"sync"

	"piquant-gui/internal/assemble"
	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/log"
	"piquant-gui/internal/task"
	"piquant-gui/internal/util"
	"piquant-gui/internal/validate"
)

// Version is the application version string.
const Version = "v0.1.0"

// Stage is a step of the update pipeline.
type Stage int

const (
	StageIdle Stage = iota
	StageEnablementUpdated
	StageValidityRecomputed
	StageArgumentsAssembled
	StageReadinessEvaluated
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageEnablementUpdated:
		return "EnablementUpdated"
	case StageValidityRecomputed:
		return "ValidityRecomputed"
	case StageArgumentsAssembled:
		return "ArgumentsAssembled"
	case StageReadinessEvaluated:
		return "ReadinessEvaluated"
	default:
		return "Unknown"
	}
}

// State holds the interactive session.
type State struct {
	mu      sync.RWMutex
	checker *validate.Checker

	// Selection
	Task   task.Task
	Fields field.Set

	// Derived by Update
	Args  []string
	Ready bool
	Stage Stage

	// Preloaded image (display only)
	ImagePath string

	// Execution
	Working bool
	Runs    int
	Results strings.Builder

	// Status
	MainStatus      string
	MainStatusColor color.RGBA

	// OnStage, when set, observes each pipeline stage as it completes.
	// It runs after the session lock is released and may call back into State.
	OnStage func(Stage)
	fired   []Stage
}

// NewState creates a session with no task selected.
func NewState() *State {
	return NewStateWithChecker(validate.New())
}

// NewStateWithChecker creates a session that validates paths with c.
func NewStateWithChecker(c *validate.Checker) *State {
	s := &State{checker: c}
	s.resetLocked()
	s.fired = nil
	return s
}

// Reset returns the session to its initial state: no task, empty values,
// every slot disabled and cleared results.
func (s *State) Reset() error {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Working {
		return errors.ErrWorking
	}
	s.resetLocked()
	return nil
}

func (s *State) resetLocked() {
	s.Task = task.None
	s.Fields = field.Set{}
	s.Results.Reset()
	s.Runs = 0
	s.ImagePath = ""
	s.MainStatus = "Select a task"
	s.MainStatusColor = util.WHITE
	s.updateLocked()
}

// SelectTask replaces the current task and runs the update pipeline.
func (s *State) SelectTask(t task.Task) error {
	if !t.Valid() {
		return errors.ErrUnknownTask
	}
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Working {
		return errors.ErrWorking
	}
	s.Task = t
	s.updateLocked()
	log.Debug("Task selected", log.String("task", t.String()), log.Bool("ready", s.Ready))
	return nil
}

// SetValue stores a slot value verbatim and runs the update pipeline.
func (s *State) SetValue(slot field.Slot, value string) error {
	if !slot.Valid() {
		return errors.NewValidationError(slot.String(), "no such slot")
	}
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Working {
		return errors.ErrWorking
	}
	s.Fields.SetValue(slot, value)
	s.updateLocked()
	return nil
}

// Update runs the pipeline against the current task and values. Use it
// after external changes such as files appearing on disk.
func (s *State) Update() {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateLocked()
}

// updateLocked runs every stage in order (must be called with lock held).
func (s *State) updateLocked() {
	s.Fields.DisableAll()
	s.Fields.Enable(s.Task.EnabledSlots())
	s.advance(StageEnablementUpdated)

	s.checker.RecomputeValidity(&s.Fields)
	s.advance(StageValidityRecomputed)

	s.Args = assemble.Build(s.Task, s.Fields.Values())
	s.advance(StageArgumentsAssembled)

	s.Ready = validate.IsReady(s.Task, &s.Fields)
	s.advance(StageReadinessEvaluated)

	s.advance(StageIdle)
}

func (s *State) advance(stage Stage) {
	s.Stage = stage
	if stage != StageIdle {
		log.Debug("Pipeline stage", log.String("stage", stage.String()), log.String("task", s.Task.String()))
	}
	s.fired = append(s.fired, stage)
}

// notify hands the stages fired since the last call to OnStage.
// Must be called without the lock held.
func (s *State) notify() {
	s.mu.Lock()
	stages, hook := s.fired, s.OnStage
	s.fired = nil
	s.mu.Unlock()
	if hook == nil {
		return
	}
	for _, stage := range stages {
		hook(stage)
	}
}

// Snapshot is a consistent copy of the session taken under the lock.
type Snapshot struct {
	Task    task.Task
	Fields  field.Set
	Args    []string
	Ready   bool
	Working bool
	Invalid []field.Slot
}

// Snapshot returns a copy of the current session.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Task:    s.Task,
		Fields:  s.Fields,
		Args:    append([]string(nil), s.Args...),
		Ready:   s.Ready,
		Working: s.Working,
		Invalid: validate.Invalid(s.Task, &s.Fields),
	}
}

// CurrentTask returns the selected task.
func (s *State) CurrentTask() task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Task
}

// Field returns one slot's record.
func (s *State) Field(slot field.Slot) field.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fields.Get(slot)
}

// Arguments returns a copy of the assembled argument vector.
func (s *State) Arguments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.Args...)
}

// IsReady reports whether Execute may run.
func (s *State) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Ready && !s.Working
}

// IsWorking returns true while PIQUANT is running.
func (s *State) IsWorking() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Working
}

// SetImage records the preloaded image path.
func (s *State) SetImage(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ImagePath = path
}

// Image returns the preloaded image path.
func (s *State) Image() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ImagePath
}

// SetStatus updates the main status display.
func (s *State) SetStatus(text string, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MainStatus = text
	s.MainStatusColor = c
}

// Status returns the main status text and color.
func (s *State) Status() (string, color.RGBA) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MainStatus, s.MainStatusColor
}

// AppendResults adds text to the results panel.
func (s *State) AppendResults(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Results.WriteString(text)
}

// ResultsText returns everything appended so far.
func (s *State) ResultsText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Results.String()
}

// ClearResults empties the results panel.
func (s *State) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Results.Reset()
}

// begin marks the session as working and returns the run snapshot.
func (s *State) begin() (Snapshot, error) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Working {
		return Snapshot{}, errors.ErrWorking
	}
	if s.Task == task.None {
		return Snapshot{}, errors.ErrNoTask
	}
	// Re-validate so files removed since the last edit are caught.
	s.updateLocked()
	if !s.Ready {
		return Snapshot{}, errors.ErrNotReady
	}
	s.Working = true
	s.Runs++
	return Snapshot{
		Task:    s.Task,
		Fields:  s.Fields,
		Args:    append([]string(nil), s.Args...),
		Ready:   true,
		Working: true,
	}, nil
}

// finish clears the working flag after a run.
func (s *State) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Working = false
}
