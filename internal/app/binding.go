// Package app provides session state management with optional Fyne data binding support.
package app

import (
	"piquant-gui/internal/assemble"
	"piquant-gui/internal/field"
	"piquant-gui/internal/piquant"
	"piquant-gui/internal/util"

	"fyne.io/fyne/v2/data/binding"
)

// BoundRun provides Fyne data bindings for execution-related UI elements.
// This enables automatic UI updates without manual widget.SetText() calls.
type BoundRun struct {
	// Main status text (e.g., "Completed")
	MainStatus binding.String

	// Accumulated PIQUANT output
	Results binding.String

	// Command line preview (e.g., "$ PIQUANT cal config.msa ...")
	Command binding.String

	// Readiness and working flags
	Ready   binding.Bool
	Working binding.Bool
}

// NewBoundRun creates a new BoundRun with default values.
func NewBoundRun() *BoundRun {
	b := &BoundRun{
		MainStatus: binding.NewString(),
		Results:    binding.NewString(),
		Command:    binding.NewString(),
		Ready:      binding.NewBool(),
		Working:    binding.NewBool(),
	}
	_ = b.MainStatus.Set("Select a task")
	return b
}

// AppendResults appends text to the results binding.
func (b *BoundRun) AppendResults(text string) {
	cur, _ := b.Results.Get()
	_ = b.Results.Set(cur + text)
}

// Reset resets all bindings to default values.
func (b *BoundRun) Reset() {
	_ = b.MainStatus.Set("Select a task")
	_ = b.Results.Set("")
	_ = b.Command.Set("")
	_ = b.Ready.Set(false)
	_ = b.Working.Set(false)
}

// BoundInput provides Fyne data bindings for the slot editors.
type BoundInput struct {
	// One string per slot, indexed by field.Slot
	Values [field.Count]binding.String

	// Preloaded image label
	ImageLabel binding.String
}

// NewBoundInput creates a new BoundInput with empty values.
func NewBoundInput() *BoundInput {
	b := &BoundInput{ImageLabel: binding.NewString()}
	for i := range b.Values {
		b.Values[i] = binding.NewString()
	}
	_ = b.ImageLabel.Set("No image loaded")
	return b
}

// Slot returns the binding for one slot.
func (b *BoundInput) Slot(slot field.Slot) binding.String {
	return b.Values[slot]
}

// BoundState provides all Fyne data bindings for the application.
type BoundState struct {
	Run   *BoundRun
	Input *BoundInput
}

// NewBoundState creates a new BoundState with all bindings initialized.
func NewBoundState() *BoundState {
	return &BoundState{
		Run:   NewBoundRun(),
		Input: NewBoundInput(),
	}
}

// SyncFromState copies values from the session to the bindings.
// Call this after modifying State to update bound widgets.
func (b *BoundState) SyncFromState(s *State) {
	// Copy under the lock; binding listeners may call back into the session
	s.mu.RLock()
	status := s.MainStatus
	results := s.Results.String()
	ready := s.Ready && !s.Working
	working := s.Working
	args := append([]string(nil), s.Args...)
	values := s.Fields.Values()
	image := s.ImagePath
	s.mu.RUnlock()

	_ = b.Run.MainStatus.Set(status)
	_ = b.Run.Results.Set(results)
	_ = b.Run.Ready.Set(ready)
	_ = b.Run.Working.Set(working)
	if len(args) == 0 {
		_ = b.Run.Command.Set("")
	} else {
		_ = b.Run.Command.Set("$ " + piquant.Name + " " + assemble.Quote(args))
	}

	for i := range b.Input.Values {
		// Skip unchanged values so editing entries keep their cursor
		if cur, _ := b.Input.Values[i].Get(); cur != values[i] {
			_ = b.Input.Values[i].Set(values[i])
		}
	}
	if image == "" {
		_ = b.Input.ImageLabel.Set("No image loaded")
	} else {
		_ = b.Input.ImageLabel.Set("Image: " + util.ShortPath(image))
	}
}

// SyncToState copies slot values from the bindings into the session.
// Call this before executing to pick up edits that have not been committed.
func (b *BoundState) SyncToState(s *State) error {
	for _, slot := range field.All() {
		v, _ := b.Input.Values[slot].Get()
		if s.Field(slot).Value == v {
			continue
		}
		if err := s.SetValue(slot, v); err != nil {
			return err
		}
	}
	return nil
}
