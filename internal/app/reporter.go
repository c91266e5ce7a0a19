package app

import (
	"image/color"
)

// Reporter receives run progress from the Runner.
type Reporter interface {
	SetStatus(text string, c color.RGBA)
	AppendOutput(text string)
	SetWorking(working bool)
	Update()
}

// Ensure UIReporter implements Reporter
var _ Reporter = (*UIReporter)(nil)

// UIReporter bridges the Runner with a user interface through callbacks.
type UIReporter struct {
	// Callbacks for UI updates (set by main)
	OnStatus  func(text string, c color.RGBA)
	OnOutput  func(text string)
	OnWorking func(working bool)
	OnUpdate  func()
}

// NewUIReporter creates a new UI reporter with the given callbacks.
func NewUIReporter(
	onStatus func(string, color.RGBA),
	onOutput func(string),
	onWorking func(bool),
	onUpdate func(),
) *UIReporter {
	return &UIReporter{
		OnStatus:  onStatus,
		OnOutput:  onOutput,
		OnWorking: onWorking,
		OnUpdate:  onUpdate,
	}
}

// SetStatus implements Reporter.
func (r *UIReporter) SetStatus(text string, c color.RGBA) {
	if r.OnStatus != nil {
		r.OnStatus(text, c)
	}
}

// AppendOutput implements Reporter.
func (r *UIReporter) AppendOutput(text string) {
	if r.OnOutput != nil {
		r.OnOutput(text)
	}
}

// SetWorking implements Reporter.
func (r *UIReporter) SetWorking(working bool) {
	if r.OnWorking != nil {
		r.OnWorking(working)
	}
}

// Update implements Reporter.
func (r *UIReporter) Update() {
	if r.OnUpdate != nil {
		r.OnUpdate()
	}
}

