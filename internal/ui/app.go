// Package ui provides the PIQUANT front-end graphical user interface using Fyne.
//
// The window is a single form:
//
//   - A task radio group listing every PIQUANT operation
//   - Nine slot rows (entry, Browse button, validity ring), enabled per task
//   - A command preview and an Execute button gated on readiness
//   - A results panel that accumulates PIQUANT output across runs
//
// The session lives in internal/app.State. Every edit runs the session's
// update pipeline and the window is then refreshed from a snapshot. Runs
// happen on a goroutine so the window keeps repainting; the reporter posts
// updates back to the UI goroutine with fyne.Do.
package ui

import (
	"image/color"

	"piquant-gui/internal/app"
	"piquant-gui/internal/config"
	"piquant-gui/internal/field"
	"piquant-gui/internal/log"
	"piquant-gui/internal/task"
	"piquant-gui/internal/util"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AppID is the Fyne application identifier (used for preferences storage).
const AppID = "org.piquant.gui"

// Options configure a GUI session.
type Options struct {
	Image  string         // Image to preload, already checked by the caller
	Config *config.Config // nil means built-in defaults
	Exec   app.ExecFunc   // nil means piquant.Run
}

// slotRow holds the widgets of one slot.
type slotRow struct {
	slot      field.Slot
	label     *widget.Label
	entry     *widget.Entry
	browse    *TooltipButton
	indicator *ValidationIndicator
}

// App represents the main UI application.
type App struct {
	Version string
	Window  fyne.Window

	// Application state
	State  *app.State
	runner *app.Runner
	cfg    *config.Config

	fyneApp fyne.App
	bound   *app.BoundState

	// Widgets
	taskGroup     *widget.RadioGroup
	rows          [field.Count]*slotRow
	commandLabel  *widget.Label
	imageLabel    *widget.Label
	resultsLabel  *widget.Label
	resultsScroll *container.Scroll
	statusLabel   *ColoredLabel
	executeButton *widget.Button
	cancelButton  *widget.Button
	clearButton   *widget.Button
}

// NewApp creates a new UI application.
func NewApp(version string, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}

	state := app.NewState()
	if opts.Image != "" {
		state.SetImage(opts.Image)
	}

	a := &App{
		Version: version,
		State:   state,
		cfg:     cfg,
	}
	a.runner = app.NewRunner(state, a.CreateReporter(), app.Options{
		Executable: cfg.Executable,
		WorkingDir: cfg.WorkingDir,
		Timeout:    cfg.Timeout,
		Exec:       opts.Exec,
	})
	return a, nil
}

// Run starts the UI application and blocks until the window closes.
func (a *App) Run() {
	a.build(fyneapp.NewWithID(AppID))
	a.Window.ShowAndRun()
}

// build creates the window and its content on fa.
func (a *App) build(fa fyne.App) {
	a.fyneApp = fa
	fa.Settings().SetTheme(NewCompactTheme())
	a.bound = app.NewBoundState()

	a.Window = fa.NewWindow("PIQUANT " + a.Version)
	a.Window.SetMainMenu(a.buildMenu())
	a.Window.SetContent(a.buildUI())
	a.Window.Resize(fyne.NewSize(760, 640))
	a.Window.SetCloseIntercept(a.onClose)

	a.updateUIState()
}

// CreateReporter creates a UIReporter that forwards run progress to the window.
func (a *App) CreateReporter() *app.UIReporter {
	return app.NewUIReporter(
		func(string, color.RGBA) {
			fyne.Do(a.updateStatus)
		},
		func(text string) {
			if a.bound != nil {
				// Use binding - automatically thread-safe and updates bound widgets
				a.bound.Run.AppendResults(text)
			}
			fyne.Do(func() {
				if a.resultsScroll != nil {
					a.resultsScroll.ScrollToBottom()
				}
			})
		},
		func(bool) {
			fyne.Do(a.updateUIState)
		},
		func() {
			fyne.Do(a.updateUIState)
		},
	)
}

func (a *App) buildMenu() *fyne.MainMenu {
	open := fyne.NewMenuItem("Open image...", a.openImage)
	open.Icon = theme.FolderOpenIcon()
	quit := fyne.NewMenuItem("Quit", a.onClose)
	quit.IsQuit = true
	return fyne.NewMainMenu(fyne.NewMenu("File", open, fyne.NewMenuItemSeparator(), quit))
}

// buildUI lays out the form.
func (a *App) buildUI() fyne.CanvasObject {
	a.taskGroup = widget.NewRadioGroup(task.Titles(), a.onTaskSelected)
	a.taskGroup.Required = false
	taskCard := widget.NewCard("Task", "", a.taskGroup)

	form := container.New(layout.NewFormLayout())
	for _, slot := range field.All() {
		row := a.newSlotRow(slot)
		a.rows[slot] = row
		form.Add(row.label)
		form.Add(container.NewBorder(nil, nil, nil,
			container.NewHBox(row.browse, row.indicator), row.entry))
	}
	inputCard := widget.NewCard("Inputs", "", form)

	a.commandLabel = widget.NewLabelWithData(a.bound.Run.Command)
	a.commandLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.commandLabel.Truncation = fyne.TextTruncateEllipsis

	a.executeButton = widget.NewButtonWithIcon("Execute", theme.MediaPlayIcon(), a.onClickExecute)
	a.executeButton.Importance = widget.HighImportance
	a.cancelButton = widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), a.onClickCancel)
	a.clearButton = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), a.resetUI)

	a.statusLabel = NewColoredLabel("", util.WHITE)
	a.imageLabel = widget.NewLabelWithData(a.bound.Input.ImageLabel)
	a.imageLabel.Truncation = fyne.TextTruncateEllipsis

	actions := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.clearButton, a.cancelButton, a.executeButton), a.commandLabel)
	statusBar := container.NewBorder(nil, nil, a.statusLabel, nil, a.imageLabel)

	a.resultsLabel = widget.NewLabelWithData(a.bound.Run.Results)
	a.resultsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.resultsLabel.Wrapping = fyne.TextWrapBreak
	a.resultsLabel.Selectable = true
	a.resultsScroll = container.NewVScroll(a.resultsLabel)
	a.resultsScroll.SetMinSize(fyne.NewSize(0, 160))
	resultsCard := widget.NewCard("Results", "", a.resultsScroll)

	top := container.NewVBox(
		container.NewGridWithColumns(2, taskCard, inputCard),
		actions,
		statusBar,
		widget.NewSeparator(),
	)
	return container.NewBorder(top, nil, nil, nil, resultsCard)
}

func (a *App) newSlotRow(slot field.Slot) *slotRow {
	row := &slotRow{
		slot:      slot,
		label:     widget.NewLabel(slot.Label() + ":"),
		entry:     widget.NewEntryWithData(a.bound.Input.Slot(slot)),
		indicator: NewValidationIndicator(),
	}
	row.entry.OnChanged = func(value string) {
		a.onSlotChanged(slot, value)
	}
	if slot.IsPath() {
		row.entry.SetPlaceHolder("Path to " + slot.String())
		row.browse = NewTooltipButton("Browse", "Choose the "+slot.Label()+" with a file picker", func() {
			a.browse(slot)
		})
	} else {
		// Text slots have no file picker
		row.browse = NewTooltipButton("Browse", "", nil)
		row.browse.Hide()
	}
	switch slot.Kind() {
	case field.KindText:
		row.entry.SetPlaceHolder("e.g. FE_K 1")
	case field.KindFreeText:
		row.entry.SetPlaceHolder("Additional PIQUANT arguments")
	}
	return row
}

// active reports whether a slot takes part in the form for the given snapshot.
// Optional and free-text slots are active for every task; nothing is active
// until a task is chosen.
func active(slot field.Slot, snap app.Snapshot) bool {
	if snap.Task == task.None {
		return false
	}
	switch slot.Kind() {
	case field.KindOptionalPath, field.KindFreeText:
		return true
	}
	return snap.Fields[slot].Enabled
}

// editable reports whether a slot accepts input. Nothing does during a run.
func editable(slot field.Slot, snap app.Snapshot) bool {
	return !snap.Working && active(slot, snap)
}

// updateUIState refreshes every widget from the session. Must run on the UI goroutine.
func (a *App) updateUIState() {
	if a.bound == nil {
		return
	}
	a.bound.SyncFromState(a.State)
	snap := a.State.Snapshot()

	// Assigned directly so OnChanged does not fire again
	selected := ""
	if snap.Task != task.None {
		selected = snap.Task.Title()
	}
	if a.taskGroup.Selected != selected {
		a.taskGroup.Selected = selected
		a.taskGroup.Refresh()
	}
	setEnabled(a.taskGroup, !snap.Working)

	for _, row := range a.rows {
		on := editable(row.slot, snap)
		setEnabled(row.entry, on)
		setEnabled(row.browse, on)
		if active(row.slot, snap) {
			row.indicator.SetHint(snap.Fields[row.slot].Hint)
		} else {
			row.indicator.SetHint(field.HintNone)
		}
	}

	setEnabled(a.executeButton, snap.Ready && !snap.Working)
	setEnabled(a.cancelButton, snap.Working)
	setEnabled(a.clearButton, !snap.Working)

	a.updateStatus()
}

func (a *App) updateStatus() {
	if a.statusLabel == nil {
		return
	}
	text, c := a.State.Status()
	a.statusLabel.SetText(text)
	a.statusLabel.SetColor(c)
}

// resetUI clears the session and all inputs.
func (a *App) resetUI() {
	image := a.State.Image()
	if err := a.State.Reset(); err != nil {
		log.Warn("Cannot reset while working", log.Err(err))
		return
	}
	// The preloaded image outlives a reset
	a.State.SetImage(image)
	if a.bound != nil {
		a.bound.Run.Reset()
	}
	a.updateUIState()
}

// onClose asks for confirmation before abandoning a run in progress.
func (a *App) onClose() {
	if !a.State.IsWorking() {
		a.quit()
		return
	}
	a.confirmQuit()
}

func (a *App) quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

type enabler interface {
	Enable()
	Disable()
	Disabled() bool
}

func setEnabled(w enabler, on bool) {
	if on == !w.Disabled() {
		return
	}
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}
