package ui

import (
	"context"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/log"
	"piquant-gui/internal/task"

	"fyne.io/fyne/v2"
)

// onTaskSelected handles a radio group change.
func (a *App) onTaskSelected(title string) {
	t := task.FromTitle(title)
	if t == a.State.CurrentTask() {
		return
	}
	if err := a.State.SelectTask(t); err != nil {
		log.Debug("Task change rejected", log.Err(err))
	}
	a.updateUIState()
}

// onSlotChanged stores an edited slot value and refreshes the form.
func (a *App) onSlotChanged(slot field.Slot, value string) {
	if a.State.Field(slot).Value == value {
		return
	}
	if err := a.State.SetValue(slot, value); err != nil {
		log.Debug("Slot change rejected", log.String("slot", slot.String()), log.Err(err))
	}
	a.updateUIState()
}

// onClickExecute handles the Execute button click.
func (a *App) onClickExecute() {
	// Pick up entry edits that have not reached the session yet
	if a.bound != nil {
		if err := a.bound.SyncToState(a.State); err != nil {
			a.showError(err)
			return
		}
	}
	if !a.State.IsReady() {
		a.updateUIState()
		return
	}
	a.startRun()
}

// startRun executes PIQUANT on a goroutine so the window keeps repainting.
func (a *App) startRun() {
	go func() {
		a.execute(context.Background())
		fyne.Do(a.updateUIState)
	}()
}

// execute runs PIQUANT synchronously and logs the outcome.
func (a *App) execute(ctx context.Context) error {
	out, err := a.runner.Execute(ctx)
	switch {
	case err == nil:
		log.Info("Run finished", log.String("run", out.RunID), log.Int("exit_code", out.Result.ExitCode))
	case errors.Is(err, errors.ErrWorking):
		log.Debug("Run already in progress")
	case errors.IsNotReady(err):
		log.Debug("Run refused", log.Err(err))
	default:
		log.Warn("Run failed", log.Err(err))
	}
	return err
}

// onClickCancel stops the run in progress.
func (a *App) onClickCancel() {
	a.runner.Cancel()
}
