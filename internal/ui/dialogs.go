package ui

import (
	"os"
	"path/filepath"

	"piquant-gui/internal/field"
	"piquant-gui/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// browse opens a file picker for a path slot and stores the chosen file.
func (a *App) browse(slot field.Slot) {
	openDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return
		}
		// Close immediately - only the path is needed
		reader.Close()

		path := reader.URI().Path()
		a.onSlotChanged(slot, path)
	}, a.Window)

	a.setStartDir(openDialog, a.startDir(a.State.Field(slot).Value))
	a.showFileDialogWithResize(openDialog, fyne.NewSize(600, 450))
}

// openImage picks the image whose path is shown in the status bar.
func (a *App) openImage() {
	openDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return
		}
		reader.Close()

		path := reader.URI().Path()
		a.State.SetImage(path)
		log.Info("Image opened", log.String("path", path))
		a.updateUIState()
	}, a.Window)

	a.setStartDir(openDialog, a.startDir(a.State.Image()))
	a.showFileDialogWithResize(openDialog, fyne.NewSize(600, 450))
}

// startDir picks the directory a file dialog opens in: the directory of
// the current value, then the configured start directory, then the
// working directory.
func (a *App) startDir(current string) string {
	if current != "" {
		dir := filepath.Dir(current)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if a.cfg != nil && a.cfg.StartDir != "" {
		return a.cfg.StartDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

func (a *App) setStartDir(d *dialog.FileDialog, dir string) {
	if dir == "" {
		return
	}
	uri := storage.NewFileURI(dir)
	if listable, err := storage.ListerForURI(uri); err == nil {
		d.SetLocation(listable)
	}
}

// showFileDialogWithResize shows a file dialog sized to fit the window.
func (a *App) showFileDialogWithResize(d *dialog.FileDialog, size fyne.Size) {
	if win := a.Window.Canvas().Size(); win.Width > 0 && win.Height > 0 {
		size = fyne.NewSize(min(size.Width, win.Width), min(size.Height, win.Height))
	}
	d.Resize(size)
	d.Show()
}

// showError reports an error in a modal dialog.
func (a *App) showError(err error) {
	log.Warn("Showing error", log.Err(err))
	dialog.ShowError(err, a.Window)
}

// confirmQuit asks whether to stop a run in progress and quit.
func (a *App) confirmQuit() {
	dialog.ShowConfirm("Quit", "PIQUANT is still running. Stop it and quit?", func(ok bool) {
		if !ok {
			return
		}
		a.runner.Cancel()
		a.quit()
	}, a.Window)
}
