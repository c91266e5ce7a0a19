// piquant-gui is a desktop front-end for PIQUANT, the X-ray fluorescence
// analysis tool. It collects the input files an analysis task needs,
// checks that they exist and runs PIQUANT with the assembled argument list.
//
// Build modes:
//   - Default build: GUI + CLI (requires graphics libraries)
//   - CLI-only build: go build -tags cli (no graphics dependencies)

package main

import "piquant-gui/internal/app"

// version is the application version displayed in the window title.
const version = app.Version

func main() {
	run()
}
