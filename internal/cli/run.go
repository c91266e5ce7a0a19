package cli

import (
	"fmt"
	"io"

	"piquant-gui/internal/app"
	"piquant-gui/internal/assemble"
	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/piquant"
	"piquant-gui/internal/task"

	"github.com/spf13/cobra"
)

func init() {
	// Silence Cobra's default error/usage printing - we handle it ourselves
	runCmd.SilenceErrors = true
	runCmd.SilenceUsage = true
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one PIQUANT task from the terminal",
	Long: `Run one analysis task without opening the window.

The task is selected by token (cal, quant, map, ...), by name or by title.
Only the inputs the task uses are checked; when any is missing the run is
refused and every relevant input is listed with its status.

Examples:
  # Calibrate from standards
  piquant-gui run --task cal --config-file cfg.msa --calibration calib.csv \
      --standards standards.csv --elements "FE_K 1"

  # Show the command without running it
  piquant-gui run --task primary --config-file cfg.msa --dry-run

  # Pass extra arguments through to PIQUANT
  piquant-gui run --task plot --config-file cfg.msa --spectrum s.msa --extra "-v"`,
	RunE: runRun,
}

// Run flags
var (
	runTask   string
	runSlots  [field.Count]string
	runDryRun bool
	runQuiet  bool
)

// slotFlags maps each slot to its flag name.
var slotFlags = [field.Count]string{
	field.ConfigFile:      "config-file",
	field.CalibrationFile: "calibration",
	field.StandardsFile:   "standards",
	field.SpectrumFile:    "spectrum",
	field.MapFile:         "map",
	field.PlotFile:        "plot",
	field.LogFile:         "log",
	field.ElementControls: "elements",
	field.CLIArgs:         "extra",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runTask, "task", "t", "", "Task token, name or title (see 'tasks')")
	for _, slot := range field.All() {
		runCmd.Flags().StringVar(&runSlots[slot], slotFlags[slot], "", slot.Label())
	}
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false, "Print the PIQUANT command instead of running it")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Suppress status output")

	_ = runCmd.MarkFlagRequired("task")
}

func runRun(cmd *cobra.Command, args []string) error {
	tk, err := task.Parse(runTask)
	if err != nil {
		return err
	}
	if tk == task.None {
		return errors.ErrNoTask
	}

	state := app.NewState()
	if err := state.SelectTask(tk); err != nil {
		return err
	}
	for _, slot := range field.All() {
		if runSlots[slot] == "" {
			continue
		}
		if err := state.SetValue(slot, runSlots[slot]); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	snap := state.Snapshot()
	if !snap.Ready {
		printSlotStatus(errOut, isTerminal(errOut), snap)
		return errors.Wrap(errors.ErrNotReady, tk.Title())
	}

	cfg := currentSettings()
	if runDryRun {
		argv, err := assemble.Command(tk, snap.Fields.Values())
		if err != nil {
			return err
		}
		path, err := piquant.Resolve(cfg.Executable)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, assemble.Quote(append([]string{path}, argv...)))
		return nil
	}

	reporter := NewReporter(out, errOut, runQuiet)
	runner := app.NewRunner(state, reporter, app.Options{
		Executable: cfg.Executable,
		WorkingDir: cfg.WorkingDir,
		Timeout:    cfg.Timeout,
	})
	outcome, err := runner.Execute(cmd.Context())
	if err != nil {
		return err
	}
	if !outcome.Result.Success() {
		return &ExitError{Code: outcome.Result.ExitCode}
	}
	return nil
}

// printSlotStatus lists every input the task checks, marking the invalid ones.
func printSlotStatus(w io.Writer, styled bool, snap app.Snapshot) {
	fmt.Fprintln(w, render(styled, TitleStyle, snap.Task.Title()+" is not ready:"))
	for _, slot := range snap.Task.ReadySlots() {
		f := snap.Fields.Get(slot)
		mark := render(styled, SuccessStyle, "ok     ")
		if !f.Valid {
			mark = render(styled, ErrorStyle, "missing")
		}
		value := f.Value
		if value == "" {
			value = render(styled, MutedStyle, "(empty)")
		}
		fmt.Fprintf(w, "  %s  --%-12s %s\n", mark, slotFlags[slot], value)
	}
}
