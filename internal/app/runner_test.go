package app

import (
	"context"
	"fmt"
	"image/color"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/piquant"
	"piquant-gui/internal/task"
	"piquant-gui/internal/util"

	"github.com/google/uuid"
)

// recorder collects everything a Runner reports.
type recorder struct {
	mu       sync.Mutex
	statuses []string
	colors   []color.RGBA
	output   strings.Builder
	working  []bool
}

func (r *recorder) SetStatus(text string, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, text)
	r.colors = append(r.colors, c)
}

func (r *recorder) AppendOutput(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output.WriteString(text)
}

func (r *recorder) SetWorking(w bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.working = append(r.working, w)
}

func (r *recorder) Update() {}

func (r *recorder) lastStatus() (string, color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return "", color.RGBA{}
	}
	return r.statuses[len(r.statuses)-1], r.colors[len(r.colors)-1]
}

// readyState returns a session with Calculate primary spectrum ready to run.
func readyState(t *testing.T) *State {
	t.Helper()
	state := NewState()
	if err := state.SelectTask(task.CalculatePrimarySpectrum); err != nil {
		t.Fatal(err)
	}
	if err := state.SetValue(field.ConfigFile, touch(t, t.TempDir(), "config.msa")); err != nil {
		t.Fatal(err)
	}
	if !state.IsReady() {
		t.Fatal("state should be ready")
	}
	return state
}

func TestExecuteSuccess(t *testing.T) {
	state := readyState(t)
	_ = state.SetValue(field.CLIArgs, "-v --seed '1 2'")
	rec := &recorder{}

	var got piquant.Command
	runner := NewRunner(state, rec, Options{
		Executable: "/opt/PIQUANT",
		WorkingDir: "/tmp",
		Timeout:    time.Minute,
		Exec: func(ctx context.Context, cmd piquant.Command) (*piquant.Result, error) {
			if !state.IsWorking() {
				t.Error("state should be working during the run")
			}
			got = cmd
			return &piquant.Result{Output: "Spectrum computed", ExitCode: 0, Duration: 1500 * time.Millisecond}, nil
		},
	})

	out, err := runner.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	cfg := state.Field(field.ConfigFile).Value
	wantArgs := []string{"primary", cfg, "", "-v", "--seed", "1 2"}
	if !reflect.DeepEqual(got.Args, wantArgs) {
		t.Errorf("Args = %q; want %q", got.Args, wantArgs)
	}
	if got.Path != "/opt/PIQUANT" || got.Dir != "/tmp" || got.Timeout != time.Minute {
		t.Errorf("Command = %+v", got)
	}
	if _, err := uuid.Parse(out.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", out.RunID, err)
	}

	results := state.ResultsText()
	for _, want := range []string{"Calculate primary spectrum", out.RunID, "Spectrum computed\n", "exit code 0 after 1.500s"} {
		if !strings.Contains(results, want) {
			t.Errorf("results missing %q:\n%s", want, results)
		}
	}
	if rec.output.String() != results {
		t.Error("reporter output should mirror the results panel")
	}
	if text, c := rec.lastStatus(); text != "Completed" || c != util.GREEN {
		t.Errorf("status = %q, %v; want Completed, GREEN", text, c)
	}
	if !reflect.DeepEqual(rec.working, []bool{true, false}) {
		t.Errorf("working = %v; want [true false]", rec.working)
	}
	if state.IsWorking() {
		t.Error("state should not be working after the run")
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	state := readyState(t)
	rec := &recorder{}
	runner := NewRunner(state, rec, Options{
		Executable: "/opt/PIQUANT",
		Exec: func(context.Context, piquant.Command) (*piquant.Result, error) {
			return &piquant.Result{Output: "no standards\n", ExitCode: 2}, nil
		},
	})

	out, err := runner.Execute(context.Background())
	if err != nil {
		t.Fatalf("a non-zero exit should not be an error: %v", err)
	}
	if out.Result.ExitCode != 2 {
		t.Errorf("ExitCode = %d; want 2", out.Result.ExitCode)
	}
	if !strings.Contains(state.ResultsText(), "no standards\n--- exit code 2") {
		t.Errorf("results = %q", state.ResultsText())
	}
	if text, c := rec.lastStatus(); text != "PIQUANT exited with code 2" || c != util.YELLOW {
		t.Errorf("status = %q, %v", text, c)
	}
}

func TestExecuteFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"missing", errors.NewExecError("/x", fmt.Errorf("%w: %w", errors.ErrSpawnFailed, errors.ErrExecutableNotFound)), "PIQUANT executable not found"},
		{"permission", errors.NewExecError("/x", errors.ErrSpawnFailed), "Failed to launch PIQUANT"},
		{"binary output", errors.NewExecError("/x", errors.ErrNonUTF8Output), "PIQUANT output is not readable text"},
		{"timeout", errors.NewExecError("/x", context.DeadlineExceeded), "PIQUANT timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := readyState(t)
			rec := &recorder{}
			runner := NewRunner(state, rec, Options{
				Executable: "/x",
				Exec: func(context.Context, piquant.Command) (*piquant.Result, error) {
					return nil, tt.err
				},
			})

			_, err := runner.Execute(context.Background())
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v; want %v", err, tt.err)
			}
			if text, c := rec.lastStatus(); text != tt.status || c != util.RED {
				t.Errorf("status = %q, %v; want %q, RED", text, c, tt.status)
			}
			if !strings.Contains(state.ResultsText(), "error: ") {
				t.Errorf("failure should be visible in results: %q", state.ResultsText())
			}
			if state.IsWorking() {
				t.Error("a failed run must leave the session interactive")
			}
			if !state.IsReady() {
				t.Error("a failed run must not change readiness")
			}
		})
	}
}

func TestExecuteNotReady(t *testing.T) {
	called := false
	exec := func(context.Context, piquant.Command) (*piquant.Result, error) {
		called = true
		return &piquant.Result{}, nil
	}

	state := NewState()
	runner := NewRunner(state, nil, Options{Exec: exec})
	if _, err := runner.Execute(context.Background()); !errors.Is(err, errors.ErrNoTask) {
		t.Errorf("no task: err = %v; want ErrNoTask", err)
	}

	_ = state.SelectTask(task.PlotSpectrum)
	if _, err := runner.Execute(context.Background()); !errors.Is(err, errors.ErrNotReady) {
		t.Errorf("missing inputs: err = %v; want ErrNotReady", err)
	}
	if called {
		t.Error("PIQUANT must not run when the session is not ready")
	}
	if state.Runs != 0 {
		t.Errorf("Runs = %d; want 0", state.Runs)
	}
}

func TestExecuteBadExtraArgs(t *testing.T) {
	state := readyState(t)
	_ = state.SetValue(field.CLIArgs, "'unterminated")
	runner := NewRunner(state, nil, Options{
		Exec: func(context.Context, piquant.Command) (*piquant.Result, error) {
			t.Error("PIQUANT must not run with malformed extra arguments")
			return nil, nil
		},
	})

	_, err := runner.Execute(context.Background())
	var ve *errors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "cli_args" {
		t.Errorf("err = %v; want cli_args ValidationError", err)
	}
	if !state.IsReady() {
		t.Error("malformed extra arguments should not affect readiness")
	}
}

func TestExecuteRejectsConcurrentRun(t *testing.T) {
	state := readyState(t)
	started := make(chan struct{})
	release := make(chan struct{})
	runner := NewRunner(state, nil, Options{
		Executable: "/opt/PIQUANT",
		Exec: func(context.Context, piquant.Command) (*piquant.Result, error) {
			close(started)
			<-release
			return &piquant.Result{}, nil
		},
	})

	done := make(chan error, 1)
	go func() {
		_, err := runner.Execute(context.Background())
		done <- err
	}()
	<-started

	if !runner.IsWorking() {
		t.Error("runner should report working")
	}
	if _, err := runner.Execute(context.Background()); !errors.Is(err, errors.ErrWorking) {
		t.Errorf("second run err = %v; want ErrWorking", err)
	}
	if err := state.SetValue(field.ConfigFile, ""); !errors.Is(err, errors.ErrWorking) {
		t.Errorf("edit during run err = %v; want ErrWorking", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if state.Runs != 1 {
		t.Errorf("Runs = %d; want 1", state.Runs)
	}
}

func TestCancel(t *testing.T) {
	state := readyState(t)
	started := make(chan struct{})
	runner := NewRunner(state, nil, Options{
		Executable: "/opt/PIQUANT",
		Exec: func(ctx context.Context, _ piquant.Command) (*piquant.Result, error) {
			close(started)
			<-ctx.Done()
			return nil, errors.NewExecError("/opt/PIQUANT", ctx.Err())
		},
	})

	// Cancelling with nothing running is a no-op
	runner.Cancel()

	done := make(chan error, 1)
	go func() {
		_, err := runner.Execute(context.Background())
		done <- err
	}()
	<-started
	runner.Cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
	if text, _ := state.Status(); text != "Run cancelled" {
		t.Errorf("status = %q; want 'Run cancelled'", text)
	}
}
