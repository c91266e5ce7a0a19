package app

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"piquant-gui/internal/assemble"
	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/log"
	"piquant-gui/internal/piquant"
	"piquant-gui/internal/util"

	"github.com/google/uuid"
)

// ExecFunc runs one PIQUANT command. piquant.Run by default.
type ExecFunc func(ctx context.Context, cmd piquant.Command) (*piquant.Result, error)

// Options configure how the Runner invokes PIQUANT.
type Options struct {
	Executable string        // Override; empty means the bundled executable
	WorkingDir string        // Empty means the current directory
	Timeout    time.Duration // Zero means no limit
	Exec       ExecFunc
}

// Outcome describes a finished run.
type Outcome struct {
	RunID  string
	Path   string
	Args   []string
	Result *piquant.Result
}

// Runner executes the session's assembled command.
type Runner struct {
	state    *State
	reporter Reporter
	opts     Options

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRunner creates a new runner for state. A nil reporter discards updates.
func NewRunner(state *State, reporter Reporter, opts Options) *Runner {
	if reporter == nil {
		reporter = NewUIReporter(nil, nil, nil, nil)
	}
	if opts.Exec == nil {
		opts.Exec = piquant.Run
	}
	return &Runner{state: state, reporter: reporter, opts: opts}
}

// Execute runs PIQUANT with the current arguments and appends the output to
// the results panel. It refuses to start unless the session is ready.
// A non-zero exit status is reported but is not an error.
func (r *Runner) Execute(ctx context.Context) (*Outcome, error) {
	snap, err := r.state.begin()
	if err != nil {
		r.status(notStartedMessage(err), util.YELLOW)
		return nil, err
	}
	defer r.state.finish()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		cancel()
	}()

	r.reporter.SetWorking(true)
	defer r.reporter.SetWorking(false)

	id := uuid.NewString()
	logger := log.GetLogger().WithFields(log.String("run", id), log.String("task", snap.Task.String()))

	extra, err := assemble.Extra(snap.Fields.Value(field.CLIArgs))
	if err != nil {
		logger.Warn("Invalid extra arguments", log.Err(err))
		r.status("Invalid extra arguments", util.RED)
		r.output(fmt.Sprintf("error: %v\n", err))
		return nil, err
	}
	args := append(snap.Args, extra...)

	path, err := piquant.Resolve(r.opts.Executable)
	if err != nil {
		logger.Error("Cannot locate PIQUANT", log.Err(err))
		r.status("Cannot locate PIQUANT", util.RED)
		r.output(fmt.Sprintf("error: %v\n", err))
		return nil, err
	}

	out := &Outcome{RunID: id, Path: path, Args: args}
	r.output(header(id, snap, args, time.Now()))
	r.status("Running "+snap.Task.Title()+"...", util.WHITE)
	logger.Info("Running PIQUANT", log.String("path", path), log.Strings("args", args))

	res, err := r.opts.Exec(ctx, piquant.Command{
		Path:    path,
		Args:    args,
		Dir:     r.opts.WorkingDir,
		Timeout: r.opts.Timeout,
	})
	if err != nil {
		logger.Error("PIQUANT run failed", log.Err(err))
		r.status(failureMessage(err), util.RED)
		r.output(fmt.Sprintf("error: %v\n\n", err))
		return out, err
	}
	out.Result = res

	text := res.Output
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	r.output(text + fmt.Sprintf("--- exit code %d after %s (%s of output) ---\n\n",
		res.ExitCode, util.Elapsed(res.Duration), util.Sizeify(int64(len(res.Output)))))

	if res.Success() {
		logger.Info("PIQUANT finished", log.Duration("elapsed", res.Duration))
		r.status("Completed", util.GREEN)
	} else {
		logger.Warn("PIQUANT exited with an error", log.Int("exit_code", res.ExitCode))
		r.status(fmt.Sprintf("PIQUANT exited with code %d", res.ExitCode), util.YELLOW)
	}
	return out, nil
}

// Cancel stops the run in progress, if any.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// IsWorking returns true if a run is in progress.
func (r *Runner) IsWorking() bool {
	return r.state.IsWorking()
}

func (r *Runner) status(text string, c color.RGBA) {
	r.state.SetStatus(text, c)
	r.reporter.SetStatus(text, c)
	r.reporter.Update()
}

func (r *Runner) output(text string) {
	r.state.AppendResults(text)
	r.reporter.AppendOutput(text)
}

func header(id string, snap Snapshot, args []string, now time.Time) string {
	return fmt.Sprintf("=== %s | %s | run %s ===\n$ %s %s\n",
		now.Format("2006-01-02 15:04:05"), snap.Task.Title(), id, piquant.Name, assemble.Quote(args))
}

func notStartedMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrWorking):
		return "PIQUANT is already running"
	case errors.Is(err, errors.ErrNoTask):
		return "Select a task first"
	default:
		return "Some required inputs are missing or invalid"
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrExecutableNotFound):
		return "PIQUANT executable not found"
	case errors.IsSpawnFailure(err):
		return "Failed to launch PIQUANT"
	case errors.Is(err, errors.ErrNonUTF8Output):
		return "PIQUANT output is not readable text"
	case errors.Is(err, context.DeadlineExceeded):
		return "PIQUANT timed out"
	case errors.Is(err, context.Canceled):
		return "Run cancelled"
	default:
		return "PIQUANT run failed"
	}
}
