// Package piquant locates and runs the PIQUANT command-line executable.
package piquant

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
	"unicode/utf8"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/log"
)

// Name is the executable's base name without platform suffix.
const Name = "PIQUANT"

// Locate returns the bundled PIQUANT path for a host executable: two
// directories up from the host, then lib/cli/bin.
func Locate(hostExe, goos string) string {
	name := Name
	if goos == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(hostExe), "..", "..", "lib", "cli", "bin", name)
}

// Resolve returns override when set, otherwise the bundled path next to the
// running binary.
func Resolve(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrExecutableNotFound, err)
	}
	if resolved, err := filepath.EvalSymlinks(self); err == nil {
		self = resolved
	}
	return Locate(self, runtime.GOOS), nil
}

// Command describes a single PIQUANT invocation.
type Command struct {
	Path    string
	Args    []string
	Dir     string        // Working directory; empty means the current one
	Timeout time.Duration // Zero means no limit
}

// Result holds the captured outcome of a finished run.
type Result struct {
	Output   string // Combined stdout and stderr
	ExitCode int
	Duration time.Duration
}

// Success reports whether PIQUANT exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Run executes cmd and waits for it to finish.
//
// A non-zero exit status is not an error; it is reported in Result.ExitCode.
// Errors are returned only when the process could not be started, was
// cancelled, or produced output that is not valid UTF-8.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	proc.Dir = cmd.Dir

	var out bytes.Buffer
	proc.Stdout = &out
	proc.Stderr = &out

	logger := log.GetLogger().WithFields(log.String("path", cmd.Path))
	logger.Debug("Starting PIQUANT", log.Strings("args", cmd.Args), log.String("dir", cmd.Dir))

	start := time.Now()
	if err := proc.Start(); err != nil {
		logger.Error("Failed to start PIQUANT", log.Err(err))
		return nil, spawnError(cmd.Path, err)
	}

	err := proc.Wait()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewExecError(cmd.Path, fmt.Errorf("execution cancelled: %w", ctx.Err()))
		}
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, errors.NewExecError(cmd.Path, err)
		}
		exitCode = exitErr.ExitCode()
	}

	if !utf8.Valid(out.Bytes()) {
		logger.Warn("PIQUANT output is not UTF-8", log.Int("bytes", out.Len()))
		return nil, errors.NewExecError(cmd.Path, errors.ErrNonUTF8Output)
	}

	logger.Debug("PIQUANT finished", log.Int("exit_code", exitCode), log.Duration("elapsed", elapsed))
	return &Result{
		Output:   out.String(),
		ExitCode: exitCode,
		Duration: elapsed,
	}, nil
}

func spawnError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
		return errors.NewExecError(path, fmt.Errorf("%w: %w: %w", errors.ErrSpawnFailed, errors.ErrExecutableNotFound, err))
	}
	return errors.NewExecError(path, fmt.Errorf("%w: %w", errors.ErrSpawnFailed, err))
}
