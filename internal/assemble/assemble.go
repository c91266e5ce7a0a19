// Package assemble builds the PIQUANT argument vector for a task.
package assemble

import (
	"strings"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/field"
	"piquant-gui/internal/task"

	"mvdan.cc/sh/v3/shell"
)

// Build returns a fresh argument vector for t: the command token followed by
// the value of each argument slot, in table order. Empty values are kept so
// positional arguments line up. None yields an empty vector.
func Build(t task.Task, values field.Values) []string {
	if t == task.None || !t.Valid() {
		return []string{}
	}

	slots := t.ArgSlots()
	args := make([]string, 0, len(slots)+1)
	args = append(args, t.Token())
	for _, slot := range slots {
		args = append(args, values.Get(slot))
	}
	return args
}

// Extra splits the free-text extra-arguments slot into words using POSIX
// shell quoting rules. Variables are not expanded.
func Extra(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	words, err := shell.Fields(value, func(string) string { return "" })
	if err != nil {
		return nil, errors.NewValidationError(field.CLIArgs.String(), err.Error())
	}
	return words, nil
}

// Command returns the full argument vector handed to PIQUANT: Build followed
// by the extra arguments.
func Command(t task.Task, values field.Values) ([]string, error) {
	args := Build(t, values)
	if len(args) == 0 {
		return nil, errors.ErrNoTask
	}
	extra, err := Extra(values.Get(field.CLIArgs))
	if err != nil {
		return nil, err
	}
	return append(args, extra...), nil
}

// Quote renders args as a single shell-safe line for previews.
func Quote(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quoteWord(a)
	}
	return strings.Join(quoted, " ")
}

func quoteWord(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
