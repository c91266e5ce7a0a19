// Package validate recomputes slot validity and task readiness.
//
// Path checks hit the filesystem on every call and can race with external
// changes; results are informational and recomputed on the next update.
package validate

import (
	"os"
	"strings"

	"piquant-gui/internal/field"
	"piquant-gui/internal/task"
)

// StatFunc reports filesystem metadata for a path. os.Stat by default.
type StatFunc func(name string) (os.FileInfo, error)

// Checker validates slot values against the filesystem.
type Checker struct {
	Stat StatFunc
}

// New creates a Checker backed by os.Stat.
func New() *Checker {
	return &Checker{Stat: os.Stat}
}

// CheckPath reports whether value names an existing file or directory.
// It never fails: empty, malformed or inaccessible paths are just invalid.
func (c *Checker) CheckPath(value string) bool {
	if value == "" || strings.ContainsRune(value, 0) {
		return false
	}
	stat := c.Stat
	if stat == nil {
		stat = os.Stat
	}
	_, err := stat(value)
	return err == nil
}

// CheckPath reports whether value names an existing file or directory.
func CheckPath(value string) bool {
	return New().CheckPath(value)
}

// Check computes the validity and display hint of one slot value.
func (c *Checker) Check(slot field.Slot, value string) (bool, field.Hint) {
	switch slot.Kind() {
	case field.KindOptionalPath:
		if value == "" {
			return true, field.HintNone
		}
		return c.pathHint(value)
	case field.KindText:
		if strings.TrimSpace(value) == "" {
			return false, field.HintNeutral
		}
		return true, field.HintSuccess
	case field.KindFreeText:
		if value == "" {
			return true, field.HintNone
		}
		return true, field.HintSuccess
	default:
		return c.pathHint(value)
	}
}

func (c *Checker) pathHint(value string) (bool, field.Hint) {
	if c.CheckPath(value) {
		return true, field.HintSuccess
	}
	return false, field.HintNeutral
}

// RecomputeValidity refreshes the valid flag and hint of all nine slots,
// in slot order, regardless of enablement.
func (c *Checker) RecomputeValidity(s *field.Set) {
	for i := range s {
		s[i].Valid, s[i].Hint = c.Check(field.Slot(i), s[i].Value)
	}
}

// IsReady reports whether every readiness slot of t is currently valid.
// None is never ready.
func IsReady(t task.Task, s *field.Set) bool {
	if t == task.None || !t.Valid() {
		return false
	}
	for _, slot := range t.ReadySlots() {
		if !s[slot].Valid {
			return false
		}
	}
	return true
}

// Invalid returns the readiness slots of t that are currently invalid.
func Invalid(t task.Task, s *field.Set) []field.Slot {
	var out []field.Slot
	for _, slot := range t.ReadySlots() {
		if !s[slot].Valid {
			out = append(out, slot)
		}
	}
	return out
}
