package util

import (
	"fmt"
	"math"
	"path/filepath"
	"time"
)

// Timeify converts seconds to "HH:MM:SS" format.
func Timeify(seconds int) string {
	hours := int(math.Floor(float64(seconds) / 3600))
	seconds %= 3600
	minutes := int(math.Floor(float64(seconds) / 60))
	seconds %= 60
	hours = int(math.Max(float64(hours), 0))
	minutes = int(math.Max(float64(minutes), 0))
	seconds = int(math.Max(float64(seconds), 0))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Elapsed formats a run duration. Runs under a minute keep millisecond
// precision; longer runs use Timeify.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
	return Timeify(int(d.Seconds()))
}

// Sizeify converts bytes to a human-readable string (B, KiB, MiB, GiB, TiB).
func Sizeify(size int64) string {
	if size >= int64(TiB) {
		return fmt.Sprintf("%.2f TiB", float64(size)/float64(TiB))
	} else if size >= int64(GiB) {
		return fmt.Sprintf("%.2f GiB", float64(size)/float64(GiB))
	} else if size >= int64(MiB) {
		return fmt.Sprintf("%.2f MiB", float64(size)/float64(MiB))
	} else if size >= int64(KiB) {
		return fmt.Sprintf("%.2f KiB", float64(size)/float64(KiB))
	}
	return fmt.Sprintf("%d B", max(size, 0))
}

// ShortPath trims a path to its last two elements for status lines.
func ShortPath(path string) string {
	if path == "" {
		return ""
	}
	dir, file := filepath.Split(filepath.Clean(path))
	parent := filepath.Base(dir)
	if parent == "." || parent == string(filepath.Separator) || parent == "" {
		return file
	}
	return filepath.Join(parent, file)
}
