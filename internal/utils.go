package internal

import (
	"fmt"
	"strings"
)

// Version is the application version shown in the window title and --version
const Version = "0.3.1"

// IsBlank reports whether a cell holds no translatable text.
// Empty fields are how a CSV marks a missing value, so they count as blank too.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Percent returns done/total as a percentage in [0, 100]
func Percent(done, total int) float64 {
	if total <= 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}

// FormatPercent renders a progress value the way the status line shows it
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
