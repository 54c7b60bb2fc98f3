package model

import "fmt"

// FormatSeconds renders a whole-second count as zero-padded MM:SS.
// Minutes are not capped at 59, so 3700 renders as "61:40".
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// SplitDuration breaks a whole-second count into hour/minute/second
// components for the edit form.
func SplitDuration(total int) (hours, minutes, seconds int) {
	if total < 0 {
		total = 0
	}
	return total / 3600, (total % 3600) / 60, total % 60
}
