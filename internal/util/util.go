package util

import (
	"fmt"
	"strings"
	"time"
)

const progressBars = 30

// ProgressBar renders "NN% [====>    ] i/total (Elapsed Time: hh:mm:ss)".
func ProgressBar(current, total int, elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	elapsed = elapsed.Truncate(time.Second)
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60

	if total <= 0 {
		return fmt.Sprintf("  0%% [>%s] %d/%d (Elapsed Time: %02d:%02d:%02d)",
			strings.Repeat(" ", progressBars), current, total, hours, minutes, seconds)
	}

	progress := float64(current) / float64(total)
	completed := min(max(int(progress*progressBars), 0), progressBars)

	return fmt.Sprintf("%3.0f%% [%s>%s] %d/%d (Elapsed Time: %02d:%02d:%02d)",
		progress*100,
		strings.Repeat("=", completed),
		strings.Repeat(" ", progressBars-completed),
		current, total, hours, minutes, seconds)
}

// Contains checks if a slice contains a specific string
func Contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// CalculateBucket rounds n up to the next multiple of 10000, the size of a legacy attachment bucket.
func CalculateBucket(n int) int {
	return ((n-1)/10000 + 1) * 10000
}
