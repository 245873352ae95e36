package services

import (
	"fmt"
	"math"
)

// FormatDuration renders seconds as HH:MM:SS. Fractional seconds are truncated
// and hours are not wrapped at 24. Input must be non-negative.
func FormatDuration(seconds float64) string {
	total := int64(math.Floor(seconds))

	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
