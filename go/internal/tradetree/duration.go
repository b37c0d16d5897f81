package tradetree

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// WholeDays returns the number of whole days between from and to, never negative
func WholeDays(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from) / day)
}

// FormatDuration renders the span between from and to.
//
// Spans under 30 days read "N day(s)". Longer spans use calendar years and months,
// omitting zero parts: "1 yr, 3 mos", "5 mos", "2 yrs". Negative spans clamp to "0 days".
func FormatDuration(from, to time.Time) string {
	days := WholeDays(from, to)
	if days < 30 {
		return plural(days, "day", "days")
	}

	years, months := calendarSpan(from.UTC(), to.UTC())
	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "yr", "yrs"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "mo", "mos"))
	}
	if len(parts) == 0 {
		return plural(days, "day", "days")
	}
	return strings.Join(parts, ", ")
}

// calendarSpan counts whole calendar months from one date to a later one
func calendarSpan(from, to time.Time) (years, months int) {
	total := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	if to.Day() < from.Day() {
		total--
	}
	if total < 0 {
		total = 0
	}
	return total / 12, total % 12
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
