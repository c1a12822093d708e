package model

import (
	"fmt"
	"strings"
	"time"
)

// HistoryMetrics is a read-only snapshot derived once per run from History.
// Dates are optional: a person absent from LastOnShift has never been on a
// shift at all, and an absent (person, type) pair in LastOnShiftOfType means
// never for that type. Callers must check presence explicitly; there is no
// sentinel date.
type HistoryMetrics struct {
	// NumShifts is the total shift count per type per person, seeded by
	// history offsets.
	NumShifts map[ShiftType]map[Person]int

	// LastOnShift is the day of each person's most recent shift of any type.
	LastOnShift map[Person]time.Time

	// LastOnShiftOfType is the day of each person's most recent shift per type.
	LastOnShiftOfType map[Person]map[ShiftType]time.Time

	// Now is the reference day the metrics were computed against.
	Now time.Time
}

// BuildHistoryMetrics folds the history into per-person metrics for the given
// people. Past shifts for people outside the list are ignored.
func BuildHistoryMetrics(history History, people []Person, now time.Time) HistoryMetrics {
	metrics := HistoryMetrics{
		NumShifts:         make(map[ShiftType]map[Person]int, len(ShiftTypes())),
		LastOnShift:       make(map[Person]time.Time, len(people)),
		LastOnShiftOfType: make(map[Person]map[ShiftType]time.Time, len(people)),
		Now:               now,
	}

	known := make(map[Person]bool, len(people))
	for _, person := range people {
		known[person] = true
	}

	for _, shiftType := range ShiftTypes() {
		counts := make(map[Person]int, len(people))
		for _, person := range people {
			counts[person] = 0
		}
		for _, offset := range history.Offsets {
			if offset.ShiftType == shiftType && known[offset.Person] {
				counts[offset.Person] = offset.Offset
			}
		}
		for _, past := range history.PastShifts {
			if past.Type == shiftType && known[past.Person] {
				counts[past.Person]++
			}
		}
		metrics.NumShifts[shiftType] = counts
	}

	// PastShifts are most-recent-first, so the first occurrence wins.
	for _, past := range history.PastShifts {
		if !known[past.Person] {
			continue
		}
		if _, seen := metrics.LastOnShift[past.Person]; !seen {
			metrics.LastOnShift[past.Person] = past.Day
		}
		byType := metrics.LastOnShiftOfType[past.Person]
		if byType == nil {
			byType = make(map[ShiftType]time.Time, len(ShiftTypes()))
			metrics.LastOnShiftOfType[past.Person] = byType
		}
		if _, seen := byType[past.Type]; !seen {
			byType[past.Type] = past.Day
		}
	}

	return metrics
}

// LastOnShiftOfAnyType returns the most recent day the person worked a shift
// of any of the given types. The second return is false if they never have.
func (m HistoryMetrics) LastOnShiftOfAnyType(person Person, types []ShiftType) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, shiftType := range types {
		if day, ok := m.LastOnShiftOfType[person][shiftType]; ok {
			if !found || day.After(latest) {
				latest = day
				found = true
			}
		}
	}
	return latest, found
}

// DaysSince returns whole days elapsed from day to the reference Now.
func (m HistoryMetrics) DaysSince(day time.Time) int {
	return int(m.Now.Sub(day).Hours() / 24)
}

// Summary formats the pre-allocation metrics as a table for logging.
func (m HistoryMetrics) Summary(people []Person) string {
	var b strings.Builder
	b.WriteString("Pre-allocation history metrics:\n")
	fmt.Fprintf(&b, "%-20s%-15s%-15s%-15s%-15s\n", "Name", "Standard", "Special A", "Special B", "Last on")

	for _, person := range people {
		name := person.Name
		if len(name) > 16 {
			name = name[:16] + "..."
		}
		lastOn := "never"
		if day, ok := m.LastOnShift[person]; ok {
			lastOn = fmt.Sprintf("%d days ago", m.DaysSince(day))
		}
		fmt.Fprintf(&b, "%-20s%-15d%-15d%-15d%-15s\n",
			name,
			m.NumShifts[ShiftTypeStandard][person],
			m.NumShifts[ShiftTypeSpecialA][person],
			m.NumShifts[ShiftTypeSpecialB][person],
			lastOn,
		)
	}
	return b.String()
}
