// Package rundata aggregates everything one solve needs into a single
// immutable snapshot: the indexer, the shift layout, the fairness history and
// its derived metrics. It is built once per invocation and treated as
// read-only by every constraint and objective.
package rundata

import (
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
)

// RunData is the per-run snapshot. Treat every field as read-only.
type RunData struct {
	Indexer *indexer.Indexer

	// People in input order. Decision-variable identity depends on this order.
	People []model.Person

	// ShiftsByPerson maps each person to their ordinal slot indices
	// [0, MaxShiftsPerPerson).
	ShiftsByPerson map[model.Person][]int

	ShiftsByDay        map[time.Time][]model.Shift
	MaxShiftsPerPerson int

	History model.History
	Metrics model.HistoryMetrics

	// Now is the reference day for all date arithmetic.
	Now time.Time
}

// Build constructs the snapshot. A zero now defaults to the earliest shift
// day, so history recency is always measured against the period being
// assigned.
func Build(
	people []model.Person,
	maxShiftsPerPerson int,
	shiftsByDay map[time.Time][]model.Shift,
	history model.History,
	now time.Time,
) *RunData {
	if now.IsZero() {
		if days := indexer.SortedDays(shiftsByDay); len(days) > 0 {
			now = days[0]
		}
	}

	shiftsByPerson := make(map[model.Person][]int, len(people))
	for _, person := range people {
		slots := make([]int, maxShiftsPerPerson)
		for i := range slots {
			slots[i] = i
		}
		shiftsByPerson[person] = slots
	}

	return &RunData{
		Indexer:            indexer.Build(people, maxShiftsPerPerson, shiftsByDay),
		People:             append([]model.Person(nil), people...),
		ShiftsByPerson:     shiftsByPerson,
		ShiftsByDay:        shiftsByDay,
		MaxShiftsPerPerson: maxShiftsPerPerson,
		History:            history,
		Metrics:            model.BuildHistoryMetrics(history, people, now),
		Now:                now,
	}
}

// Days returns the assignment period's days in ascending order.
func (d *RunData) Days() []time.Time {
	return indexer.SortedDays(d.ShiftsByDay)
}

// AllShifts returns every configured day-shift, in day order then input
// order within a day.
func (d *RunData) AllShifts() []model.Shift {
	var shifts []model.Shift
	for _, day := range d.Days() {
		shifts = append(shifts, d.ShiftsByDay[day]...)
	}
	return shifts
}
