package constraint

import (
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// MinDaysBetweenShifts blocks a person from any shift on a day that falls
// within x days of their most recent historical shift.
//
// Only history is consulted: spacing among shifts assigned within the same
// run is deliberately not enforced here.
type MinDaysBetweenShifts struct {
	base
	x int
}

func NewMinDaysBetweenShifts(name string, priority, x int) MinDaysBetweenShifts {
	return MinDaysBetweenShifts{
		base: newBase(name, "MinDaysBetweenShifts", priority),
		x:    x,
	}
}

func (c MinDaysBetweenShifts) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		lastOn, ok := data.Metrics.LastOnShift[person]
		if !ok {
			continue
		}
		for _, day := range data.Days() {
			if daysBetween(lastOn, day) > c.x {
				continue
			}
			for _, entry := range data.Indexer.Iter(indexer.ByPerson(person), indexer.ByDay(day)) {
				out = append(out, Generated{
					Expr:   pbsat.Eq(pbsat.Term(vars[entry.Coord], 1), 0),
					Impact: personDayImpact(person, day),
				})
			}
		}
	}
	return out
}

// MinDaysBetweenShiftsOfTypes is the same spacing rule keyed on the most
// recent historical shift among a subset of shift types, blocking only that
// subset's shifts.
type MinDaysBetweenShiftsOfTypes struct {
	base
	x     int
	types []model.ShiftType
}

func NewMinDaysBetweenShiftsOfTypes(name string, priority, x int, types []model.ShiftType) MinDaysBetweenShiftsOfTypes {
	return MinDaysBetweenShiftsOfTypes{
		base:  newBase(name, "MinDaysBetweenShiftsOfTypes", priority),
		x:     x,
		types: types,
	}
}

func (c MinDaysBetweenShiftsOfTypes) Generate(vars Vars, data *rundata.RunData) []Generated {
	typeSet := make(map[model.ShiftType]bool, len(c.types))
	for _, t := range c.types {
		typeSet[t] = true
	}

	var out []Generated
	for _, person := range data.People {
		lastOn, ok := data.Metrics.LastOnShiftOfAnyType(person, c.types)
		if !ok {
			continue
		}
		for _, day := range data.Days() {
			if daysBetween(lastOn, day) > c.x {
				continue
			}
			for _, dayShift := range shiftsByName(data.ShiftsByDay[day]) {
				if !typeSet[dayShift.Type] {
					continue
				}
				entries := data.Indexer.Iter(indexer.ByPerson(person), indexer.ByDay(day), indexer.ByDayShift(dayShift))
				for _, entry := range entries {
					out = append(out, Generated{
						Expr:   pbsat.Eq(pbsat.Term(vars[entry.Coord], 1), 0),
						Impact: personDayImpact(person, day),
					})
				}
			}
		}
	}
	return out
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
