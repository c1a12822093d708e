package constraint

import (
	"fmt"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// MaxShiftsPerPersonPerPeriod caps every person's assignments in the period
// at x. x must not exceed the run's max shifts per person.
type MaxShiftsPerPersonPerPeriod struct {
	base
	x int
}

func NewMaxShiftsPerPersonPerPeriod(name string, priority, x int) MaxShiftsPerPersonPerPeriod {
	return MaxShiftsPerPersonPerPeriod{
		base: newBase(name, "MaxShiftsPerPersonPerPeriod", priority),
		x:    x,
	}
}

func (c MaxShiftsPerPersonPerPeriod) Validate(data *rundata.RunData) error {
	if c.x > data.MaxShiftsPerPerson {
		return fmt.Errorf("%s: x (%d) must be <= max_shifts_per_person (%d)", c.Name(), c.x, data.MaxShiftsPerPerson)
	}
	return nil
}

func (c MaxShiftsPerPersonPerPeriod) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		entries := data.Indexer.Iter(indexer.ByPerson(person))
		out = append(out, Generated{
			Expr:   pbsat.Le(sumVars(vars, entries), c.x),
			Impact: personImpact(person),
		})
	}
	return out
}

// SpecificPersonsMaxShifts is the same cap restricted to a named subset of
// people.
type SpecificPersonsMaxShifts struct {
	base
	x       int
	persons map[string]bool
}

func NewSpecificPersonsMaxShifts(name string, priority, x int, persons []string) SpecificPersonsMaxShifts {
	named := make(map[string]bool, len(persons))
	for _, p := range persons {
		named[p] = true
	}
	return SpecificPersonsMaxShifts{
		base:    newBase(name, "SpecificPersonsMaxShifts", priority),
		x:       x,
		persons: named,
	}
}

func (c SpecificPersonsMaxShifts) Validate(data *rundata.RunData) error {
	if c.x > data.MaxShiftsPerPerson {
		return fmt.Errorf("%s: x (%d) must be <= max_shifts_per_person (%d)", c.Name(), c.x, data.MaxShiftsPerPerson)
	}
	return nil
}

func (c SpecificPersonsMaxShifts) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		if !c.persons[person.Name] {
			continue
		}
		entries := data.Indexer.Iter(indexer.ByPerson(person))
		out = append(out, Generated{
			Expr:   pbsat.Le(sumVars(vars, entries), c.x),
			Impact: personImpact(person),
		})
	}
	return out
}
