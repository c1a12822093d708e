package constraint

import (
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// ConsecutiveShiftRequirement links named persons' shifts of one type across
// adjacent calendar days: if such a person works a shift of the type on one
// day, they also work it on the next day with shifts of that type, and vice
// versa. Used e.g. to unite weekend pairs for a religious-observance
// accommodation.
type ConsecutiveShiftRequirement struct {
	base
	shiftType model.ShiftType
	persons   map[string]bool
}

func NewConsecutiveShiftRequirement(name string, priority int, shiftType model.ShiftType, persons []string) ConsecutiveShiftRequirement {
	named := make(map[string]bool, len(persons))
	for _, p := range persons {
		named[p] = true
	}
	return ConsecutiveShiftRequirement{
		base:      newBase(name, "ConsecutiveShiftRequirement", priority),
		shiftType: shiftType,
		persons:   named,
	}
}

func (c ConsecutiveShiftRequirement) Generate(vars Vars, data *rundata.RunData) []Generated {
	days := data.Days()

	var out []Generated
	for _, person := range data.People {
		if !c.persons[person.Name] {
			continue
		}
		for i := 0; i+1 < len(days); i++ {
			day, next := days[i], days[i+1]
			if !next.Equal(day.AddDate(0, 0, 1)) {
				continue
			}
			dayExpr, dayHas := c.typedDayExpr(vars, data, person, day)
			nextExpr, nextHas := c.typedDayExpr(vars, data, person, next)
			if !dayHas || !nextHas {
				continue
			}
			out = append(out, Generated{
				Expr:   pbsat.EqExpr(dayExpr, nextExpr),
				Impact: personDayImpact(person, day),
			})
		}
	}
	return out
}

// typedDayExpr sums the person's decision variables for the day's shifts of
// the required type. The second return is false when the day has none.
func (c ConsecutiveShiftRequirement) typedDayExpr(vars Vars, data *rundata.RunData, person model.Person, day time.Time) (pbsat.LinearExpr, bool) {
	expr := pbsat.Constant(0)
	found := false
	for _, dayShift := range shiftsByName(data.ShiftsByDay[day]) {
		if dayShift.Type != c.shiftType {
			continue
		}
		found = true
		entries := data.Indexer.Iter(indexer.ByPerson(person), indexer.ByDay(day), indexer.ByDayShift(dayShift))
		expr = expr.Add(sumVars(vars, entries))
	}
	return expr, found
}
