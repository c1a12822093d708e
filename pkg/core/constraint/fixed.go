package constraint

import (
	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// Fixed returns the mandatory constraints present in every solve. They have
// priority 0 and are never dropped by the relaxation loop.
func Fixed() []Constraint {
	return []Constraint{
		ExactlyOnePersonShiftPerDayShift{newBase("", "ExactlyOnePersonShiftPerDayShift", 0)},
		AtMostOneDayShiftPerPersonShift{newBase("", "AtMostOneDayShiftPerPersonShift", 0)},
		SlotsFilledInOrder{newBase("", "SlotsFilledInOrder", 0)},
	}
}

// ExactlyOnePersonShiftPerDayShift requires every day-shift to be covered by
// exactly one (person, slot) pair.
type ExactlyOnePersonShiftPerDayShift struct {
	base
}

func (c ExactlyOnePersonShiftPerDayShift) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, day := range data.Days() {
		for _, dayShift := range shiftsByName(data.ShiftsByDay[day]) {
			entries := data.Indexer.Iter(indexer.ByDay(day), indexer.ByDayShift(dayShift))
			out = append(out, Generated{
				Expr:   pbsat.Eq(sumVars(vars, entries), 1),
				Impact: dayImpact(day),
			})
		}
	}
	return out
}

// AtMostOneDayShiftPerPersonShift stops a single (person, slot) pair from
// covering more than one day-shift.
type AtMostOneDayShiftPerPersonShift struct {
	base
}

func (c AtMostOneDayShiftPerPersonShift) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		for _, slot := range data.ShiftsByPerson[person] {
			entries := data.Indexer.Iter(indexer.ByPerson(person), indexer.BySlot(slot))
			out = append(out, Generated{
				Expr:   pbsat.Le(sumVars(vars, entries), 1),
				Impact: personImpact(person),
			})
		}
	}
	return out
}

// SlotsFilledInOrder forces each person's slots to fill monotonically: slot j
// can only be used once every slot i < j is used. Slot indices then behave as
// an ordinal priority queue rather than independent bins.
type SlotsFilledInOrder struct {
	base
}

func (c SlotsFilledInOrder) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		slots := data.ShiftsByPerson[person]
		for i, slot := range slots {
			assigned := sumVars(vars, data.Indexer.Iter(indexer.ByPerson(person), indexer.BySlot(slot)))
			for _, laterSlot := range slots[i+1:] {
				laterAssigned := sumVars(vars, data.Indexer.Iter(indexer.ByPerson(person), indexer.BySlot(laterSlot)))
				out = append(out, Generated{
					Expr:   pbsat.GeExpr(assigned, laterAssigned),
					Impact: personImpact(person),
				})
			}
		}
	}
	return out
}
