package constraint

import (
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// PredeterminedAssignments pins every decision variable to a caller-supplied
// solution, turning the solver into a pure evaluator of the constraints and
// objective against a fixed rota. Always priority 0.
type PredeterminedAssignments struct {
	base
	solution []model.AssignedShift
}

func NewPredeterminedAssignments(solution []model.AssignedShift) PredeterminedAssignments {
	return PredeterminedAssignments{
		base:     newBase("", "PredeterminedAssignments", 0),
		solution: solution,
	}
}

type selectedKey struct {
	person model.Person
	slot   int
	shift  model.Shift
}

func (c PredeterminedAssignments) Generate(vars Vars, data *rundata.RunData) []Generated {
	// Each person's assignments occupy slots in encounter order, matching
	// the slots-filled-in-order invariant.
	selected := make(map[selectedKey]bool, len(c.solution))
	nextSlot := make(map[model.Person]int)
	for _, assigned := range c.solution {
		selected[selectedKey{
			person: assigned.Person,
			slot:   nextSlot[assigned.Person],
			shift:  assigned.Unassigned(),
		}] = true
		nextSlot[assigned.Person]++
	}

	var out []Generated
	for _, entry := range data.Indexer.Iter() {
		value := 0
		if selected[selectedKey{person: entry.Person, slot: entry.Slot, shift: entry.DayShift}] {
			value = 1
		}
		out = append(out, Generated{
			Expr:   pbsat.Eq(pbsat.Term(vars[entry.Coord], 1), value),
			Impact: Impact{},
		})
	}
	return out
}
