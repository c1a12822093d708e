package objective

import (
	"math"
	"sort"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// RankingWeight steers the solver towards people with fewer historical
// shifts and longer elapsed time since their last shift, while strongly
// discouraging giving anyone a second shift before everyone eligible has a
// first.
//
// Per shift type, people are ranked worst-to-best by (historical count desc,
// recency desc, name), then (person, slot) pairs are laid out slot-major from
// the last slot down and assigned ascending weights; crossing a slot boundary
// adds the AdditionalShifts jump on top of the per-pair Ranking increment.
type RankingWeight struct {
	weights Weights
}

func NewRankingWeight(weights Weights) RankingWeight {
	return RankingWeight{weights: weights}
}

func (o RankingWeight) Name() string {
	return "RankingWeight"
}

func (o RankingWeight) Expression(vars map[indexer.Coord]pbsat.Var, data *rundata.RunData) pbsat.LinearExpr {
	// Sum the per-type expressions so no shift type is optimised at the
	// expense of another.
	expr := pbsat.Constant(0)
	for _, shiftType := range model.ShiftTypes() {
		expr = expr.Add(o.forShiftType(vars, data, shiftType))
	}
	return expr
}

type weightedSlot struct {
	person model.Person
	slot   int
	weight int
}

func (o RankingWeight) forShiftType(vars map[indexer.Coord]pbsat.Var, data *rundata.RunData, shiftType model.ShiftType) pbsat.LinearExpr {
	ranking := o.rankPeople(data, shiftType)

	expr := pbsat.Constant(0)
	for _, ws := range o.assignWeights(data, ranking) {
		entries := data.Indexer.Iter(indexer.ByPerson(ws.person), indexer.BySlot(ws.slot))
		for _, entry := range entries {
			if entry.DayShift.Type != shiftType {
				continue
			}
			expr = expr.AddTerm(vars[entry.Coord], ws.weight)
		}
	}
	return expr
}

// rankPeople orders people from least to most deserving of a new shift of
// the given type: most shifts worked first, most recently on shift first
// among ties, then name descending for a strict total order.
func (o RankingWeight) rankPeople(data *rundata.RunData, shiftType model.ShiftType) []model.Person {
	counts := data.Metrics.NumShifts[shiftType]

	daysSince := make(map[model.Person]int, len(data.People))
	for _, person := range data.People {
		if lastOn, ok := data.Metrics.LastOnShift[person]; ok {
			daysSince[person] = data.Metrics.DaysSince(lastOn)
		} else {
			daysSince[person] = math.MaxInt
		}
	}

	ranked := append([]model.Person(nil), data.People...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		if daysSince[a] != daysSince[b] {
			return daysSince[a] < daysSince[b]
		}
		return a.Name > b.Name
	})
	return ranked
}

// assignWeights lays the ranked people out slot-major, from everyone's last
// slot down to their first, and assigns ascending weights. Earlier entries
// (more shifts, more recent, higher slot) get lower weights and are therefore
// less preferred under maximisation.
func (o RankingWeight) assignWeights(data *rundata.RunData, ranking []model.Person) []weightedSlot {
	var out []weightedSlot
	next := 0
	for slot := data.MaxShiftsPerPerson - 1; slot >= 0; slot-- {
		for _, person := range ranking {
			out = append(out, weightedSlot{person: person, slot: slot, weight: next})
			next += o.weights.Ranking
		}
		next += o.weights.AdditionalShifts
	}
	return out
}
