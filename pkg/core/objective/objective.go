// Package objective holds the fairness objective functions the engine
// maximises over the assignment decision variables.
package objective

import (
	"fmt"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// Objective produces the linear expression the solver maximises.
type Objective interface {
	Name() string
	Expression(vars map[indexer.Coord]pbsat.Var, data *rundata.RunData) pbsat.LinearExpr
}

// Weights tunes the objective's scoring increments. The defaults match the
// engine's long-standing behaviour; they can be overridden from the app
// config.
type Weights struct {
	// Ranking is the increment between adjacent (person, slot) pairs in the
	// fairness ranking.
	Ranking int

	// AdditionalShifts is the jump added when crossing from one slot level to
	// the next, making anyone's Nth shift cost more than any choice of who
	// gets an (N-1)th shift.
	AdditionalShifts int
}

// DefaultWeights returns the standard increments.
func DefaultWeights() Weights {
	return Weights{Ranking: 1, AdditionalShifts: 100}
}

var factories = map[string]func(Weights) Objective{
	"RankingWeight": func(w Weights) Objective { return NewRankingWeight(w) },
}

// FromName constructs the named objective. Unknown names are a hard
// configuration error.
func FromName(name string, weights Weights) (Objective, error) {
	build, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown objective %q", name)
	}
	return build(weights), nil
}
