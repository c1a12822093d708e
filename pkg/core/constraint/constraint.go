// Package constraint holds the rule generators that turn domain policy into
// solver-ready boolean expressions over the assignment decision variables.
//
// Every constraint carries a priority: 0 means mandatory and never relaxed,
// higher numbers are progressively more negotiable. Each generated expression
// carries impact metadata (the affected person and/or day) used only for
// violation reporting.
package constraint

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// Vars maps each indexer coordinate to its boolean decision variable.
type Vars map[indexer.Coord]pbsat.Var

// Impact names who and/or which day a generated expression affects. Both
// fields may be nil, meaning the expression is global.
type Impact struct {
	Person *model.Person
	Day    *time.Time
}

func (i Impact) String() string {
	switch {
	case i.Person != nil && i.Day != nil:
		return fmt.Sprintf("affecting %s on %s", i.Person.Name, model.FormatDay(*i.Day))
	case i.Person != nil:
		return fmt.Sprintf("affecting %s", i.Person.Name)
	case i.Day != nil:
		return fmt.Sprintf("on %s", model.FormatDay(*i.Day))
	}
	return "global"
}

// Generated pairs one boolean expression with its impact metadata.
type Generated struct {
	Expr   pbsat.BoundedExpr
	Impact Impact
}

// Constraint is one rule generator. Generate must emit expressions in a
// deterministic order so solver runs are reproducible.
type Constraint interface {
	Name() string
	Priority() int
	Generate(vars Vars, data *rundata.RunData) []Generated
}

// Validator is implemented by constraints whose parameters must be checked
// against the run data before any solve attempt.
type Validator interface {
	Validate(data *rundata.RunData) error
}

// Equal reports whether two constraints are interchangeable: same concrete
// type, same name and priority, same parameters.
func Equal(a, b Constraint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// base carries the serialised name and priority shared by every constraint.
type base struct {
	name     string
	priority int
}

func newBase(name, defaultName string, priority int) base {
	if name == "" {
		name = defaultName
	}
	return base{name: name, priority: priority}
}

func (b base) Name() string {
	return b.name
}

func (b base) Priority() int {
	return b.priority
}

// personImpact and dayImpact build impacts without taking the address of
// loop variables at call sites.
func personImpact(p model.Person) Impact {
	return Impact{Person: &p}
}

func personDayImpact(p model.Person, day time.Time) Impact {
	return Impact{Person: &p, Day: &day}
}

func dayImpact(day time.Time) Impact {
	return Impact{Day: &day}
}

// sumVars sums the decision variables of the given index entries.
func sumVars(vars Vars, entries []indexer.Entry) pbsat.LinearExpr {
	vs := make([]pbsat.Var, len(entries))
	for i, entry := range entries {
		vs[i] = vars[entry.Coord]
	}
	return pbsat.Sum(vs...)
}

// shiftsByName returns a day's shifts sorted by name, matching the indexer's
// in-day ordering.
func shiftsByName(shifts []model.Shift) []model.Shift {
	sorted := make([]model.Shift, len(shifts))
	copy(sorted, shifts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}
