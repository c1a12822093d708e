// Package engine drives one solve: it builds the decision variables, applies
// constraints in priority order, maximises the objective, relaxes droppable
// constraint tiers on infeasibility, validates the final solution and
// extracts the assignments.
package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftrota/pkg/core/constraint"
	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/objective"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// Solver is the opaque constraint-satisfaction back end: add boolean linear
// constraints, maximise a linear objective, solve returning a status plus
// variable values.
type Solver interface {
	Solve(*pbsat.Model) (*pbsat.Solution, error)
}

// Engine runs solves against one back end.
type Engine struct {
	solver Solver
	logger *zap.Logger
}

// New builds an engine. A nil solver defaults to the built-in back end; a nil
// logger disables logging.
func New(solver Solver, logger *zap.Logger) *Engine {
	if solver == nil {
		solver = pbsat.NewSolver()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{solver: solver, logger: logger}
}

// Violation is a constraint expression the final solution does not satisfy.
// Expected once lower-priority constraints have been dropped; diagnostic
// only.
type Violation struct {
	Constraint string
	Impact     constraint.Impact
}

// Result is the outcome of a successful solve or evaluation.
type Result struct {
	// RunID identifies this run in logs and output metadata.
	RunID string

	// Shifts is the full assignment, sorted by day then shift name.
	Shifts []model.AssignedShift

	// ObjectiveValue is the achieved objective score.
	ObjectiveValue int

	// Attempts counts solve invocations, including retries after relaxation.
	Attempts int

	// DroppedPriorities lists the constraint tiers relaxed to reach
	// feasibility, in the order they were dropped.
	DroppedPriorities []int

	// Violations holds post-solve diagnostic failures across all originally
	// active constraints, dropped ones included.
	Violations []Violation
}

// Solve assigns people to shifts. The fixed mandatory constraints are always
// added on top of the given configurable ones. On infeasibility the highest
// non-zero priority tier is dropped and the solve retried; ErrInfeasible is
// returned once only mandatory constraints remain.
func (e *Engine) Solve(data *rundata.RunData, obj objective.Objective, configured []constraint.Constraint) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With(zap.String("run_id", runID))

	all := byPriority(append(append([]constraint.Constraint{}, configured...), constraint.Fixed()...))
	if err := validateConstraints(all, data); err != nil {
		return nil, err
	}

	logger.Info(data.Metrics.Summary(data.People))
	logger.Info("running model", zap.Int("constraints", len(all)))

	active := all
	result := &Result{RunID: runID}
	var solution *pbsat.Solution
	var vars constraint.Vars

	for {
		result.Attempts++
		sol, solVars, err := e.runOnce(data, obj, active)
		if err != nil {
			return nil, err
		}
		if sol.Status() != pbsat.StatusInfeasible {
			solution, vars = sol, solVars
			break
		}

		logger.Warn("failed to find solution with current constraints",
			zap.Int("attempt", result.Attempts))
		remaining, dropped := dropLeastImportant(active)
		if remaining == nil {
			return nil, ErrInfeasible
		}
		result.DroppedPriorities = append(result.DroppedPriorities, dropped)
		logger.Info("dropped constraint tier, retrying",
			zap.Int("priority", dropped))
		active = remaining
	}

	result.Violations = e.validateSolution(logger, all, vars, data, solution)
	result.ObjectiveValue = solution.ObjectiveValue()
	result.Shifts = extract(data, vars, solution)

	logger.Info("solution found",
		zap.Int("attempts", result.Attempts),
		zap.Int("objective", result.ObjectiveValue))
	for _, shift := range result.Shifts {
		logger.Info(">>>> " + shift.String())
	}

	return result, nil
}

// runOnce builds one model and solves it.
func (e *Engine) runOnce(data *rundata.RunData, obj objective.Objective, active []constraint.Constraint) (*pbsat.Solution, constraint.Vars, error) {
	satModel := pbsat.NewModel()
	vars := buildVars(satModel, data)

	for _, c := range active {
		for _, g := range c.Generate(vars, data) {
			satModel.Add(g.Expr)
		}
	}
	satModel.Maximize(obj.Expression(vars, data))

	sol, err := e.solver.Solve(satModel)
	if err != nil {
		return nil, nil, fmt.Errorf("solver failure: %w", err)
	}
	return sol, vars, nil
}

// buildVars creates one boolean decision variable per valid coordinate.
func buildVars(satModel *pbsat.Model, data *rundata.RunData) constraint.Vars {
	vars := make(constraint.Vars)
	for _, entry := range data.Indexer.Iter() {
		name := fmt.Sprintf("shift_%s_%d_%s_%s",
			entry.Person.Name, entry.Slot, model.FormatDay(entry.Day), entry.DayShift.Name)
		vars[entry.Coord] = satModel.NewBoolVar(name)
	}
	return vars
}

// validateSolution re-evaluates every constraint's expressions against the
// final values. Violations are logged as warnings, never raised: relaxed
// constraints are expected to look inconsistent against a solution chosen
// without them.
func (e *Engine) validateSolution(logger *zap.Logger, all []constraint.Constraint, vars constraint.Vars, data *rundata.RunData, sol *pbsat.Solution) []Violation {
	var violations []Violation
	for _, c := range all {
		for _, g := range c.Generate(vars, data) {
			if g.Expr.Satisfied(sol.Value) {
				continue
			}
			violations = append(violations, Violation{Constraint: c.Name(), Impact: g.Impact})
			logger.Warn("solution violates constraint",
				zap.String("constraint", c.Name()),
				zap.String("impact", g.Impact.String()))
		}
	}
	return violations
}

// extract reads the assignment off the solved variables, one person per
// day-shift, sorted by day then shift name.
func extract(data *rundata.RunData, vars constraint.Vars, sol *pbsat.Solution) []model.AssignedShift {
	var shifts []model.AssignedShift
	for _, day := range data.Days() {
		for _, dayShift := range shiftsByName(data.ShiftsByDay[day]) {
			for _, entry := range data.Indexer.Iter(indexer.ByDay(day), indexer.ByDayShift(dayShift)) {
				if sol.Value(vars[entry.Coord]) == 1 {
					shifts = append(shifts, entry.DayShift.Assign(entry.Person))
				}
			}
		}
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		if !shifts[i].Day.Equal(shifts[j].Day) {
			return shifts[i].Day.Before(shifts[j].Day)
		}
		return shifts[i].Name < shifts[j].Name
	})
	return shifts
}

// byPriority sorts constraints ascending by priority, stably so same-tier
// constraints keep their input order.
func byPriority(constraints []constraint.Constraint) []constraint.Constraint {
	sorted := append([]constraint.Constraint(nil), constraints...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return sorted
}

// dropLeastImportant removes all constraints at the highest non-zero
// priority, returning the remainder and the dropped tier. A nil remainder
// means only mandatory constraints were left.
func dropLeastImportant(constraints []constraint.Constraint) ([]constraint.Constraint, int) {
	maxPriority := 0
	for _, c := range constraints {
		if c.Priority() > maxPriority {
			maxPriority = c.Priority()
		}
	}
	if maxPriority == 0 {
		return nil, 0
	}
	var remaining []constraint.Constraint
	for _, c := range constraints {
		if c.Priority() != maxPriority {
			remaining = append(remaining, c)
		}
	}
	return remaining, maxPriority
}

func validateConstraints(constraints []constraint.Constraint, data *rundata.RunData) error {
	for _, c := range constraints {
		if v, ok := c.(constraint.Validator); ok {
			if err := v.Validate(data); err != nil {
				return fmt.Errorf("invalid constraint configuration: %w", err)
			}
		}
	}
	return nil
}

func shiftsByName(shifts []model.Shift) []model.Shift {
	sorted := make([]model.Shift, len(shifts))
	copy(sorted, shifts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}
