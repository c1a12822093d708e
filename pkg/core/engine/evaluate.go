package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftrota/pkg/core/constraint"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/objective"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// Evaluate audits a previously produced solution against the configured
// rules without re-optimising: the solver is pinned to the given assignment
// and every constraint is diagnosed against it. Droppable constraint tiers
// that conflict with the pinned values are relaxed exactly as in a normal
// solve (the pins are priority 0 and never dropped), so a rule-breaking
// solution surfaces as violations rather than a hard failure. The result
// carries the achieved objective score.
//
// The solution's shift set must exactly match the configured shift set;
// extra or missing shifts are an InvalidInputsError.
func (e *Engine) Evaluate(data *rundata.RunData, obj objective.Objective, configured []constraint.Constraint, solution []model.AssignedShift) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With(zap.String("run_id", runID))

	if err := checkSolutionShifts(data, solution); err != nil {
		return nil, err
	}

	all := byPriority(append(append([]constraint.Constraint{}, configured...), constraint.Fixed()...))
	if err := validateConstraints(all, data); err != nil {
		return nil, err
	}

	pinned := byPriority(append(append([]constraint.Constraint{}, all...),
		constraint.NewPredeterminedAssignments(solution)))

	logger.Info("evaluating provided solution", zap.Int("shifts", len(solution)))

	result := &Result{RunID: runID}
	active := pinned
	var sol *pbsat.Solution
	var vars constraint.Vars
	for {
		result.Attempts++
		s, solVars, err := e.runOnce(data, obj, active)
		if err != nil {
			return nil, err
		}
		if s.Status() != pbsat.StatusInfeasible {
			sol, vars = s, solVars
			break
		}

		remaining, dropped := dropLeastImportant(active)
		if remaining == nil {
			return nil, ErrInfeasible
		}
		result.DroppedPriorities = append(result.DroppedPriorities, dropped)
		logger.Info("solution conflicts with constraint tier, relaxing",
			zap.Int("priority", dropped))
		active = remaining
	}

	result.Shifts = extract(data, vars, sol)
	result.ObjectiveValue = sol.ObjectiveValue()
	result.Violations = e.validateSolution(logger, all, vars, data, sol)

	logger.Info("evaluation complete",
		zap.Int("objective", result.ObjectiveValue),
		zap.Int("violations", len(result.Violations)))

	return result, nil
}

// checkSolutionShifts compares the solution's shift multiset against the
// configured one.
func checkSolutionShifts(data *rundata.RunData, solution []model.AssignedShift) error {
	configured := make(map[model.Shift]int)
	for _, shift := range data.AllShifts() {
		configured[shift]++
	}
	provided := make(map[model.Shift]int)
	for _, assigned := range solution {
		provided[assigned.Unassigned()]++
	}

	var extra, missing []model.Shift
	for shift, n := range provided {
		for i := configured[shift]; i < n; i++ {
			extra = append(extra, shift)
		}
	}
	for shift, n := range configured {
		for i := provided[shift]; i < n; i++ {
			missing = append(missing, shift)
		}
	}

	if len(extra) > 0 || len(missing) > 0 {
		return &InvalidInputsError{Extra: extra, Missing: missing}
	}
	return nil
}
