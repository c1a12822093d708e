package pbsat

import "errors"

// Status reports the outcome of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	}
	return "unknown"
}

// ErrNodeLimit is returned when the search exceeds the configured node budget.
var ErrNodeLimit = errors.New("pbsat: node limit exceeded")

// Solution holds the variable values of the best assignment found.
type Solution struct {
	status    Status
	values    []int8
	objective int
}

func (s *Solution) Status() Status {
	return s.status
}

// Value returns the assigned value (0 or 1) of a variable.
func (s *Solution) Value(v Var) int {
	return int(s.values[v.id])
}

// ObjectiveValue returns the achieved objective under the solution.
func (s *Solution) ObjectiveValue() int {
	return s.objective
}

// Eval computes an arbitrary expression under the solution's values.
func (s *Solution) Eval(e LinearExpr) int {
	return e.Eval(s.Value)
}

// Solver finds the assignment maximising the model's objective, using
// depth-first branch and bound with bound propagation. The search order is
// fixed, so identical models always produce identical solutions.
//
// Expressions must not mention the same variable twice within one constraint;
// propagation assumes the terms are independent.
type Solver struct {
	// MaxNodes caps the number of search nodes explored. Zero means no cap.
	MaxNodes int
}

func NewSolver() *Solver {
	return &Solver{}
}

type search struct {
	model    *Model
	objCoef  []int
	objConst int
	nodes    int
	maxNodes int

	haveBest bool
	bestObj  int
	best     []int8
}

// Solve runs the search. The returned solution's status is StatusInfeasible
// when no assignment satisfies the constraints.
func (s *Solver) Solve(m *Model) (*Solution, error) {
	n := m.NumVars()

	objCoef := make([]int, n)
	objConst := 0
	if m.hasObjective {
		objConst = m.objective.constant
		for _, t := range m.objective.terms {
			objCoef[t.v.id] += t.coef
		}
	}

	sr := &search{
		model:    m,
		objCoef:  objCoef,
		objConst: objConst,
		maxNodes: s.MaxNodes,
	}

	values := make([]int8, n)
	for i := range values {
		values[i] = -1
	}

	if err := sr.dfs(values); err != nil {
		return nil, err
	}

	if !sr.haveBest {
		return &Solution{status: StatusInfeasible}, nil
	}
	return &Solution{status: StatusOptimal, values: sr.best, objective: sr.bestObj}, nil
}

func (sr *search) dfs(values []int8) error {
	sr.nodes++
	if sr.maxNodes > 0 && sr.nodes > sr.maxNodes {
		return ErrNodeLimit
	}

	if !propagate(sr.model, values) {
		return nil
	}

	if sr.haveBest && sr.optimistic(values) <= sr.bestObj {
		return nil
	}

	branch := -1
	for i, v := range values {
		if v < 0 {
			branch = i
			break
		}
	}

	if branch < 0 {
		obj := sr.objConst
		for i, v := range values {
			obj += sr.objCoef[i] * int(v)
		}
		if !sr.haveBest || obj > sr.bestObj {
			sr.haveBest = true
			sr.bestObj = obj
			sr.best = append([]int8(nil), values...)
		}
		return nil
	}

	order := [2]int8{1, 0}
	if sr.objCoef[branch] < 0 {
		order = [2]int8{0, 1}
	}
	for _, val := range order {
		child := append([]int8(nil), values...)
		child[branch] = val
		if err := sr.dfs(child); err != nil {
			return err
		}
	}
	return nil
}

// optimistic is an upper bound on the objective reachable from this partial
// assignment: assigned terms at their value, unassigned at their best.
func (sr *search) optimistic(values []int8) int {
	bound := sr.objConst
	for i, v := range values {
		switch {
		case v >= 0:
			bound += sr.objCoef[i] * int(v)
		case sr.objCoef[i] > 0:
			bound += sr.objCoef[i]
		}
	}
	return bound
}

// propagate fixes variables forced by the constraints until a fixpoint, or
// reports false on a conflict. values is mutated in place.
func propagate(m *Model, values []int8) bool {
	for changed := true; changed; {
		changed = false
		for _, c := range m.constraints {
			lo, hi := 0, 0
			for _, t := range c.Expr.terms {
				if v := values[t.v.id]; v >= 0 {
					lo += t.coef * int(v)
					hi += t.coef * int(v)
				} else {
					lo += min(0, t.coef)
					hi += max(0, t.coef)
				}
			}
			lo += c.Expr.constant
			hi += c.Expr.constant

			if lo > c.Ub || hi < c.Lb {
				return false
			}

			for _, t := range c.Expr.terms {
				if values[t.v.id] >= 0 {
					continue
				}
				baseLo := lo - min(0, t.coef)
				baseHi := hi - max(0, t.coef)
				canOne := baseLo+t.coef <= c.Ub && baseHi+t.coef >= c.Lb
				canZero := baseLo <= c.Ub && baseHi >= c.Lb

				switch {
				case !canOne && !canZero:
					return false
				case !canOne:
					values[t.v.id] = 0
					lo, hi = baseLo, baseHi
					changed = true
				case !canZero:
					values[t.v.id] = 1
					lo, hi = baseLo+t.coef, baseHi+t.coef
					changed = true
				}
			}
		}
	}
	return true
}
