// Package pbsat is a small deterministic solver for boolean linear
// constraints with a linear maximisation objective. It exposes the minimal
// surface the solving engine needs from a constraint back end: create boolean
// variables, add bounded linear expressions, maximise a linear objective, and
// solve returning a feasibility status plus variable values.
package pbsat

import "math"

// Unbounded marks a missing lower or upper bound on a constraint.
const (
	NoLowerBound = math.MinInt
	NoUpperBound = math.MaxInt
)

// Var is a handle to a boolean decision variable within a Model.
type Var struct {
	id int
}

type term struct {
	v    Var
	coef int
}

// LinearExpr is a sum of coefficient-weighted boolean variables plus a
// constant. The zero value is the empty expression.
type LinearExpr struct {
	terms    []term
	constant int
}

// Term builds a single-term expression coef*v.
func Term(v Var, coef int) LinearExpr {
	return LinearExpr{terms: []term{{v: v, coef: coef}}}
}

// Sum builds the expression v1 + v2 + ... + vn.
func Sum(vars ...Var) LinearExpr {
	terms := make([]term, len(vars))
	for i, v := range vars {
		terms[i] = term{v: v, coef: 1}
	}
	return LinearExpr{terms: terms}
}

// Constant builds a constant expression.
func Constant(c int) LinearExpr {
	return LinearExpr{constant: c}
}

// Add returns e + other.
func (e LinearExpr) Add(other LinearExpr) LinearExpr {
	terms := make([]term, 0, len(e.terms)+len(other.terms))
	terms = append(terms, e.terms...)
	terms = append(terms, other.terms...)
	return LinearExpr{terms: terms, constant: e.constant + other.constant}
}

// AddTerm returns e + coef*v.
func (e LinearExpr) AddTerm(v Var, coef int) LinearExpr {
	return e.Add(Term(v, coef))
}

// Sub returns e - other.
func (e LinearExpr) Sub(other LinearExpr) LinearExpr {
	terms := make([]term, 0, len(e.terms)+len(other.terms))
	terms = append(terms, e.terms...)
	for _, t := range other.terms {
		terms = append(terms, term{v: t.v, coef: -t.coef})
	}
	return LinearExpr{terms: terms, constant: e.constant - other.constant}
}

// Eval computes the expression's value under the given variable values.
func (e LinearExpr) Eval(value func(Var) int) int {
	total := e.constant
	for _, t := range e.terms {
		total += t.coef * value(t.v)
	}
	return total
}

// BoundedExpr is a linear expression constrained to lb <= expr <= ub, bounds
// inclusive.
type BoundedExpr struct {
	Expr LinearExpr
	Lb   int
	Ub   int
}

// Eq constrains expr == k.
func Eq(expr LinearExpr, k int) BoundedExpr {
	return BoundedExpr{Expr: expr, Lb: k, Ub: k}
}

// Le constrains expr <= k.
func Le(expr LinearExpr, k int) BoundedExpr {
	return BoundedExpr{Expr: expr, Lb: NoLowerBound, Ub: k}
}

// Ge constrains expr >= k.
func Ge(expr LinearExpr, k int) BoundedExpr {
	return BoundedExpr{Expr: expr, Lb: k, Ub: NoUpperBound}
}

// GeExpr constrains a >= b.
func GeExpr(a, b LinearExpr) BoundedExpr {
	return Ge(a.Sub(b), 0)
}

// EqExpr constrains a == b.
func EqExpr(a, b LinearExpr) BoundedExpr {
	return Eq(a.Sub(b), 0)
}

// Satisfied reports whether the constraint holds under the given values.
func (c BoundedExpr) Satisfied(value func(Var) int) bool {
	v := c.Expr.Eval(value)
	return c.Lb <= v && v <= c.Ub
}
