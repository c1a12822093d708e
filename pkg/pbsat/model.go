package pbsat

// Model accumulates boolean variables, bounded linear constraints and an
// optional linear objective to maximise. Build once, solve once.
type Model struct {
	varNames     []string
	constraints  []BoundedExpr
	objective    LinearExpr
	hasObjective bool
}

func NewModel() *Model {
	return &Model{}
}

// NewBoolVar creates a fresh boolean decision variable. The name is kept for
// diagnostics only.
func (m *Model) NewBoolVar(name string) Var {
	v := Var{id: len(m.varNames)}
	m.varNames = append(m.varNames, name)
	return v
}

// Add appends a constraint to the model.
func (m *Model) Add(c BoundedExpr) {
	m.constraints = append(m.constraints, c)
}

// Maximize sets the objective expression. The last call wins.
func (m *Model) Maximize(obj LinearExpr) {
	m.objective = obj
	m.hasObjective = true
}

// NumVars returns the number of variables created so far.
func (m *Model) NumVars() int {
	return len(m.varNames)
}

// VarName returns the diagnostic name of a variable.
func (m *Model) VarName(v Var) string {
	return m.varNames[v.id]
}
