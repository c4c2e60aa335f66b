package formula

// Advisory limits for hosts that want to bound user-supplied input. Nothing
// in the engine enforces them; setters and Evaluate accept any length.
const (
	MaxNameLen    = 64
	MaxFormulaLen = 1024
)

// Engine owns a variable environment and evaluates formulas against it. An
// Engine is not safe for concurrent use; hosts that share one across
// goroutines must serialize access around both variable mutation and
// evaluation.
type Engine struct {
	vars map[string]float64
}

// New creates an engine with an empty variable environment.
func New() *Engine {
	return &Engine{vars: make(map[string]float64)}
}

// SetVar sets the value of a variable, overwriting any previous value.
func (e *Engine) SetVar(name string, value float64) {
	e.vars[name] = value
}

// Var returns the value of a variable and whether it is defined.
func (e *Engine) Var(name string) (float64, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// RemoveVar removes a variable, reporting whether it existed.
func (e *Engine) RemoveVar(name string) bool {
	_, ok := e.vars[name]
	delete(e.vars, name)
	return ok
}

// ClearVars removes every variable.
func (e *Engine) ClearVars() {
	clear(e.vars)
}

// VarNames returns the defined variable names, sorted.
func (e *Engine) VarNames() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Evaluate parses and evaluates a formula against the current environment.
// Evaluation never mutates the environment.
func (e *Engine) Evaluate(src string) (float64, error) {
	return evaluate(src, e.vars)
}

// EvaluateOr evaluates a formula, substituting def on any error.
func (e *Engine) EvaluateOr(src string, def float64) float64 {
	v, err := evaluate(src, e.vars)
	if err != nil {
		return def
	}
	return v
}

// EvaluateBool evaluates a formula as a condition: any nonzero result is
// true.
func (e *Engine) EvaluateBool(src string) (bool, error) {
	v, err := evaluate(src, e.vars)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// EvaluateInt evaluates a formula and truncates the result toward zero.
func (e *Engine) EvaluateInt(src string) (int64, error) {
	v, err := evaluate(src, e.vars)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// Binding is a named value applied for the duration of a single evaluation.
type Binding struct {
	Name  string
	Value float64
}

// EvaluateWith evaluates a formula with the given bindings applied on top of
// the environment. Each touched variable is restored to its prior value, or
// removed if it was previously absent, on every exit path. Bindings are
// applied in order; when names repeat, restoration runs in reverse so the
// oldest value wins.
func (e *Engine) EvaluateWith(src string, bindings []Binding) (float64, error) {
	type prior struct {
		name    string
		value   float64
		present bool
	}
	saved := make([]prior, len(bindings))
	for i, b := range bindings {
		v, ok := e.vars[b.Name]
		saved[i] = prior{name: b.Name, value: v, present: ok}
		e.vars[b.Name] = b.Value
	}
	defer func() {
		for i := len(saved) - 1; i >= 0; i-- {
			s := saved[i]
			if s.present {
				e.vars[s.name] = s.value
			} else {
				delete(e.vars, s.name)
			}
		}
	}()
	return evaluate(src, e.vars)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
