package formula

import "errors"

// CompiledFormula is a pre-validated formula. Compiling checks grammar once;
// evaluating still re-parses the stored source, so a compiled formula holds
// no state that could go stale between evaluations. It is independent of any
// engine and may be evaluated against any environment later.
type CompiledFormula struct {
	src string
}

// Compile validates a formula's grammar by parsing it against an empty
// environment. Undefined variables are expected during this check and do not
// fail it; any other error does, including constant-folding failures like
// division by zero, unknown functions, and arity violations.
func Compile(src string) (*CompiledFormula, error) {
	if _, err := evaluate(src, nil); err != nil {
		var undef *UndefinedVariableError
		if !errors.As(err, &undef) {
			return nil, err
		}
	}
	return &CompiledFormula{src: src}, nil
}

// Evaluate evaluates the formula against an engine's current environment.
func (f *CompiledFormula) Evaluate(e *Engine) (float64, error) {
	return evaluate(f.src, e.vars)
}

// Source returns the formula text the compiled formula was built from.
func (f *CompiledFormula) Source() string {
	return f.src
}
