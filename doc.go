// Package formula implements a small embeddable expression language over
// float64 values: arithmetic, comparisons, logical operators, a conditional
// form, and a fixed set of math functions, evaluated against a named variable
// environment.
//
// It exists so that balance numbers like damage curves or unlock thresholds
// can live in data and change at runtime without recompiling the host:
//
//	e := formula.New()
//	e.SetVar("level", 15)
//	v, err := e.Evaluate("100 if level > 10 else 50")
//
// Operators, loosest binding first: "x if cond else y", or, and,
// == != < > <= >= (non-chaining), + -, * / %, ^ (right-associative), unary -
// and not. Logical and comparison results are always canonicalized to 0 or 1.
// Keywords are and, or, not, if, else; identifiers are [A-Za-z_][A-Za-z0-9_]*.
//
// Formulas are evaluated in a single pass while parsing; no syntax tree is
// built or cached. CompiledFormula validates grammar up front for formulas
// that are evaluated repeatedly.
package formula
