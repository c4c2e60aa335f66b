package formula

import "math"

// builtin is a pure scalar function with a minimum arity. Arguments beyond
// the minimum are ignored rather than rejected. Domain violations return
// *InvalidArgumentError; the parser stamps the call position onto it.
type builtin struct {
	arity int
	call  func(args []float64) (float64, error)
}

// builtins is the fixed function set of the language. Lookup is by exact
// name; there is no runtime registration.
var builtins = map[string]builtin{
	"min": {2, func(a []float64) (float64, error) {
		return math.Min(a[0], a[1]), nil
	}},
	"max": {2, func(a []float64) (float64, error) {
		return math.Max(a[0], a[1]), nil
	}},
	"clamp": {3, func(a []float64) (float64, error) {
		return math.Max(a[1], math.Min(a[0], a[2])), nil
	}},
	"abs": {1, func(a []float64) (float64, error) {
		return math.Abs(a[0]), nil
	}},
	"floor": {1, func(a []float64) (float64, error) {
		return math.Floor(a[0]), nil
	}},
	"ceil": {1, func(a []float64) (float64, error) {
		return math.Ceil(a[0]), nil
	}},
	"round": {1, func(a []float64) (float64, error) {
		return math.Round(a[0]), nil
	}},
	"sqrt": {1, func(a []float64) (float64, error) {
		if a[0] < 0 {
			return 0, &InvalidArgumentError{X: a[0]}
		}
		return math.Sqrt(a[0]), nil
	}},
	"pow": {2, func(a []float64) (float64, error) {
		return math.Pow(a[0], a[1]), nil
	}},
	"sin": {1, func(a []float64) (float64, error) {
		return math.Sin(a[0]), nil
	}},
	"cos": {1, func(a []float64) (float64, error) {
		return math.Cos(a[0]), nil
	}},
	"tan": {1, func(a []float64) (float64, error) {
		return math.Tan(a[0]), nil
	}},
	"exp": {1, func(a []float64) (float64, error) {
		return math.Exp(a[0]), nil
	}},
	"log": {1, func(a []float64) (float64, error) {
		if a[0] <= 0 {
			return 0, &InvalidArgumentError{X: a[0]}
		}
		return math.Log(a[0]), nil
	}},
	"log10": {1, func(a []float64) (float64, error) {
		if a[0] <= 0 {
			return 0, &InvalidArgumentError{X: a[0]}
		}
		return math.Log10(a[0]), nil
	}},
	"lerp": {3, func(a []float64) (float64, error) {
		// Unclamped; callers clamp t themselves if they need to.
		return a[0] + (a[1]-a[0])*a[2], nil
	}},
	"sign": {1, func(a []float64) (float64, error) {
		switch {
		case a[0] > 0:
			return 1, nil
		case a[0] < 0:
			return -1, nil
		default:
			return 0, nil
		}
	}},
}

// Functions returns the names of all built-in functions, sorted.
func Functions() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}
