package formula

import "strconv"

// EvalError is an error produced while evaluating a formula. Every error
// resulting from bad input implements EvalError. The first error encountered
// aborts the evaluation; there is no partial result.
type EvalError interface {
	error
	// Pos returns the byte offset of the token that caused the error.
	Pos() int
}

// UnexpectedTokenError is an error indicating a grammar violation: an invalid
// token, a mismatched parenthesis, a malformed comparison chain, or trailing
// input after a complete expression.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the offending token. It is empty at end of input.
	Token string
}

func (err *UnexpectedTokenError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, "unexpected end of formula")
	}
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// DivisionByZeroError is an error indicating a / or % with a zero right
// operand.
type DivisionByZeroError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator, "/" or "%".
	Op string
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero in "+strconv.Quote(err.Op))
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}

// UndefinedVariableError is an error indicating an identifier that is not
// bound in the variable environment.
type UndefinedVariableError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the missing variable name.
	Name string
}

func (err *UndefinedVariableError) Error() string {
	return errpos(err.Col, "undefined variable "+strconv.Quote(err.Name))
}

func (err *UndefinedVariableError) Pos() int {
	return err.Col
}

// UnknownFunctionError is an error indicating call syntax on a name that is
// not a built-in function.
type UnknownFunctionError struct {
	// Col is the position of the function name.
	Col int
	// Name is the unrecognized function name.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *UnknownFunctionError) Pos() int {
	return err.Col
}

// NotEnoughArgumentsError is an error indicating a function call with fewer
// arguments than the function requires.
type NotEnoughArgumentsError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function that was called.
	Func string
	// Len is the number of arguments supplied.
	Len int
}

func (err *NotEnoughArgumentsError) Error() string {
	return errpos(err.Col, "not enough arguments to "+err.Func+": got "+strconv.Itoa(err.Len))
}

func (err *NotEnoughArgumentsError) Pos() int {
	return err.Col
}

// TooManyArgumentsError is an error indicating a function call exceeding the
// fixed argument buffer.
type TooManyArgumentsError struct {
	// Col is the position of the separator introducing the excess argument.
	Col int
	// Func is the function that was called.
	Func string
}

func (err *TooManyArgumentsError) Error() string {
	return errpos(err.Col, "too many arguments to "+err.Func+" (max "+strconv.Itoa(maxArgs)+")")
}

func (err *TooManyArgumentsError) Pos() int {
	return err.Col
}

// InvalidArgumentError is an error indicating a function argument outside the
// function's domain, e.g. sqrt of a negative number.
type InvalidArgumentError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function that rejected the argument.
	Func string
	// X is the out-of-domain argument value.
	X float64
}

func (err *InvalidArgumentError) Error() string {
	return errpos(err.Col, "invalid argument to "+err.Func+": "+strconv.FormatFloat(err.X, 'g', -1, 64))
}

func (err *InvalidArgumentError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ EvalError = (*UnexpectedTokenError)(nil)
	_ EvalError = (*DivisionByZeroError)(nil)
	_ EvalError = (*UndefinedVariableError)(nil)
	_ EvalError = (*UnknownFunctionError)(nil)
	_ EvalError = (*NotEnoughArgumentsError)(nil)
	_ EvalError = (*TooManyArgumentsError)(nil)
	_ EvalError = (*InvalidArgumentError)(nil)
)
