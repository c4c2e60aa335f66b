package formula

import "math"

// conditional    = orExpr [ "if" orExpr "else" conditional ]
// orExpr         = andExpr { "or" andExpr }
// andExpr        = comparison { "and" comparison }
// comparison     = additive [ ("==" | "!=" | "<" | ">" | "<=" | ">=") additive ]
// additive       = multiplicative { ("+" | "-") multiplicative }
// multiplicative = power { ("*" | "/" | "%") power }
// power          = unary [ "^" power ]
// unary          = ("-" | "not") unary | primary
// primary        = number | "(" conditional ")" | ident | ident "(" args ")"
// args           = [ conditional { "," conditional } ]

// maxArgs is the size of the fixed argument buffer for function calls.
const maxArgs = 8

// parser evaluates a formula in a single pass: each grammar rule consumes
// tokens and immediately returns its computed value. No syntax tree is built,
// so re-evaluating a source string always re-lexes and re-parses it.
type parser struct {
	scan *lexer
	vars map[string]float64
}

// evaluate parses and evaluates src against vars. The whole input must be
// consumed; anything left over after a complete expression is an
// UnexpectedTokenError.
func evaluate(src string, vars map[string]float64) (float64, error) {
	p := parser{scan: lex(src), vars: vars}
	v, err := p.conditional()
	if err != nil {
		return 0, err
	}
	if tok := p.scan.next(); tok.kind != tokenEOF {
		return 0, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
	}
	return v, nil
}

// conditional parses the then-value first as an orExpr; only if an "if"
// follows does it become a conditional, with the condition evaluated exactly
// once and the else branch parsed recursively.
func (p *parser) conditional() (float64, error) {
	v, err := p.orExpr()
	if err != nil {
		return 0, err
	}
	tok := p.scan.next()
	if tok.kind != tokenIf {
		p.scan.push(tok)
		return v, nil
	}
	cond, err := p.orExpr()
	if err != nil {
		return 0, err
	}
	tok = p.scan.next()
	if tok.kind != tokenElse {
		return 0, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
	}
	alt, err := p.conditional()
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return v, nil
	}
	return alt, nil
}

// orExpr and andExpr canonicalize every logical result to 0 or 1. There is no
// short-circuit: the right operand is always evaluated unless the left side
// already failed.
func (p *parser) orExpr() (float64, error) {
	v, err := p.andExpr()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.scan.next()
		if tok.kind != tokenOr {
			p.scan.push(tok)
			return v, nil
		}
		r, err := p.andExpr()
		if err != nil {
			return 0, err
		}
		v = boolToFloat(v != 0 || r != 0)
	}
}

func (p *parser) andExpr() (float64, error) {
	v, err := p.comparison()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.scan.next()
		if tok.kind != tokenAnd {
			p.scan.push(tok)
			return v, nil
		}
		r, err := p.comparison()
		if err != nil {
			return 0, err
		}
		v = boolToFloat(v != 0 && r != 0)
	}
}

// comparison allows at most one comparison operator; chains like 1 < 2 < 3
// fall through and fail the full-input check as unexpected tokens.
func (p *parser) comparison() (float64, error) {
	v, err := p.additive()
	if err != nil {
		return 0, err
	}
	tok := p.scan.next()
	switch tok.kind {
	case tokenEq, tokenNeq, tokenLt, tokenGt, tokenLte, tokenGte:
	default:
		p.scan.push(tok)
		return v, nil
	}
	r, err := p.additive()
	if err != nil {
		return 0, err
	}
	switch tok.kind {
	case tokenEq:
		return boolToFloat(v == r), nil
	case tokenNeq:
		return boolToFloat(v != r), nil
	case tokenLt:
		return boolToFloat(v < r), nil
	case tokenGt:
		return boolToFloat(v > r), nil
	case tokenLte:
		return boolToFloat(v <= r), nil
	default:
		return boolToFloat(v >= r), nil
	}
}

func (p *parser) additive() (float64, error) {
	v, err := p.multiplicative()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.scan.next()
		switch tok.kind {
		case tokenPlus, tokenMinus:
		default:
			p.scan.push(tok)
			return v, nil
		}
		r, err := p.multiplicative()
		if err != nil {
			return 0, err
		}
		if tok.kind == tokenPlus {
			v += r
		} else {
			v -= r
		}
	}
}

func (p *parser) multiplicative() (float64, error) {
	v, err := p.power()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.scan.next()
		switch tok.kind {
		case tokenStar, tokenSlash, tokenPercent:
		default:
			p.scan.push(tok)
			return v, nil
		}
		r, err := p.power()
		if err != nil {
			return 0, err
		}
		switch tok.kind {
		case tokenStar:
			v *= r
		case tokenSlash:
			if r == 0 {
				return 0, &DivisionByZeroError{Col: tok.pos, Op: "/"}
			}
			v /= r
		case tokenPercent:
			if r == 0 {
				return 0, &DivisionByZeroError{Col: tok.pos, Op: "%"}
			}
			// math.Mod: the result takes the sign of the dividend.
			v = math.Mod(v, r)
		}
	}
}

// power is right-associative: 2^3^2 is 2^(3^2).
func (p *parser) power() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	tok := p.scan.next()
	if tok.kind != tokenCaret {
		p.scan.push(tok)
		return v, nil
	}
	r, err := p.power()
	if err != nil {
		return 0, err
	}
	return math.Pow(v, r), nil
}

func (p *parser) unary() (float64, error) {
	tok := p.scan.next()
	switch tok.kind {
	case tokenMinus:
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case tokenNot:
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return boolToFloat(v == 0), nil
	default:
		p.scan.push(tok)
		return p.primary()
	}
}

func (p *parser) primary() (float64, error) {
	tok := p.scan.next()
	switch tok.kind {
	case tokenNumber:
		return tok.val, nil
	case tokenLparen:
		v, err := p.conditional()
		if err != nil {
			return 0, err
		}
		end := p.scan.next()
		if end.kind != tokenRparen {
			return 0, &UnexpectedTokenError{Col: end.pos, Token: end.text}
		}
		return v, nil
	case tokenIdent:
		next := p.scan.next()
		if next.kind == tokenLparen {
			return p.call(tok)
		}
		p.scan.push(next)
		v, ok := p.vars[tok.text]
		if !ok {
			return 0, &UndefinedVariableError{Col: tok.pos, Name: tok.text}
		}
		return v, nil
	default:
		return 0, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
	}
}

// call parses a parenthesized argument list for the named function and
// invokes it. Arguments are evaluated left to right at full conditional
// precedence into a fixed buffer; a ninth argument is an error, not a
// truncation.
func (p *parser) call(name token) (float64, error) {
	var args [maxArgs]float64
	n := 0
	tok := p.scan.next()
	if tok.kind == tokenRparen {
		return p.invoke(name, args[:0])
	}
	p.scan.push(tok)
	at := name.pos
	for {
		if n == maxArgs {
			return 0, &TooManyArgumentsError{Col: at, Func: name.text}
		}
		v, err := p.conditional()
		if err != nil {
			return 0, err
		}
		args[n] = v
		n++
		tok = p.scan.next()
		switch tok.kind {
		case tokenComma:
			at = tok.pos
		case tokenRparen:
			return p.invoke(name, args[:n])
		default:
			return 0, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
		}
	}
}

// invoke dispatches a fully evaluated argument list to a built-in function,
// stamping arity and domain errors with the call position.
func (p *parser) invoke(name token, args []float64) (float64, error) {
	fn, ok := builtins[name.text]
	if !ok {
		return 0, &UnknownFunctionError{Col: name.pos, Name: name.text}
	}
	if len(args) < fn.arity {
		return 0, &NotEnoughArgumentsError{Col: name.pos, Func: name.text, Len: len(args)}
	}
	v, err := fn.call(args)
	if err != nil {
		if e, ok := err.(*InvalidArgumentError); ok {
			e.Col = name.pos
			e.Func = name.text
		}
		return 0, err
	}
	return v, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
