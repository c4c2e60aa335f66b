package formula

import (
	"strconv"
)

// token is a single lexical unit of a formula. Its text is a slice of the
// source string, so tokens are cheap and never outlive their lexer's input.
type token struct {
	text string
	kind tokenKind
	pos  int
	// val is the parsed numeric value for tokenNumber tokens.
	val float64
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenInvalid is any character sequence the lexer does not understand.
	// The lexer itself never fails; the parser rejects these.
	tokenInvalid
	// tokenNumber is a numeric literal.
	tokenNumber
	// tokenIdent is a variable or function name.
	tokenIdent

	tokenPlus    // +
	tokenMinus   // -
	tokenStar    // *
	tokenSlash   // /
	tokenPercent // %
	tokenCaret   // ^
	tokenLparen  // (
	tokenRparen  // )
	tokenComma   // ,
	tokenEq      // ==
	tokenNeq     // !=
	tokenLt      // <
	tokenGt      // >
	tokenLte     // <=
	tokenGte     // >=

	tokenAnd  // keyword and
	tokenOr   // keyword or
	tokenNot  // keyword not
	tokenIf   // keyword if
	tokenElse // keyword else
)

var tokenNames = [...]string{
	tokenNone:    "None",
	tokenEOF:     "EOF",
	tokenInvalid: "Invalid",
	tokenNumber:  "Number",
	tokenIdent:   "Ident",
	tokenPlus:    "Plus",
	tokenMinus:   "Minus",
	tokenStar:    "Star",
	tokenSlash:   "Slash",
	tokenPercent: "Percent",
	tokenCaret:   "Caret",
	tokenLparen:  "Lparen",
	tokenRparen:  "Rparen",
	tokenComma:   "Comma",
	tokenEq:      "Eq",
	tokenNeq:     "Neq",
	tokenLt:      "Lt",
	tokenGt:      "Gt",
	tokenLte:     "Lte",
	tokenGte:     "Gte",
	tokenAnd:     "And",
	tokenOr:      "Or",
	tokenNot:     "Not",
	tokenIf:      "If",
	tokenElse:    "Else",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// keywords maps identifier spellings to their keyword token kinds. The match
// is case-sensitive.
var keywords = map[string]tokenKind{
	"and":  tokenAnd,
	"or":   tokenOr,
	"not":  tokenNot,
	"if":   tokenIf,
	"else": tokenElse,
}

// lexer scans tokens from a formula source string. It operates on byte
// offsets and allocates nothing.
type lexer struct {
	src string
	off int
	p   token
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next.
// Panics if there is already a pushed token.
func (l *lexer) push(tok token) {
	if l.p.kind != tokenNone {
		panic("formula: double push")
	}
	l.p = tok
}

// next scans the next token from the input. Once the input is exhausted it
// returns tokenEOF forever. Lexing never fails: unrecognized input becomes a
// tokenInvalid token for the parser to reject.
func (l *lexer) next() token {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = token{}
		return tok
	}
	for l.off < len(l.src) {
		c := l.src[l.off]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		l.off++
	}
	if l.off >= len(l.src) {
		return token{kind: tokenEOF, pos: l.off}
	}
	start := l.off
	c := l.src[l.off]
	switch {
	case isDigit(c):
		return l.scanNumber(start)
	case c == '.':
		if l.off+1 < len(l.src) && isDigit(l.src[l.off+1]) {
			return l.scanNumber(start)
		}
		l.off++
		return token{text: l.src[start:l.off], kind: tokenInvalid, pos: start}
	case c == '_', isAlpha(c):
		return l.scanIdent(start)
	}
	l.off++
	kind := tokenInvalid
	switch c {
	case '+':
		kind = tokenPlus
	case '-':
		kind = tokenMinus
	case '*':
		kind = tokenStar
	case '/':
		kind = tokenSlash
	case '%':
		kind = tokenPercent
	case '^':
		kind = tokenCaret
	case '(':
		kind = tokenLparen
	case ')':
		kind = tokenRparen
	case ',':
		kind = tokenComma
	case '<':
		kind = tokenLt
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			kind = tokenLte
		}
	case '>':
		kind = tokenGt
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			kind = tokenGte
		}
	case '=':
		// A bare = is not an operator in this language.
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			kind = tokenEq
		}
	case '!':
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			kind = tokenNeq
		}
	}
	return token{text: l.src[start:l.off], kind: kind, pos: start}
}

// scanNumber scans digits, then at most one dot followed by more digits.
// Malformed numeric text parses as 0 rather than failing; the lexer surfaces
// no errors of its own.
func (l *lexer) scanNumber(start int) token {
	dot := false
	for l.off < len(l.src) {
		c := l.src[l.off]
		if isDigit(c) {
			l.off++
			continue
		}
		if c == '.' && !dot {
			dot = true
			l.off++
			continue
		}
		break
	}
	text := l.src[start:l.off]
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		val = 0
	}
	return token{text: text, kind: tokenNumber, pos: start, val: val}
}

func (l *lexer) scanIdent(start int) token {
	for l.off < len(l.src) {
		c := l.src[l.off]
		if c != '_' && !isAlpha(c) && !isDigit(c) {
			break
		}
		l.off++
	}
	text := l.src[start:l.off]
	if kw, ok := keywords[text]; ok {
		return token{text: text, kind: kw, pos: start}
	}
	return token{text: text, kind: tokenIdent, pos: start}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
