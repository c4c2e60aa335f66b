package formula

import "testing"

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []token{{text: "0", kind: tokenNumber, pos: 0}}},
		{"9876543210", []token{{text: "9876543210", kind: tokenNumber, pos: 0, val: 9876543210}}},
		{"1 0", []token{{text: "1", kind: tokenNumber, pos: 0, val: 1}, {text: "0", kind: tokenNumber, pos: 2}}},
		{"1.5", []token{{text: "1.5", kind: tokenNumber, pos: 0, val: 1.5}}},
		{".5", []token{{text: ".5", kind: tokenNumber, pos: 0, val: 0.5}}},
		{"2.", []token{{text: "2.", kind: tokenNumber, pos: 0, val: 2}}},
		{"1.2.3", []token{{text: "1.2", kind: tokenNumber, pos: 0, val: 1.2}, {text: ".3", kind: tokenNumber, pos: 3, val: 0.3}}},
		{".", []token{{text: ".", kind: tokenInvalid, pos: 0}}},
		{"-1", []token{{text: "-", kind: tokenMinus, pos: 0}, {text: "1", kind: tokenNumber, pos: 1, val: 1}}},
		// identifiers and keywords
		{"x", []token{{text: "x", kind: tokenIdent, pos: 0}}},
		{"_1234_", []token{{text: "_1234_", kind: tokenIdent, pos: 0}}},
		{"e1", []token{{text: "e1", kind: tokenIdent, pos: 0}}},
		{"and", []token{{text: "and", kind: tokenAnd, pos: 0}}},
		{"or", []token{{text: "or", kind: tokenOr, pos: 0}}},
		{"not", []token{{text: "not", kind: tokenNot, pos: 0}}},
		{"if", []token{{text: "if", kind: tokenIf, pos: 0}}},
		{"else", []token{{text: "else", kind: tokenElse, pos: 0}}},
		{"And", []token{{text: "And", kind: tokenIdent, pos: 0}}},
		{"iff", []token{{text: "iff", kind: tokenIdent, pos: 0}}},
		{"android", []token{{text: "android", kind: tokenIdent, pos: 0}}},
		// single-character operators
		{"+", []token{{text: "+", kind: tokenPlus, pos: 0}}},
		{"1+2", []token{{text: "1", kind: tokenNumber, pos: 0, val: 1}, {text: "+", kind: tokenPlus, pos: 1}, {text: "2", kind: tokenNumber, pos: 2, val: 2}}},
		{"* / % ^", []token{{text: "*", kind: tokenStar, pos: 0}, {text: "/", kind: tokenSlash, pos: 2}, {text: "%", kind: tokenPercent, pos: 4}, {text: "^", kind: tokenCaret, pos: 6}}},
		{"(),", []token{{text: "(", kind: tokenLparen, pos: 0}, {text: ")", kind: tokenRparen, pos: 1}, {text: ",", kind: tokenComma, pos: 2}}},
		// two-character operators
		{"==", []token{{text: "==", kind: tokenEq, pos: 0}}},
		{"!=", []token{{text: "!=", kind: tokenNeq, pos: 0}}},
		{"<=", []token{{text: "<=", kind: tokenLte, pos: 0}}},
		{">=", []token{{text: ">=", kind: tokenGte, pos: 0}}},
		{"<", []token{{text: "<", kind: tokenLt, pos: 0}}},
		{">", []token{{text: ">", kind: tokenGt, pos: 0}}},
		{"< =", []token{{text: "<", kind: tokenLt, pos: 0}, {text: "=", kind: tokenInvalid, pos: 2}}},
		{"=", []token{{text: "=", kind: tokenInvalid, pos: 0}}},
		{"!", []token{{text: "!", kind: tokenInvalid, pos: 0}}},
		{"=<", []token{{text: "=", kind: tokenInvalid, pos: 0}, {text: "<", kind: tokenLt, pos: 1}}},
		// other characters are invalid, never skipped
		{"$", []token{{text: "$", kind: tokenInvalid, pos: 0}}},
		{"a$", []token{{text: "a", kind: tokenIdent, pos: 0}, {text: "$", kind: tokenInvalid, pos: 1}}},
	}

	for _, c := range cases {
		scan := lex(c.src)
		for _, want := range c.tokens {
			got := scan.next()
			if got.kind == tokenEOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		for got := scan.next(); got.kind != tokenEOF; got = scan.next() {
			t.Errorf("scanning %q: extra token %v", c.src, got)
		}
	}
}

func TestLexEOFIdempotent(t *testing.T) {
	scan := lex("1")
	if got := scan.next(); got.kind != tokenNumber {
		t.Fatalf("want number, got %v", got)
	}
	for i := 0; i < 3; i++ {
		if got := scan.next(); got.kind != tokenEOF {
			t.Errorf("next call %d after end: want EOF, got %v", i, got)
		}
	}
}

func TestLexLenientNumber(t *testing.T) {
	// The lexer never fails on numeric text; a value that cannot parse
	// becomes 0. A single token cannot actually produce unparseable text
	// with the current grammar, so this pins the pushback path instead.
	scan := lex("3 x")
	tok := scan.next()
	if tok.val != 3 {
		t.Errorf("want 3, got %v", tok.val)
	}
	id := scan.next()
	scan.push(id)
	if got := scan.next(); got != id {
		t.Errorf("pushback: want %v, got %v", id, got)
	}
}
