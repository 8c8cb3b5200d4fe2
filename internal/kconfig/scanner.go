package kconfig

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokEqual
	tokUnequal
	tokLess
	tokLessEqual
	tokGreater
	tokGreaterEqual
)

type token struct {
	kind tokenKind
	text string
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanTokens tokenizes one logical Kconfig line. Comments must already be
// stripped by the caller.
func scanTokens(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t':
			i++

		case r == '"' || r == '\'':
			quote := r
			j := i + 1
			var sb strings.Builder
			for j < len(runes) && runes[j] != quote {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}
				sb.WriteRune(runes[j])
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unterminated string")
			}
			toks = append(toks, token{kind: tokString, text: sb.String()})
			i = j + 1

		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case r == '&':
			if i+1 >= len(runes) || runes[i+1] != '&' {
				return nil, fmt.Errorf("unexpected '&'")
			}
			toks = append(toks, token{kind: tokAnd, text: "&&"})
			i += 2
		case r == '|':
			if i+1 >= len(runes) || runes[i+1] != '|' {
				return nil, fmt.Errorf("unexpected '|'")
			}
			toks = append(toks, token{kind: tokOr, text: "||"})
			i += 2
		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokUnequal, text: "!="})
				i += 2
			} else {
				toks = append(toks, token{kind: tokNot, text: "!"})
				i++
			}
		case r == '=':
			toks = append(toks, token{kind: tokEqual, text: "="})
			i++
		case r == '<':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokLessEqual, text: "<="})
				i += 2
			} else {
				toks = append(toks, token{kind: tokLess, text: "<"})
				i++
			}
		case r == '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokGreaterEqual, text: ">="})
				i += 2
			} else {
				toks = append(toks, token{kind: tokGreater, text: ">"})
				i++
			}

		case isWordRune(r) || r == '-' || r == '.' || r == '/':
			j := i
			for j < len(runes) && (isWordRune(runes[j]) || runes[j] == '-' || runes[j] == '.' || runes[j] == '/') {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: string(runes[i:j])})
			i = j

		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return toks, nil
}

// tokenParser is a recursive-descent parser over a scanned token stream.
// Kconfig precedence, loosest first: ||, &&, !, with relational operators
// binding atoms directly.
type tokenParser struct {
	toks []token
	pos  int
}

func (p *tokenParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *tokenParser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *tokenParser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *tokenParser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOr {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{L: left, R: right}
	}
}

func (p *tokenParser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokAnd {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{L: left, R: right}
	}
}

func (p *tokenParser) parseUnary() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	switch t.kind {
	case tokNot:
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpr{X: x}, nil

	case tokLParen:
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if t, ok := p.next(); !ok || t.kind != tokRParen {
			return nil, fmt.Errorf("missing ')'")
		}
		return p.maybeCompare(inner)
	}

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.maybeCompare(atom)
}

func (p *tokenParser) parseAtom() (Expr, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokWord:
		return atomExpr(t.text), nil
	case tokString:
		return &ConstExpr{Value: t.text, Quoted: true}, nil
	}
	return nil, fmt.Errorf("unexpected token %q", t.text)
}

func (p *tokenParser) maybeCompare(left Expr) (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return left, nil
	}

	var op CompareOp
	switch t.kind {
	case tokEqual:
		op = OpEqual
	case tokUnequal:
		op = OpUnequal
	case tokLess:
		op = OpLess
	case tokLessEqual:
		op = OpLessEqual
	case tokGreater:
		op = OpGreater
	case tokGreaterEqual:
		op = OpGreaterEqual
	default:
		return left, nil
	}
	p.pos++

	right, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return &CompareExpr{Op: op, L: left, R: right}, nil
}

// atomExpr classifies a bare word: the tristate literals and numbers are
// constants, anything else references a symbol.
func atomExpr(word string) Expr {
	if word == "y" || word == "m" || word == "n" {
		return &ConstExpr{Value: word}
	}
	if isNumber(word) {
		return &ConstExpr{Value: word}
	}
	return &SymbolExpr{Name: word}
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		if s == "" {
			return false
		}
		for _, r := range s {
			if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
				return false
			}
		}
		return true
	}
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseExpr parses a standalone dependency expression. Used by tests and by
// fixture builders; the file parser goes through the same token parser.
func ParseExpr(s string) (Expr, error) {
	toks, err := scanTokens(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	p := &tokenParser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("trailing tokens after expression")
	}
	return e, nil
}
