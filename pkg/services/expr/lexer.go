package expr

import "fmt"

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer walks the raw expression byte by byte. The token set is deliberately
// tiny: identifiers, numeric literals, the four operators and parentheses.
// Anything else is a lex error, which the caller surfaces as a null result —
// the expression text comes from configuration rows and is untrusted.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.input[l.pos]

	switch {
	case c == '+':
		l.pos++
		return token{kind: tokenPlus, text: "+", pos: start}, nil
	case c == '-':
		l.pos++
		return token{kind: tokenMinus, text: "-", pos: start}, nil
	case c == '*':
		l.pos++
		return token{kind: tokenStar, text: "*", pos: start}, nil
	case c == '/':
		l.pos++
		return token{kind: tokenSlash, text: "/", pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case isDigit(c) || c == '.':
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdent()
	default:
		return token{}, fmt.Errorf("unexpected character %q at position %d", c, start)
	}
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	sawDot := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '.' {
			if sawDot {
				return token{}, fmt.Errorf("malformed number at position %d", start)
			}
			sawDot = true
			l.pos++
			continue
		}
		if !isDigit(c) {
			break
		}
		l.pos++
	}
	text := l.input[start:l.pos]
	if text == "." {
		return token{}, fmt.Errorf("malformed number at position %d", start)
	}
	return token{kind: tokenNumber, text: text, pos: start}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return token{kind: tokenIdent, text: l.input[start:l.pos], pos: start}, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
