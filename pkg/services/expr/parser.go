package expr

import (
	"fmt"
	"math"
	"strconv"
)

// node is one vertex of the parsed expression tree.
type node interface {
	// eval returns the node's value. ok is false when the value cannot be
	// produced: an absent identifier or a division by zero anywhere below.
	eval(env *Env) (value float64, ok bool)
}

type numberNode float64

func (n numberNode) eval(_ *Env) (float64, bool) { return float64(n), true }

type identNode string

func (n identNode) eval(env *Env) (float64, bool) {
	return env.Lookup(string(n))
}

type negateNode struct{ operand node }

func (n negateNode) eval(env *Env) (float64, bool) {
	v, ok := n.operand.eval(env)
	return -v, ok
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) eval(env *Env) (float64, bool) {
	l, ok := n.left.eval(env)
	if !ok {
		return 0, false
	}
	r, ok := n.right.eval(env)
	if !ok {
		return 0, false
	}
	switch n.op {
	case tokenPlus:
		return l + r, true
	case tokenMinus:
		return l - r, true
	case tokenStar:
		return l * r, true
	default:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	}
}

// Expr is a parsed, reusable expression.
type Expr struct {
	root node
	src  string
}

func (e *Expr) String() string { return e.src }

// Eval evaluates the expression against env. ok is false when any referenced
// identifier is absent or a division by zero occurs; no partial result is
// returned and no NaN/Inf ever escapes.
func (e *Expr) Eval(env *Env) (float64, bool) {
	v, ok := e.root.eval(env)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parser is a plain recursive-descent parser over the lexer's token stream:
//
//	expression := term (('+'|'-') term)*
//	term       := factor (('*'|'/') factor)*
//	factor     := number | ident | '(' expression ')' | '-' factor
type parser struct {
	lex lexer
	tok token
	err error
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	p.tok, p.err = p.lex.next()
}

// Parse builds the expression tree for input. The error carries a position
// for logging; callers treating the expression as optional config should
// degrade to a null result instead of failing the run.
func Parse(input string) (*Expr, error) {
	p := &parser{lex: lexer{input: input}}
	p.advance()
	root := p.parseExpression()
	if p.err != nil {
		return nil, fmt.Errorf("parse %q: %w", input, p.err)
	}
	if p.tok.kind != tokenEOF {
		return nil, fmt.Errorf("parse %q: unexpected token %q at position %d", input, p.tok.text, p.tok.pos)
	}
	return &Expr{root: root, src: input}, nil
}

// Evaluate parses and evaluates in one step. Parse failures, absent
// identifiers and division by zero all come back as ok=false.
func Evaluate(input string, env *Env) (float64, bool) {
	parsed, err := Parse(input)
	if err != nil {
		return 0, false
	}
	return parsed.Eval(env)
}

func (p *parser) parseExpression() node {
	left := p.parseTerm()
	for p.err == nil && (p.tok.kind == tokenPlus || p.tok.kind == tokenMinus) {
		op := p.tok.kind
		p.advance()
		right := p.parseTerm()
		left = binaryNode{op: op, left: left, right: right}
	}
	return left
}

func (p *parser) parseTerm() node {
	left := p.parseFactor()
	for p.err == nil && (p.tok.kind == tokenStar || p.tok.kind == tokenSlash) {
		op := p.tok.kind
		p.advance()
		right := p.parseFactor()
		left = binaryNode{op: op, left: left, right: right}
	}
	return left
}

func (p *parser) parseFactor() node {
	if p.err != nil {
		return numberNode(0)
	}
	switch p.tok.kind {
	case tokenNumber:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			p.err = fmt.Errorf("bad number %q at position %d", p.tok.text, p.tok.pos)
			return numberNode(0)
		}
		p.advance()
		return numberNode(v)
	case tokenIdent:
		n := identNode(p.tok.text)
		p.advance()
		return n
	case tokenMinus:
		p.advance()
		return negateNode{operand: p.parseFactor()}
	case tokenLParen:
		p.advance()
		inner := p.parseExpression()
		if p.err == nil && p.tok.kind != tokenRParen {
			p.err = fmt.Errorf("missing closing parenthesis at position %d", p.tok.pos)
			return inner
		}
		p.advance()
		return inner
	default:
		p.err = fmt.Errorf("unexpected token %q at position %d", p.tok.text, p.tok.pos)
		return numberNode(0)
	}
}
