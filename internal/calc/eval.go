package calc

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	ErrEmpty          = errors.New("empty expression")
	ErrSyntax         = errors.New("invalid syntax")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("numerical result out of range")
	ErrUnsupported    = errors.New("unsupported operation")
)

// EvalError records where in the expression evaluation failed.
type EvalError struct {
	Pos int
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Pos)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Node is a parsed arithmetic expression.
type Node interface {
	Eval() (Value, error)
	String() string
	pos() int
}

type numberNode struct {
	at    int
	text  string
	value Value
}

type unaryNode struct {
	at int
	op tokenKind
	x  Node
}

type binaryNode struct {
	at   int
	op   tokenKind
	l, r Node
}

func (n *numberNode) pos() int { return n.at }
func (n *unaryNode) pos() int  { return n.at }
func (n *binaryNode) pos() int { return n.at }

func (n *numberNode) String() string { return n.text }

func (n *unaryNode) String() string {
	return fmt.Sprintf("(%s%s)", strings.Trim(n.op.String(), "'"), n.x)
}

func (n *binaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.l, strings.Trim(n.op.String(), "'"), n.r)
}

func (n *numberNode) Eval() (Value, error) { return n.value, nil }

func (n *unaryNode) Eval() (Value, error) {
	v, err := n.x.Eval()
	if err != nil {
		return Value{}, err
	}
	if n.op == tokMinus {
		return negate(v), nil
	}
	return v, nil
}

func (n *binaryNode) Eval() (Value, error) {
	l, err := n.l.Eval()
	if err != nil {
		return Value{}, err
	}
	r, err := n.r.Eval()
	if err != nil {
		return Value{}, err
	}

	var v Value
	switch n.op {
	case tokPlus:
		v, err = add(l, r)
	case tokMinus:
		v, err = sub(l, r)
	case tokStar:
		v, err = mul(l, r)
	case tokSlash:
		v, err = trueDiv(l, r)
	case tokFloorDiv:
		v, err = floorDiv(l, r)
	case tokPow:
		v, err = pow(l, r)
	default:
		err = ErrUnsupported
	}
	if err != nil {
		return Value{}, &EvalError{Pos: n.at, Err: err}
	}
	return v, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expr() (Node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return n, nil
		}
		p.next()
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		n = &binaryNode{at: t.pos, op: t.kind, l: n, r: r}
	}
}

func (p *parser) term() (Node, error) {
	n, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokStar && t.kind != tokSlash && t.kind != tokFloorDiv {
			return n, nil
		}
		p.next()
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		n = &binaryNode{at: t.pos, op: t.kind, l: n, r: r}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if t.kind == tokPlus || t.kind == tokMinus {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{at: t.pos, op: t.kind, x: x}, nil
	}
	return p.power()
}

// power binds tighter than a unary sign on its left and is right
// associative: -2**2 is -4 and 2**3**2 is 512.
func (p *parser) power() (Node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{at: t.pos, op: tokPow, l: base, r: exp}, nil
}

func (p *parser) atom() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := parseNumber(t.text)
		if err != nil {
			return nil, &EvalError{Pos: t.pos, Err: err}
		}
		return &numberNode{at: t.pos, text: t.text, value: v}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &EvalError{Pos: closing.pos, Err: ErrSyntax}
		}
		return n, nil
	default:
		return nil, &EvalError{Pos: t.pos, Err: ErrSyntax}
	}
}

// parseNumber converts a decimal literal. Integers keep full precision;
// a leading zero is only allowed when every digit is zero. A fraction or
// an exponent makes the literal a float.
func parseNumber(text string) (Value, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, ErrSyntax
		}
		return floatValue(f), nil
	}
	if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
		return Value{}, ErrSyntax
	}
	if len(text) > maxIntDigits {
		return Value{}, ErrOverflow
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Value{}, ErrSyntax
	}
	return intValue(i), nil
}

// Parse builds the expression tree for src without evaluating it.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &EvalError{Pos: 0, Err: ErrEmpty}
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &EvalError{Pos: t.pos, Err: ErrSyntax}
	}
	return n, nil
}

// Evaluate parses and evaluates src, returning the display form of the
// result.
func Evaluate(src string) (string, error) {
	n, err := Parse(src)
	if err != nil {
		return "", err
	}
	v, err := n.Eval()
	if err != nil {
		return "", err
	}
	s, err := v.format()
	if err != nil {
		return "", &EvalError{Pos: n.pos(), Err: err}
	}
	return s, nil
}
