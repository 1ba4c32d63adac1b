package pddl

import (
	"fmt"
	"strings"
)

// NoID is the sentinel for an unused id field on an Expression node.
const NoID = -1

// EncodeVariable encodes the 0-based variable index i as the negative
// argument value -(i+1). Argument vectors mix encoded variables with
// non-negative constant ids.
func EncodeVariable(i int) int { return -i - 1 }

// DecodeVariable returns the 0-based variable index encoded in the
// argument value v. The result is negative when v denotes a constant.
func DecodeVariable(v int) int { return -v - 1 }

// Expression is a homogeneous node of the integer-encoded expression tree.
// The connective tag selects which payload fields are meaningful; unused id
// fields carry NoID. Atoms hold a predicate id and an argument vector,
// quantifiers a variable and a type, numbers a value. Children are ordered.
type Expression struct {
	Connective Connective
	Predicate  int
	Arguments  []int
	Variable   int
	Type       int
	Value      float64
	Children   []*Expression
}

// NewExpression returns a node with the given connective and children and
// all id fields set to their sentinel.
func NewExpression(connective Connective, children ...*Expression) *Expression {
	return &Expression{
		Connective: connective,
		Predicate:  NoID,
		Variable:   NoID,
		Type:       NoID,
		Children:   children,
	}
}

// NewAtom returns an ATOM node for the given predicate and arguments.
func NewAtom(predicate int, arguments ...int) *Expression {
	e := NewExpression(ATOM)
	e.Predicate = predicate
	e.Arguments = arguments
	return e
}

// NewNot returns the negation of the given expression.
func NewNot(e *Expression) *Expression {
	return NewExpression(NOT, e)
}

// NewQuantified returns a FORALL or EXISTS node binding the encoded
// variable with the given type over the body.
func NewQuantified(connective Connective, variable, typ int, body *Expression) *Expression {
	e := NewExpression(connective, body)
	e.Variable = variable
	e.Type = typ
	return e
}

// NewNumber returns a NUMBER leaf with the given value.
func NewNumber(value float64) *Expression {
	e := NewExpression(NUMBER)
	e.Value = value
	return e
}

// Copy returns a deep copy of the expression. Child subtrees are never
// shared between the copy and the original; the in-place rewrites of the
// simplifier rely on this.
func (e *Expression) Copy() *Expression {
	if e == nil {
		return nil
	}
	c := &Expression{
		Connective: e.Connective,
		Predicate:  e.Predicate,
		Variable:   e.Variable,
		Type:       e.Type,
		Value:      e.Value,
	}
	if e.Arguments != nil {
		c.Arguments = make([]int, len(e.Arguments))
		copy(c.Arguments, e.Arguments)
	}
	if e.Children != nil {
		c.Children = make([]*Expression, len(e.Children))
		for i, child := range e.Children {
			c.Children[i] = child.Copy()
		}
	}
	return c
}

// Equal reports structural equality. Two atoms are equal iff their
// predicate ids and argument sequences match; the simplifier uses this to
// identify substitution sites. For other connectives the payload fields and
// all children must match.
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Connective != other.Connective {
		return false
	}
	if e.Connective == ATOM {
		return e.Predicate == other.Predicate && equalInts(e.Arguments, other.Arguments)
	}
	if e.Predicate != other.Predicate || e.Variable != other.Variable ||
		e.Type != other.Type || e.Value != other.Value ||
		!equalInts(e.Arguments, other.Arguments) {
		return false
	}
	if len(e.Children) != len(other.Children) {
		return false
	}
	for i, child := range e.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}

// String renders the expression without symbol tables; arguments print as
// raw constant ids and ?Xi variable references.
func (e *Expression) String() string {
	return e.Render(nil)
}

// Render pretty-prints the expression against the problem's symbol tables.
// A nil problem falls back to numeric ids.
func (e *Expression) Render(p *Problem) string {
	if e == nil {
		return "()"
	}
	var b strings.Builder
	e.render(&b, p)
	return b.String()
}

func (e *Expression) render(b *strings.Builder, p *Problem) {
	switch e.Connective {
	case ATOM, EQUAL_ATOM, FN_HEAD, FN_ATOM:
		b.WriteByte('(')
		b.WriteString(e.predicateImage(p))
		for _, arg := range e.Arguments {
			b.WriteByte(' ')
			b.WriteString(argumentImage(arg, p))
		}
		b.WriteByte(')')
	case NUMBER:
		fmt.Fprintf(b, "%g", e.Value)
	case TRUE, FALSE, TIME_VAR, IS_VIOLATED:
		b.WriteString(e.Connective.String())
	case FORALL, EXISTS:
		fmt.Fprintf(b, "(%s (%s - %s) ", e.Connective, argumentImage(e.Variable, p), typeImage(e.Type, p))
		for i, child := range e.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			child.render(b, p)
		}
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		b.WriteString(e.Connective.String())
		for _, child := range e.Children {
			b.WriteByte(' ')
			child.render(b, p)
		}
		b.WriteByte(')')
	}
}

func (e *Expression) predicateImage(p *Problem) string {
	if e.Connective != ATOM || e.Predicate == NoID {
		return e.Connective.String()
	}
	if p != nil && e.Predicate >= 0 && e.Predicate < len(p.Predicates) {
		return p.Predicates[e.Predicate]
	}
	return fmt.Sprintf("P%d", e.Predicate)
}

func argumentImage(arg int, p *Problem) string {
	if arg < 0 {
		return fmt.Sprintf("?X%d", DecodeVariable(arg))
	}
	if p != nil && arg < len(p.Constants) {
		return p.Constants[arg]
	}
	return fmt.Sprintf("C%d", arg)
}

func typeImage(t int, p *Problem) string {
	if p != nil && t >= 0 && t < len(p.Types) {
		return p.Types[t]
	}
	return fmt.Sprintf("T%d", t)
}
