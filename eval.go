package calculator

import (
	"io"
	"strconv"
	"strings"
)

// value is an entry on the evaluation stack. pos is the position of the token
// that began the operand, for error reporting.
type value struct {
	x   float64
	pos int
}

type stack []value

// push adds a value to the top of the stack.
func (s *stack) push(x float64, pos int) {
	*s = append(*s, value{x, pos})
}

// pop removes the top from the stack and returns it.
func (s *stack) pop() value {
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

// Eval evaluates the postfix expression and returns its result. Division and
// remainder by zero produce infinities or NaN rather than errors.
func (p Postfix) Eval() (float64, error) {
	s := make(stack, 0, len(p)/2+1)
	for _, tok := range p {
		if tok.Kind == TokenNum {
			s.push(tok.Value, tok.Pos)
			continue
		}
		// Anything else must be an operator. Parentheses never survive
		// conversion to postfix, so they are unknown operators here.
		op := binop(tok.Text)
		if tok.Kind != TokenOp || op.fn == nil {
			return 0, &OperatorError{Col: tok.Pos, Operator: tok.Text}
		}
		if len(s) < 2 {
			return 0, &UnderflowError{Col: tok.Pos, Operator: tok.Text, Have: len(s)}
		}
		r := s.pop()
		l := s.pop()
		s.push(op.fn(l.x, r.x), l.pos)
	}
	if len(s) != 1 {
		err := &ExpressionError{Values: len(s)}
		if len(s) > 1 {
			err.Col = s[1].pos
		}
		return 0, err
	}
	return s[0].x, nil
}

// EvalPostfix evaluates a postfix token sequence. It is the same as
// Postfix(tokens).Eval().
func EvalPostfix(tokens []Token) (float64, error) {
	return Postfix(tokens).Eval()
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	p, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return p.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}

// UnderflowError is an error indicating an operator evaluated with fewer than
// two operands available, e.g. the leading minus in "-5+3". It implements
// InputError.
type UnderflowError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator that lacked operands.
	Operator string
	// Have is the number of operands that were available.
	Have int
}

func (err *UnderflowError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs 2 operands but has "+strconv.Itoa(err.Have))
}

func (err *UnderflowError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrStackUnderflow.
func (err *UnderflowError) Is(target error) bool {
	return target == ErrStackUnderflow
}

// ExpressionError is an error indicating that evaluation did not end with
// exactly one value, e.g. an empty input or two numbers with no operator
// between them. It implements InputError.
type ExpressionError struct {
	// Col is the position of the first operand left over, or 0 if there
	// were no values at all.
	Col int
	// Values is the number of values remaining at the end of evaluation.
	Values int
}

func (err *ExpressionError) Error() string {
	if err.Values == 0 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "missing operator: "+strconv.Itoa(err.Values)+" values left")
}

func (err *ExpressionError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrMalformedExpression.
func (err *ExpressionError) Is(target error) bool {
	return target == ErrMalformedExpression
}
