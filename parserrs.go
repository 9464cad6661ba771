package calculator

import (
	"errors"
	"strconv"
)

var (
	// ErrUnexpectedCharacter matches errors for runes that are not digits,
	// decimal points, operators, parentheses, or whitespace.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrMalformedNumber matches errors for digit runs that are not valid
	// decimals.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrUnbalancedParentheses matches errors for unmatched parentheses.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")

	// ErrStackUnderflow matches errors for operators with missing operands.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMalformedExpression matches errors for expressions that do not
	// reduce to exactly one value.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrUnknownOperator matches errors for operator tokens outside the
	// fixed operator set.
	ErrUnknownOperator = errors.New("unknown operator")
)

// OperatorError is an error indicating an operator token that is not
// understood by the parser or evaluator. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrUnknownOperator.
func (err *OperatorError) Is(target error) bool {
	return target == ErrUnknownOperator
}

// BracketError is an error indicating an unmatched parenthesis. It implements
// InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, or empty if a close parenthesis had no
	// match.
	Left string
	// Right is the closing parenthesis, or empty if an open parenthesis had
	// no match.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrUnbalancedParentheses.
func (err *BracketError) Is(target error) bool {
	return target == ErrUnbalancedParentheses
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*UnderflowError)(nil)
	_ InputError = (*ExpressionError)(nil)
)
