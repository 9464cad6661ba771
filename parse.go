package calculator

import (
	"io"
	"math"
	"strings"
)

// Postfix is an expression in postfix order. Every operator follows the
// tokens producing its two operands.
type Postfix []Token

// Parse reads an expression and converts it to postfix order. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (Postfix, error) {
	toks, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return ToPostfix(toks)
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string) (Postfix, error) {
	return Parse(strings.NewReader(src))
}

// ToPostfix reorders an infix token sequence into postfix order using the
// shunting-yard algorithm. Operators of equal precedence are left associative.
// Panics if tokens contains a token that is not a number, operator, or
// parenthesis.
func ToPostfix(tokens []Token) (Postfix, error) {
	out := make(Postfix, 0, len(tokens))
	var ops []Token
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
		case TokenOp:
			op := binop(tok.Text)
			if op.fn == nil {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			// Pop while the top binds at least as tightly. Using >= for every
			// operator, ^ included, groups ties left to right.
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind != TokenOp || binop(top.Text).prec < op.prec {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		case TokenOpen:
			ops = append(ops, tok)
		case TokenClose:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == TokenOpen {
					break
				}
				out = append(out, top)
			}
		default:
			panic("calculator: unknown token: " + tok.String())
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Pos, Left: top.Text}
		}
		out = append(out, top)
	}
	return out, nil
}

// String formats the postfix expression as its tokens' text separated by
// spaces.
func (p Postfix) String() string {
	var b strings.Builder
	for i, tok := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// fn applies the operator to its left and right operands.
	fn func(x, y float64) float64
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has a nil fn.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, add}
	case "-":
		return operator{1, sub}
	case "%":
		return operator{2, math.Mod}
	case "*":
		return operator{3, mul}
	case "/":
		return operator{3, div}
	case "^":
		return operator{4, math.Pow}
	default:
		return operator{}
	}
}

func add(x, y float64) float64 { return x + y }
func sub(x, y float64) float64 { return x - y }
func mul(x, y float64) float64 { return x * y }
func div(x, y float64) float64 { return x / y }
