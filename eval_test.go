package calculator_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/calculator"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"decimal", "2.5", 2.5},
		{"leaddot", ".25", 0.25},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "8/4/2", 1},
		{"div-frac", "100/8", 12.5},
		{"pow", "2^10", 1024},
		{"pow-left", "2^3^2", 64},
		{"pow-frac", "16^0.5", 4},
		{"mod", "7%2", 1},
		{"mod-frac", "5.5%2", 1.5},
		{"mod-prec", "8%3*2", 2},
		{"mod-low", "10%4^2", 10},
		{"mod-add", "1-8%3", -1},
		{"prec", "2+3*4", 14},
		{"paren", "(2+3)*4", 20},
		{"nested", "((2+3)*(4-1))^2", 225},
		{"mixed", "3+4*(2-1)", 7},
		{"spaces", " 3 +\t4 \n", 7},
		{"decimals", "0.5+0.25", 0.75},
		{"sub-neg", "1-3", -2},
		{"mul-decimal", "1.5*4", 6},
		{"overflow", "10^400", math.Inf(1)},
		{"joined", "1 2", 12},
		{"joined-add", "1 2+3", 15},
		{"joined-dot", "1. 5*2", 3},
		{"joined-groups", "1 000 000/4", 250000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("%q: wrong result: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalIEEE(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ok   func(float64) bool
	}{
		{"div-zero", "1/0", func(x float64) bool { return math.IsInf(x, 1) }},
		{"div-zero-neg", "0-1/0", func(x float64) bool { return math.IsInf(x, -1) }},
		{"zero-zero", "0/0", math.IsNaN},
		{"mod-zero", "1%0", math.IsNaN},
		{"mod-inf", "1%(1/0)", func(x float64) bool { return x == 1 }},
		{"mod-sign", "(0-7)%2", func(x float64) bool { return x == -1 }},
		{"mod-sign-divisor", "7%(0-2)", func(x float64) bool { return x == 1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if !c.ok(r) {
				t.Errorf("%q: wrong result %g", c.src, r)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		is   error
		pos  int
	}{
		{"empty", "", calculator.ErrMalformedExpression, 0},
		{"blank", "   ", calculator.ErrMalformedExpression, 0},
		{"empty-parens", "()", calculator.ErrMalformedExpression, 0},
		{"adjacent", "1 (2)", calculator.ErrMalformedExpression, 4},
		{"adjacent-parens", "(1)(2)", calculator.ErrMalformedExpression, 5},
		{"number", "1..2+3", calculator.ErrMalformedNumber, 1},
		{"char", "1+@", calculator.ErrUnexpectedCharacter, 3},
		{"left", "(1+2", calculator.ErrUnbalancedParentheses, 1},
		{"right", "1+2)", calculator.ErrUnbalancedParentheses, 4},
		{"unary", "-5+3", calculator.ErrStackUnderflow, 1},
		{"trailing-op", "1+", calculator.ErrStackUnderflow, 2},
		{"lone-op", "*", calculator.ErrStackUnderflow, 1},
		{"double-op", "1+*2", calculator.ErrStackUnderflow, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.EvalString(c.src)
			if err == nil {
				t.Fatalf("%q: no error, result %g", c.src, r)
			}
			if r != 0 {
				t.Errorf("%q: partial result %g", c.src, r)
			}
			if !errors.Is(err, c.is) {
				t.Errorf("%q: error %v is not %v", c.src, err, c.is)
			}
			var ie calculator.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: %#v is not an InputError", c.src, err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q: wrong position: want %d, got %d", c.src, c.pos, ie.Pos())
			}
		})
	}
}

func TestEvalErrorDetails(t *testing.T) {
	_, err := calculator.EvalString("1+")
	var ue *calculator.UnderflowError
	if !errors.As(err, &ue) {
		t.Fatalf("want *UnderflowError, got %#v", err)
	}
	if ue.Operator != "+" || ue.Have != 1 {
		t.Errorf("wrong details: %+v", ue)
	}
	if msg := ue.Error(); !strings.Contains(msg, `"+"`) {
		t.Errorf("%q doesn't mention the operator", msg)
	}

	_, err = calculator.EvalString("(1)(2)(3)")
	var ee *calculator.ExpressionError
	if !errors.As(err, &ee) {
		t.Fatalf("want *ExpressionError, got %#v", err)
	}
	if ee.Values != 3 {
		t.Errorf("want 3 values, got %d", ee.Values)
	}

	_, err = calculator.EvalString("")
	if !errors.As(err, &ee) {
		t.Fatalf("want *ExpressionError, got %#v", err)
	}
	if msg := ee.Error(); !strings.Contains(msg, "no expression") {
		t.Errorf("%q doesn't mention the missing expression", msg)
	}
}

func TestEvalPostfixUnknownOperator(t *testing.T) {
	cases := []struct {
		name   string
		tokens []calculator.Token
	}{
		{"symbol", []calculator.Token{
			{Kind: calculator.TokenNum, Text: "1", Value: 1, Pos: 1},
			{Kind: calculator.TokenNum, Text: "2", Value: 2, Pos: 3},
			{Kind: calculator.TokenOp, Text: "&", Pos: 2},
		}},
		{"paren", []calculator.Token{
			{Kind: calculator.TokenNum, Text: "1", Value: 1, Pos: 2},
			{Kind: calculator.TokenOpen, Text: "(", Pos: 1},
		}},
		{"eof", []calculator.Token{
			{Kind: calculator.TokenNum, Text: "1", Value: 1, Pos: 1},
			{Kind: calculator.TokenEOF, Pos: 2},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calculator.EvalPostfix(c.tokens)
			if !errors.Is(err, calculator.ErrUnknownOperator) {
				t.Errorf("want unknown operator, got %v", err)
			}
			var oe *calculator.OperatorError
			if !errors.As(err, &oe) {
				t.Fatalf("%#v is not *OperatorError", err)
			}
		})
	}
}

func TestEvalPostfixOperandOrder(t *testing.T) {
	// 7 2 - is 7-2, not 2-7.
	p := calculator.Postfix{
		{Kind: calculator.TokenNum, Text: "7", Value: 7, Pos: 1},
		{Kind: calculator.TokenNum, Text: "2", Value: 2, Pos: 3},
		{Kind: calculator.TokenOp, Text: "-", Pos: 2},
	}
	for op, want := range map[string]float64{"-": 5, "/": 3.5, "%": 1, "^": 49} {
		p[2].Text = op
		r, err := p.Eval()
		if err != nil {
			t.Fatalf("7 2 %s: %v", op, err)
		}
		if r != want {
			t.Errorf("7 2 %s: want %g, got %g", op, want, r)
		}
	}
}

func TestEvalStream(t *testing.T) {
	src := strings.NewReader("1+2\n\n3*(4+\n5)\n2^3^2\n")
	want := []float64{3, 27, 64}
	for i, w := range want {
		r, err := calculator.Eval(src, calculator.StopOn('\n'))
		if err != nil {
			t.Fatalf("expr %d: %v", i, err)
		}
		if r != w {
			t.Errorf("expr %d: want %g, got %g", i, w, r)
		}
	}
	_, err := calculator.Eval(src, calculator.StopOn('\n'))
	if !errors.Is(err, calculator.ErrMalformedExpression) {
		t.Errorf("exhausted stream gave %v", err)
	}
}

func TestEvalConcurrent(t *testing.T) {
	cases := map[string]float64{
		"2+3*4":     14,
		"(2+3)*4":   20,
		"2^3^2":     64,
		"7%2":       1,
		"3+4*(2-1)": 7,
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				for src, want := range cases {
					r, err := calculator.EvalString(src)
					if err != nil || r != want {
						t.Errorf("%q: want %g, got %g with error %v", src, want, r, err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkEval(b *testing.B) {
	b.Run("string", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calculator.EvalString("3+4*(2-1)^2%5")
		}
	})
	b.Run("postfix", func(b *testing.B) {
		b.ReportAllocs()
		p, err := calculator.Parse(strings.NewReader("3+4*(2-1)^2%5"))
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			p.Eval()
		}
	})
}

func Example() {
	for _, src := range []string{"2+3*4", "(2+3)*4", "2^3^2", "7%2", "1/0", "(1+2"} {
		r, err := calculator.EvalString(src)
		if err != nil {
			fmt.Printf("%-8s error: %v\n", src, err)
			continue
		}
		fmt.Printf("%-8s = %g\n", src, r)
	}

	// Output:
	// 2+3*4    = 14
	// (2+3)*4  = 20
	// 2^3^2    = 64
	// 7%2      = 1
	// 1/0      = +Inf
	// (1+2     error: 1: open bracket ( with no close bracket
}

func ExampleParse() {
	p, err := calculator.Parse(strings.NewReader("3+4*(2-1)"))
	if err != nil {
		panic(err)
	}
	r, _ := p.Eval()
	fmt.Println(p)
	fmt.Println(r)

	// Output:
	// 3 4 2 1 - * +
	// 7
}
