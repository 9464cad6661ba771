package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical element of an expression.
type Token struct {
	// Kind is the kind of the token.
	Kind TokenKind
	// Text is the source text of the token.
	Text string
	// Value is the parsed value of a TokenNum. It is zero for other kinds.
	Value float64
	// Pos is the 1-based rune column of the first rune of the token.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenNum is a decimal number.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenEOF:
		return "EOF"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/%^"

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var operstrs = byteidcs(Operators)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read so far.
	col int
	// wseof is the whitespace that may end the expression.
	wseof string
	// last is the kind of the previous token.
	last TokenKind
	eof  bool
}

func lex(src io.RuneScanner, wseof string) *lexer {
	return &lexer{
		src:   src,
		wseof: wseof,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent calls return an
// empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.end(), nil
			}
			return Token{Pos: l.col}, err
		}
		tok := Token{Pos: l.col}
		switch {
		case unicode.IsSpace(r):
			// Whitespace only ends an expression after a complete operand.
			if strings.ContainsRune(l.wseof, r) && (l.last == TokenNum || l.last == TokenClose) {
				return l.end(), nil
			}
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			v, err := strconv.ParseFloat(tok.Text, 64)
			// Out of range values are already ±Inf or 0, which is the best
			// float64 can do.
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return tok, &NumberError{Col: tok.Pos, Text: tok.Text, Err: err}
			}
			tok.Kind = TokenNum
			tok.Value = v
		case r == '(':
			tok.Text = "("
			tok.Kind = TokenOpen
		case r == ')':
			tok.Text = ")"
			tok.Kind = TokenClose
		default:
			k := strings.IndexRune(Operators, r)
			if k < 0 {
				return tok, &LexError{Col: tok.Pos, Char: r}
			}
			tok.Text = operstrs[k]
			tok.Kind = TokenOp
		}
		l.last = tok.Kind
		return tok, nil
	}
}

// end marks the lexer as finished and returns the EOF token.
func (l *lexer) end() Token {
	l.eof = true
	l.last = TokenEOF
	return Token{Kind: TokenEOF, Pos: l.col + 1}
}

// scanNum accumulates a run of digits and decimal points into buf. Whitespace
// within the run is dropped, so "1 000" scans as 1000, except that a rune in
// wseof ends the number. Whether the run is a valid number is decided by the
// caller.
func (l *lexer) scanNum() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9', r == '.':
			l.buf.WriteRune(r)
		case unicode.IsSpace(r) && !strings.ContainsRune(l.wseof, r):
			// Skipped, but still counted in col.
		default:
			l.unreadRune()
			return nil
		}
	}
}

// Tokenize scans an expression into tokens. The final EOF token is not
// included in the result.
func Tokenize(src io.RuneScanner, opts ...ParseOption) ([]Token, error) {
	p := newParsectx(opts)
	scan := lex(src, p.wseof)
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// TokenizeString is a shortcut to scan a string expression into tokens.
func TokenizeString(src string) ([]Token, error) {
	return Tokenize(strings.NewReader(src))
}

// LexError indicates a rune that cannot begin any token. It implements
// InputError.
type LexError struct {
	// Col is the position of the rune.
	Col int
	// Char is the unexpected rune.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Col, "unexpected character "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrUnexpectedCharacter.
func (err *LexError) Is(target error) bool {
	return target == ErrUnexpectedCharacter
}

// NumberError indicates a run of digits and decimal points that is not a
// valid decimal number, e.g. "1..2". It implements InputError and unwraps to
// the error from strconv.
type NumberError struct {
	// Col is the position of the start of the number.
	Col int
	// Text is the text of the number.
	Text string
	// Err is the conversion error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "malformed number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

// Is reports whether target is ErrMalformedNumber.
func (err *NumberError) Is(target error) bool {
	return target == ErrMalformedNumber
}
