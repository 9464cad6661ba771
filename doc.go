// Package calculator evaluates arithmetic expressions over float64.
//
// An expression is made of non-negative decimal numbers, the binary operators
// + - * / % ^, parentheses, and whitespace. Whitespace is ignored, even
// between the digits of a number, so "1 000" is 1000. Evaluation converts the input to
// postfix order with the shunting-yard algorithm and runs the result on a
// value stack. Precedence from loosest to tightest is + and -, then %, then *
// and /, then ^. Operators of equal precedence group left to right, so
// "2^3^2" is "(2^3)^2". There is no unary minus: "-5" is a binary subtraction
// missing its left operand.
//
// Division and remainder follow IEEE-754, so "1/0" is +Inf and "1%0" is NaN
// rather than errors. Every error resulting from invalid input implements
// InputError and matches one of the Err sentinels with errors.Is.
package calculator
