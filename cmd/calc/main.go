package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
)

// errFailed reports that at least one expression did not evaluate. The
// failures themselves have already been printed.
var errFailed = errors.New("some expressions failed")

type options struct {
	in       string
	verb     string
	lines    bool
	echo     bool
	noColor  bool
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Calc evaluates arithmetic expressions made of non-negative decimal numbers,
the operators + - * / % ^, and parentheses.

Precedence from loosest to tightest is + and -, then %, then * and /, then ^.
Equal precedence groups left to right, so 2^3^2 is 64.

Each argument is one expression. With no arguments, calc reads stdin.

Examples:
  calc '2+3*4' '(2+3)*4'
  calc --echo '3+4*(2-1)'
  printf '1+2\n3*4\n' | calc --lines
  calc --in exprs.txt --lines --fmt '%.3f'
  calc -- '-5+3'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.in, "in", "", "input file, - for stdin (default stdin if no args given)")
	f.StringVar(&o.verb, "fmt", "%g", "result formatting string")
	f.BoolVarP(&o.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	f.BoolVar(&o.echo, "echo", false, "print the postfix form of each expression")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	f.StringVar(&o.logLevel, "log-level", "warn", "log level for diagnostics on stderr: debug, info, warn, error")
	return cmd
}

func run(cmd *cobra.Command, args []string, o *options) error {
	if o.noColor {
		color.NoColor = true
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var ins []io.RuneScanner
	f, closer, err := infile(o.in, len(args) == 0, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range args {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []calculator.ParseOption
	if o.lines {
		opts = append(opts, calculator.StopOn('\n'))
	}
	out := cmd.OutOrStdout()
	verb := o.verb + "\n"
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	var n, failed int
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			more, err := skipSpace(in)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			if !more {
				break
			}
			n++
			p, err := calculator.Parse(in, opts...)
			if err != nil {
				log.Debug("parse failed", "expr", n, "err", err)
				fmt.Fprintln(out, red("error:"), err)
				failed++
				if !o.lines {
					break
				}
				// Lexing stops at the bad token, so drop the rest of its line.
				// Other parse errors happen after the whole line is read.
				if errors.Is(err, calculator.ErrUnexpectedCharacter) || errors.Is(err, calculator.ErrMalformedNumber) {
					if err := skipLine(in); err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
				}
				continue
			}
			log.Debug("parsed", "expr", n, "postfix", p.String())
			if o.echo {
				fmt.Fprintf(out, "%s : ", cyan(p.String()))
			}
			r, err := p.Eval()
			if err != nil {
				log.Debug("evaluation failed", "expr", n, "err", err)
				fmt.Fprintln(out, red("error:"), err)
				failed++
				continue
			}
			fmt.Fprintf(out, verb, r)
		}
	}
	log.Info("done", "expressions", n, "failed", failed)
	if failed > 0 {
		return errFailed
	}
	return nil
}

// infile opens the input named by inname. If inname is empty and std is
// true, the input is stdin. The returned closer is nil when there is nothing
// to close.
func infile(inname string, std bool, stdin io.Reader) (io.RuneScanner, io.Closer, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return bufio.NewReader(f), f, nil
	case inname == "-", std:
		return bufio.NewReader(stdin), nil, nil
	}
	return nil, nil, nil
}

// skipSpace consumes whitespace and reports whether any input remains.
func skipSpace(in io.RuneScanner) (bool, error) {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if !unicode.IsSpace(r) {
			return true, in.UnreadRune()
		}
	}
}

// skipLine consumes input through the next newline.
func skipLine(in io.RuneScanner) error {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}
