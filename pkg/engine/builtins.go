package engine

import (
	"fmt"
	"strconv"

	"github.com/chazu/calc/pkg/calc"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource converts traditional Lisp ; line comments into the //
// comments zygomys understands. String literals are left untouched, so
// (press ";") is not mistaken for a comment.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+8)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toInputs extracts button or key names from a Sexp. A non-negative integer
// stands for its digits, so (press 42) presses "4" then "2".
func toInputs(s zygo.Sexp) ([]string, error) {
	if n, ok := s.(*zygo.SexpInt); ok {
		if n.Val < 0 {
			return nil, fmt.Errorf("expected non-negative integer, got %d", n.Val)
		}
		digits := strconv.FormatInt(n.Val, 10)
		inputs := make([]string, len(digits))
		for i := range digits {
			inputs[i] = digits[i : i+1]
		}
		return inputs, nil
	}
	str, err := toString(s)
	if err != nil {
		return nil, err
	}
	return []string{str}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the session builtins into a zygomys environment.
// The builtins feed tokens into sess as the script runs.
func registerBuiltins(env *zygo.Zlisp, sess *Session) {

	// -----------------------------------------------------------------------
	// (press "7" "+" "3" "=") feeds keypad button labels.
	// -----------------------------------------------------------------------
	env.AddFunction("press", feeder(sess, "press", calc.DecodeLabel))

	// -----------------------------------------------------------------------
	// (key "7" "plus" "3" "Return") feeds keyboard key names.
	// -----------------------------------------------------------------------
	env.AddFunction("key", feeder(sess, "key", calc.DecodeKey))

	// -----------------------------------------------------------------------
	// (display) returns the text shown in the display field.
	// -----------------------------------------------------------------------
	env.AddFunction("display", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("display takes no arguments")
		}
		return &zygo.SexpStr{S: sess.Display()}, nil
	})

	// -----------------------------------------------------------------------
	// (expect "2 + 3 = 5") fails the script unless the display matches.
	// -----------------------------------------------------------------------
	env.AddFunction("expect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("expect requires exactly one argument")
		}
		want, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("expect: %w", err)
		}
		if got := sess.Display(); got != want {
			return zygo.SexpNull, fmt.Errorf("expect: display is %q, want %q", got, want)
		}
		return &zygo.SexpStr{S: want}, nil
	})
}

// feeder builds a builtin that decodes each argument and feeds the
// resulting tokens in order. It returns the display after the last one.
func feeder(sess *Session, fn string, decode func(string) (calc.Token, bool)) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("%s requires at least one argument", fn)
		}
		for i, a := range args {
			inputs, err := toInputs(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", fn, i, err)
			}
			for _, in := range inputs {
				tok, ok := decode(in)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("%s: unknown input %q", fn, in)
				}
				sess.feed(in, tok)
			}
		}
		return &zygo.SexpStr{S: sess.Display()}, nil
	}
}
