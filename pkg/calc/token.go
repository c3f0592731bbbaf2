package calc

import "fmt"

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the glyph used for the operator on the display.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// apply computes a op b. Division by zero is reported, not computed.
func (o Operator) apply(a, b float64) (float64, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("calc: unknown operator %d", int(o))
}

// Kind enumerates the input token variants.
type Kind int

const (
	KindDigit Kind = iota
	KindDecimal
	KindOperator
	KindEquals
	KindClear
	KindSignToggle
	KindPercent
	KindBackspace
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimal:
		return "decimal"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	case KindSignToggle:
		return "sign-toggle"
	case KindPercent:
		return "percent"
	case KindBackspace:
		return "backspace"
	default:
		return "unknown"
	}
}

// Token is one atomic unit of input. Digit is only meaningful for
// KindDigit and Op only for KindOperator.
type Token struct {
	Kind  Kind
	Digit byte
	Op    Operator
}

// Fixed tokens without a payload.
var (
	Decimal    = Token{Kind: KindDecimal}
	Equals     = Token{Kind: KindEquals}
	Clear      = Token{Kind: KindClear}
	SignToggle = Token{Kind: KindSignToggle}
	Percent    = Token{Kind: KindPercent}
	Backspace  = Token{Kind: KindBackspace}
)

// Digit returns the token for the decimal digit d ('0' through '9').
// It panics on any other byte; use DecodeLabel or DecodeKey for untrusted input.
func Digit(d byte) Token {
	if d < '0' || d > '9' {
		panic(fmt.Sprintf("calc: invalid digit %q", d))
	}
	return Token{Kind: KindDigit, Digit: d}
}

// Op returns the token for a binary operator.
func Op(op Operator) Token {
	return Token{Kind: KindOperator, Op: op}
}

func (t Token) String() string {
	switch t.Kind {
	case KindDigit:
		return string(t.Digit)
	case KindOperator:
		return t.Op.Symbol()
	case KindDecimal:
		return "."
	case KindEquals:
		return "="
	case KindClear:
		return "C"
	case KindSignToggle:
		return "±"
	case KindPercent:
		return "%"
	case KindBackspace:
		return "⌫"
	default:
		return "?"
	}
}
