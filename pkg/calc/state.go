package calc

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Failure conditions. All of them collapse to the same Error display; the
// State keeps the cause in Err so callers can log it.
var (
	ErrDivisionByZero = errors.New("calc: division by zero")
	ErrParse          = errors.New("calc: malformed number")
	ErrOverflow       = errors.New("calc: result out of range")
)

const (
	// DefaultDisplay is shown after start-up and after Clear.
	DefaultDisplay = "0"
	// ErrorDisplay is shown in the Error state.
	ErrorDisplay = "Error"
	// MaxDisplay is the width of the display field in characters.
	MaxDisplay = 20
)

// Term is one element of a chain: a number as typed, or an operator.
type Term struct {
	Number string
	Op     Operator
}

// IsOperator reports whether the term holds an operator.
func (t Term) IsOperator() bool {
	return t.Op != OpNone
}

func (t Term) String() string {
	if t.IsOperator() {
		return t.Op.Symbol()
	}
	return t.Number
}

// State is the complete calculator state.
//
// Buffer always holds the text of the last number in Chain ("0" while the
// chain is empty). While Awaiting is false the chain is either empty or ends
// with that number, so digits extend it in place.
type State struct {
	// Display is the full, unabbreviated display text. Use View for the
	// text that fits the display field.
	Display string
	// Buffer is the number currently being typed.
	Buffer string
	// Pending is the most recent operator of the chain.
	Pending Operator
	// Awaiting is set after an operator, Equals or Percent: the next digit
	// starts a fresh operand instead of extending the current one.
	Awaiting bool
	// Chain holds the alternating numbers and operators typed since the
	// last Clear or Equals.
	Chain []Term
	// Tape is the evaluated expression shown in front of a result, as in
	// "2 + 3 = 5". It is empty unless the display shows a result.
	Tape string
	// Err is non-nil in the Error state.
	Err error
}

// New returns the start-up state.
func New() State {
	return State{Display: DefaultDisplay, Buffer: "0"}
}

// Failed reports whether the state is the Error state.
func (s State) Failed() bool {
	return s.Err != nil
}

// View returns the display text abbreviated to MaxDisplay characters.
func (s State) View() string {
	return Present(s.Display, MaxDisplay)
}

// Apply feeds one token into the state machine and returns the next state.
// The input state is never modified.
func Apply(s State, t Token) State {
	if s.Failed() {
		switch t.Kind {
		case KindClear, KindBackspace:
			return New()
		case KindDigit, KindDecimal:
			s = New()
		default:
			return s
		}
	}
	s.Chain = slices.Clone(s.Chain)

	switch t.Kind {
	case KindDigit:
		return s.digit(t.Digit)
	case KindDecimal:
		return s.decimal()
	case KindOperator:
		return s.operator(t.Op)
	case KindEquals:
		return s.equals()
	case KindClear:
		return New()
	case KindSignToggle:
		return s.toggleSign()
	case KindPercent:
		return s.percent()
	case KindBackspace:
		return s.backspace()
	}
	return s
}

// ApplyAll feeds tokens in order.
func ApplyAll(s State, tokens ...Token) State {
	for _, t := range tokens {
		s = Apply(s, t)
	}
	return s
}

func (s State) digit(d byte) State {
	s.Tape = ""
	switch {
	case s.Awaiting:
		s = s.startOperand(string(d))
	case s.Buffer == "0":
		s.Buffer = string(d)
		s.setOperand()
	case s.Buffer == "-0":
		s.Buffer = "-" + string(d)
		s.setOperand()
	default:
		s.Buffer += string(d)
		s.setOperand()
	}
	return s.render()
}

func (s State) decimal() State {
	switch {
	case s.Awaiting:
		s.Tape = ""
		s = s.startOperand("0.")
	case !strings.Contains(s.Buffer, "."):
		s.Tape = ""
		s.Buffer += "."
		s.setOperand()
	default:
		return s
	}
	return s.render()
}

func (s State) operator(op Operator) State {
	s.Tape = ""
	n := len(s.Chain)
	switch {
	case n == 0:
		s.Chain = append(s.Chain, Term{Number: s.Buffer}, Term{Op: op})
	case s.Chain[n-1].IsOperator():
		s.Chain[n-1] = Term{Op: op}
	default:
		s.Chain = append(s.Chain, Term{Op: op})
	}
	s.Pending = op
	s.Awaiting = true
	return s.render()
}

func (s State) equals() State {
	terms := s.Chain
	if n := len(terms); n > 0 && terms[n-1].IsOperator() {
		terms = terms[:n-1]
	}
	if len(terms) < 3 {
		return s
	}

	result, err := Evaluate(terms)
	if err != nil {
		return fail(err)
	}
	text := FormatNumber(result)

	s.Tape = chainText(terms)
	s.Chain = []Term{{Number: text}}
	s.Buffer = text
	s.Pending = OpNone
	s.Awaiting = true
	return s.render()
}

func (s State) toggleSign() State {
	if s.Display == DefaultDisplay {
		return s
	}
	i := s.lastNumber()
	if i < 0 || s.Chain[i].Number == "0" {
		return s
	}
	num := s.Chain[i].Number
	if rest, ok := strings.CutPrefix(num, "-"); ok {
		num = rest
	} else {
		num = "-" + num
	}
	s.Chain[i].Number = num
	s.Buffer = num
	return s.render()
}

func (s State) percent() State {
	n := len(s.Chain)
	if n == 0 {
		s.Awaiting = true
		return s
	}
	if s.Chain[n-1].IsOperator() {
		return s
	}

	v, err := parseNumber(s.Chain[n-1].Number)
	if err != nil {
		return fail(err)
	}
	text := FormatNumber(v / 100)

	s.Tape = ""
	s.Chain[n-1].Number = text
	s.Buffer = text
	s.Awaiting = true
	return s.render()
}

func (s State) backspace() State {
	n := len(s.Chain)
	if n == 0 || utf8.RuneCountInString(s.Display) <= 1 {
		return New()
	}
	s.Tape = ""

	if last := s.Chain[n-1]; last.IsOperator() {
		s.Chain = s.Chain[:n-1]
		s.Pending = s.lastOperator()
		s.Awaiting = false
		s.Buffer = s.Chain[n-2].Number
		return s.render()
	}

	num := s.Chain[n-1].Number
	num = num[:len(num)-1]
	if num == "" || num == "-" {
		s.Chain = s.Chain[:n-1]
		if len(s.Chain) == 0 {
			return New()
		}
		s.Awaiting = true
		s.Buffer = s.Chain[s.lastNumber()].Number
		return s.render()
	}

	s.Chain[n-1].Number = num
	s.Buffer = num
	s.Awaiting = false
	return s.render()
}

// startOperand begins a new number. A trailing number in the chain is a
// computed value (result or percentage) and is replaced.
func (s State) startOperand(text string) State {
	if n := len(s.Chain); n > 0 && !s.Chain[n-1].IsOperator() {
		s.Chain = s.Chain[:n-1]
	}
	s.Chain = append(s.Chain, Term{Number: text})
	s.Buffer = text
	s.Awaiting = false
	return s
}

// setOperand writes Buffer into the chain as its trailing number.
func (s *State) setOperand() {
	n := len(s.Chain)
	if n == 0 || s.Chain[n-1].IsOperator() {
		s.Chain = append(s.Chain, Term{Number: s.Buffer})
		return
	}
	s.Chain[n-1].Number = s.Buffer
}

func (s State) lastNumber() int {
	for i := len(s.Chain) - 1; i >= 0; i-- {
		if !s.Chain[i].IsOperator() {
			return i
		}
	}
	return -1
}

func (s State) lastOperator() Operator {
	for i := len(s.Chain) - 1; i >= 0; i-- {
		if s.Chain[i].IsOperator() {
			return s.Chain[i].Op
		}
	}
	return OpNone
}

func (s State) render() State {
	text := chainText(s.Chain)
	if text == "" {
		text = DefaultDisplay
	}
	if s.Tape != "" {
		text = s.Tape + " = " + text
	}
	s.Display = text
	return s
}

// fail returns the Error state. The next digit starts a fresh calculation.
func fail(err error) State {
	return State{
		Display:  ErrorDisplay,
		Buffer:   "0",
		Awaiting: true,
		Err:      err,
	}
}

func chainText(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Evaluate folds a chain strictly left to right, without operator
// precedence: 2 + 3 × 4 is 20. The chain must alternate numbers and
// operators, starting and ending with a number.
func Evaluate(terms []Term) (float64, error) {
	if len(terms) == 0 || len(terms)%2 == 0 {
		return 0, ErrParse
	}
	if terms[0].IsOperator() {
		return 0, ErrParse
	}
	acc, err := parseNumber(terms[0].Number)
	if err != nil {
		return 0, err
	}
	for i := 1; i+1 < len(terms); i += 2 {
		op, operand := terms[i], terms[i+1]
		if !op.IsOperator() || operand.IsOperator() {
			return 0, ErrParse
		}
		v, err := parseNumber(operand.Number)
		if err != nil {
			return 0, err
		}
		acc, err = op.Op.apply(acc, v)
		if err != nil {
			return 0, err
		}
		if math.IsInf(acc, 0) || math.IsNaN(acc) {
			return 0, ErrOverflow
		}
	}
	return acc, nil
}

func parseNumber(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrOverflow
		}
		return 0, ErrParse
	}
	return v, nil
}
