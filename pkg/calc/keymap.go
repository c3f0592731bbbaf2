package calc

// keyTable maps physical key names to tokens. Both browser KeyboardEvent.key
// values and Tk keysym names are accepted.
var keyTable = withDigits(map[string]Token{
	".":         Decimal,
	",":         Decimal,
	"period":    Decimal,
	"+":         Op(OpAdd),
	"plus":      Op(OpAdd),
	"-":         Op(OpSubtract),
	"minus":     Op(OpSubtract),
	"*":         Op(OpMultiply),
	"asterisk":  Op(OpMultiply),
	"/":         Op(OpDivide),
	"slash":     Op(OpDivide),
	"Enter":     Equals,
	"Return":    Equals,
	"=":         Equals,
	"Escape":    Clear,
	"c":         Clear,
	"C":         Clear,
	"Backspace": Backspace,
	"BackSpace": Backspace,
	"%":         Percent,
	"percent":   Percent,
})

// labelTable maps keypad button labels to tokens.
var labelTable = withDigits(map[string]Token{
	".": Decimal,
	"+": Op(OpAdd),
	"−": Op(OpSubtract),
	"-": Op(OpSubtract),
	"×": Op(OpMultiply),
	"*": Op(OpMultiply),
	"÷": Op(OpDivide),
	"/": Op(OpDivide),
	"=": Equals,
	"C": Clear,
	"±": SignToggle,
	"%": Percent,
	"⌫": Backspace,
})

func withDigits(m map[string]Token) map[string]Token {
	for d := byte('0'); d <= '9'; d++ {
		m[string(d)] = Digit(d)
	}
	return m
}

// DecodeKey translates a key name into a token. Keys outside the table
// report false and should be ignored.
func DecodeKey(key string) (Token, bool) {
	t, ok := keyTable[key]
	return t, ok
}

// DecodeLabel translates a keypad button label into a token.
func DecodeLabel(label string) (Token, bool) {
	t, ok := labelTable[label]
	return t, ok
}
