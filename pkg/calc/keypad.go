package calc

// ButtonStyle is the colour scheme of one class of keypad buttons.
type ButtonStyle struct {
	Class string `json:"class"`
	Fill  string `json:"fill"`
	Text  string `json:"text"`
	Hover string `json:"hover"`
}

var (
	OperatorStyle = ButtonStyle{Class: "operator", Fill: "#FF9500", Text: "white", Hover: "#E6840A"}
	FunctionStyle = ButtonStyle{Class: "function", Fill: "#D4D4D2", Text: "black", Hover: "#BFBFBD"}
	NumberStyle   = ButtonStyle{Class: "number", Fill: "#505050", Text: "white", Hover: "#404040"}
)

// Button places one keypad button on the grid.
type Button struct {
	Label string      `json:"label"`
	Row   int         `json:"row"`
	Col   int         `json:"col"`
	Span  int         `json:"span"`
	Style ButtonStyle `json:"style"`
}

// KeypadColumns is the width of the keypad grid.
const KeypadColumns = 4

var keypadRows = [][]string{
	{"C", "±", "%", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "−"},
	{"1", "2", "3", "+"},
}

// Keypad returns the button layout. Every label decodes with DecodeLabel.
// The bottom row holds a double-width 0, the decimal point and the
// equals button.
func Keypad() []Button {
	var buttons []Button
	for r, row := range keypadRows {
		for c, label := range row {
			buttons = append(buttons, Button{Label: label, Row: r, Col: c, Span: 1, Style: styleFor(label)})
		}
	}
	last := len(keypadRows)
	buttons = append(buttons,
		Button{Label: "0", Row: last, Col: 0, Span: 2, Style: NumberStyle},
		Button{Label: ".", Row: last, Col: 2, Span: 1, Style: NumberStyle},
		Button{Label: "=", Row: last, Col: 3, Span: 1, Style: OperatorStyle},
	)
	return buttons
}

func styleFor(label string) ButtonStyle {
	t, ok := DecodeLabel(label)
	if !ok {
		return NumberStyle
	}
	switch t.Kind {
	case KindOperator, KindEquals:
		return OperatorStyle
	case KindClear, KindSignToggle, KindPercent, KindBackspace:
		return FunctionStyle
	default:
		return NumberStyle
	}
}
