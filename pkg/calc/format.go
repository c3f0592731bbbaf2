package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ellipsis marks tokens dropped from the left of an abbreviated display.
const ellipsis = "..."

// FormatNumber renders an arithmetic result. Integral values print without
// a fractional part; everything else uses at most 10 significant digits with
// trailing zeros removed, so 1/3 prints as 0.3333333333.
func FormatNumber(f float64) string {
	if f == 0 {
		// Also folds negative zero.
		return "0"
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', 10, 64)
}

// Present abbreviates text to at most width characters for the display
// field. A chain is cut to the trailing whole tokens that fit, prefixed with
// "..."; a single long numeral is switched to scientific notation. Present
// only shapes what is shown and has no effect on evaluation.
func Present(text string, width int) string {
	if utf8.RuneCountInString(text) <= width {
		return text
	}

	if strings.Contains(text, " ") {
		parts := strings.Fields(text)
		budget := width - len(ellipsis)
		kept, length := 0, 0
		for i := len(parts) - 1; i >= 0; i-- {
			n := utf8.RuneCountInString(parts[i])
			if kept > 0 {
				n++
			}
			if length+n > budget {
				break
			}
			length += n
			kept++
		}
		switch kept {
		case 0:
			last := parts[len(parts)-1]
			if len(parts) == 1 || width <= len(ellipsis) {
				return Present(last, width)
			}
			return ellipsis + Present(last, width-len(ellipsis))
		case len(parts):
			return strings.Join(parts, " ")
		}
		return ellipsis + strings.Join(parts[len(parts)-kept:], " ")
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) {
		if s, ok := scientific(f, width); ok {
			return s
		}
	}
	r := []rune(text)
	if width <= 0 {
		return ""
	}
	return string(r[len(r)-width:])
}

// scientific renders f in exponent form with as many mantissa digits as fit.
func scientific(f float64, width int) (string, bool) {
	for prec := width; prec >= 0; prec-- {
		s := strconv.FormatFloat(f, 'e', prec, 64)
		mant, exp, _ := strings.Cut(s, "e")
		if strings.Contains(mant, ".") {
			mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
		}
		s = mant + "e" + exp
		if len(s) <= width {
			return s, true
		}
	}
	return "", false
}
