package calc

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6.0, "6"},
		{6.5, "6.5"},
		{1.0 / 3.0, "0.3333333333"},
		{2.0 / 3.0, "0.6666666667"},
		{-4, "-4"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{0.5, "0.5"},
		{0.1 + 0.2, "0.3"},
		{1e20, "100000000000000000000"},
		{0.00001, "1e-05"},
		{123456.789, "123456.789"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestFormatIntegralHasNoPoint(t *testing.T) {
	for _, f := range []float64{1, 10, 250, -3, 1e6, 12345678} {
		s := FormatNumber(f)
		assert.False(t, strings.Contains(s, "."), "FormatNumber(%v) = %q", f, s)
	}
}

func TestPresent(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "2 + 3 = 5", 20, "2 + 3 = 5"},
		{"exact width", "12345678901234567890", 20, "12345678901234567890"},
		{"trailing tokens", "1 + 2 + 3 + 4 + 5 + 6 + 7", 20, "...3 + 4 + 5 + 6 + 7"},
		{"long numeral", "100000000000000000000000", 20, "1e+23"},
		{"long numeral mantissa", "123456789012345678901234", 12, "1.234568e+23"},
		{"last token too wide", "1 + 123456789012345678901234", 12, "...1.235e+23"},
		{"only last token fits", "1 + 123456789012345678", 20, "...1.23456789012e+17"},
		{"last token at full width", "7 × 12345678901234567890", 20, "...1.23456789012e+19"},
		{"not a number", "abcdefghijklmnopqrstuvwxyz", 20, "ghijklmnopqrstuvwxyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Present(tt.text, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.width)
		})
	}
}

func TestPresentCountsRunes(t *testing.T) {
	// Operator glyphs are multi-byte but occupy one cell.
	text := "12 × 34 ÷ 56 − 78 + 9"
	assert.Equal(t, 21, utf8.RuneCountInString(text))
	assert.Equal(t, "...34 ÷ 56 − 78 + 9", Present(text, 20))
}
