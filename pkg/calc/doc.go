// Package calc implements the calculator core: a tagged input token type,
// the chained-expression state machine that consumes tokens one at a time,
// and the formatting rules for results and the display field.
//
// The state machine is a pure reducer. Apply takes a State and a Token and
// returns the next State without mutating its input, so the UI layer only
// owns one State value and swaps it after every input.
package calc
