package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmptyScript(t *testing.T) {
	eng := NewEngine(nil)

	for _, src := range []string{"", "   \n\t  \n  "} {
		sess, evalErrs, err := eng.Run(src)
		require.NoError(t, err)
		require.Empty(t, evalErrs)
		require.NotNil(t, sess)
		assert.Empty(t, sess.Frames)
		assert.Equal(t, "0", sess.Display())
	}
}

func TestRunPressSequence(t *testing.T) {
	eng := NewEngine(nil)

	sess, evalErrs, err := eng.Run(`(press "2" "+" "3" "×" "4" "=")`)
	require.NoError(t, err)
	require.Empty(t, evalErrs)

	assert.Equal(t, "2 + 3 × 4 = 20", sess.Display())
	require.Len(t, sess.Frames, 6)
	assert.Equal(t, Frame{Input: "2", Display: "2"}, sess.Frames[0])
	assert.Equal(t, Frame{Input: "+", Display: "2 +"}, sess.Frames[1])
	assert.Equal(t, Frame{Input: "=", Display: "2 + 3 × 4 = 20"}, sess.Frames[5])
}

func TestRunIntegerArguments(t *testing.T) {
	eng := NewEngine(nil)

	sess, evalErrs, err := eng.Run(`(press 12 "÷" 4 "=")`)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Equal(t, "12 ÷ 4 = 3", sess.Display())
	assert.Len(t, sess.Frames, 5)
}

func TestRunKeys(t *testing.T) {
	eng := NewEngine(nil)

	src := `
; keyboard session
(key "9" "slash" "0" "Return")
(expect "Error")
(key "Escape")
(expect "0")
(key "5" "0" "%")
(expect "0.5")
`
	sess, evalErrs, err := eng.Run(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Equal(t, "0.5", sess.Display())
	assert.False(t, sess.State.Failed())
}

func TestRunExpectMismatch(t *testing.T) {
	eng := NewEngine(nil)

	sess, evalErrs, err := eng.Run("(press \"2\" \"+\" \"3\" \"×\" \"4\" \"=\")\n(expect \"14\")")
	require.NoError(t, err)
	assert.Nil(t, sess)
	require.NotEmpty(t, evalErrs)
	assert.Contains(t, evalErrs[0].Message, "14")
}

func TestRunUnknownInput(t *testing.T) {
	eng := NewEngine(nil)

	_, evalErrs, err := eng.Run(`(press "sqrt")`)
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
	assert.Contains(t, evalErrs[0].Message, "sqrt")

	_, evalErrs, err = eng.Run(`(key "F1")`)
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
}

func TestRunWrongArgumentType(t *testing.T) {
	eng := NewEngine(nil)

	_, evalErrs, err := eng.Run(`(press -3)`)
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)

	_, evalErrs, err = eng.Run(`(expect 5)`)
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
}

func TestRunSyntaxError(t *testing.T) {
	eng := NewEngine(nil)

	// Unmatched paren is a parse error.
	sess, evalErrs, err := eng.Run(`(press "1"`)
	require.NoError(t, err, "expected non-fatal eval error")
	assert.Nil(t, sess)
	require.NotEmpty(t, evalErrs)
	assert.NotEmpty(t, evalErrs[0].Message)
}

func TestRunDisplayBuiltin(t *testing.T) {
	eng := NewEngine(nil)

	src := `
(def shown (press "7" "±"))
(expect shown)
(expect (display))
`
	sess, evalErrs, err := eng.Run(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Equal(t, "-7", sess.Display())
}

func TestRunDeterministic(t *testing.T) {
	eng := NewEngine(nil)

	// Each run starts from a fresh calculator.
	for i := 0; i < 5; i++ {
		sess, evalErrs, err := eng.Run(`(press "1" "+" "1" "=")`)
		require.NoError(t, err, "iteration %d", i)
		require.Empty(t, evalErrs, "iteration %d", i)
		assert.Equal(t, "1 + 1 = 2", sess.Display(), "iteration %d", i)
	}
}

func TestPreprocessComments(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"double semicolon", `;; a comment`, `// a comment`},
		{"single semicolon", `(press "1") ; trailing`, `(press "1") // trailing`},
		{"semicolon in string", `(press ";")`, `(press ";")`},
		{"escaped quote", `(press "\";") ; c`, `(press "\";") // c`},
		{"no comment", `(press "1")`, `(press "1")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, preprocessSource(tt.input))
		})
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Message: "something went wrong"}
	assert.Contains(t, e.Error(), "line 5")
	assert.Contains(t, e.Error(), "something went wrong")

	e2 := EvalError{Message: "no location"}
	assert.NotContains(t, e2.Error(), "line")
}

func TestWaitWithTimeout(t *testing.T) {
	// Exercise the timeout plumbing directly with a channel that never sends.
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult)

	done := make(chan struct{})
	var resultErr error
	go func() {
		defer close(done)
		_, _, resultErr = waitWithTimeout(ch, 1, &mu, &gen)
	}()

	select {
	case <-done:
		require.Error(t, resultErr)
		assert.True(t, strings.Contains(resultErr.Error(), "timed out"), "got: %v", resultErr)
	case <-time.After(EvalTimeout + 2*time.Second):
		t.Fatal("test itself timed out waiting for evaluation timeout")
	}
}

func TestWaitDiscardsStaleGeneration(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2)

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := waitWithTimeout(ch, 1, &mu, &gen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "superseded")
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line format", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"no line info", "some generic error", 0, "some generic error"},
		{"line format lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short line format", "line 3: bad input", 3, "bad input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantLine, errs[0].Line)
			assert.Contains(t, errs[0].Message, tt.wantMsg)
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }
