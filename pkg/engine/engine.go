// Package engine runs calculator session scripts. A script is zygomys Lisp
// evaluated in a sandbox; builtins such as (press "2" "+" "3" "=") feed
// tokens into a fresh calculator and (expect "2 + 3 = 5") checks the
// display, which makes scripts usable both for replaying a session and
// as executable examples.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/calc/pkg/calc"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered while running a
// script, such as a parse error, an unknown button or a failed expectation.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Frame is the display after one input of a session.
type Frame struct {
	Input   string `json:"input"`
	Display string `json:"display"`
}

// Session is the outcome of running a script.
type Session struct {
	Frames []Frame
	State  calc.State
}

// Display returns the text currently shown in the display field.
func (s *Session) Display() string {
	return s.State.View()
}

func (s *Session) feed(input string, t calc.Token) {
	s.State = calc.Apply(s.State, t)
	s.Frames = append(s.Frames, Frame{Input: input, Display: s.State.View()})
}

// Engine wraps the zygomys interpreter for session scripts.
// It is safe for concurrent use; each call to Run creates a fresh
// sandboxed environment and a fresh calculator.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	logger     *zap.Logger
}

// NewEngine creates a new Engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run evaluates a session script.
//
// Return semantics:
//   - On success: returns session + nil errors + nil error
//   - On parse/eval failure: returns nil session + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Run(source string) (*Session, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		sess, evalErrs, err := e.run(source)
		ch <- evalResult{session: sess, errors: evalErrs, err: err}
	}()

	sess, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation)
	switch {
	case err != nil:
		e.logger.Warn("script aborted", zap.Error(err))
	case len(evalErrs) > 0:
		e.logger.Info("script failed", zap.String("error", evalErrs[0].Error()))
	default:
		e.logger.Debug("script finished",
			zap.Int("frames", len(sess.Frames)),
			zap.String("display", sess.Display()))
	}
	return sess, evalErrs, err
}

// run performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) run(source string) (*Session, []EvalError, error) {
	sess := &Session{State: calc.New()}

	// An empty script is a valid session that never leaves the start-up state.
	if strings.TrimSpace(source) == "" {
		return sess, nil, nil
	}

	// Sandbox mode prevents scripts from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, sess)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return sess, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?is)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?is)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
