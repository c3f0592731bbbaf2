package main

import (
	"context"
	"sync"

	"github.com/chazu/calc/pkg/calc"
	"github.com/chazu/calc/pkg/engine"
	"go.uber.org/zap"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
//
// Wails may invoke bindings from several goroutines; mu serialises them so
// tokens reach the state machine one at a time, in arrival order.
type App struct {
	ctx    context.Context
	mu     sync.Mutex
	state  calc.State
	engine *engine.Engine
	logger *zap.Logger
}

// DisplayData is the JSON-serializable display field sent to the frontend.
type DisplayData struct {
	Text  string `json:"text"`
	Error bool   `json:"error"`
}

// EvalErrorData is a JSON-serializable script error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is the full result of RunScript returned to the frontend.
type ScriptResult struct {
	Frames  []engine.Frame  `json:"frames"`
	Display DisplayData     `json:"display"`
	Errors  []EvalErrorData `json:"errors"`
}

// NewApp creates a new App showing the start-up display. A nil logger
// discards output.
func NewApp(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		state:  calc.New(),
		engine: engine.NewEngine(logger.Named("engine")),
		logger: logger,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.logger.Info("calculator started")
}

// Press handles a keypad button. Unknown labels are ignored.
func (a *App) Press(label string) DisplayData {
	t, ok := calc.DecodeLabel(label)
	if !ok {
		a.logger.Debug("ignoring unknown button", zap.String("label", label))
		return a.Display()
	}
	return a.apply(label, t)
}

// PressKey handles a physical key. Keys outside the key table are ignored.
func (a *App) PressKey(key string) DisplayData {
	t, ok := calc.DecodeKey(key)
	if !ok {
		return a.Display()
	}
	return a.apply(key, t)
}

// Display returns the current display field.
func (a *App) Display() DisplayData {
	a.mu.Lock()
	defer a.mu.Unlock()
	return displayData(a.state)
}

// Keypad returns the button layout the frontend renders.
func (a *App) Keypad() []calc.Button {
	return calc.Keypad()
}

// RunScript runs a session script on a fresh calculator. On success the
// window adopts the state the script ended in.
func (a *App) RunScript(source string) ScriptResult {
	result := ScriptResult{
		Frames: []engine.Frame{},
		Errors: []EvalErrorData{},
	}

	sess, evalErrs, err := a.engine.Run(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.Display = a.Display()
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		result.Display = a.Display()
		return result
	}

	a.mu.Lock()
	a.state = sess.State
	a.mu.Unlock()

	result.Frames = append(result.Frames, sess.Frames...)
	result.Display = displayData(sess.State)
	return result
}

func (a *App) apply(input string, t calc.Token) DisplayData {
	a.mu.Lock()
	defer a.mu.Unlock()

	prev := a.state
	a.state = calc.Apply(prev, t)

	if a.state.Failed() && !prev.Failed() {
		a.logger.Info("calculation failed",
			zap.String("expression", prev.Display),
			zap.Error(a.state.Err))
	}
	a.logger.Debug("input",
		zap.String("input", input),
		zap.Stringer("kind", t.Kind),
		zap.String("display", a.state.Display))

	return displayData(a.state)
}

func displayData(s calc.State) DisplayData {
	return DisplayData{Text: s.View(), Error: s.Failed()}
}
