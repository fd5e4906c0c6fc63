package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/sudoku/internal/dispatcher"
)

// ErrScriptClosed is returned by calls on a closed engine.
var ErrScriptClosed = errors.New("script engine closed")

// DefaultTimeout bounds a single script call.
const DefaultTimeout = 100 * time.Millisecond

// ActionHook is the global function called for each action.
const ActionHook = "on_action"

// Status is the game summary exposed to scripts.
type Status struct {
	Mistakes int
	Elapsed  time.Duration
	State    string
	Paused   bool
}

// Engine owns one Lua state. It is safe for use from several goroutines
// but runs one call at a time.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool

	timeout time.Duration
	logf    func(format string, args ...any)
	status  func() Status
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each script call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogFunc receives script log() output and hook errors.
func WithLogFunc(logf func(format string, args ...any)) Option {
	return func(e *Engine) {
		e.logf = logf
	}
}

// WithStatus supplies the data behind status().
func WithStatus(fn func() Status) Option {
	return func(e *Engine) {
		e.status = fn
	}
}

// NewEngine creates an engine with the safe libraries loaded.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("log", L.NewFunction(e.luaLog))
	L.SetGlobal("print", L.NewFunction(e.luaLog))
	L.SetGlobal("status", L.NewFunction(e.luaStatus))

	e.L = L
	return e
}

// LoadFile runs a script file, defining its globals.
func (e *Engine) LoadFile(path string) error {
	return e.run(func(L *lua.LState) error {
		if err := L.DoFile(path); err != nil {
			return fmt.Errorf("loading script %s: %w", path, err)
		}
		return nil
	})
}

// LoadString runs script source.
func (e *Engine) LoadString(code string) error {
	return e.run(func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// HasHook reports whether the script defines on_action.
func (e *Engine) HasHook() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	return e.L.GetGlobal(ActionHook).Type() == lua.LTFunction
}

// CallAction calls on_action with the action. A script without the
// hook is not an error.
func (e *Engine) CallAction(action dispatcher.Action) error {
	return e.run(func(L *lua.LState) error {
		fn := L.GetGlobal(ActionHook)
		if fn.Type() != lua.LTFunction {
			return nil
		}
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, actionTable(L, action))
	})
}

// PostDispatch forwards the action to the script. Refused moves are not
// forwarded. Errors are logged.
func (e *Engine) PostDispatch(action dispatcher.Action) {
	if action.Rejected {
		return
	}
	if err := e.CallAction(action); err != nil && !errors.Is(err, ErrScriptClosed) {
		e.log("script: %s: %v", ActionHook, err)
	}
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.L.Close()
	e.closed = true
}

// run executes fn under the lock with the call timeout and panic
// recovery.
func (e *Engine) run(fn func(L *lua.LState) error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrScriptClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn(e.L)
}

func actionTable(L *lua.LState, a dispatcher.Action) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("kind", lua.LString(a.Kind.String()))
	if a.Key != 0 {
		t.RawSetString("key", lua.LString(string(a.Key)))
	}
	if a.IsCellAction() {
		t.RawSetString("row", lua.LNumber(a.Row+1))
		t.RawSetString("col", lua.LNumber(a.Col+1))
	}
	if a.Digit != 0 {
		t.RawSetString("digit", lua.LNumber(a.Digit))
	}
	t.RawSetString("notes", lua.LBool(a.Notes))
	t.RawSetString("paused", lua.LBool(a.Paused))
	return t
}

func (e *Engine) luaLog(L *lua.LState) int {
	n := L.GetTop()
	msg := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			msg += " "
		}
		msg += L.ToStringMeta(L.Get(i)).String()
	}
	e.log("script: %s", msg)
	return 0
}

func (e *Engine) luaStatus(L *lua.LState) int {
	var s Status
	if e.status != nil {
		s = e.status()
	}
	t := L.NewTable()
	t.RawSetString("mistakes", lua.LNumber(s.Mistakes))
	t.RawSetString("elapsed", lua.LNumber(s.Elapsed.Seconds()))
	t.RawSetString("state", lua.LString(s.State))
	t.RawSetString("paused", lua.LBool(s.Paused))
	L.Push(t)
	return 1
}

func (e *Engine) log(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}
