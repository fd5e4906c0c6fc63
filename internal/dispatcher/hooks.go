package dispatcher

// PostDispatchHook is called after an effective action has been applied.
// Ignored keys and suppressed (game over) events never reach hooks. Cell
// actions the controller refused arrive with Rejected set.
type PostDispatchHook interface {
	PostDispatch(action Action)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(action Action)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(action Action) {
	f(action)
}

// LoggingHook logs every dispatched action.
type LoggingHook struct {
	// LogFunc is called with log messages.
	LogFunc func(format string, args ...any)
}

// NewLoggingHook creates a logging hook writing through logFunc.
func NewLoggingHook(logFunc func(format string, args ...any)) *LoggingHook {
	return &LoggingHook{LogFunc: logFunc}
}

// PostDispatch implements PostDispatchHook.
func (h *LoggingHook) PostDispatch(action Action) {
	if h.LogFunc == nil {
		return
	}
	h.LogFunc("dispatch: %s", action)
}

// RegisterPostHook adds a hook that runs after each effective action.
// Hooks run in registration order.
func (d *Dispatcher) RegisterPostHook(h PostDispatchHook) {
	if h == nil {
		return
	}
	d.postHooks = append(d.postHooks, h)
}

// runPostHooks notifies every hook of the action.
func (d *Dispatcher) runPostHooks(action Action) {
	for _, h := range d.postHooks {
		if d.config.RecoverFromPanic {
			d.runHookWithRecovery(h, action)
		} else {
			h.PostDispatch(action)
		}
	}
}

// runHookWithRecovery runs one hook and records a panic instead of
// propagating it.
func (d *Dispatcher) runHookWithRecovery(h PostDispatchHook, action Action) {
	defer func() {
		if r := recover(); r != nil && d.metrics != nil {
			d.metrics.RecordPanic(action.Kind)
		}
	}()
	h.PostDispatch(action)
}
