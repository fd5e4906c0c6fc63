// Package dispatcher translates key presses into game actions.
//
// The Dispatcher is the only place that knows which characters mean
// what. It owns two independent mode flags, notes mode and pause, and
// forwards every effective key to the game Controller, the 81 cell views
// and the status view through the small interfaces declared in this
// package.
//
// # Key Table
//
//	n, N    toggle notes mode and broadcast it to every cell and the status view
//	p, P    toggle pause and pause or resume the controller
//	1-9     set a note (notes mode) or play the number on the selected cell
//	space   clear the selected cell (ignored in notes mode)
//
// Every other character is ignored. When the controller reports the game
// is over, every key is ignored.
//
// # Selection
//
// The selected cell is looked up through a SelectionSource when one is
// supplied (O(1)). Without one the dispatcher scans the cells in
// row-major order and takes the first cell reporting IsSelected. Either
// way, no selection means digits and space do nothing.
//
// # Pause
//
// The pause flag lives in a PauseState owned by the game session and
// shared by reference with any other pause trigger, such as a pause
// button. All toggles go through TogglePause. SetPausedMode re-applies
// the current value to the controller without changing it.
//
// # Hooks
//
// Post-dispatch hooks observe every effective action:
//
//	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(a dispatcher.Action) {
//	    log.Printf("%s at %d,%d", a.Kind, a.Row, a.Col)
//	}))
//
// A Dispatcher is not safe for concurrent use. Call it from the event
// loop goroutine only.
package dispatcher
