// Package app wires the game together: configuration, logging, the
// puzzle and controller, the views, the key dispatcher with its hooks,
// and the terminal event loop.
package app

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/sudoku/internal/config"
	"github.com/dshills/sudoku/internal/config/watcher"
	"github.com/dshills/sudoku/internal/dispatcher"
	"github.com/dshills/sudoku/internal/game"
	"github.com/dshills/sudoku/internal/renderer/backend"
	"github.com/dshills/sudoku/internal/script"
	"github.com/dshills/sudoku/internal/sound"
	"github.com/dshills/sudoku/internal/view"
)

// DefaultTickInterval is how often the clock on screen is refreshed.
const DefaultTickInterval = time.Second

// Application is the central coordinator for one game session.
type Application struct {
	mu sync.Mutex

	opts    Options
	config  *config.Config
	logger  *Logger
	logFile io.Closer
	session string

	// Game
	controller *game.Controller

	// Views
	grid     *view.Grid
	status   *view.StatusBar
	theme    view.Theme
	renderer *view.Renderer
	backend  backend.Backend

	// Input
	dispatcher *dispatcher.Dispatcher
	pause      *dispatcher.PauseState

	// Feedback and extensions
	sound   *sound.Manager
	script  *script.Engine
	watcher *watcher.Watcher

	// Outcome last seen by onGameChange
	lastState    game.State
	lastMistakes int

	// State
	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// Options configures the application. Non-empty fields override the
// configuration file.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty uses defaults and
	// the environment only.
	ConfigPath string

	// Config replaces loading entirely when set.
	Config *config.Config

	Puzzle     string
	Difficulty string
	LogLevel   string
	LogFile    string
	Script     string
	NoSound    bool

	// LogOutput replaces the log file when set.
	LogOutput io.Writer

	// Clock replaces time.Now for the game clock.
	Clock func() time.Time

	// TickInterval sets how often the screen is refreshed for the clock.
	// Zero uses DefaultTickInterval; negative disables the ticker.
	TickInterval time.Duration
}

// tickEvent and reloadEvent are carried as interrupt payloads so that
// all state changes happen on the event loop goroutine.
type (
	tickEvent   struct{}
	reloadEvent struct{}
)

// New loads the configuration and builds every component. The terminal
// is not touched until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		session: uuid.NewString(),
	}

	if err := app.bootstrap(); err != nil {
		_ = app.closeLog()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logging
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	log := app.logger
	log.Info("starting session")

	// 3. Game
	if err := app.initGame(); err != nil {
		return &InitError{Component: "game", Err: err}
	}
	p := app.controller.Puzzle()
	log.Info("puzzle %s (%s)", p.ID, p.Difficulty)

	// 4. Views
	theme, err := themeFromConfig(cfg)
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.theme = theme
	app.grid = view.NewGrid()
	app.status = view.NewStatusBar()

	// 5. Dispatcher
	dcfg := dispatcher.DefaultConfig()
	if cfg.Dispatcher.Metrics {
		dcfg = dcfg.WithMetrics()
	}
	app.pause = dispatcher.NewPauseState()
	app.dispatcher = dispatcher.New(app.grid.Cells(), app.controller, app.status,
		dispatcher.WithConfig(dcfg),
		dispatcher.WithPauseState(app.pause),
		dispatcher.WithSelection(app.grid),
	)
	app.dispatcher.RegisterPostHook(dispatcher.NewLoggingHook(log.WithComponent("dispatcher").Debug))

	// 6. Sound
	app.sound = sound.NewManager(cfg.Sound.Enabled)
	app.dispatcher.RegisterPostHook(app.sound)
	app.controller.OnChange(app.onGameChange)

	// 7. Script
	app.initScript()

	return nil
}

// loadConfig reads the configuration and applies command line overrides.
func (app *Application) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if app.opts.Config != nil {
		c := *app.opts.Config
		cfg = &c
	} else {
		c, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	app.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *Application) applyOverrides(cfg *config.Config) {
	o := app.opts
	if o.Puzzle != "" {
		cfg.Game.Puzzle = o.Puzzle
	}
	if o.Difficulty != "" {
		cfg.Game.Difficulty = o.Difficulty
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}
	if o.Script != "" {
		cfg.Script.Path = o.Script
	}
	if o.NoSound {
		cfg.Sound.Enabled = false
	}
}

func (app *Application) initLogger() error {
	out := app.opts.LogOutput
	if out == nil {
		f, err := OpenLogFile(app.config.Logging.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.config.Logging.Level),
		Output: out,
		Prefix: "sudoku",
	}).WithField("session", app.session)
	return nil
}

func (app *Application) initGame() error {
	pack := game.BuiltinPack()
	if path := app.config.Game.PuzzleFile; path != "" {
		extra, err := game.LoadPackFile(path)
		if err != nil {
			return err
		}
		pack.Merge(extra)
		app.logger.Info("loaded %d puzzles from %s", extra.Len(), path)
	}

	difficulty := app.config.Game.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}
	p, err := pack.Pick(app.config.Game.Puzzle, difficulty)
	if err != nil {
		return err
	}

	opts := []game.ControllerOption{
		game.WithMaxMistakes(app.config.Game.MaxMistakes),
		game.WithLogFunc(app.logger.WithComponent("game").Debug),
	}
	if app.opts.Clock != nil {
		opts = append(opts, game.WithClock(app.opts.Clock))
	}

	ctrl, err := game.NewController(p, opts...)
	if err != nil {
		return err
	}
	app.controller = ctrl
	return nil
}

// initScript loads the hook script. Script errors are reported but do
// not stop the game.
func (app *Application) initScript() {
	path := app.config.Script.Path
	if path == "" {
		return
	}

	log := app.logger.WithComponent("script")
	engine := script.NewEngine(
		script.WithLogFunc(log.Info),
		script.WithStatus(app.scriptStatus),
	)
	if err := engine.LoadFile(path); err != nil {
		log.Warn("%v", err)
		app.status.SetMessage("Script failed to load; see log.")
		engine.Close()
		return
	}

	app.script = engine
	app.dispatcher.RegisterPostHook(engine)
	log.Info("loaded %s", path)
}

func (app *Application) scriptStatus() script.Status {
	return script.Status{
		Mistakes: app.controller.Mistakes(),
		Elapsed:  app.controller.Elapsed(),
		State:    app.controller.State().String(),
		Paused:   app.controller.IsPaused(),
	}
}

func themeFromConfig(cfg *config.Config) (view.Theme, error) {
	return view.NewTheme(view.ThemeColors{
		Given:    cfg.Theme.Given,
		User:     cfg.Theme.User,
		Error:    cfg.Theme.Error,
		Selected: cfg.Theme.Selected,
	})
}

func (app *Application) applyTheme(t view.Theme) {
	app.theme = t
	if app.renderer != nil {
		app.renderer.SetTheme(t)
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until the player
// quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.renderer = view.NewRenderer(b, app.grid, app.status, app.theme)

	if problems := app.startServices(); problems.HasErrors() {
		for _, err := range problems.Errors() {
			app.logger.Warn("%v", err)
		}
		app.status.SetMessage("Some services failed to start; see log.")
	}
	defer app.stopServices()

	return app.eventLoop()
}

// startServices starts the components that run beside the event loop.
// None of them are required for play, so failures are collected rather
// than returned.
func (app *Application) startServices() *ErrorList {
	problems := NewErrorList()

	if app.sound.Enabled() {
		problems.Add(app.initSound())
	}

	if path := app.opts.ConfigPath; path != "" && app.opts.Config == nil {
		problems.Add(app.startWatcher(path))
	}

	interval := app.opts.TickInterval
	if interval == 0 {
		interval = DefaultTickInterval
	}
	if interval > 0 {
		go app.tick(interval)
	}
	return problems
}

// startWatcher reloads the configuration whenever path changes.
func (app *Application) startWatcher(path string) error {
	w := watcher.New(watcher.WithErrorHandler(func(err error) {
		app.logger.WithComponent("watcher").Warn("%v", err)
	}))
	w.OnChange(func(watcher.Event) {
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadEvent{}})
	})

	err := w.Watch(path)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		return NewComponentError("watcher", "watch "+path, err)
	}
	app.watcher = w
	return nil
}

// initSound opens the speaker, turning sound off when that fails.
func (app *Application) initSound() error {
	if err := app.sound.Initialize(); err != nil {
		app.sound.SetEnabled(false)
		return NewComponentError("sound", "open speaker", err)
	}
	return nil
}

// tick refreshes the clock until shutdown.
func (app *Application) tick(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-app.done:
			return
		case <-t.C:
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: tickEvent{}})
		}
	}
}

// stopServices shuts components down in reverse order.
func (app *Application) stopServices() {
	app.closeOnce.Do(func() { close(app.done) })

	if app.watcher != nil {
		app.watcher.Stop()
	}
	if app.script != nil {
		app.script.Close()
	}
	app.sound.Cleanup()

	if m := app.dispatcher.Metrics(); m != nil {
		app.logMetrics(m)
	}

	p := app.controller.Puzzle()
	app.logger.Info("session ended: puzzle %s %s, %d mistakes, %s",
		p.ID, app.controller.State(), app.controller.Mistakes(), view.FormatElapsed(app.controller.Elapsed()))
	_ = app.closeLog()
}

// topActionCount is how many action kinds the metrics summary lists.
const topActionCount = 3

func (app *Application) logMetrics(m *dispatcher.Metrics) {
	s := m.Snapshot()
	app.logger.Info("dispatch metrics: %d dispatched, %d ignored, %d suppressed, %d without selection, %d hook panics, avg %s",
		s.TotalDispatches, s.TotalIgnored, s.TotalSuppressed, s.TotalNoSelection, s.TotalPanics, s.AverageDuration)

	for _, am := range m.TopActions(topActionCount) {
		app.logger.Info("dispatch metrics: %s x%d, avg %s, max %s",
			am.Kind, am.DispatchCount, am.AverageActionDuration(), am.MaxDuration)
	}
}

func (app *Application) closeLog() error {
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

// Close releases the log file for an application that never ran. Run
// releases it on return. Close is safe to call more than once.
func (app *Application) Close() error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	return app.closeLog()
}

// Shutdown asks a running event loop to return.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.closeOnce.Do(func() { close(app.done) })

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	b.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// reload re-reads the configuration file and applies the settings that
// can change mid-game: log level, sound and theme.
func (app *Application) reload() error {
	cfg, err := app.loadConfig()
	if err != nil {
		app.logger.Warn("config reload failed: %v", err)
		app.status.SetMessage("Config error; keeping previous settings.")
		return err
	}

	app.config = cfg
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	app.sound.SetEnabled(cfg.Sound.Enabled)
	if cfg.Sound.Enabled && app.running.Load() {
		if err := app.initSound(); err != nil {
			app.logger.Warn("%v", err)
		}
	}

	theme, err := themeFromConfig(cfg)
	if err != nil {
		// Validate already rejected bad colours.
		return err
	}
	app.applyTheme(theme)

	app.status.SetMessage("Config reloaded.")
	app.logger.Info("config reloaded")
	return nil
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Session returns the session id attached to every log line.
func (app *Application) Session() string {
	return app.session
}

// Controller returns the game controller.
func (app *Application) Controller() *game.Controller {
	return app.controller
}

// Dispatcher returns the key dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Grid returns the board view.
func (app *Application) Grid() *view.Grid {
	return app.grid
}

// Status returns the status view.
func (app *Application) Status() *view.StatusBar {
	return app.status
}

// Sound returns the sound manager.
func (app *Application) Sound() *sound.Manager {
	return app.sound
}
