package toggle

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yourusername/tray-toggle/internal/config"
	"github.com/yourusername/tray-toggle/internal/logging"
	"github.com/yourusername/tray-toggle/internal/tray"
	"github.com/yourusername/tray-toggle/internal/wm"
)

// materializeDelay gives a tray-spawned window time to appear before the
// invocation returns.
const materializeDelay = 500 * time.Millisecond

// WindowService is the window-manager facade the engine drives.
type WindowService interface {
	CurrentWorkspace() (wm.WorkspaceRef, bool)
	FindWindow(app config.AppConfig) (*wm.Window, wm.WorkspaceRef, bool)
	MoveToScratchpad(w *wm.Window) bool
	ShowFromScratchpad(w *wm.Window) bool
	MoveToWorkspace(w *wm.Window, workspace string) bool
}

// ProcessService answers process liveness and launches applications.
type ProcessService interface {
	IsRunning(app config.AppConfig) (string, bool)
	Launch(app config.AppConfig) bool
}

// TrayService locates and clicks status-bar tray icons.
type TrayService interface {
	FindIconGeometry(token string) (Geometry, bool)
	ClickIcon(g Geometry) bool
}

// Geometry aliases the tray package's rectangle so engine fakes don't need
// to import both packages.
type Geometry = tray.Geometry

// Signals is the snapshot of the four presence queries an invocation starts
// with. Classification is a pure function of this value; nothing is re-read
// between gathering and acting.
type Signals struct {
	ProcessID        string          `json:"processId,omitempty"`
	ProcessRunning   bool            `json:"processRunning"`
	TrayPresent      bool            `json:"trayPresent"`
	Window           *wm.Window      `json:"window,omitempty"`
	WindowWorkspace  wm.WorkspaceRef `json:"windowWorkspace"`
	WindowFound      bool            `json:"windowFound"`
	CurrentWorkspace wm.WorkspaceRef `json:"currentWorkspace"`
	CurrentKnown     bool            `json:"currentWorkspaceKnown"`
}

// Result carries the classified state and the outcome of its transition.
type Result struct {
	State   State   `json:"state"`
	Signals Signals `json:"signals"`
	Success bool    `json:"success"`
}

// Classify resolves a signal snapshot into exactly one state. Rules are
// checked in priority order; the first match wins:
//
//  1. no tray icon                      -> NotLaunched
//  2. window found, both workspaces known:
//     in scratchpad                     -> InScratchpad
//     on the current workspace          -> InCurrentWorkspace
//     elsewhere                         -> InOtherWorkspace
//  3. process alive, tray, no window    -> TrayOnly
//  4. anything else                     -> Unresolved
func Classify(sig Signals) State {
	if !sig.TrayPresent {
		return StateNotLaunched
	}
	if sig.WindowFound && sig.CurrentKnown {
		switch {
		case sig.WindowWorkspace.Scratchpad:
			return StateInScratchpad
		case sig.WindowWorkspace.Equal(sig.CurrentWorkspace):
			return StateInCurrentWorkspace
		default:
			return StateInOtherWorkspace
		}
	}
	if sig.ProcessRunning && !sig.WindowFound {
		return StateTrayOnly
	}
	return StateUnresolved
}

// Engine gathers presence signals and performs the single transition the
// resulting state calls for.
type Engine struct {
	windows WindowService
	procs   ProcessService
	tray    TrayService
	sleep   func(d time.Duration)
}

// NewEngine wires the three services into a toggle engine.
func NewEngine(windows WindowService, procs ProcessService, trays TrayService) *Engine {
	return &Engine{
		windows: windows,
		procs:   procs,
		tray:    trays,
		sleep:   time.Sleep,
	}
}

// Toggle gathers all four signals up front, classifies once, and executes
// exactly one side-effecting action.
func (e *Engine) Toggle(app config.AppConfig) Result {
	log := logging.Logger.With().
		Str("run", uuid.New().String()).
		Str("app", app.Name).
		Logger()

	sig := e.gather(app)
	state := Classify(sig)

	log.Info().
		Str("pid", sig.ProcessID).
		Bool("tray", sig.TrayPresent).
		Bool("window", sig.WindowFound).
		Str("windowWorkspace", sig.WindowWorkspace.String()).
		Str("currentWorkspace", sig.CurrentWorkspace.String()).
		Str("state", state.String()).
		Msg("classified")

	ok := e.act(log, state, app, sig)
	if !ok {
		log.Warn().Str("state", state.String()).Msg("transition failed")
	}
	return Result{State: state, Signals: sig, Success: ok}
}

// gather runs all four queries unconditionally so the decision is a pure
// function over one snapshot.
func (e *Engine) gather(app config.AppConfig) Signals {
	var sig Signals
	sig.ProcessID, sig.ProcessRunning = e.procs.IsRunning(app)
	_, sig.TrayPresent = e.tray.FindIconGeometry(app.TrayInfo)
	sig.Window, sig.WindowWorkspace, sig.WindowFound = e.windows.FindWindow(app)
	sig.CurrentWorkspace, sig.CurrentKnown = e.windows.CurrentWorkspace()
	return sig
}

func (e *Engine) act(log zerolog.Logger, state State, app config.AppConfig, sig Signals) bool {
	switch state {
	case StateNotLaunched:
		log.Info().Msg("launching")
		return e.procs.Launch(app)
	case StateInScratchpad:
		log.Info().Msg("showing from scratchpad")
		return e.windows.ShowFromScratchpad(sig.Window)
	case StateInCurrentWorkspace:
		log.Info().Msg("hiding to scratchpad")
		return e.windows.MoveToScratchpad(sig.Window)
	case StateInOtherWorkspace:
		log.Info().Str("target", sig.CurrentWorkspace.Name).Msg("pulling to current workspace")
		return e.windows.MoveToWorkspace(sig.Window, sig.CurrentWorkspace.Name)
	case StateTrayOnly, StateUnresolved:
		log.Info().Msg("clicking tray icon")
		return e.clickTray(app)
	}
	return false
}

// clickTray re-reads the icon geometry, clicks it, and waits for the window
// to materialize.
func (e *Engine) clickTray(app config.AppConfig) bool {
	g, ok := e.tray.FindIconGeometry(app.TrayInfo)
	if !ok {
		return false
	}
	if !e.tray.ClickIcon(g) {
		return false
	}
	e.sleep(materializeDelay)
	return true
}
