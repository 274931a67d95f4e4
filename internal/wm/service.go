package wm

import (
	"fmt"
	"strings"

	"github.com/yourusername/tray-toggle/internal/config"
	"github.com/yourusername/tray-toggle/internal/i3"
	"github.com/yourusername/tray-toggle/internal/logging"
)

// Conn is the slice of the i3 client the window service needs.
type Conn interface {
	GetTree() (*i3.Node, error)
	GetWorkspaces() ([]i3.Workspace, error)
	RunCommand(command string) error
}

// WorkspaceRef names a workspace or the scratchpad container.
type WorkspaceRef struct {
	Name       string `json:"name,omitempty"`
	Scratchpad bool   `json:"scratchpad,omitempty"`
}

// NamedRef builds a ref for a named workspace.
func NamedRef(name string) WorkspaceRef {
	return WorkspaceRef{Name: name}
}

// ScratchpadRef builds the scratchpad sentinel ref.
func ScratchpadRef() WorkspaceRef {
	return WorkspaceRef{Scratchpad: true}
}

// Equal reports whether two refs point at the same container. Two refs are
// equal iff both are the scratchpad, or both name the same workspace.
func (w WorkspaceRef) Equal(other WorkspaceRef) bool {
	if w.Scratchpad || other.Scratchpad {
		return w.Scratchpad && other.Scratchpad
	}
	return w.Name == other.Name
}

func (w WorkspaceRef) String() string {
	if w.Scratchpad {
		return "scratchpad"
	}
	return w.Name
}

// Window is a handle to one leaf window of the i3 tree.
type Window struct {
	ID    int64  `json:"id"`
	Class string `json:"class"`
	Title string `json:"title"`
}

// Service implements window queries and commands over an i3 connection.
// Every operation fails soft: protocol errors are logged and reported as an
// absent result or false, never returned to the caller.
type Service struct {
	conn Conn
}

// NewService creates a window service over an i3 connection.
func NewService(conn Conn) *Service {
	return &Service{conn: conn}
}

// CurrentWorkspace returns the currently focused workspace.
func (s *Service) CurrentWorkspace() (WorkspaceRef, bool) {
	workspaces, err := s.conn.GetWorkspaces()
	if err != nil {
		logging.Error().Err(err).Msg("workspace query failed")
		return WorkspaceRef{}, false
	}
	for _, ws := range workspaces {
		if ws.Focused {
			return NamedRef(ws.Name), true
		}
	}
	return WorkspaceRef{}, false
}

// FindWindow scans workspace leaves in tree order, then the scratchpad, and
// returns the first window matching the app's class or title patterns along
// with the container it was found in.
func (s *Service) FindWindow(app config.AppConfig) (*Window, WorkspaceRef, bool) {
	tree, err := s.conn.GetTree()
	if err != nil {
		logging.Error().Err(err).Msg("tree query failed")
		return nil, WorkspaceRef{}, false
	}

	for _, ws := range tree.Workspaces() {
		for _, leaf := range ws.Leaves() {
			if matches(leaf, app) {
				return toWindow(leaf), NamedRef(ws.Name), true
			}
		}
	}

	if sp := tree.Scratchpad(); sp != nil {
		for _, leaf := range sp.Leaves() {
			if matches(leaf, app) {
				return toWindow(leaf), ScratchpadRef(), true
			}
		}
	}

	return nil, WorkspaceRef{}, false
}

// MoveToScratchpad hides the window in the scratchpad.
func (s *Service) MoveToScratchpad(w *Window) bool {
	if err := s.command(w, "move scratchpad"); err != nil {
		logging.Error().Int64("window", w.ID).Err(err).Msg("move to scratchpad failed")
		return false
	}
	return true
}

// ShowFromScratchpad reveals the window and focuses it, in that order.
func (s *Service) ShowFromScratchpad(w *Window) bool {
	if err := s.command(w, "scratchpad show"); err != nil {
		logging.Error().Int64("window", w.ID).Err(err).Msg("scratchpad show failed")
		return false
	}
	if err := s.command(w, "focus"); err != nil {
		logging.Error().Int64("window", w.ID).Err(err).Msg("focus failed")
		return false
	}
	return true
}

// MoveToWorkspace moves the window to the named workspace and focuses it.
func (s *Service) MoveToWorkspace(w *Window, workspace string) bool {
	if err := s.command(w, fmt.Sprintf("move to workspace %s", workspace)); err != nil {
		logging.Error().Int64("window", w.ID).Str("workspace", workspace).Err(err).Msg("move to workspace failed")
		return false
	}
	if err := s.command(w, "focus"); err != nil {
		logging.Error().Int64("window", w.ID).Err(err).Msg("focus failed")
		return false
	}
	return true
}

// command addresses an i3 command at one specific window.
func (s *Service) command(w *Window, cmd string) error {
	return s.conn.RunCommand(fmt.Sprintf("[con_id=%d] %s", w.ID, cmd))
}

func toWindow(n *i3.Node) *Window {
	return &Window{ID: n.ID, Class: n.Class(), Title: n.Name}
}

// matches implements case-insensitive substring matching of the app's class
// patterns against the window class and name patterns against the title.
func matches(n *i3.Node, app config.AppConfig) bool {
	if class := strings.ToLower(n.Class()); class != "" {
		for _, p := range app.WindowClassPatterns {
			if strings.Contains(class, strings.ToLower(p)) {
				return true
			}
		}
	}
	if title := strings.ToLower(n.Name); title != "" {
		for _, p := range app.WindowNamePatterns {
			if strings.Contains(title, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}
