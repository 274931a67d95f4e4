package tray

import (
	"os/exec"
	"time"

	"github.com/yourusername/tray-toggle/internal/logging"
)

// Service discovers tray icons by scraping an xwininfo window-tree dump and
// clicks them with xdotool.
type Service struct {
	run   func(name string, args ...string) ([]byte, error)
	sleep func(d time.Duration)
}

// NewService creates a tray service backed by the real X11 tools.
func NewService() *Service {
	return &Service{
		run:   runCommand,
		sleep: time.Sleep,
	}
}

// FindIconGeometry locates the tray icon identified by token and returns its
// absolute screen rectangle. A failed dump or a missing icon both report
// absent; neither is fatal to the caller.
func (s *Service) FindIconGeometry(token string) (Geometry, bool) {
	out, err := s.run("xwininfo", "-tree", "-root")
	if err != nil {
		logging.Error().Err(err).Msg("xwininfo failed")
		return Geometry{}, false
	}

	g, ok := ParseIconGeometry(string(out), token)
	if !ok {
		logging.Debug().Str("token", token).Msg("tray icon not found")
	}
	return g, ok
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}
