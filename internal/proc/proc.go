package proc

import (
	"os/exec"
	"strings"
	"syscall"

	"github.com/yourusername/tray-toggle/internal/config"
	"github.com/yourusername/tray-toggle/internal/logging"
)

// Service looks up and launches OS processes for an application.
type Service struct {
	lookup func(pattern string) ([]byte, error)
	spawn  func(argv []string) error
}

// NewService creates a process service backed by pgrep and detached spawns.
func NewService() *Service {
	return &Service{
		lookup: pgrep,
		spawn:  spawnDetached,
	}
}

// IsRunning tries each process pattern in order and returns the pid output
// of the first pattern with any match.
func (s *Service) IsRunning(app config.AppConfig) (string, bool) {
	for _, pattern := range app.ProcessPatterns {
		out, err := s.lookup(pattern)
		if err != nil {
			// pgrep exits non-zero when nothing matched
			continue
		}
		if pid := strings.TrimSpace(string(out)); pid != "" {
			return pid, true
		}
	}
	return "", false
}

// Launch starts the application with the first launch command the OS
// accepts. Success means the spawn was accepted, not that the process is
// confirmed alive.
func (s *Service) Launch(app config.AppConfig) bool {
	for _, cmdline := range app.LaunchCommands {
		argv := strings.Fields(cmdline)
		if len(argv) == 0 {
			continue
		}
		if err := s.spawn(argv); err != nil {
			logging.Warn().Str("app", app.Name).Str("command", cmdline).Err(err).Msg("launch command failed")
			continue
		}
		logging.Info().Str("app", app.Name).Str("command", cmdline).Msg("launched")
		return true
	}
	logging.Error().Str("app", app.Name).Msg("no launch command worked")
	return false
}

func pgrep(pattern string) ([]byte, error) {
	return exec.Command("pgrep", "-f", pattern).Output()
}

// spawnDetached starts argv in its own session with stdio discarded and
// releases the process so it outlives this invocation.
func spawnDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
