package tray

import (
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/tray-toggle/internal/logging"
)

// hoverDelay lets the hover register before the click lands.
const hoverDelay = 100 * time.Millisecond

// ClickIcon moves the pointer to the icon's center, clicks the primary
// button, and restores the pointer to where it was. Saving and restoring the
// position is best effort; only the click's own result decides success.
func (s *Service) ClickIcon(g Geometry) bool {
	origX, origY, saved := s.pointerPosition()

	centerX := g.X + g.Width/2
	centerY := g.Y + g.Height/2
	logging.Info().Int("x", centerX).Int("y", centerY).Msg("clicking tray icon")

	if _, err := s.run("xdotool", "mousemove", strconv.Itoa(centerX), strconv.Itoa(centerY)); err != nil {
		logging.Warn().Err(err).Msg("pointer move failed")
	}
	s.sleep(hoverDelay)

	if _, err := s.run("xdotool", "click", "1"); err != nil {
		logging.Error().Err(err).Msg("click failed")
		return false
	}

	if saved {
		if _, err := s.run("xdotool", "mousemove", strconv.Itoa(origX), strconv.Itoa(origY)); err != nil {
			logging.Warn().Err(err).Msg("pointer restore failed")
		}
	}
	return true
}

// pointerPosition reads the current pointer location from xdotool's shell
// output ("X=..." / "Y=..." lines).
func (s *Service) pointerPosition() (x, y int, ok bool) {
	out, err := s.run("xdotool", "getmouselocation", "--shell")
	if err != nil {
		logging.Debug().Err(err).Msg("pointer query failed")
		return 0, 0, false
	}

	gotX, gotY := false, false
	for _, line := range strings.Split(string(out), "\n") {
		if v, found := strings.CutPrefix(line, "X="); found {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				x, gotX = n, true
			}
		} else if v, found := strings.CutPrefix(line, "Y="); found {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				y, gotY = n, true
			}
		}
	}
	return x, y, gotX && gotY
}
