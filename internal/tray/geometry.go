package tray

import (
	"regexp"
	"strconv"
	"strings"
)

// Geometry is the absolute screen rectangle of a tray icon, in pixels.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// geometryPattern matches xwininfo's "WxH+RELX+RELY  +ABSX+ABSY" descriptor.
var geometryPattern = regexp.MustCompile(`(\d+)x(\d+)\+(\d+)\+(\d+)\s+\+(\d+)\+(\d+)`)

// ParseIconGeometry scans an `xwininfo -tree -root` dump for a polybar child
// line containing token and extracts the icon's absolute geometry. The scan
// is bounded to the polybar container's child list: an unindented line that
// no longer mentions polybar ends it. The geometry is taken from the line
// above the match when that line carries a descriptor, else from the match
// itself. Parsing is a pure function of the dump text.
func ParseIconGeometry(dump, token string) (Geometry, bool) {
	lines := strings.Split(dump, "\n")

	barFound := false
	inChildren := false
	for i, line := range lines {
		if !barFound {
			if strings.Contains(strings.ToLower(line), "polybar") &&
				(strings.Contains(line, `("polybar"`) || strings.Contains(line, `"Polybar"`)) {
				barFound = true
			}
			continue
		}

		if !inChildren {
			if strings.Contains(line, "children:") {
				inChildren = true
			}
			continue
		}

		if leavesSection(line) {
			break
		}

		if strings.Contains(line, token) {
			return geometryAt(lines, i)
		}
	}

	return Geometry{}, false
}

// leavesSection reports whether a line terminates the polybar child list.
func leavesSection(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return false
	}
	return !strings.Contains(strings.ToLower(line), "polybar")
}

// geometryAt prefers the parent line (one above the match) when it carries a
// geometry descriptor, falling back to the matched line.
func geometryAt(lines []string, index int) (Geometry, bool) {
	if index > 0 {
		if g, ok := matchGeometry(lines[index-1]); ok {
			return g, true
		}
	}
	return matchGeometry(lines[index])
}

func matchGeometry(line string) (Geometry, bool) {
	m := geometryPattern.FindStringSubmatch(line)
	if m == nil {
		return Geometry{}, false
	}
	width, _ := strconv.Atoi(m[1])
	height, _ := strconv.Atoi(m[2])
	absX, _ := strconv.Atoi(m[5])
	absY, _ := strconv.Atoi(m[6])
	return Geometry{X: absX, Y: absY, Width: width, Height: height}, true
}
