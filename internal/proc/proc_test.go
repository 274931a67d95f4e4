package proc

import (
	"fmt"
	"testing"

	"github.com/yourusername/tray-toggle/internal/config"
)

func testApp(patterns, commands []string) config.AppConfig {
	return config.AppConfig{
		Name:            "telegram",
		ProcessPatterns: patterns,
		LaunchCommands:  commands,
		TrayInfo:        "telegram",
	}
}

func TestIsRunning(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		results  map[string]string // pattern -> pgrep output; missing = no match
		wantPid  string
		wantOK   bool
	}{
		{
			name:     "first pattern matches",
			patterns: []string{"telegram", "Telegram"},
			results:  map[string]string{"telegram": "1234\n"},
			wantPid:  "1234",
			wantOK:   true,
		},
		{
			name:     "falls through to second pattern",
			patterns: []string{"telegram", "Telegram"},
			results:  map[string]string{"Telegram": "5678\n9012\n"},
			wantPid:  "5678\n9012",
			wantOK:   true,
		},
		{
			name:     "no pattern matches",
			patterns: []string{"telegram", "Telegram"},
			results:  map[string]string{},
			wantOK:   false,
		},
		{
			name:     "empty output counts as no match",
			patterns: []string{"telegram"},
			results:  map[string]string{"telegram": "\n"},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Service{
				lookup: func(pattern string) ([]byte, error) {
					out, ok := tt.results[pattern]
					if !ok {
						return nil, fmt.Errorf("exit status 1")
					}
					return []byte(out), nil
				},
			}

			pid, ok := s.IsRunning(testApp(tt.patterns, nil))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && pid != tt.wantPid {
				t.Errorf("pid = %q, want %q", pid, tt.wantPid)
			}
		})
	}
}

func TestIsRunningStopsAtFirstMatch(t *testing.T) {
	var tried []string
	s := &Service{
		lookup: func(pattern string) ([]byte, error) {
			tried = append(tried, pattern)
			return []byte("42\n"), nil
		},
	}

	s.IsRunning(testApp([]string{"a", "b", "c"}, nil))
	if len(tried) != 1 || tried[0] != "a" {
		t.Errorf("tried = %v, want only the first pattern", tried)
	}
}

func TestLaunch(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		accepts  map[string]bool // argv[0] -> spawn accepted
		want     bool
		spawned  string
	}{
		{
			name:     "first candidate accepted",
			commands: []string{"telegram-desktop", "telegram"},
			accepts:  map[string]bool{"telegram-desktop": true},
			want:     true,
			spawned:  "telegram-desktop",
		},
		{
			name:     "falls through to second candidate",
			commands: []string{"telegram-desktop", "telegram"},
			accepts:  map[string]bool{"telegram": true},
			want:     true,
			spawned:  "telegram",
		},
		{
			name:     "every candidate fails",
			commands: []string{"telegram-desktop", "telegram"},
			accepts:  map[string]bool{},
			want:     false,
		},
		{
			name:     "blank candidate is skipped",
			commands: []string{"   ", "telegram"},
			accepts:  map[string]bool{"telegram": true},
			want:     true,
			spawned:  "telegram",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spawned []string
			s := &Service{
				spawn: func(argv []string) error {
					if !tt.accepts[argv[0]] {
						return fmt.Errorf("executable file not found in $PATH")
					}
					spawned = append(spawned, argv[0])
					return nil
				},
			}

			got := s.Launch(testApp(nil, tt.commands))
			if got != tt.want {
				t.Fatalf("Launch = %v, want %v", got, tt.want)
			}
			if tt.want && (len(spawned) != 1 || spawned[0] != tt.spawned) {
				t.Errorf("spawned = %v, want [%s]", spawned, tt.spawned)
			}
		})
	}
}

func TestLaunchSplitsCommandLine(t *testing.T) {
	var gotArgv []string
	s := &Service{
		spawn: func(argv []string) error {
			gotArgv = argv
			return nil
		},
	}

	s.Launch(testApp(nil, []string{"flatpak run org.telegram.desktop"}))
	want := []string{"flatpak", "run", "org.telegram.desktop"}
	if len(gotArgv) != len(want) {
		t.Fatalf("argv = %v, want %v", gotArgv, want)
	}
	for i := range want {
		if gotArgv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, gotArgv[i], want[i])
		}
	}
}
