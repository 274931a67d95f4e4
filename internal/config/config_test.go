package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultApps(t *testing.T) {
	apps := DefaultApps()

	for _, key := range []string{"wechat", "discord", "telegram", "qq"} {
		app, ok := apps[key]
		if !ok {
			t.Errorf("missing built-in app %q", key)
			continue
		}
		if err := app.Validate(); err != nil {
			t.Errorf("built-in %q invalid: %v", key, err)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name        string
		app         AppConfig
		wantClasses []string
		wantNames   []string
	}{
		{
			name:        "both lists absent",
			app:         AppConfig{Name: "Discord"},
			wantClasses: []string{"discord"},
			wantNames:   []string{"discord"},
		},
		{
			name: "explicit lists untouched",
			app: AppConfig{
				Name:                "Discord",
				WindowClassPatterns: []string{"discord", "Discord"},
				WindowNamePatterns:  []string{"Discord"},
			},
			wantClasses: []string{"discord", "Discord"},
			wantNames:   []string{"Discord"},
		},
		{
			name:        "only class list absent",
			app:         AppConfig{Name: "QQ", WindowNamePatterns: []string{"qq"}},
			wantClasses: []string{"qq"},
			wantNames:   []string{"qq"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.app.applyDefaults()
			if len(tt.app.WindowClassPatterns) != len(tt.wantClasses) {
				t.Fatalf("class patterns = %v, want %v", tt.app.WindowClassPatterns, tt.wantClasses)
			}
			for i, p := range tt.wantClasses {
				if tt.app.WindowClassPatterns[i] != p {
					t.Errorf("class pattern[%d] = %q, want %q", i, tt.app.WindowClassPatterns[i], p)
				}
			}
			for i, p := range tt.wantNames {
				if tt.app.WindowNamePatterns[i] != p {
					t.Errorf("name pattern[%d] = %q, want %q", i, tt.app.WindowNamePatterns[i], p)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		app      AppConfig
		hasError bool
	}{
		{
			name: "complete record",
			app: AppConfig{
				Name:            "discord",
				ProcessPatterns: []string{"discord"},
				LaunchCommands:  []string{"discord"},
				TrayInfo:        "discord",
			},
		},
		{name: "missing name", app: AppConfig{ProcessPatterns: []string{"x"}, LaunchCommands: []string{"x"}, TrayInfo: "x"}, hasError: true},
		{name: "missing process patterns", app: AppConfig{Name: "x", LaunchCommands: []string{"x"}, TrayInfo: "x"}, hasError: true},
		{name: "missing launch commands", app: AppConfig{Name: "x", ProcessPatterns: []string{"x"}, TrayInfo: "x"}, hasError: true},
		{name: "missing tray token", app: AppConfig{Name: "x", ProcessPatterns: []string{"x"}, LaunchCommands: []string{"x"}}, hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.app.applyDefaults()
			err := tt.app.Validate()
			if tt.hasError && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.hasError && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLoadMergesUserConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.json")
	data := `{
  "discord": {
    "name": "discord",
    "process_patterns": ["MyDiscord"],
    "launch_commands": ["my-discord"],
    "tray_info": "custom-token"
  },
  "slack": {
    "name": "slack",
    "process_patterns": ["slack"],
    "launch_commands": ["slack"],
    "tray_info": "\"slack\": (\"slack\" \"Slack\")"
  }
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Override replaces the built-in record wholly.
	discord, ok := cfg.Get("discord")
	if !ok {
		t.Fatal("discord missing after merge")
	}
	if discord.TrayInfo != "custom-token" {
		t.Errorf("TrayInfo = %q, want %q", discord.TrayInfo, "custom-token")
	}
	if len(discord.ProcessPatterns) != 1 || discord.ProcessPatterns[0] != "MyDiscord" {
		t.Errorf("ProcessPatterns = %v, want [MyDiscord]", discord.ProcessPatterns)
	}

	// New key extends the set and gets pattern defaults.
	slack, ok := cfg.Get("slack")
	if !ok {
		t.Fatal("slack missing after merge")
	}
	if len(slack.WindowClassPatterns) != 1 || slack.WindowClassPatterns[0] != "slack" {
		t.Errorf("WindowClassPatterns = %v, want [slack]", slack.WindowClassPatterns)
	}

	// Untouched built-ins survive.
	if _, ok := cfg.Get("telegram"); !ok {
		t.Error("telegram missing after merge")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.yaml")
	data := `signal:
  name: signal
  process_patterns: [signal-desktop]
  launch_commands: [signal-desktop]
  tray_info: signal
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	app, ok := cfg.Get("signal")
	if !ok {
		t.Fatal("signal missing")
	}
	if app.WindowNamePatterns[0] != "signal" {
		t.Errorf("WindowNamePatterns = %v, want [signal]", app.WindowNamePatterns)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("bad JSON", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		os.WriteFile(path, []byte("{not json"), 0644)
		if _, err := Load(path); err == nil {
			t.Error("Load() = nil error, want parse failure")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "apps.toml")
		os.WriteFile(path, []byte(""), 0644)
		if _, err := Load(path); err == nil {
			t.Error("Load() = nil error, want format failure")
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Load() = nil error, want read failure")
		}
	})

	t.Run("malformed record", func(t *testing.T) {
		path := filepath.Join(dir, "malformed.json")
		os.WriteFile(path, []byte(`{"broken": {"name": "broken"}}`), 0644)
		if _, err := Load(path); err == nil {
			t.Error("Load() = nil error, want validation failure")
		}
	})
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.json")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Apps) != len(DefaultApps()) {
		t.Errorf("apps = %d, want %d", len(cfg.Apps), len(DefaultApps()))
	}
}

func TestKeysSorted(t *testing.T) {
	cfg := &Config{Apps: DefaultApps()}
	keys := cfg.Keys()

	want := []string{"discord", "qq", "telegram", "wechat"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
