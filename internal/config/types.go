package config

import (
	"fmt"
	"strings"
)

// AppConfig describes one toggleable application: how to find its process,
// how to launch it, how its tray icon shows up in a window-tree dump, and
// how to recognize its windows.
type AppConfig struct {
	Name                string   `json:"name" yaml:"name"`
	ProcessPatterns     []string `json:"process_patterns" yaml:"process_patterns"`
	LaunchCommands      []string `json:"launch_commands" yaml:"launch_commands"`
	TrayInfo            string   `json:"tray_info" yaml:"tray_info"`
	WindowClassPatterns []string `json:"window_class_patterns,omitempty" yaml:"window_class_patterns,omitempty"`
	WindowNamePatterns  []string `json:"window_name_patterns,omitempty" yaml:"window_name_patterns,omitempty"`
}

// applyDefaults fills the optional window pattern lists with the lowercased
// app name so every record matches something after loading.
func (a *AppConfig) applyDefaults() {
	if len(a.WindowClassPatterns) == 0 {
		a.WindowClassPatterns = []string{strings.ToLower(a.Name)}
	}
	if len(a.WindowNamePatterns) == 0 {
		a.WindowNamePatterns = []string{strings.ToLower(a.Name)}
	}
}

// Validate checks that a record is usable after defaulting.
func (a *AppConfig) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("app has no name")
	}
	if len(a.ProcessPatterns) == 0 {
		return fmt.Errorf("app %s: no process patterns", a.Name)
	}
	if len(a.LaunchCommands) == 0 {
		return fmt.Errorf("app %s: no launch commands", a.Name)
	}
	if a.TrayInfo == "" {
		return fmt.Errorf("app %s: no tray_info", a.Name)
	}
	if len(a.WindowClassPatterns) == 0 || len(a.WindowNamePatterns) == 0 {
		return fmt.Errorf("app %s: empty window pattern list", a.Name)
	}
	return nil
}

// DefaultApps returns the built-in application records.
func DefaultApps() map[string]AppConfig {
	return map[string]AppConfig{
		"wechat": {
			Name:                "wechat",
			ProcessPatterns:     []string{"wechat"},
			LaunchCommands:      []string{"wechat.sh", "wechat-universal"},
			TrayInfo:            `"wechat": ("wechat" "wechat")`,
			WindowClassPatterns: []string{"wechat"},
			WindowNamePatterns:  []string{"wechat"},
		},
		"discord": {
			Name:                "discord",
			ProcessPatterns:     []string{"discord", "Discord"},
			LaunchCommands:      []string{"discord", "/usr/bin/discord"},
			TrayInfo:            `"discord": ("discord" "Discord")`,
			WindowClassPatterns: []string{"discord", "Discord"},
			WindowNamePatterns:  []string{"discord", "Discord"},
		},
		"telegram": {
			Name:                "telegram",
			ProcessPatterns:     []string{"telegram", "Telegram"},
			LaunchCommands:      []string{"telegram-desktop", "telegram"},
			TrayInfo:            `"telegram": ("telegram" "TelegramDesktop")`,
			WindowClassPatterns: []string{"telegram", "TelegramDesktop"},
			WindowNamePatterns:  []string{"telegram", "Telegram"},
		},
		"qq": {
			Name:                "qq",
			ProcessPatterns:     []string{"qq", "QQ"},
			LaunchCommands:      []string{"qq"},
			TrayInfo:            `"electron": ("electron" "Electron")`,
			WindowClassPatterns: []string{"qq", "QQ"},
			WindowNamePatterns:  []string{"qq", "QQ"},
		},
	}
}
