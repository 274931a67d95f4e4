package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/tray-toggle/internal/config"
	"github.com/yourusername/tray-toggle/internal/i3"
	"github.com/yourusername/tray-toggle/internal/logging"
	"github.com/yourusername/tray-toggle/internal/output"
	"github.com/yourusername/tray-toggle/internal/proc"
	"github.com/yourusername/tray-toggle/internal/toggle"
	"github.com/yourusername/tray-toggle/internal/tray"
	"github.com/yourusername/tray-toggle/internal/wm"
)

var (
	configPath string
	socketPath string
	timeout    time.Duration
	quiet      bool
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// rootCmd toggles one application between workspaces and the tray
var rootCmd = &cobra.Command{
	Use:   "traytoggle <app>",
	Short: "Toggle applications between i3 workspaces and the polybar tray",
	Long: `traytoggle decides which state an application is currently in and performs
the one action that toggles it: launch it, show it from the scratchpad, hide
it to the scratchpad, pull it to the current workspace, or click its tray
icon.

Designed for i3 with a polybar system tray.`,
	Version:      "0.1.0",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cmd.Help()
			return fmt.Errorf("no application specified")
		}
		return runToggle(args[0])
	},
}

func runToggle(key string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		printError(fmt.Sprintf("Config error: %v", err))
		return err
	}

	app, ok := cfg.Get(key)
	if !ok {
		printError(fmt.Sprintf("Unknown application %q", key))
		fmt.Fprintf(os.Stderr, "Available apps: %s\n", strings.Join(cfg.Keys(), ", "))
		return fmt.Errorf("unknown application: %s", key)
	}

	client := i3.NewClient(socketPath, timeout)
	defer client.Close()

	engine := toggle.NewEngine(wm.NewService(client), proc.NewService(), tray.NewService())

	if !quiet && !jsonOutput {
		fmt.Printf("=== Toggling %s ===\n", app.Name)
	}

	res := engine.Toggle(app)

	if jsonOutput {
		printJSON(res)
		if !res.Success {
			return fmt.Errorf("toggle failed")
		}
		return nil
	}

	if !quiet {
		output.PrintToggleDetail(res)
	}

	if !res.Success {
		printError(fmt.Sprintf("Toggle failed in state %s", res.State))
		return fmt.Errorf("toggle failed")
	}

	if !quiet {
		successColor.Printf("✓ Toggled %s (%s)\n", app.Name, res.State)
	}
	return nil
}

// listCmd lists all known applications
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known applications",
	Long:  `Lists the built-in applications merged with any user-configured entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			printError(fmt.Sprintf("Config error: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(cfg.Apps)
		}

		output.PrintAppsTable(cfg)
		fmt.Printf("\nTotal: %d applications\n", len(cfg.Apps))
		return nil
	},
}

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for showing, generating, and validating the traytoggle configuration.`,
}

// configShowCmd shows the merged configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show merged configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return printJSON(cfg.Apps)
	},
}

// configInitCmd creates the default config file
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if len(args) > 0 {
			path = args[0]
		}

		// Check if file exists
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}

		successColor.Printf("✓ Created default config at: %s\n", path)
		return nil
	},
}

// configValidateCmd validates a config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Applications: %d\n", len(cfg.Apps))
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON or YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "i3 IPC socket path (default: $I3SOCK or i3 --get-socketpath)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", i3.DefaultTimeout, "i3 IPC timeout")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress status output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// Initialize logging
	logging.Init()
	defer logging.Close()

	// Interruption is reported distinctly but exits with the failure code
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		printError("Interrupted")
		logging.Warn().Msg("interrupted by user")
		logging.Close()
		os.Exit(1)
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
