package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sys/unix"

	"github.com/yourusername/tray-toggle/internal/config"
	"github.com/yourusername/tray-toggle/internal/toggle"
)

// PrintAppsTable prints the known applications in a table format
func PrintAppsTable(cfg *config.Config) {
	maxCell := columnBudget()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Name", "Processes", "Launch", "Tray Token")

	for _, key := range cfg.Keys() {
		app := cfg.Apps[key]
		table.Append(
			key,
			app.Name,
			truncate(strings.Join(app.ProcessPatterns, ", "), maxCell),
			truncate(strings.Join(app.LaunchCommands, ", "), maxCell),
			truncate(app.TrayInfo, maxCell),
		)
	}

	table.Render()
}

// PrintToggleDetail prints the gathered signals and the resolved state for
// one toggle invocation.
func PrintToggleDetail(res toggle.Result) {
	keyColor := color.New(color.FgYellow)

	keyColor.Print("Process running: ")
	fmt.Println(res.Signals.ProcessRunning)
	keyColor.Print("App in tray: ")
	fmt.Println(res.Signals.TrayPresent)
	keyColor.Print("Window found: ")
	fmt.Println(res.Signals.WindowFound)
	if res.Signals.WindowFound {
		keyColor.Print("Window workspace: ")
		fmt.Println(res.Signals.WindowWorkspace.String())
	}
	if res.Signals.CurrentKnown {
		keyColor.Print("Current workspace: ")
		fmt.Println(res.Signals.CurrentWorkspace.String())
	}
	keyColor.Print("State: ")
	fmt.Println(res.State.String())
}

// columnBudget derives a per-cell width cap from the terminal width.
func columnBudget() int {
	budget := terminalWidth() / 4
	if budget < 16 {
		budget = 16
	}
	return budget
}

// terminalWidth probes stdout, falling back to 80 columns when the probe
// fails (pipes, redirects).
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80
	}
	return int(ws.Col)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
