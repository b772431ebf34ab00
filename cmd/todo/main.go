package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"todo-app/client"
	"todo-app/client/tui"
	"todo-app/client/view"
)

func main() {
	apiURL := pflag.String("api", "http://localhost:8080", "base URL of the todo API")
	settingsPath := pflag.String("settings", defaultSettingsPath(), "settings file")
	dev := pflag.Bool("dev", false, "enable dev actions (seed/clear) for this run")
	pflag.Parse()

	settingsStore := view.NewSettingsStore(*settingsPath)
	settings, err := settingsStore.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load settings:", err)
	}
	if *dev {
		settings.DevMode = true
	}

	ctrl := view.NewController(client.New(*apiURL))
	model := tui.New(ctrl, settings, settingsStore)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "todo-settings.json"
	}
	return filepath.Join(dir, "todo-app", "settings.json")
}
