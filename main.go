// Package main provides the entry point for the Pasport application.
package main

import (
	"os"

	"fyne.io/fyne/v2/app"

	"pasport/internal/logging"
	"pasport/internal/settings"
	"pasport/internal/store"
	"pasport/ui/mainwindow"
)

const (
	appTitle   = "Pasport"
	appVersion = "1.0.0"
)

func main() {
	logger := logging.New(logging.Options{
		Level:  os.Getenv("PASPORT_LOG_LEVEL"),
		Format: os.Getenv("PASPORT_LOG_FORMAT"),
	})
	logger.Info("starting", "app", appTitle, "version", appVersion)

	cfg := settings.Load()

	// A database path on the command line overrides the configured one
	// for this run without persisting it.
	dbPath := cfg.DBPath
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logger.Error("opening database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("database open", "path", dbPath)

	fyneApp := app.NewWithID("cz.pasport.app")
	win := mainwindow.New(fyneApp, logger, cfg, st)
	win.SetTitle(appTitle)
	win.ShowAndRun()
}
