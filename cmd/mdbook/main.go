// Package main is the entry point for the mdbook CLI.
//
// Startup sequence:
//
// 1. Initialize the logging system
// 2. Load user configuration from disk (defaults when absent)
// 3. Hand control to the cobra command tree
//
// All real behavior lives in the internal packages; main only wires them
// together.
package main

import (
	"os"

	"mdbook/internal/cli"
	"mdbook/internal/config"
	"mdbook/internal/logging"
)

func main() {
	appLogger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Error loading config", "error", err)
		os.Exit(1)
	}
	appLogger.Debug("Configuration loaded", "defaultBook", cfg.DefaultBook, "theme", cfg.Theme)

	cli.Execute(appLogger, cfg)
}
