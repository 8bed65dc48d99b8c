// cmd/ic10edit/main.go
package main

import (
	"fmt"
	"io"
	stlog "log"
	"os"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/config"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/tui"
)

const version = "0.1.0"

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Printf("Warning: config load: %v", err)
	}

	// --- Logger Initialization ---
	var logWriter io.Writer = os.Stderr
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	if logPath != "-" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
		}
		defer logFile.Close()
		logWriter = logFile
	}
	logger.Init(cfg.Logger.Level(), logWriter)
	logger.SetTagFilters(cfg.Logger.EnabledTags, cfg.Logger.DisabledTags)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	logger.Infof("Starting %s...", config.AppName)
	if filePath != "" {
		logger.Debugf("Opening %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty")
	}

	// --- Create and Run App ---
	editorApp, err := tui.NewApp(filePath, cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
