package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anthropics/anthropic-sdk-go"

	"promptpad/internal/agent"
	"promptpad/internal/history"
	"promptpad/internal/logger"
	"promptpad/internal/settings"
	"promptpad/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to the settings file")
	dbPath := flag.String("db", "", "path to the history database")
	schemaOnly := flag.Bool("settings-schema", false, "print the settings JSON schema and exit")
	flag.Parse()

	if *schemaOnly {
		data, err := settings.SchemaJSON()
		if err != nil {
			log.Fatalf("Failed to generate settings schema: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	// Initialize logger
	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting promptpad...")

	if *configPath != "" {
		settings.SetPath(*configPath)
	}
	cfg, err := settings.Load()
	if err != nil {
		logger.Error("Falling back to default settings: %v", err)
	}

	store, err := history.Open(historyPath(*dbPath))
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer store.Close()

	var ag *agent.Agent
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		client := anthropic.NewClient()
		ag = agent.New(&client, cfg.Model)
	}

	m := tui.NewModel(store, ag, cfg)
	if err := tui.RunTUI(m); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func historyPath(override string) string {
	if override != "" {
		return override
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "promptpad.db"
	}
	return filepath.Join(home, ".local", "share", "promptpad", "history.db")
}
