package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"ablage-ai/internal/classify"
	"ablage-ai/internal/config"
	"ablage-ai/internal/folders"
	"ablage-ai/internal/http"
	"ablage-ai/internal/learning"
	"ablage-ai/internal/lifecycle"
	"ablage-ai/internal/llm"
	"ablage-ai/internal/preview"
	"ablage-ai/internal/storage"
	"ablage-ai/internal/suggest"
	"ablage-ai/internal/watcher"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the move-history database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)
	moveRepo := storage.NewMoveRepo(db)

	// Target folder universe
	folderManager, err := folders.NewManager(cfg.AblagePath)
	if err != nil {
		log.Fatalf("Failed to initialize folder manager: %v", err)
	}
	slog.Info("Target folders loaded", "path", cfg.AblagePath, "count", len(folderManager.List()))

	// Learning store (missing or corrupt files start empty)
	learningStore := learning.Open(cfg.LearningPath)

	// Completion client; an unreachable model only degrades suggestions
	ctx := context.Background()
	llmClient := llm.NewClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout)
	if err := llmClient.Ping(ctx); err != nil {
		slog.Warn("Completion service unreachable, keyword fallback active", "url", cfg.OllamaBaseURL, "error", err)
	} else {
		slog.Info("Completion service reachable", "url", cfg.OllamaBaseURL, "model", cfg.OllamaModel)
	}

	// Suggestion engine
	proposer := suggest.NewFolderProposer(llmClient)
	engine := suggest.NewEngine(llmClient, classify.NewClassifier(), proposer, cfg.SuggestMinConfidence)

	// Lifecycle manager owns the pending registry
	manager := lifecycle.NewManager(
		cfg.InboxPath,
		preview.NewExtractor(),
		engine,
		folderManager,
		learningStore,
		moveRepo,
	)

	// Inbox watcher (also sweeps files already present)
	inboxWatcher, err := watcher.New(cfg.InboxPath, manager)
	if err != nil {
		log.Fatalf("Failed to create inbox watcher: %v", err)
	}
	if err := inboxWatcher.Start(ctx); err != nil {
		log.Fatalf("Failed to start inbox watcher: %v", err)
	}
	defer inboxWatcher.Stop()
	slog.Info("Watching inbox", "path", cfg.InboxPath)

	// Create router with dependencies
	deps := &http.Deps{
		Organizer: manager,
		History:   moveRepo,
		LLMClient: llmClient,
	}
	router, err := http.NewRouter(deps)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
