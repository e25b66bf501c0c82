package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mdnotes/internal/client"
	"mdnotes/internal/client/drafts"
	"mdnotes/internal/client/ui"
	"mdnotes/pkg/db/redis"
	"mdnotes/pkg/logger"
)

func main() {
	// The terminal owns stdout, so the logger stays quiet unless a log file
	// is configured.
	log, err := logger.NewLogger(logger.Production, "error")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	cfg, err := client.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if cfg.LogFile != "" {
		fileLogger, err := logger.NewFileLogger(cfg.LogFile, "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger.SetGlobalLogger(fileLogger)
		log = fileLogger
	}

	api := client.NewAPIClient(cfg.ServerURL)

	// Drafts are best-effort: without Redis the editor still works, it just
	// cannot resume interrupted edits.
	var draftStore drafts.Store = drafts.NopStore{}
	redisClient, err := redis.NewClient(ctx, cfg.Redis.ToClientConfig())
	if err != nil {
		log.Warn(ctx, "draft store unavailable, continuing without drafts", zap.Error(err))
	} else {
		defer redisClient.Close()
		draftStore = drafts.NewRedisStore(redisClient, cfg.DraftTTL)
	}

	app := ui.NewApp(api, draftStore, cfg.PageLimit)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running application: %v\n", err)
		os.Exit(1)
	}
}
