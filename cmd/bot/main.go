package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barterbot/internal/bot"
	"barterbot/internal/config"
	"barterbot/internal/httpserver"
	"barterbot/internal/sqlite"
	"barterbot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := sqlite.NewRepository(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("create repository: %w", err)
	}
	defer repo.Close()
	logger.Info("database ready", "path", cfg.DatabasePath)

	client := telegram.NewClient(cfg.BotToken, cfg.APIHost)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sessions := bot.NewSessionStore()
	tracker := bot.NewTracker()
	handler := bot.New(client, repo, cfg.Admins, sessions, tracker, logger, bot.Options{
		Limits: cfg.Limits,
	})

	me, err := client.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("get bot identity: %w", err)
	}
	handler.SetUsername(me.Username)
	logger.Info("authenticated", "username", me.Username)

	// Sweep stale conversation state in the background.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(cfg.SessionMaxAge); n > 0 {
					logger.Info("swept stale sessions", "count", n)
				}
			}
		}
	}()

	poller := bot.NewPoller(client, handler, logger)
	go func() {
		if err := poller.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("poller exited with error", "error", err)
		}
	}()

	server := httpserver.NewServer(cfg.Port, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("bot started", "port", cfg.Port)

	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	// Tell the admins before the poller goes away.
	notifyCtx, notifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	handler.NotifyShutdown(notifyCtx)
	notifyCancel()

	cancel()

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}
