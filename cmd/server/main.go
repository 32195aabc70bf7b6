package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/config"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/server"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/storage"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	var err error
	if !config.LoadConfig() {
		os.Exit(1)
	}

	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid config", zap.Error(err))
		os.Exit(1)
	}
	if err = log.SetLevel(config.Conf.App.LogLevel); err != nil {
		log.GetLogger().Warn("ignoring app.log_level", zap.Error(err))
	}

	if err = storage.InitDB(); err != nil {
		log.GetLogger().Error("failed to initialize database", zap.Error(err))
		os.Exit(1)
	}

	// A new process never resumes polling, so rows left processing are dead.
	if count, err := storage.MarkStaleJobs(); err != nil {
		log.GetLogger().Warn("Failed to mark stale jobs", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("Marked stale jobs as failed", zap.Int64("count", count))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = server.StartBackend(ctx, config.Conf); err != nil {
		log.GetLogger().Error("backend stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.GetLogger().Info("backend stopped")
}
