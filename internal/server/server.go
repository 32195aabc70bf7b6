// Package server wires the session, its observers and the console API into
// one running backend.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/krishna-deora/Synthetic-Radio-Host/config"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/handler"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/queue"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/router"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/service"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/session"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/taskrunner"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/transport"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

const shutdownTimeout = 5 * time.Second

// Backend holds everything StartBackend builds. Close releases it in reverse
// order of construction.
type Backend struct {
	Session *session.Controller
	Service *service.Service
	Engine  *gin.Engine

	runner *taskrunner.Runner
	queue  *queue.Queue
}

// NewBackend builds the backend for conf. Archiving goes through asynq when
// [queue] is enabled, otherwise through the in-process runner when
// [archive] is enabled. opts are applied to the session after the history
// hooks.
func NewBackend(conf config.Config, opts ...session.Option) (*Backend, error) {
	client := transport.NewFromConfig(conf)
	svc := service.NewService(client)

	b := &Backend{Service: svc}
	switch {
	case conf.Queue.Enabled:
		b.queue = queue.NewQueue(queue.ConfigFrom(conf.Queue))
		if err := queue.StartWorker(b.queue, svc); err != nil {
			_ = b.queue.Close()
			return nil, err
		}
		svc.SetArchiver(b.queue)
	case conf.Archive.Enabled:
		b.runner = taskrunner.New(svc, taskrunner.Config{
			QueueSize:   conf.Archive.QueueSize,
			Concurrency: conf.Archive.Concurrency,
		})
		svc.SetArchiver(b.runner)
	}

	opts = append([]session.Option{
		session.WithOnSubmitted(svc.OnSubmitted),
		session.WithOnTerminal(svc.OnTerminal),
	}, opts...)
	b.Session = session.New(client, opts...)

	gin.SetMode(gin.ReleaseMode)
	b.Engine = gin.New()
	b.Engine.Use(gin.Recovery())
	router.SetupRouter(b.Engine, handler.NewHandler(b.Session, svc))
	return b, nil
}

func (b *Backend) Close() {
	b.Session.Close()
	if b.runner != nil {
		b.runner.Close()
	}
	if b.queue != nil {
		if err := b.queue.Close(); err != nil {
			log.GetLogger().Warn("queue close failed", zap.Error(err))
		}
	}
}

// StartBackend serves the console API on conf's server address until ctx is
// cancelled.
func StartBackend(ctx context.Context, conf config.Config) error {
	b, err := NewBackend(conf)
	if err != nil {
		return err
	}
	defer b.Close()

	srv := &http.Server{
		Addr:              conf.ServerAddr(),
		Handler:           b.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.GetLogger().Info("backend listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
