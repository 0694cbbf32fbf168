package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/tradux/backend/internal/adapter/mailer"
	"github.com/tradux/backend/internal/config"
	"github.com/tradux/backend/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewTranslationFacade,
		newHTTPServer,
		newPipelineProcessor,
		newNotifier,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *TranslationFacade
	Config *config.Config
	Logger *slog.Logger
}

func newPipelineProcessor(p workerParams) *worker.PipelineProcessor {
	return worker.NewPipelineProcessor(
		p.Facade,
		p.Config.PipelinePollInterval,
		p.Config.PipelineBatch,
		p.Config.PipelineWorkers,
		p.Logger,
	)
}

func newNotifier(cfg *config.Config, client mailer.Client, logger *slog.Logger) *worker.Notifier {
	return worker.NewNotifier(client, worker.NotifierOptions{
		OperatorEmail: cfg.OperatorEmail,
		ReviewBaseURL: cfg.ReviewBaseURL,
		Workers:       cfg.NotifyWorkers,
		QueueSize:     cfg.NotifyQueueSize,
	}, logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Pipeline   *worker.PipelineProcessor
	Notifier   *worker.Notifier
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting traduxd", slog.String("addr", p.Server.Addr))
			p.Notifier.Start(ctx)
			p.Pipeline.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Pipeline.Stop()
			p.Notifier.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("traduxd stopped")
			return nil
		},
	})
}
