package di

import (
	"go.uber.org/fx"

	"github.com/tradux/backend/internal/adapter/ai"
	"github.com/tradux/backend/internal/adapter/extraction"
	"github.com/tradux/backend/internal/adapter/mailer"
	"github.com/tradux/backend/internal/adapter/payments"
	"github.com/tradux/backend/internal/app"
	"github.com/tradux/backend/internal/config"
	"github.com/tradux/backend/internal/logger"
	"github.com/tradux/backend/internal/pkg/auth"
	"github.com/tradux/backend/internal/server/http/handlers"
	"github.com/tradux/backend/internal/server/http/router"
	"github.com/tradux/backend/internal/storage/postgres"
	"github.com/tradux/backend/internal/usecase"
	"github.com/tradux/backend/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		ai.Module,
		extraction.Module,
		mailer.Module,
		payments.Module,
		usecase.Module,
		fx.Provide(func(n *worker.Notifier) usecase.Notifier { return n }),
		fx.Provide(func(f *app.TranslationFacade) handlers.TranslationFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.Pinger { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
