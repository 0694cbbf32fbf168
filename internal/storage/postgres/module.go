package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/tradux/backend/internal/config"
	"github.com/tradux/backend/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.QuoteRepository { return s.Quotes() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.DocumentRepository { return s.Documents() },
		func(s *Storage) repository.PaymentRepository { return s.Payments() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Config.OrderNumberPrefix, p.Config.OrderNumberOffset, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
