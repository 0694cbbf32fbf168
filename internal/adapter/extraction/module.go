package extraction

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tradux/backend/internal/config"
)

func newClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	return NewHTTPClient(cfg.ExtractionAddress, cfg.ExtractionTimeout, logger)
}

var Module = fx.Module("extraction",
	fx.Provide(newClient),
)
