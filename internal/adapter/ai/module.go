package ai

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tradux/backend/internal/config"
)

// Module exposes the AI client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.AIBaseURL, p.Config.AIAPIKey, p.Config.AIModel, p.Config.AITimeout, p.Logger)
}
