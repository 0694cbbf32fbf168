package payments

import (
	"go.uber.org/fx"

	"github.com/tradux/backend/internal/config"
)

func newClient(cfg *config.Config) (Client, error) {
	return NewHTTPClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey, cfg.PaymentTimeout)
}

func newVerifier(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.WebhookSecret)
}

var Module = fx.Module("payments",
	fx.Provide(newClient),
	fx.Provide(newVerifier),
)
