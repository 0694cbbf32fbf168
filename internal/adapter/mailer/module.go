package mailer

import (
	"go.uber.org/fx"

	"github.com/tradux/backend/internal/config"
)

func newClient(cfg *config.Config) (Client, error) {
	return NewHTTPClient(cfg.MailerBaseURL, cfg.MailerAPIKey, cfg.SenderEmail, cfg.MailTimeout)
}

var Module = fx.Module("mailer",
	fx.Provide(newClient),
)
