package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tradux/backend/internal/adapter/ai"
	"github.com/tradux/backend/internal/adapter/extraction"
	"github.com/tradux/backend/internal/adapter/payments"
	"github.com/tradux/backend/internal/config"
	"github.com/tradux/backend/internal/domain/repository"
	"github.com/tradux/backend/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func(quotes repository.QuoteRepository, documents repository.DocumentRepository, cfg *config.Config) *QuoteUseCase {
		return NewQuoteUseCase(quotes, documents, cfg.OrderNumberPrefix)
	},
	func(
		quotes repository.QuoteRepository,
		orders repository.OrderRepository,
		sessions repository.PaymentRepository,
		provider payments.Client,
		verifier *payments.Verifier,
		notifier Notifier,
		logger *slog.Logger,
		cfg *config.Config,
	) *PaymentUseCase {
		return NewPaymentUseCase(quotes, orders, sessions, provider, verifier, notifier, logger, PaymentOptions{
			BrandTag:   cfg.BrandTag,
			SuccessURL: cfg.ReviewBaseURL + "/payment/success",
			CancelURL:  cfg.ReviewBaseURL + "/payment/cancel",
		})
	},
	func(
		orders repository.OrderRepository,
		documents repository.DocumentRepository,
		aiClient ai.Client,
		notifier Notifier,
		logger *slog.Logger,
	) *OrderUseCase {
		return NewOrderUseCase(orders, documents, aiClient, notifier, logger)
	},
	func(orders repository.OrderRepository, notifier Notifier, logger *slog.Logger) *ReviewUseCase {
		return NewReviewUseCase(orders, notifier, logger)
	},
	func(documents repository.DocumentRepository, extractor extraction.Client, cfg *config.Config, logger *slog.Logger) *DocumentUseCase {
		return NewDocumentUseCase(documents, extractor, cfg.MaxUploadBytes, logger)
	},
	func(hasher auth.PasswordHasher, strategy auth.Strategy, cfg *config.Config) (*AuthUseCase, error) {
		return NewAuthUseCase(hasher, strategy, cfg.OperatorPassword)
	},
)
