package repository

import (
	"context"

	"github.com/tradux/backend/internal/domain/model"
)

// QuoteRepository describes persistence operations with quotes.
type QuoteRepository interface {
	Create(ctx context.Context, quote *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
}
