package repository

import (
	"context"

	"github.com/tradux/backend/internal/domain/model"
)

// DocumentRepository stores write-once extraction records plus the raw file
// bytes they were produced from.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document, data []byte) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Document, error)
	GetData(ctx context.Context, id string) ([]byte, error)
}
