package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementRepository libro (journal) de movimientos confirmados. Solo se agrega.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.MovementRecord) error
	GetByID(ctx context.Context, id string) (*entity.MovementRecord, error)
	ListBySKU(ctx context.Context, sku string, limit int) ([]*entity.MovementRecord, error)
}
