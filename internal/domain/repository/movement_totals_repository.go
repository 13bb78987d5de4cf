package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementTotalsRepository acumulados de entradas/salidas por SKU.
type MovementTotalsRepository interface {
	Adjust(ctx context.Context, sku string, delta entity.MovementTotals) error
	Get(ctx context.Context, sku string) (entity.MovementTotals, error)
}
