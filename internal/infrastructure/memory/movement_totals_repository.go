package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementTotalsRepository = (*MovementTotalsRepository)(nil)

// MovementTotalsRepository acumulados por SKU en memoria.
type MovementTotalsRepository struct {
	mu     sync.RWMutex
	totals map[string]entity.MovementTotals
}

// NewMovementTotalsRepository construye el repositorio vacío.
func NewMovementTotalsRepository() *MovementTotalsRepository {
	return &MovementTotalsRepository{totals: make(map[string]entity.MovementTotals)}
}

func (r *MovementTotalsRepository) Adjust(_ context.Context, sku string, delta entity.MovementTotals) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.totals[sku]
	if !ok {
		cur = entity.MovementTotals{Inbound: decimal.Zero, Outbound: decimal.Zero}
	}
	r.totals[sku] = cur.Add(delta)
	return nil
}

func (r *MovementTotalsRepository) Get(_ context.Context, sku string) (entity.MovementTotals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cur, ok := r.totals[sku]
	if !ok {
		return entity.MovementTotals{Inbound: decimal.Zero, Outbound: decimal.Zero}, nil
	}
	return cur, nil
}
