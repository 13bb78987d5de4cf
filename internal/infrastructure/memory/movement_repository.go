package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository journal de movimientos en memoria (append-only).
type MovementRepository struct {
	mu        sync.RWMutex
	movements []entity.MovementRecord
	byID      map[string]int
}

// NewMovementRepository construye el journal vacío.
func NewMovementRepository() *MovementRepository {
	return &MovementRepository{byID: make(map[string]int)}
}

// Append agrega un movimiento; un ID repetido devuelve domain.ErrDuplicate.
func (r *MovementRepository) Append(_ context.Context, movement *entity.MovementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[movement.ID]; ok {
		return domain.ErrDuplicate
	}
	r.byID[movement.ID] = len(r.movements)
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.MovementRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	m := r.movements[i]
	return &m, nil
}

// ListBySKU movimientos del SKU, más recientes primero.
func (r *MovementRepository) ListBySKU(_ context.Context, sku string, limit int) ([]*entity.MovementRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.MovementRecord
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].SKU != sku {
			continue
		}
		m := r.movements[i]
		out = append(out, &m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Len cantidad de movimientos confirmados.
func (r *MovementRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.movements)
}
