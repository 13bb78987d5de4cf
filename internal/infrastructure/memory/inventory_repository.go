package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

// InventoryRepository proyección de inventario por SKU en memoria.
type InventoryRepository struct {
	mu    sync.RWMutex
	bySKU map[string][]entity.InventoryRecord
}

// NewInventoryRepository construye el repositorio vacío.
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{bySKU: make(map[string][]entity.InventoryRecord)}
}

// Seed carga registros existentes (snapshot agregado previo al libro).
func (r *InventoryRepository) Seed(records ...entity.InventoryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.bySKU[rec.SKU] = append(r.bySKU[rec.SKU], rec)
	}
}

func (r *InventoryRepository) ListBySKU(_ context.Context, sku string) ([]entity.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.bySKU[sku]
	out := make([]entity.InventoryRecord, len(list))
	copy(out, list)
	return out, nil
}

func (r *InventoryRepository) ReplaceBySKU(_ context.Context, sku string, records []entity.InventoryRecord) error {
	cp := make([]entity.InventoryRecord, len(records))
	copy(cp, records)
	r.mu.Lock()
	r.bySKU[sku] = cp
	r.mu.Unlock()
	return nil
}
