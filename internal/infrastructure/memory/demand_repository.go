package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepository)(nil)

// DemandRepository historial de demanda semanal en memoria.
type DemandRepository struct {
	mu    sync.RWMutex
	bySKU map[string][]entity.WeeklyDemandPoint
}

// NewDemandRepository construye el repositorio vacío.
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{bySKU: make(map[string][]entity.WeeklyDemandPoint)}
}

// Set reemplaza el historial del SKU.
func (r *DemandRepository) Set(sku string, points []entity.WeeklyDemandPoint) {
	cp := append([]entity.WeeklyDemandPoint(nil), points...)
	r.mu.Lock()
	r.bySKU[sku] = cp
	r.mu.Unlock()
}

func (r *DemandRepository) ListSKUs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.bySKU))
	for sku := range r.bySKU {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out, nil
}

func (r *DemandRepository) ListWeekly(_ context.Context, sku string) ([]entity.WeeklyDemandPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.WeeklyDemandPoint(nil), r.bySKU[sku]...), nil
}
