package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LeadTimeRepository = (*LeadTimeRepository)(nil)

// LeadTimeRepository muestras de lead time en memoria.
type LeadTimeRepository struct {
	mu      sync.RWMutex
	samples []entity.LeadTimeSample
	finals  []entity.LeadTimeSample
}

// NewLeadTimeRepository construye el repositorio vacío.
func NewLeadTimeRepository() *LeadTimeRepository {
	return &LeadTimeRepository{}
}

func (r *LeadTimeRepository) RecordLeadTimeSample(_ context.Context, sample entity.LeadTimeSample) error {
	r.mu.Lock()
	r.samples = append(r.samples, sample)
	r.mu.Unlock()
	return nil
}

func (r *LeadTimeRepository) RecordFinalLeadTime(_ context.Context, sample entity.LeadTimeSample) error {
	sample.Final = true
	r.mu.Lock()
	r.finals = append(r.finals, sample)
	r.mu.Unlock()
	return nil
}

func (r *LeadTimeRepository) AverageFinalLeadTimeDays(_ context.Context, sku string) (float64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum float64
	var n int
	for _, s := range r.finals {
		if s.SKU == sku {
			sum += s.Days()
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}

// Samples copia de las muestras de primera recepción.
func (r *LeadTimeRepository) Samples() []entity.LeadTimeSample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.LeadTimeSample(nil), r.samples...)
}

// Finals copia de los lead times finales.
func (r *LeadTimeRepository) Finals() []entity.LeadTimeSample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.LeadTimeSample(nil), r.finals...)
}
