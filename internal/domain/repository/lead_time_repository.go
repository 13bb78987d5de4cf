package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LeadTimeRepository muestras de lead time de proveedores.
type LeadTimeRepository interface {
	RecordLeadTimeSample(ctx context.Context, sample entity.LeadTimeSample) error
	RecordFinalLeadTime(ctx context.Context, sample entity.LeadTimeSample) error
	// AverageFinalLeadTimeDays promedio de lead times finales del SKU; ok=false si no hay muestras.
	AverageFinalLeadTimeDays(ctx context.Context, sku string) (days float64, ok bool, err error)
}
