package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LeadTimeRepository = (*LeadTimeRepo)(nil)

// LeadTimeRepo muestras de lead time sobre PostgreSQL. Una muestra por (OC, línea, final).
type LeadTimeRepo struct {
	q Querier
}

// NewLeadTimeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadTimeRepository(q Querier) *LeadTimeRepo {
	return &LeadTimeRepo{q: q}
}

func (r *LeadTimeRepo) RecordLeadTimeSample(ctx context.Context, sample entity.LeadTimeSample) error {
	return r.insert(ctx, sample, false)
}

func (r *LeadTimeRepo) RecordFinalLeadTime(ctx context.Context, sample entity.LeadTimeSample) error {
	return r.insert(ctx, sample, true)
}

func (r *LeadTimeRepo) insert(ctx context.Context, s entity.LeadTimeSample, final bool) error {
	query := `
		INSERT INTO lead_time_samples (po_id, po_line_id, final, vendor_id, sku, approved_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (po_id, po_line_id, final) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, s.POID, s.POLineID, final, s.VendorID, s.SKU, s.ApprovedAt, s.ReceivedAt); err != nil {
		return fmt.Errorf("record lead time: %w", err)
	}
	return nil
}

// AverageFinalLeadTimeDays promedio en días de los lead times finales del SKU.
func (r *LeadTimeRepo) AverageFinalLeadTimeDays(ctx context.Context, sku string) (float64, bool, error) {
	query := `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (received_at - approved_at)) / 86400), 0)::float8, COUNT(*)
		FROM lead_time_samples WHERE sku = $1 AND final`
	var days float64
	var n int64
	if err := r.q.QueryRow(ctx, query, sku).Scan(&days, &n); err != nil {
		return 0, false, fmt.Errorf("average lead time: %w", err)
	}
	return days, n > 0, nil
}
