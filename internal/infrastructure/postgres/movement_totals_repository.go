package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementTotalsRepository = (*MovementTotalsRepo)(nil)

// MovementTotalsRepo acumulados por SKU sobre PostgreSQL.
type MovementTotalsRepo struct {
	q Querier
}

// NewMovementTotalsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementTotalsRepository(q Querier) *MovementTotalsRepo {
	return &MovementTotalsRepo{q: q}
}

// Adjust suma el delta con un upsert atómico.
func (r *MovementTotalsRepo) Adjust(ctx context.Context, sku string, delta entity.MovementTotals) error {
	query := `
		INSERT INTO movement_totals (sku, inbound, outbound, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sku) DO UPDATE SET
			inbound = movement_totals.inbound + EXCLUDED.inbound,
			outbound = movement_totals.outbound + EXCLUDED.outbound,
			updated_at = now()`
	if _, err := r.q.Exec(ctx, query, sku, delta.Inbound, delta.Outbound); err != nil {
		return fmt.Errorf("adjust movement totals: %w", err)
	}
	return nil
}

// Get acumulados del SKU; cero si nunca tuvo movimientos.
func (r *MovementTotalsRepo) Get(ctx context.Context, sku string) (entity.MovementTotals, error) {
	var t entity.MovementTotals
	err := r.q.QueryRow(ctx, `SELECT inbound, outbound FROM movement_totals WHERE sku = $1`, sku).Scan(&t.Inbound, &t.Outbound)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.MovementTotals{Inbound: decimal.Zero, Outbound: decimal.Zero}, nil
		}
		return t, fmt.Errorf("get movement totals: %w", err)
	}
	return t, nil
}
