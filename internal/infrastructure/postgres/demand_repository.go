package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepo)(nil)

// DemandRepo historial de demanda semanal sobre PostgreSQL (tabla weekly_demand, cargada externamente).
type DemandRepo struct {
	q Querier
}

// NewDemandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDemandRepository(q Querier) *DemandRepo {
	return &DemandRepo{q: q}
}

func (r *DemandRepo) ListSKUs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT sku FROM weekly_demand ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list demand skus: %w", err)
	}
	defer rows.Close()
	var skus []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

func (r *DemandRepo) ListWeekly(ctx context.Context, sku string) ([]entity.WeeklyDemandPoint, error) {
	rows, err := r.q.Query(ctx, `SELECT week, quantity, promo FROM weekly_demand WHERE sku = $1 ORDER BY week`, sku)
	if err != nil {
		return nil, fmt.Errorf("list weekly demand: %w", err)
	}
	defer rows.Close()
	var points []entity.WeeklyDemandPoint
	for rows.Next() {
		var p entity.WeeklyDemandPoint
		if err := rows.Scan(&p.Week, &p.Quantity, &p.Promo); err != nil {
			return nil, fmt.Errorf("scan weekly demand: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// UpsertWeekly carga semanas de demanda; una semana existente se sobrescribe.
func (r *DemandRepo) UpsertWeekly(ctx context.Context, sku string, points []entity.WeeklyDemandPoint) error {
	if len(points) == 0 {
		return nil
	}
	return runInTx(ctx, r.q, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range points {
			batch.Queue(`
				INSERT INTO weekly_demand (sku, week, quantity, promo)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (sku, week) DO UPDATE
				SET quantity = EXCLUDED.quantity, promo = EXCLUDED.promo`,
				sku, p.Week, p.Quantity, p.Promo,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert weekly demand: %w", err)
		}
		return nil
	})
}
