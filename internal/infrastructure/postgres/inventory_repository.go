package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo proyección de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// ListBySKU registros del SKU ordenados por bodega y ubicación.
func (r *InventoryRepo) ListBySKU(ctx context.Context, sku string) ([]entity.InventoryRecord, error) {
	query := `
		SELECT sku, warehouse, location, on_hand, reserved, updated_at
		FROM inventory_records WHERE sku = $1
		ORDER BY warehouse, location`
	rows, err := r.q.Query(ctx, query, sku)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.SKU, &rec.Warehouse, &rec.Location, &rec.OnHand, &rec.Reserved, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// ReplaceBySKU reemplaza todos los registros del SKU en una transacción.
func (r *InventoryRepo) ReplaceBySKU(ctx context.Context, sku string, records []entity.InventoryRecord) error {
	return runInTx(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM inventory_records WHERE sku = $1`, sku); err != nil {
			return fmt.Errorf("delete inventory: %w", err)
		}
		batch := &pgx.Batch{}
		for _, rec := range records {
			batch.Queue(`
				INSERT INTO inventory_records (sku, warehouse, location, on_hand, reserved, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				sku, rec.Warehouse, rec.Location, rec.OnHand, rec.Reserved, rec.UpdatedAt,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert inventory: %w", err)
		}
		return nil
	})
}
