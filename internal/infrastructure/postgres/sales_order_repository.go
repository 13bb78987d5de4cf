package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo órdenes de venta sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// RecordShipment suma la cantidad despachada a la línea bajo FOR UPDATE.
func (r *SalesOrderRepo) RecordShipment(ctx context.Context, soID, lineID string, qty decimal.Decimal, _ time.Time) (*entity.SalesShipmentResult, error) {
	var res *entity.SalesShipmentResult
	err := runInTx(ctx, r.q, func(tx pgx.Tx) error {
		var order entity.SalesOrder
		err := tx.QueryRow(ctx, `
			SELECT id, customer_id, created_at FROM sales_orders WHERE id = $1 FOR UPDATE`, soID,
		).Scan(&order.ID, &order.CustomerID, &order.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get sales order: %w", err)
		}

		var line entity.SalesOrderLine
		var status string
		err = tx.QueryRow(ctx, `
			SELECT id, sku, ordered_qty, shipped_qty, status
			FROM sales_order_lines WHERE so_id = $1 AND id = $2`, soID, lineID,
		).Scan(&line.ID, &line.SKU, &line.OrderedQty, &line.ShippedQty, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get sales order line: %w", err)
		}
		line.Status = entity.LineStatus(status)

		prev := line.ShippedQty
		transition := line.Ship(qty)
		_, err = tx.Exec(ctx, `
			UPDATE sales_order_lines SET shipped_qty = $3, status = $4
			WHERE so_id = $1 AND id = $2`,
			soID, lineID, line.ShippedQty, string(line.Status),
		)
		if err != nil {
			return fmt.Errorf("update sales order line: %w", err)
		}
		order.Lines = []entity.SalesOrderLine{line}
		res = &entity.SalesShipmentResult{
			Order:              order,
			PreviousShippedQty: prev,
			Line:               line,
			Transition:         transition,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
