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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// RecordReceipt bloquea la línea (FOR UPDATE), aplica la transición de estado y la persiste.
func (r *PurchaseOrderRepo) RecordReceipt(ctx context.Context, poID, lineID string, qty decimal.Decimal, at time.Time) (*entity.PurchaseReceiptResult, error) {
	var res *entity.PurchaseReceiptResult
	err := runInTx(ctx, r.q, func(tx pgx.Tx) error {
		var order entity.PurchaseOrder
		err := tx.QueryRow(ctx, `
			SELECT id, vendor_id, approved_at, created_at
			FROM purchase_orders WHERE id = $1 FOR UPDATE`, poID,
		).Scan(&order.ID, &order.VendorID, &order.ApprovedAt, &order.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get purchase order: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT id, sku, ordered_qty, received_qty, status, closed_at
			FROM purchase_order_lines WHERE po_id = $1 ORDER BY id`, poID)
		if err != nil {
			return fmt.Errorf("list purchase order lines: %w", err)
		}
		for rows.Next() {
			var l entity.PurchaseOrderLine
			var status string
			if err := rows.Scan(&l.ID, &l.SKU, &l.OrderedQty, &l.ReceivedQty, &status, &l.ClosedAt); err != nil {
				rows.Close()
				return fmt.Errorf("scan purchase order line: %w", err)
			}
			l.Status = entity.LineStatus(status)
			order.Lines = append(order.Lines, l)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("list purchase order lines: %w", err)
		}

		line := order.Line(lineID)
		if line == nil {
			return domain.ErrNotFound
		}
		prev := line.ReceivedQty
		transition := line.Receive(qty, at)
		_, err = tx.Exec(ctx, `
			UPDATE purchase_order_lines SET received_qty = $3, status = $4, closed_at = $5
			WHERE po_id = $1 AND id = $2`,
			poID, lineID, line.ReceivedQty, string(line.Status), line.ClosedAt,
		)
		if err != nil {
			return fmt.Errorf("update purchase order line: %w", err)
		}
		res = &entity.PurchaseReceiptResult{
			Order:               order,
			PreviousReceivedQty: prev,
			Line:                *line,
			Transition:          transition,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
