package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository registra recepciones contra líneas de órdenes de compra.
type PurchaseOrderRepository interface {
	// RecordReceipt suma qty a la línea y devuelve orden, cantidad previa, línea y transición.
	// Devuelve domain.ErrNotFound si la orden o la línea no existen.
	RecordReceipt(ctx context.Context, poID, lineID string, qty decimal.Decimal, at time.Time) (*entity.PurchaseReceiptResult, error)
}
