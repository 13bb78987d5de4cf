package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesOrderRepository registra despachos contra líneas de órdenes de venta.
type SalesOrderRepository interface {
	RecordShipment(ctx context.Context, soID, lineID string, qty decimal.Decimal, at time.Time) (*entity.SalesShipmentResult, error)
}
