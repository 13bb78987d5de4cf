package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BalanceStore mapa autoritativo (sku, bodega, ubicación) → cantidad.
// Todas las lecturas posteriores a una escritura observan esa escritura.
type BalanceStore interface {
	// Ensure devuelve el saldo de la clave; en la primera referencia lo crea
	// sembrándolo desde la proyección de inventario existente (o cero).
	Ensure(ctx context.Context, key entity.BalanceKey) (entity.InventoryBalance, error)
	// Set reemplaza el valor almacenado.
	Set(key entity.BalanceKey, qty decimal.Decimal, at time.Time) entity.InventoryBalance
	ListBySKU(sku string) []entity.InventoryBalance
	Snapshot() []entity.InventoryBalance
	// Reset borra todos los saldos (operación administrativa).
	Reset()
}
