package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// InventoryRepository puerto de la proyección de inventario por SKU.
type InventoryRepository interface {
	ListBySKU(ctx context.Context, sku string) ([]entity.InventoryRecord, error)
	// ReplaceBySKU reemplaza el conjunto completo de registros del SKU.
	ReplaceBySKU(ctx context.Context, sku string, records []entity.InventoryRecord) error
}
