package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Projector reconstruye la proyección de inventario de un SKU a partir de sus saldos.
type Projector struct {
	store     repository.BalanceStore
	inventory repository.InventoryRepository
	locks     *KeyLocker
}

// NewProjector construye el proyector.
func NewProjector(store repository.BalanceStore, inventory repository.InventoryRepository, locks *KeyLocker) *Projector {
	if locks == nil {
		locks = NewKeyLocker()
	}
	return &Projector{store: store, inventory: inventory, locks: locks}
}

type locationKey struct {
	warehouse string
	location  string
}

// Project recalcula todo el SKU: on_hand = max(0, saldo) por ubicación, reserved se
// conserva de la proyección previa. Ubicaciones sin saldo en memoria se mantienen.
func (p *Projector) Project(ctx context.Context, sku string) ([]entity.InventoryRecord, error) {
	unlock := p.locks.Lock("projection|" + sku)
	defer unlock()

	prior, err := p.inventory.ListBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	merged := make(map[locationKey]entity.InventoryRecord, len(prior))
	for _, r := range prior {
		merged[locationKey{r.Warehouse, r.Location}] = r
	}
	for _, b := range p.store.ListBySKU(sku) {
		k := locationKey{b.Warehouse, b.Location}
		r, ok := merged[k]
		if !ok {
			r = entity.InventoryRecord{SKU: sku, Warehouse: b.Warehouse, Location: b.Location, Reserved: decimal.Zero}
		}
		r.OnHand = decimal.Max(decimal.Zero, b.Qty)
		r.UpdatedAt = b.UpdatedAt
		merged[k] = r
	}

	out := make([]entity.InventoryRecord, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Warehouse != out[j].Warehouse {
			return out[i].Warehouse < out[j].Warehouse
		}
		return out[i].Location < out[j].Location
	})
	if err := p.inventory.ReplaceBySKU(ctx, sku, out); err != nil {
		return nil, fmt.Errorf("replace inventory: %w", err)
	}
	return out, nil
}
