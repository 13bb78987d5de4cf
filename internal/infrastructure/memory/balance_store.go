// Package memory implementa los puertos del dominio en memoria del proceso.
// El BalanceStore vive siempre aquí; el resto de adaptadores sirven para
// desarrollo, pruebas y despliegues sin PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.BalanceStore = (*BalanceStore)(nil)

// BalanceStore saldos autoritativos por (sku, bodega, ubicación).
type BalanceStore struct {
	mu       sync.RWMutex
	balances map[entity.BalanceKey]entity.InventoryBalance
	seed     repository.InventoryRepository
}

// NewBalanceStore construye el store. seed es la proyección usada para sembrar
// claves nuevas; puede ser nil (todas las claves arrancan en cero).
func NewBalanceStore(seed repository.InventoryRepository) *BalanceStore {
	return &BalanceStore{
		balances: make(map[entity.BalanceKey]entity.InventoryBalance),
		seed:     seed,
	}
}

// Ensure devuelve el saldo de la clave, creándolo en la primera referencia.
func (s *BalanceStore) Ensure(ctx context.Context, key entity.BalanceKey) (entity.InventoryBalance, error) {
	s.mu.RLock()
	b, ok := s.balances[key]
	s.mu.RUnlock()
	if ok {
		return b, nil
	}

	seeded := entity.InventoryBalance{
		SKU:       key.SKU,
		Warehouse: key.Warehouse,
		Location:  key.Location,
		Qty:       decimal.Zero,
		UpdatedAt: time.Now().UTC(),
	}
	if s.seed != nil {
		records, err := s.seed.ListBySKU(ctx, key.SKU)
		if err != nil {
			return entity.InventoryBalance{}, fmt.Errorf("seed balance: %w", err)
		}
		for _, r := range records {
			if r.Warehouse == key.Warehouse && r.Location == key.Location {
				if r.OnHand.IsPositive() {
					seeded.Qty = r.OnHand
				}
				if !r.UpdatedAt.IsZero() {
					seeded.UpdatedAt = r.UpdatedAt
				}
				break
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// otra goroutine pudo crearla mientras leíamos la proyección
	if b, ok := s.balances[key]; ok {
		return b, nil
	}
	s.balances[key] = seeded
	return seeded, nil
}

// Set reemplaza la cantidad de la clave.
func (s *BalanceStore) Set(key entity.BalanceKey, qty decimal.Decimal, at time.Time) entity.InventoryBalance {
	b := entity.InventoryBalance{
		SKU:       key.SKU,
		Warehouse: key.Warehouse,
		Location:  key.Location,
		Qty:       qty,
		UpdatedAt: at,
	}
	s.mu.Lock()
	s.balances[key] = b
	s.mu.Unlock()
	return b
}

// ListBySKU saldos conocidos de un SKU, ordenados por bodega y ubicación.
func (s *BalanceStore) ListBySKU(sku string) []entity.InventoryBalance {
	s.mu.RLock()
	out := make([]entity.InventoryBalance, 0)
	for k, b := range s.balances {
		if k.SKU == sku {
			out = append(out, b)
		}
	}
	s.mu.RUnlock()
	sortBalances(out)
	return out
}

// Snapshot copia de todos los saldos (diagnóstico / pruebas).
func (s *BalanceStore) Snapshot() []entity.InventoryBalance {
	s.mu.RLock()
	out := make([]entity.InventoryBalance, 0, len(s.balances))
	for _, b := range s.balances {
		out = append(out, b)
	}
	s.mu.RUnlock()
	sortBalances(out)
	return out
}

// Reset borra todos los saldos.
func (s *BalanceStore) Reset() {
	s.mu.Lock()
	s.balances = make(map[entity.BalanceKey]entity.InventoryBalance)
	s.mu.Unlock()
}

func sortBalances(list []entity.InventoryBalance) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		if a.Warehouse != b.Warehouse {
			return a.Warehouse < b.Warehouse
		}
		return a.Location < b.Location
	})
}
