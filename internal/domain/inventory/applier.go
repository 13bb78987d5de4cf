package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Mutation saldo antes y después de aplicar un efecto.
type Mutation struct {
	Before entity.InventoryBalance
	After  entity.InventoryBalance
}

// Apply calcula y confirma las mutaciones de saldo del efecto.
// El caller debe tener bloqueadas las claves del efecto (ver Keys).
// Ante conflicto de stock devuelve *domain.StockConflictError sin escribir nada.
func Apply(ctx context.Context, store repository.BalanceStore, e Effect, at time.Time) ([]Mutation, error) {
	switch v := e.(type) {
	case Receipt:
		return increase(ctx, store, v.To, v, at)
	case Return:
		return increase(ctx, store, v.To, v, at)
	case Issue:
		src, err := store.Ensure(ctx, v.From)
		if err != nil {
			return nil, err
		}
		if src.Qty.LessThan(v.Qty) {
			return nil, conflict(v.From, v, src)
		}
		after := store.Set(v.From, src.Qty.Sub(v.Qty), at)
		return []Mutation{{Before: src, After: after}}, nil
	case Transfer:
		src, err := store.Ensure(ctx, v.From)
		if err != nil {
			return nil, err
		}
		dst, err := store.Ensure(ctx, v.To)
		if err != nil {
			return nil, err
		}
		if src.Qty.LessThan(v.Qty) {
			return nil, conflict(v.From, v, src)
		}
		srcAfter := store.Set(v.From, src.Qty.Sub(v.Qty), at)
		dstAfter := store.Set(v.To, dst.Qty.Add(v.Qty), at)
		return []Mutation{{Before: src, After: srcAfter}, {Before: dst, After: dstAfter}}, nil
	case Adjust:
		cur, err := store.Ensure(ctx, v.To)
		if err != nil {
			return nil, err
		}
		after := store.Set(v.To, v.Qty, at)
		return []Mutation{{Before: cur, After: after}}, nil
	}
	// sin efecto sobre saldos
	return nil, nil
}

func increase(ctx context.Context, store repository.BalanceStore, key entity.BalanceKey, e Effect, at time.Time) ([]Mutation, error) {
	cur, err := store.Ensure(ctx, key)
	if err != nil {
		return nil, err
	}
	after := store.Set(key, cur.Qty.Add(effectQty(e)), at)
	return []Mutation{{Before: cur, After: after}}, nil
}

func effectQty(e Effect) decimal.Decimal {
	switch v := e.(type) {
	case Receipt:
		return v.Qty
	case Return:
		return v.Qty
	case Issue:
		return v.Qty
	case Transfer:
		return v.Qty
	case Adjust:
		return v.Qty
	}
	return decimal.Zero
}

func conflict(key entity.BalanceKey, e Effect, available entity.InventoryBalance) error {
	return &domain.StockConflictError{
		SKU:       key.SKU,
		Warehouse: key.Warehouse,
		Location:  key.Location,
		Requested: effectQty(e),
		Available: available.Qty,
	}
}

// Revert restaura los valores previos de las mutaciones, en orden inverso.
func Revert(store repository.BalanceStore, muts []Mutation) {
	for i := len(muts) - 1; i >= 0; i-- {
		b := muts[i].Before
		store.Set(b.Key(), b.Qty, b.UpdatedAt)
	}
}

// Balances saldos resultantes de las mutaciones.
func Balances(muts []Mutation) []entity.InventoryBalance {
	out := make([]entity.InventoryBalance, 0, len(muts))
	for _, m := range muts {
		out = append(out, m.After)
	}
	return out
}
