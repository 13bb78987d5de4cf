package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

var (
	keyA = entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG", Location: "A-01"}
	keyB = entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG", Location: "B-02"}
	at   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func storeWith(t *testing.T, balances map[entity.BalanceKey]int64) *memory.BalanceStore {
	t.Helper()
	s := memory.NewBalanceStore(nil)
	for k, v := range balances {
		s.Set(k, qty(v), at)
	}
	return s
}

func balanceOf(t *testing.T, s *memory.BalanceStore, k entity.BalanceKey) decimal.Decimal {
	t.Helper()
	b, err := s.Ensure(context.Background(), k)
	require.NoError(t, err)
	return b.Qty
}

func TestApply_ReceiptSumaEnDestino(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 4})

	muts, err := inventory.Apply(context.Background(), s, inventory.Receipt{To: keyA, Qty: qty(6)}, at)
	require.NoError(t, err)
	require.Len(t, muts, 1)

	assert.True(t, muts[0].Before.Qty.Equal(qty(4)))
	assert.True(t, muts[0].After.Qty.Equal(qty(10)))
	assert.True(t, balanceOf(t, s, keyA).Equal(qty(10)))
}

func TestApply_IssueInsuficienteNoEscribe(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 3})

	_, err := inventory.Apply(context.Background(), s, inventory.Issue{From: keyA, Qty: qty(5)}, at)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var conflict *domain.StockConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, keyA.Location, conflict.Location)
	assert.True(t, conflict.Shortage().Equal(qty(2)))
	assert.True(t, balanceOf(t, s, keyA).Equal(qty(3)), "el saldo no debe cambiar")
}

func TestApply_IssueExactoDejaCero(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 5})

	_, err := inventory.Apply(context.Background(), s, inventory.Issue{From: keyA, Qty: qty(5)}, at)
	require.NoError(t, err)
	assert.True(t, balanceOf(t, s, keyA).IsZero())
}

func TestApply_TransferConflictoNoTocaNingunaClave(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 1, keyB: 7})

	_, err := inventory.Apply(context.Background(), s, inventory.Transfer{From: keyA, To: keyB, Qty: qty(2)}, at)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, balanceOf(t, s, keyA).Equal(qty(1)))
	assert.True(t, balanceOf(t, s, keyB).Equal(qty(7)))
}

func TestApply_TransferConservaTotal(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 10, keyB: 1})

	muts, err := inventory.Apply(context.Background(), s, inventory.Transfer{From: keyA, To: keyB, Qty: qty(4)}, at)
	require.NoError(t, err)
	require.Len(t, muts, 2)

	assert.True(t, balanceOf(t, s, keyA).Equal(qty(6)))
	assert.True(t, balanceOf(t, s, keyB).Equal(qty(5)))
}

func TestApply_AdjustEsAbsoluto(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 40})

	_, err := inventory.Apply(context.Background(), s, inventory.Adjust{To: keyA, Qty: qty(12)}, at)
	require.NoError(t, err)
	assert.True(t, balanceOf(t, s, keyA).Equal(qty(12)), "ADJUST fija el saldo, no suma")
}

func TestApply_EfectoNilNoHaceNada(t *testing.T) {
	s := storeWith(t, nil)

	muts, err := inventory.Apply(context.Background(), s, nil, at)
	require.NoError(t, err)
	assert.Empty(t, muts)
	assert.Empty(t, s.Snapshot())
}

func TestRevert_RestauraValoresPrevios(t *testing.T) {
	s := storeWith(t, map[entity.BalanceKey]int64{keyA: 10, keyB: 0})

	muts, err := inventory.Apply(context.Background(), s, inventory.Transfer{From: keyA, To: keyB, Qty: qty(10)}, at.Add(time.Hour))
	require.NoError(t, err)

	inventory.Revert(s, muts)

	assert.True(t, balanceOf(t, s, keyA).Equal(qty(10)))
	assert.True(t, balanceOf(t, s, keyB).IsZero())
	assert.Len(t, inventory.Balances(muts), 2)
}
