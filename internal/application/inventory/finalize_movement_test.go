package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	uc             *inventory.FinalizeMovementUseCase
	store          *memory.BalanceStore
	inventory      *memory.InventoryRepository
	movements      *memory.MovementRepository
	purchaseOrders *memory.PurchaseOrderRepository
	salesOrders    *memory.SalesOrderRepository
	leadTimes      *memory.LeadTimeRepository
	totals         *memory.MovementTotalsRepository
}

func newLedger(t *testing.T, seed ...entity.InventoryRecord) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		inventory:      memory.NewInventoryRepository(),
		movements:      memory.NewMovementRepository(),
		purchaseOrders: memory.NewPurchaseOrderRepository(),
		salesOrders:    memory.NewSalesOrderRepository(),
		leadTimes:      memory.NewLeadTimeRepository(),
		totals:         memory.NewMovementTotalsRepository(),
	}
	f.inventory.Seed(seed...)
	f.store = memory.NewBalanceStore(f.inventory)
	f.uc = inventory.NewFinalizeMovementUseCase(inventory.LedgerDeps{
		Store:          f.store,
		Inventory:      f.inventory,
		Movements:      f.movements,
		PurchaseOrders: f.purchaseOrders,
		SalesOrders:    f.salesOrders,
		LeadTimes:      f.leadTimes,
		Totals:         f.totals,
	})
	return f
}

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func receipt(sku, wh, loc string, q int64) entity.MovementDraft {
	return entity.MovementDraft{Type: entity.MovementTypeReceipt, SKU: sku, Qty: d(q), ToWarehouse: wh, ToLocation: loc}
}

func issue(sku, wh, loc string, q int64) entity.MovementDraft {
	return entity.MovementDraft{Type: entity.MovementTypeIssue, SKU: sku, Qty: d(q), FromWarehouse: wh, FromLocation: loc}
}

func transfer(sku, fromLoc, toLoc string, q int64) entity.MovementDraft {
	return entity.MovementDraft{Type: entity.MovementTypeTransfer, SKU: sku, Qty: d(q),
		FromWarehouse: "BOG", FromLocation: fromLoc, ToWarehouse: "BOG", ToLocation: toLoc}
}

func (f *ledgerFixture) balance(t *testing.T, sku, wh, loc string) decimal.Decimal {
	t.Helper()
	for _, b := range f.uc.GetInventoryBalancesSnapshot() {
		if b.SKU == sku && b.Warehouse == wh && b.Location == loc {
			return b.Qty
		}
	}
	return decimal.Zero
}

func assertDec(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), append([]interface{}{"esperado %d, obtenido %s", want, got}, msgAndArgs...)...)
}

type failingJournal struct{ *memory.MovementRepository }

func (failingJournal) Append(context.Context, *entity.MovementRecord) error {
	return errors.New("disco lleno")
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_ReceiptSellaIdentidadYTiempos(t *testing.T) {
	f := newLedger(t)
	draft := receipt("SKU-1", "BOG", "A-01", 10)
	draft.UserID = "u-1"

	res, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Movement.ID)
	assert.False(t, res.Movement.CreatedAt.IsZero())
	assert.Equal(t, res.Movement.CreatedAt, res.Movement.OccurredAt, "occurred_at toma created_at si no viene")
	assert.Equal(t, "u-1", res.Movement.UserID)
	require.Len(t, res.Balances, 1)
	assertDec(t, 10, res.Balances[0].Qty)
	require.Len(t, res.Inventory, 1)
	assertDec(t, 10, res.Inventory[0].OnHand)
	assert.Empty(t, res.Warnings)

	stored, err := f.movements.GetByID(context.Background(), res.Movement.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.MovementTypeReceipt, stored.Type)
}

func TestFinalize_OccurredAtExplicito(t *testing.T) {
	f := newLedger(t)
	when := time.Date(2025, 12, 24, 18, 0, 0, 0, time.FixedZone("COT", -5*3600))
	draft := receipt("SKU-1", "BOG", "A-01", 1)
	draft.OccurredAt = &when

	res, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)
	assert.True(t, when.Equal(res.Movement.OccurredAt))
	assert.Equal(t, time.UTC, res.Movement.OccurredAt.Location())
}

func TestFinalize_LimpiaCamposQueNoAplican(t *testing.T) {
	f := newLedger(t)
	draft := receipt("SKU-1", "BOG", "A-01", 1)
	draft.FromWarehouse, draft.FromLocation = "MED", "X"

	res, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)
	assert.Empty(t, res.Movement.FromWarehouse)
	assert.Empty(t, res.Movement.FromLocation)
}

func TestFinalize_IssueInsuficienteNoConfirmaNada(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 3))
	require.NoError(t, err)

	_, err = f.uc.FinalizeMovementDraft(context.Background(), issue("SKU-1", "BOG", "A-01", 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var conflict *domain.StockConflictError
	require.True(t, errors.As(err, &conflict))
	assertDec(t, 5, conflict.Requested)
	assertDec(t, 3, conflict.Available)
	assertDec(t, 2, conflict.Shortage())

	assertDec(t, 3, f.balance(t, "SKU-1", "BOG", "A-01"))
	assert.Equal(t, 1, f.movements.Len(), "el movimiento rechazado no entra al journal")

	totals, err := f.uc.MovementTotals(context.Background(), "SKU-1")
	require.NoError(t, err)
	assertDec(t, 0, totals.Outbound)
}

func TestFinalize_ValidacionNoTocaSaldos(t *testing.T) {
	f := newLedger(t)

	_, err := f.uc.FinalizeMovementDraft(context.Background(), entity.MovementDraft{Type: entity.MovementTypeIssue, SKU: "SKU-1", Qty: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.FinalizeMovementDraft(context.Background(), entity.MovementDraft{Type: "LOAN", SKU: "SKU-1", Qty: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.uc.GetInventoryBalancesSnapshot())
	assert.Zero(t, f.movements.Len())
}

func TestFinalize_TipoEnMinusculas(t *testing.T) {
	f := newLedger(t)
	draft := receipt("SKU-1", "BOG", "A-01", 2)
	draft.Type = " receipt "

	res, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeReceipt, res.Movement.Type)
}

func TestFinalize_TransferConservaTotal(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 10))
	require.NoError(t, err)

	res, err := f.uc.FinalizeMovementDraft(context.Background(), transfer("SKU-1", "A-01", "B-02", 4))
	require.NoError(t, err)
	require.Len(t, res.Balances, 2)

	assertDec(t, 6, f.balance(t, "SKU-1", "BOG", "A-01"))
	assertDec(t, 4, f.balance(t, "SKU-1", "BOG", "B-02"))
	require.Len(t, res.Inventory, 2)
	assert.Equal(t, "A-01", res.Inventory[0].Location)
	assert.Equal(t, "B-02", res.Inventory[1].Location)
}

func TestFinalize_TransferInsuficienteNoTocaDestino(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "B-02", 7))
	require.NoError(t, err)

	_, err = f.uc.FinalizeMovementDraft(context.Background(), transfer("SKU-1", "A-01", "B-02", 1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDec(t, 7, f.balance(t, "SKU-1", "BOG", "B-02"))
}

func TestFinalize_AdjustFijaElSaldo(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 40))
	require.NoError(t, err)

	adjust := entity.MovementDraft{Type: entity.MovementTypeAdjust, SKU: "SKU-1", Qty: d(12), ToWarehouse: "BOG", ToLocation: "A-01"}
	_, err = f.uc.FinalizeMovementDraft(context.Background(), adjust)
	require.NoError(t, err)
	assertDec(t, 12, f.balance(t, "SKU-1", "BOG", "A-01"))

	// repetir el ajuste deja el mismo saldo
	_, err = f.uc.FinalizeMovementDraft(context.Background(), adjust)
	require.NoError(t, err)
	assertDec(t, 12, f.balance(t, "SKU-1", "BOG", "A-01"))
}

func TestFinalize_ReturnSumaEnDestino(t *testing.T) {
	f := newLedger(t)
	ret := entity.MovementDraft{Type: entity.MovementTypeReturn, SKU: "SKU-1", Qty: d(2), ToWarehouse: "BOG", ToLocation: "DEV"}

	_, err := f.uc.FinalizeMovementDraft(context.Background(), ret)
	require.NoError(t, err)
	assertDec(t, 2, f.balance(t, "SKU-1", "BOG", "DEV"))
}

func TestFinalize_FallaDelJournalRevierteSaldos(t *testing.T) {
	inv := memory.NewInventoryRepository()
	store := memory.NewBalanceStore(inv)
	store.Set(entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG", Location: "A-01"}, d(10), time.Now())
	uc := inventory.NewFinalizeMovementUseCase(inventory.LedgerDeps{
		Store:     store,
		Inventory: inv,
		Movements: failingJournal{memory.NewMovementRepository()},
	})

	_, err := uc.FinalizeMovementDraft(context.Background(), transfer("SKU-1", "A-01", "B-02", 4))
	require.Error(t, err)

	for _, b := range uc.GetInventoryBalancesSnapshot() {
		switch b.Location {
		case "A-01":
			assertDec(t, 10, b.Qty)
		case "B-02":
			assertDec(t, 0, b.Qty)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyección
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_ReceiptEIssueDevuelvenLaProyeccionAlEstadoInicial(t *testing.T) {
	f := newLedger(t, entity.InventoryRecord{
		SKU: "SKU-1", Warehouse: "BOG", Location: "A-01", OnHand: d(8), Reserved: d(3),
	})

	res, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 5))
	require.NoError(t, err)
	require.Len(t, res.Inventory, 1)
	assertDec(t, 13, res.Inventory[0].OnHand)
	assertDec(t, 3, res.Inventory[0].Reserved)

	res, err = f.uc.FinalizeMovementDraft(context.Background(), issue("SKU-1", "BOG", "A-01", 5))
	require.NoError(t, err)
	require.Len(t, res.Inventory, 1)
	assertDec(t, 8, res.Inventory[0].OnHand)
	assertDec(t, 3, res.Inventory[0].Reserved, "reserved no cambia con movimientos")
}

func TestFinalize_ProyeccionConservaUbicacionesSinSaldoEnMemoria(t *testing.T) {
	f := newLedger(t,
		entity.InventoryRecord{SKU: "SKU-1", Warehouse: "MED", Location: "Z-09", OnHand: d(4), Reserved: d(1)},
	)

	res, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 2))
	require.NoError(t, err)
	require.Len(t, res.Inventory, 2)
	assert.Equal(t, "BOG", res.Inventory[0].Warehouse)
	assert.Equal(t, "MED", res.Inventory[1].Warehouse)
	assertDec(t, 4, res.Inventory[1].OnHand)

	records, err := f.uc.InventoryBySKU(context.Background(), "SKU-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_RecepcionOCRegistraLeadTimes(t *testing.T) {
	f := newLedger(t)
	approved := time.Now().UTC().Add(-72 * time.Hour)
	f.purchaseOrders.Save(entity.PurchaseOrder{
		ID: "PO-1", VendorID: "V-1", ApprovedAt: &approved,
		Lines: []entity.PurchaseOrderLine{{ID: "L1", SKU: "SKU-1", OrderedQty: d(10)}},
	})

	first := receipt("SKU-1", "BOG", "A-01", 4)
	first.POID, first.POLineID = "PO-1", "L1"
	res, err := f.uc.FinalizeMovementDraft(context.Background(), first)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	require.Len(t, f.leadTimes.Samples(), 1)
	sample := f.leadTimes.Samples()[0]
	assert.Equal(t, "V-1", sample.VendorID)
	assert.True(t, approved.Equal(sample.ApprovedAt))
	assert.True(t, res.Movement.CreatedAt.Equal(sample.ReceivedAt))
	assert.Empty(t, f.leadTimes.Finals())

	second := receipt("SKU-1", "BOG", "A-01", 6)
	second.POID, second.POLineID = "PO-1", "L1"
	_, err = f.uc.FinalizeMovementDraft(context.Background(), second)
	require.NoError(t, err)

	assert.Len(t, f.leadTimes.Samples(), 1, "solo la primera recepción genera muestra")
	require.Len(t, f.leadTimes.Finals(), 1)
	assert.True(t, f.leadTimes.Finals()[0].Final)

	po, ok := f.purchaseOrders.Get("PO-1")
	require.True(t, ok)
	assert.Equal(t, entity.LineStatusClosed, po.Lines[0].Status)
	assertDec(t, 10, po.Lines[0].ReceivedQty)

	// recepción extra sobre línea cerrada: no vuelve a cerrar
	extra := receipt("SKU-1", "BOG", "A-01", 1)
	extra.POID, extra.POLineID = "PO-1", "L1"
	_, err = f.uc.FinalizeMovementDraft(context.Background(), extra)
	require.NoError(t, err)
	assert.Len(t, f.leadTimes.Finals(), 1)
}

func TestFinalize_OCSinAprobacionNoGeneraMuestras(t *testing.T) {
	f := newLedger(t)
	f.purchaseOrders.Save(entity.PurchaseOrder{
		ID: "PO-2", Lines: []entity.PurchaseOrderLine{{ID: "L1", SKU: "SKU-1", OrderedQty: d(1)}},
	})
	draft := receipt("SKU-1", "BOG", "A-01", 1)
	draft.POID, draft.POLineID = "PO-2", "L1"

	_, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)
	assert.Empty(t, f.leadTimes.Samples())
	assert.Empty(t, f.leadTimes.Finals())
}

func TestFinalize_OCInexistenteEsWarningYNoDeshace(t *testing.T) {
	f := newLedger(t)
	draft := receipt("SKU-1", "BOG", "A-01", 5)
	draft.POID, draft.POLineID = "PO-X", "L1"

	res, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "purchase_order")

	assertDec(t, 5, f.balance(t, "SKU-1", "BOG", "A-01"))
	assert.Equal(t, 1, f.movements.Len())
}

func TestFinalize_DespachoOVActualizaLinea(t *testing.T) {
	f := newLedger(t)
	f.salesOrders.Save(entity.SalesOrder{
		ID: "SO-1", CustomerID: "C-1",
		Lines: []entity.SalesOrderLine{{ID: "L1", SKU: "SKU-1", OrderedQty: d(3)}},
	})
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 10))
	require.NoError(t, err)

	draft := issue("SKU-1", "BOG", "A-01", 3)
	draft.SOID, draft.SOLineID = "SO-1", "L1"
	res, err := f.uc.FinalizeMovementDraft(context.Background(), draft)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	so, ok := f.salesOrders.Get("SO-1")
	require.True(t, ok)
	assert.Equal(t, entity.LineStatusShipped, so.Lines[0].Status)
}

func TestFinalize_AcumuladosPorTipo(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	_, err := f.uc.FinalizeMovementDraft(ctx, receipt("SKU-1", "BOG", "A-01", 10))
	require.NoError(t, err)
	_, err = f.uc.FinalizeMovementDraft(ctx, issue("SKU-1", "BOG", "A-01", 3))
	require.NoError(t, err)
	_, err = f.uc.FinalizeMovementDraft(ctx, transfer("SKU-1", "A-01", "B-02", 2))
	require.NoError(t, err)
	_, err = f.uc.FinalizeMovementDraft(ctx, entity.MovementDraft{Type: entity.MovementTypeAdjust, SKU: "SKU-1", Qty: d(100), ToWarehouse: "BOG", ToLocation: "A-01"})
	require.NoError(t, err)

	totals, err := f.uc.MovementTotals(ctx, "SKU-1")
	require.NoError(t, err)
	assertDec(t, 12, totals.Inbound, "receipt 10 + transfer 2")
	assertDec(t, 5, totals.Outbound, "issue 3 + transfer 2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia y reset
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_IssuesConcurrentesNoSobregiran(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 50))
	require.NoError(t, err)

	var ok, rejected int64
	var wg sync.WaitGroup
	for i := 0; i < 120; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.FinalizeMovementDraft(context.Background(), issue("SKU-1", "BOG", "A-01", 1))
			if err == nil {
				atomic.AddInt64(&ok, 1)
				return
			}
			if errors.Is(err, domain.ErrInsufficientStock) {
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), ok)
	assert.Equal(t, int64(70), rejected)
	assertDec(t, 0, f.balance(t, "SKU-1", "BOG", "A-01"))
}

func TestFinalize_TransferenciasCruzadasSinDeadlock(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	_, err := f.uc.FinalizeMovementDraft(ctx, receipt("SKU-1", "BOG", "A-01", 100))
	require.NoError(t, err)
	_, err = f.uc.FinalizeMovementDraft(ctx, receipt("SKU-1", "BOG", "B-02", 100))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = f.uc.FinalizeMovementDraft(ctx, transfer("SKU-1", "A-01", "B-02", 1))
			}()
			go func() {
				defer wg.Done()
				_, _ = f.uc.FinalizeMovementDraft(ctx, transfer("SKU-1", "B-02", "A-01", 1))
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("transferencias cruzadas bloqueadas")
	}
	total := f.balance(t, "SKU-1", "BOG", "A-01").Add(f.balance(t, "SKU-1", "BOG", "B-02"))
	assertDec(t, 200, total, "el traslado conserva el total del SKU")
}

func TestFinalize_ResetBorraSaldos(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 5))
	require.NoError(t, err)
	require.Len(t, f.uc.GetInventoryBalancesSnapshot(), 1)

	f.uc.ResetState()
	assert.Empty(t, f.uc.GetInventoryBalancesSnapshot())
}

func TestFinalize_ResetConcurrenteConMovimientos(t *testing.T) {
	f := newLedger(t)
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 0 {
				f.uc.ResetState()
				return
			}
			_, err := f.uc.FinalizeMovementDraft(context.Background(), receipt("SKU-1", "BOG", "A-01", 1))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, b := range f.uc.GetInventoryBalancesSnapshot() {
		assert.False(t, b.Qty.IsNegative())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptadores de request
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalizeMovementFromRequest(t *testing.T) {
	f := newLedger(t)
	out, err := f.uc.FinalizeMovementFromRequest(context.Background(), "u-9", dto.MovementDraftRequest{
		Type: "RECEIPT", SKU: "SKU-1", Qty: d(3), ToWarehouse: "BOG", ToLocation: "A-01", RefNo: "GR-77",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-9", out.Movement.UserID)
	assert.Equal(t, "GR-77", out.Movement.RefNo)
	require.Len(t, out.Balances, 1)
	assertDec(t, 3, out.Balances[0].Qty)

	list, err := f.uc.RecentMovements(context.Background(), "SKU-1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 50, list.Page.Limit)
	require.Len(t, list.Items, 1)
	assert.Equal(t, out.Movement.ID, list.Items[0].ID)
}
