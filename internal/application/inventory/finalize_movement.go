package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// FinalizeMovementUseCase confirma borradores de movimiento en el libro:
// identidad → saldos (bajo lock por clave) → journal → proyección → conciliación.
//
// ADJUST fija el saldo destino en la cantidad indicada; no es un delta.
type FinalizeMovementUseCase struct {
	// gate: los movimientos toman RLock; ResetState toma Lock.
	gate       sync.RWMutex
	locks      *KeyLocker
	store      repository.BalanceStore
	inventory  repository.InventoryRepository
	journal    repository.MovementRepository
	totals     repository.MovementTotalsRepository
	projector  *Projector
	reconciler *Reconciler
	log        *logger.Logger

	now   func() time.Time
	newID func() string
}

// FinalizeResult movimiento confirmado, saldos tocados y proyección del SKU.
// Warnings lista fallas de conciliación (no deshacen el movimiento).
type FinalizeResult struct {
	Movement  entity.MovementRecord
	Balances  []entity.InventoryBalance
	Inventory []entity.InventoryRecord
	Warnings  []string
}

// NewFinalizeMovementUseCase construye el caso de uso.
func NewFinalizeMovementUseCase(deps LedgerDeps) *FinalizeMovementUseCase {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	locks := NewKeyLocker()
	return &FinalizeMovementUseCase{
		locks:      locks,
		store:      deps.Store,
		inventory:  deps.Inventory,
		journal:    deps.Movements,
		totals:     deps.Totals,
		projector:  NewProjector(deps.Store, deps.Inventory, locks),
		reconciler: NewReconciler(deps.PurchaseOrders, deps.SalesOrders, deps.LeadTimes, deps.Totals, log),
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
	}
}

// FinalizeMovementDraft valida el borrador, aplica sus saldos y lo confirma en el libro.
// Ante stock insuficiente devuelve *domain.StockConflictError y no confirma nada.
func (uc *FinalizeMovementUseCase) FinalizeMovementDraft(ctx context.Context, draft entity.MovementDraft) (*FinalizeResult, error) {
	now := uc.now()
	rec := newMovementRecord(draft, uc.newID(), now)
	effect, err := domaininv.EffectOf(rec)
	if err != nil {
		return nil, err
	}

	uc.gate.RLock()
	defer uc.gate.RUnlock()

	muts, err := uc.commit(ctx, effect, &rec, now)
	if err != nil {
		var conflict *domain.StockConflictError
		if errors.As(err, &conflict) {
			uc.log.Debug().
				Str("sku", conflict.SKU).
				Str("warehouse", conflict.Warehouse).
				Str("location", conflict.Location).
				Str("shortage", conflict.Shortage().String()).
				Msg("movimiento rechazado por stock insuficiente")
		}
		return nil, err
	}

	res := &FinalizeResult{Movement: rec, Balances: domaininv.Balances(muts)}

	projection, err := uc.projector.Project(ctx, rec.SKU)
	if err != nil {
		uc.log.Warn().Err(err).Str("movement_id", rec.ID).Msg("proyección de inventario")
		res.Warnings = append(res.Warnings, "inventory_projection: "+err.Error())
	}
	res.Inventory = projection
	res.Warnings = append(res.Warnings, uc.reconciler.Reconcile(ctx, rec, effect)...)

	uc.log.Info().
		Str("movement_id", rec.ID).
		Str("type", string(rec.Type)).
		Str("sku", rec.SKU).
		Str("qty", rec.Qty.String()).
		Msg("movimiento confirmado")
	return res, nil
}

// commit aplica el efecto y agrega el registro al journal bajo el lock de sus claves.
// Si el journal falla se revierten los saldos: no queda movimiento aplicado a medias.
func (uc *FinalizeMovementUseCase) commit(ctx context.Context, effect domaininv.Effect, rec *entity.MovementRecord, now time.Time) ([]domaininv.Mutation, error) {
	keys := domaininv.Keys(effect)
	lockKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		lockKeys = append(lockKeys, k.String())
	}
	unlock := uc.locks.Lock(lockKeys...)
	defer unlock()

	muts, err := domaininv.Apply(ctx, uc.store, effect, now)
	if err != nil {
		return nil, err
	}
	if err := uc.journal.Append(ctx, rec); err != nil {
		domaininv.Revert(uc.store, muts)
		return nil, fmt.Errorf("append movement: %w", err)
	}
	return muts, nil
}

// GetInventoryBalancesSnapshot copia de todos los saldos conocidos.
func (uc *FinalizeMovementUseCase) GetInventoryBalancesSnapshot() []entity.InventoryBalance {
	return uc.store.Snapshot()
}

// ResetState borra todos los saldos. Espera a que terminen los movimientos en curso.
func (uc *FinalizeMovementUseCase) ResetState() {
	uc.gate.Lock()
	defer uc.gate.Unlock()
	uc.store.Reset()
	uc.log.Warn().Msg("estado de saldos reiniciado")
}

// InventoryBySKU proyección actual de un SKU.
func (uc *FinalizeMovementUseCase) InventoryBySKU(ctx context.Context, sku string) ([]entity.InventoryRecord, error) {
	return uc.inventory.ListBySKU(ctx, sku)
}

// MovementTotals acumulados de entradas/salidas del SKU.
func (uc *FinalizeMovementUseCase) MovementTotals(ctx context.Context, sku string) (entity.MovementTotals, error) {
	if uc.totals == nil {
		return entity.MovementTotals{}, domain.ErrNotFound
	}
	return uc.totals.Get(ctx, sku)
}

// newMovementRecord sella identidad y timestamps; limpia los campos de ubicación
// que no aplican al tipo.
func newMovementRecord(d entity.MovementDraft, id string, now time.Time) entity.MovementRecord {
	rec := entity.MovementRecord{
		ID:        id,
		Type:      entity.MovementType(strings.ToUpper(strings.TrimSpace(string(d.Type)))),
		SKU:       strings.TrimSpace(d.SKU),
		Qty:       d.Qty,
		POID:      d.POID,
		POLineID:  d.POLineID,
		SOID:      d.SOID,
		SOLineID:  d.SOLineID,
		PartnerID: d.PartnerID,
		RefNo:     d.RefNo,
		Memo:      d.Memo,
		UserID:    d.UserID,
		CreatedAt: now,
	}
	rec.OccurredAt = now
	if d.OccurredAt != nil && !d.OccurredAt.IsZero() {
		rec.OccurredAt = d.OccurredAt.UTC()
	}
	if rec.Type.HasSource() {
		rec.FromWarehouse = strings.TrimSpace(d.FromWarehouse)
		rec.FromLocation = strings.TrimSpace(d.FromLocation)
	}
	if rec.Type.HasDestination() {
		rec.ToWarehouse = strings.TrimSpace(d.ToWarehouse)
		rec.ToLocation = strings.TrimSpace(d.ToLocation)
	}
	return rec
}
