package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Reconciler vincula movimientos confirmados con órdenes de compra/venta, muestras de
// lead time y acumulados por SKU. Sus fallas se reportan, nunca deshacen el movimiento.
type Reconciler struct {
	purchaseOrders repository.PurchaseOrderRepository
	salesOrders    repository.SalesOrderRepository
	leadTimes      repository.LeadTimeRepository
	totals         repository.MovementTotalsRepository
	log            *logger.Logger
}

// NewReconciler construye el conciliador. Cualquier colaborador puede ser nil.
func NewReconciler(
	purchaseOrders repository.PurchaseOrderRepository,
	salesOrders repository.SalesOrderRepository,
	leadTimes repository.LeadTimeRepository,
	totals repository.MovementTotalsRepository,
	log *logger.Logger,
) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{
		purchaseOrders: purchaseOrders,
		salesOrders:    salesOrders,
		leadTimes:      leadTimes,
		totals:         totals,
		log:            log,
	}
}

// Reconcile aplica los efectos posteriores al commit y devuelve los warnings.
func (r *Reconciler) Reconcile(ctx context.Context, m entity.MovementRecord, e domaininv.Effect) []string {
	var warnings []string
	warn := func(step string, err error) {
		r.log.Warn().Err(err).Str("movement_id", m.ID).Str("sku", m.SKU).Str("step", step).Msg("conciliación fallida")
		warnings = append(warnings, step+": "+err.Error())
	}

	switch e.(type) {
	case domaininv.Receipt:
		if r.purchaseOrders != nil && m.POID != "" && m.POLineID != "" {
			if err := r.receivePurchase(ctx, m); err != nil {
				warn("purchase_order", err)
			}
		}
	case domaininv.Issue:
		if r.salesOrders != nil && m.SOID != "" && m.SOLineID != "" {
			if _, err := r.salesOrders.RecordShipment(ctx, m.SOID, m.SOLineID, m.Qty, m.CreatedAt); err != nil {
				warn("sales_order", fmt.Errorf("despacho OV %s/%s: %w", m.SOID, m.SOLineID, err))
			}
		}
	}

	delta := domaininv.TotalsDelta(e)
	if r.totals != nil && !delta.IsZero() {
		if err := r.totals.Adjust(ctx, m.SKU, delta); err != nil {
			warn("movement_totals", err)
		}
	}
	return warnings
}

func (r *Reconciler) receivePurchase(ctx context.Context, m entity.MovementRecord) error {
	res, err := r.purchaseOrders.RecordReceipt(ctx, m.POID, m.POLineID, m.Qty, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("recepción OC %s/%s: %w", m.POID, m.POLineID, err)
	}
	if r.leadTimes == nil || res.Order.ApprovedAt == nil {
		return nil
	}
	sku := res.Line.SKU
	if sku == "" {
		sku = m.SKU
	}
	sample := entity.LeadTimeSample{
		VendorID:   res.Order.VendorID,
		SKU:        sku,
		POID:       m.POID,
		POLineID:   m.POLineID,
		ApprovedAt: *res.Order.ApprovedAt,
		ReceivedAt: m.CreatedAt,
	}
	if res.IsFirstReceipt() {
		if err := r.leadTimes.RecordLeadTimeSample(ctx, sample); err != nil {
			return fmt.Errorf("muestra lead time: %w", err)
		}
	}
	if res.ClosedLine() {
		if err := r.leadTimes.RecordFinalLeadTime(ctx, sample); err != nil {
			return fmt.Errorf("lead time final: %w", err)
		}
	}
	return nil
}
