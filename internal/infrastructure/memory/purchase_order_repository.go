package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// PurchaseOrderRepository órdenes de compra en memoria.
type PurchaseOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*entity.PurchaseOrder
}

// NewPurchaseOrderRepository construye el repositorio vacío.
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{orders: make(map[string]*entity.PurchaseOrder)}
}

// Save crea o reemplaza una orden.
func (r *PurchaseOrderRepository) Save(order entity.PurchaseOrder) {
	cp := clonePurchaseOrder(order)
	for i := range cp.Lines {
		if cp.Lines[i].Status == "" {
			cp.Lines[i].Status = entity.LineStatusOpen
		}
	}
	r.mu.Lock()
	r.orders[order.ID] = &cp
	r.mu.Unlock()
}

// Get devuelve una copia de la orden.
func (r *PurchaseOrderRepository) Get(id string) (*entity.PurchaseOrder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, false
	}
	cp := clonePurchaseOrder(*o)
	return &cp, true
}

func (r *PurchaseOrderRepository) RecordReceipt(_ context.Context, poID, lineID string, qty decimal.Decimal, at time.Time) (*entity.PurchaseReceiptResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[poID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	line := order.Line(lineID)
	if line == nil {
		return nil, domain.ErrNotFound
	}
	prev := line.ReceivedQty
	transition := line.Receive(qty, at)
	return &entity.PurchaseReceiptResult{
		Order:               clonePurchaseOrder(*order),
		PreviousReceivedQty: prev,
		Line:                *line,
		Transition:          transition,
	}, nil
}

func clonePurchaseOrder(o entity.PurchaseOrder) entity.PurchaseOrder {
	cp := o
	cp.Lines = make([]entity.PurchaseOrderLine, len(o.Lines))
	copy(cp.Lines, o.Lines)
	return cp
}
