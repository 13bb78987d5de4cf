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

var _ repository.SalesOrderRepository = (*SalesOrderRepository)(nil)

// SalesOrderRepository órdenes de venta en memoria.
type SalesOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*entity.SalesOrder
}

// NewSalesOrderRepository construye el repositorio vacío.
func NewSalesOrderRepository() *SalesOrderRepository {
	return &SalesOrderRepository{orders: make(map[string]*entity.SalesOrder)}
}

// Save crea o reemplaza una orden.
func (r *SalesOrderRepository) Save(order entity.SalesOrder) {
	cp := order
	cp.Lines = make([]entity.SalesOrderLine, len(order.Lines))
	copy(cp.Lines, order.Lines)
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
func (r *SalesOrderRepository) Get(id string) (*entity.SalesOrder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, false
	}
	cp := *o
	cp.Lines = make([]entity.SalesOrderLine, len(o.Lines))
	copy(cp.Lines, o.Lines)
	return &cp, true
}

func (r *SalesOrderRepository) RecordShipment(_ context.Context, soID, lineID string, qty decimal.Decimal, _ time.Time) (*entity.SalesShipmentResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[soID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	line := order.Line(lineID)
	if line == nil {
		return nil, domain.ErrNotFound
	}
	prev := line.ShippedQty
	transition := line.Ship(qty)
	cp := *order
	cp.Lines = make([]entity.SalesOrderLine, len(order.Lines))
	copy(cp.Lines, order.Lines)
	return &entity.SalesShipmentResult{
		Order:              cp,
		PreviousShippedQty: prev,
		Line:               *line,
		Transition:         transition,
	}, nil
}
