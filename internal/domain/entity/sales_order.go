package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder orden de venta.
type SalesOrder struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	Lines      []SalesOrderLine
}

// Line devuelve la línea por ID.
func (o *SalesOrder) Line(lineID string) *SalesOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// SalesOrderLine línea de venta: OPEN → PARTIALLY_SHIPPED → SHIPPED.
type SalesOrderLine struct {
	ID         string
	SKU        string
	OrderedQty decimal.Decimal
	ShippedQty decimal.Decimal
	Status     LineStatus
}

// Ship registra cantidad despachada.
func (l *SalesOrderLine) Ship(qty decimal.Decimal) LineTransition {
	from := l.Status
	if from == "" {
		from = LineStatusOpen
	}
	l.ShippedQty = l.ShippedQty.Add(qty)
	to := from
	switch {
	case from == LineStatusShipped:
	case l.ShippedQty.GreaterThanOrEqual(l.OrderedQty) && l.OrderedQty.GreaterThan(decimal.Zero):
		to = LineStatusShipped
	case l.ShippedQty.GreaterThan(decimal.Zero):
		to = LineStatusPartiallyShipped
	}
	l.Status = to
	return LineTransition{From: from, To: to}
}

// SalesShipmentResult resultado de registrar un despacho.
type SalesShipmentResult struct {
	Order              SalesOrder
	PreviousShippedQty decimal.Decimal
	Line               SalesOrderLine
	Transition         LineTransition
}
