package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineStatus estado de una línea de orden (compra o venta).
type LineStatus string

const (
	LineStatusOpen              LineStatus = "OPEN"
	LineStatusPartiallyReceived LineStatus = "PARTIALLY_RECEIVED"
	LineStatusClosed            LineStatus = "CLOSED"

	LineStatusPartiallyShipped LineStatus = "PARTIALLY_SHIPPED"
	LineStatusShipped          LineStatus = "SHIPPED"
)

// LineTransition cambio de estado producido por una recepción o despacho.
type LineTransition struct {
	From LineStatus
	To   LineStatus
}

// Changed indica si hubo cambio de estado.
func (t LineTransition) Changed() bool { return t.From != t.To }

// PurchaseOrder orden de compra a proveedor.
type PurchaseOrder struct {
	ID         string
	VendorID   string
	ApprovedAt *time.Time // nil mientras no esté aprobada
	CreatedAt  time.Time
	Lines      []PurchaseOrderLine
}

// Line devuelve la línea por ID (puntero al slice para poder mutarla).
func (o *PurchaseOrder) Line(lineID string) *PurchaseOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// PurchaseOrderLine línea de una orden de compra.
// Máquina de estados: OPEN → PARTIALLY_RECEIVED → CLOSED (CLOSED cuando recibido >= pedido).
type PurchaseOrderLine struct {
	ID          string
	SKU         string
	OrderedQty  decimal.Decimal
	ReceivedQty decimal.Decimal
	Status      LineStatus
	ClosedAt    *time.Time
}

// Receive registra una cantidad recibida y devuelve la transición de estado.
// Una recepción en cero no mueve la línea de OPEN.
func (l *PurchaseOrderLine) Receive(qty decimal.Decimal, at time.Time) LineTransition {
	from := l.Status
	if from == "" {
		from = LineStatusOpen
	}
	l.ReceivedQty = l.ReceivedQty.Add(qty)
	to := from
	switch {
	case from == LineStatusClosed:
		// recepciones sobre una línea cerrada solo suman cantidad
	case l.ReceivedQty.GreaterThanOrEqual(l.OrderedQty) && l.OrderedQty.GreaterThan(decimal.Zero):
		to = LineStatusClosed
	case l.ReceivedQty.GreaterThan(decimal.Zero):
		to = LineStatusPartiallyReceived
	}
	l.Status = to
	if to == LineStatusClosed && from != LineStatusClosed {
		closed := at
		l.ClosedAt = &closed
	}
	return LineTransition{From: from, To: to}
}

// PurchaseReceiptResult resultado de registrar una recepción contra una línea.
type PurchaseReceiptResult struct {
	Order               PurchaseOrder
	PreviousReceivedQty decimal.Decimal
	Line                PurchaseOrderLine
	Transition          LineTransition
}

// IsFirstReceipt primera recepción no nula de la línea.
func (r PurchaseReceiptResult) IsFirstReceipt() bool {
	return r.Transition.From == LineStatusOpen && r.Line.ReceivedQty.GreaterThan(r.PreviousReceivedQty)
}

// ClosedLine la recepción cerró la línea.
func (r PurchaseReceiptResult) ClosedLine() bool {
	return r.Transition.To == LineStatusClosed && r.Transition.From != LineStatusClosed
}

// LeadTimeSample muestra de lead time (aprobación → recepción) por proveedor/SKU/OC/línea.
type LeadTimeSample struct {
	VendorID   string
	SKU        string
	POID       string
	POLineID   string
	ApprovedAt time.Time
	ReceivedAt time.Time
	Final      bool // true = recepción que cerró la línea
}

// Days lead time en días (fraccional).
func (s LeadTimeSample) Days() float64 {
	return s.ReceivedAt.Sub(s.ApprovedAt).Hours() / 24
}
