package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementTypeReceipt  MovementType = "RECEIPT"  // entrada (compra)
	MovementTypeIssue    MovementType = "ISSUE"    // salida (venta, consumo)
	MovementTypeTransfer MovementType = "TRANSFER" // traslado entre ubicaciones
	MovementTypeAdjust   MovementType = "ADJUST"   // ajuste absoluto (conteo físico)
	MovementTypeReturn   MovementType = "RETURN"   // devolución de cliente
)

// Valid indica si el tipo pertenece a la taxonomía de movimientos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeReceipt, MovementTypeIssue, MovementTypeTransfer, MovementTypeAdjust, MovementTypeReturn:
		return true
	}
	return false
}

// MovementDraft solicitud de movimiento aún sin identidad en el libro.
// Los campos From* aplican a ISSUE y TRANSFER; los To* a RECEIPT, RETURN, TRANSFER y ADJUST.
type MovementDraft struct {
	Type          MovementType
	SKU           string
	Qty           decimal.Decimal
	FromWarehouse string
	FromLocation  string
	ToWarehouse   string
	ToLocation    string
	POID          string
	POLineID      string
	SOID          string
	SOLineID      string
	PartnerID     string
	RefNo         string
	Memo          string
	UserID        string
	OccurredAt    *time.Time
}

// MovementRecord movimiento confirmado en el libro. Inmutable una vez creado.
type MovementRecord struct {
	ID            string
	Type          MovementType
	SKU           string
	Qty           decimal.Decimal
	FromWarehouse string
	FromLocation  string
	ToWarehouse   string
	ToLocation    string
	POID          string
	POLineID      string
	SOID          string
	SOLineID      string
	PartnerID     string
	RefNo         string
	Memo          string
	UserID        string
	OccurredAt    time.Time // fecha de negocio (puede ser retroactiva)
	CreatedAt     time.Time // fecha de inserción en el libro
}

// HasSource indica si el tipo descuenta de una ubicación origen.
func (t MovementType) HasSource() bool {
	return t == MovementTypeIssue || t == MovementTypeTransfer
}

// HasDestination indica si el tipo afecta una ubicación destino.
func (t MovementType) HasDestination() bool {
	switch t {
	case MovementTypeReceipt, MovementTypeReturn, MovementTypeTransfer, MovementTypeAdjust:
		return true
	}
	return false
}
