package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Effect efecto de un movimiento sobre los saldos. Tipo cerrado: solo las
// variantes de este paquete lo implementan.
type Effect interface {
	Type() entity.MovementType
	sealed()
}

// Receipt suma Qty en el destino.
type Receipt struct {
	To  entity.BalanceKey
	Qty decimal.Decimal
}

// Return devolución: suma Qty en el destino.
type Return struct {
	To  entity.BalanceKey
	Qty decimal.Decimal
}

// Issue resta Qty del origen; falla si el origen no alcanza.
type Issue struct {
	From entity.BalanceKey
	Qty  decimal.Decimal
}

// Transfer resta del origen y suma en el destino, todo o nada.
type Transfer struct {
	From entity.BalanceKey
	To   entity.BalanceKey
	Qty  decimal.Decimal
}

// Adjust FIJA el saldo del destino en Qty. No es un incremento: el saldo
// previo se descarta (corrección por conteo físico).
type Adjust struct {
	To  entity.BalanceKey
	Qty decimal.Decimal
}

func (Receipt) Type() entity.MovementType  { return entity.MovementTypeReceipt }
func (Return) Type() entity.MovementType   { return entity.MovementTypeReturn }
func (Issue) Type() entity.MovementType    { return entity.MovementTypeIssue }
func (Transfer) Type() entity.MovementType { return entity.MovementTypeTransfer }
func (Adjust) Type() entity.MovementType   { return entity.MovementTypeAdjust }

func (Receipt) sealed()  {}
func (Return) sealed()   {}
func (Issue) sealed()    {}
func (Transfer) sealed() {}
func (Adjust) sealed()   {}

// Keys claves de saldo que toca el efecto (origen primero).
func Keys(e Effect) []entity.BalanceKey {
	switch v := e.(type) {
	case Receipt:
		return []entity.BalanceKey{v.To}
	case Return:
		return []entity.BalanceKey{v.To}
	case Issue:
		return []entity.BalanceKey{v.From}
	case Transfer:
		return []entity.BalanceKey{v.From, v.To}
	case Adjust:
		return []entity.BalanceKey{v.To}
	}
	return nil
}

// EffectOf valida la forma del movimiento y construye la variante correspondiente.
// Los errores envuelven domain.ErrInvalidInput.
func EffectOf(m entity.MovementRecord) (Effect, error) {
	sku := strings.TrimSpace(m.SKU)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku requerido", domain.ErrInvalidInput)
	}
	if m.Qty.IsNegative() {
		return nil, fmt.Errorf("%w: qty no puede ser negativa", domain.ErrInvalidInput)
	}
	if !m.Type.Valid() {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, m.Type)
	}

	var from, to entity.BalanceKey
	if m.Type.HasSource() {
		if m.FromWarehouse == "" || m.FromLocation == "" {
			return nil, fmt.Errorf("%w: %s requiere from_warehouse y from_location", domain.ErrInvalidInput, m.Type)
		}
		from = entity.BalanceKey{SKU: sku, Warehouse: m.FromWarehouse, Location: m.FromLocation}
	}
	if m.Type.HasDestination() {
		if m.ToWarehouse == "" || m.ToLocation == "" {
			return nil, fmt.Errorf("%w: %s requiere to_warehouse y to_location", domain.ErrInvalidInput, m.Type)
		}
		to = entity.BalanceKey{SKU: sku, Warehouse: m.ToWarehouse, Location: m.ToLocation}
	}

	switch m.Type {
	case entity.MovementTypeReceipt:
		return Receipt{To: to, Qty: m.Qty}, nil
	case entity.MovementTypeReturn:
		return Return{To: to, Qty: m.Qty}, nil
	case entity.MovementTypeIssue:
		return Issue{From: from, Qty: m.Qty}, nil
	case entity.MovementTypeTransfer:
		if from == to {
			return nil, fmt.Errorf("%w: origen y destino del traslado son iguales", domain.ErrInvalidInput)
		}
		return Transfer{From: from, To: to, Qty: m.Qty}, nil
	case entity.MovementTypeAdjust:
		return Adjust{To: to, Qty: m.Qty}, nil
	}
	return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, m.Type)
}

// TotalsDelta delta de acumulados {entradas, salidas} del efecto.
// TRANSFER cuenta como entrada y salida a la vez; ADJUST no suma nada.
func TotalsDelta(e Effect) entity.MovementTotals {
	switch v := e.(type) {
	case Receipt:
		return entity.MovementTotals{Inbound: v.Qty, Outbound: decimal.Zero}
	case Return:
		return entity.MovementTotals{Inbound: v.Qty, Outbound: decimal.Zero}
	case Issue:
		return entity.MovementTotals{Inbound: decimal.Zero, Outbound: v.Qty}
	case Transfer:
		return entity.MovementTotals{Inbound: v.Qty, Outbound: v.Qty}
	}
	return entity.MovementTotals{Inbound: decimal.Zero, Outbound: decimal.Zero}
}
