package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey identifica un bucket de stock: (sku, bodega, ubicación).
type BalanceKey struct {
	SKU       string
	Warehouse string
	Location  string
}

// String representación estable usada para mapas y locks.
func (k BalanceKey) String() string {
	return k.SKU + "|" + k.Warehouse + "|" + k.Location
}

// InventoryBalance saldo on-hand de una clave. Qty >= 0 en todo estado confirmado.
// Nunca se elimina: un saldo en cero es un estado final válido.
type InventoryBalance struct {
	SKU       string
	Warehouse string
	Location  string
	Qty       decimal.Decimal
	UpdatedAt time.Time
}

// Key devuelve la clave del saldo.
func (b InventoryBalance) Key() BalanceKey {
	return BalanceKey{SKU: b.SKU, Warehouse: b.Warehouse, Location: b.Location}
}

// InventoryRecord proyección visible del inventario por (sku, bodega, ubicación).
// OnHand viene de los saldos; Reserved pertenece al flujo de reservas y se preserva.
type InventoryRecord struct {
	SKU       string
	Warehouse string
	Location  string
	OnHand    decimal.Decimal
	Reserved  decimal.Decimal
	UpdatedAt time.Time
}

// MovementTotals acumulado de entradas y salidas de un SKU.
type MovementTotals struct {
	Inbound  decimal.Decimal
	Outbound decimal.Decimal
}

// IsZero indica si no hay nada que aplicar.
func (t MovementTotals) IsZero() bool {
	return t.Inbound.IsZero() && t.Outbound.IsZero()
}

// Add suma otro delta.
func (t MovementTotals) Add(o MovementTotals) MovementTotals {
	return MovementTotals{Inbound: t.Inbound.Add(o.Inbound), Outbound: t.Outbound.Add(o.Outbound)}
}

// WeeklyDemandPoint demanda de una semana. Entrada de solo lectura para el cálculo de reorden.
type WeeklyDemandPoint struct {
	Week     time.Time
	Quantity float64
	Promo    bool
}
