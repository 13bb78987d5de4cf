package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDraftRequest body para POST /api/inventory/movements.
type MovementDraftRequest struct {
	Type          string          `json:"type"`
	SKU           string          `json:"sku"`
	Qty           decimal.Decimal `json:"qty"`
	FromWarehouse string          `json:"from_warehouse,omitempty"`
	FromLocation  string          `json:"from_location,omitempty"`
	ToWarehouse   string          `json:"to_warehouse,omitempty"`
	ToLocation    string          `json:"to_location,omitempty"`
	POID          string          `json:"po_id,omitempty"`
	POLineID      string          `json:"po_line_id,omitempty"`
	SOID          string          `json:"so_id,omitempty"`
	SOLineID      string          `json:"so_line_id,omitempty"`
	PartnerID     string          `json:"partner_id,omitempty"`
	RefNo         string          `json:"ref_no,omitempty"`
	Memo          string          `json:"memo,omitempty"`
	OccurredAt    *time.Time      `json:"occurred_at,omitempty"`
}

// MovementResponse movimiento confirmado en el libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	SKU           string          `json:"sku"`
	Qty           decimal.Decimal `json:"qty"`
	FromWarehouse string          `json:"from_warehouse,omitempty"`
	FromLocation  string          `json:"from_location,omitempty"`
	ToWarehouse   string          `json:"to_warehouse,omitempty"`
	ToLocation    string          `json:"to_location,omitempty"`
	POID          string          `json:"po_id,omitempty"`
	POLineID      string          `json:"po_line_id,omitempty"`
	SOID          string          `json:"so_id,omitempty"`
	SOLineID      string          `json:"so_line_id,omitempty"`
	PartnerID     string          `json:"partner_id,omitempty"`
	RefNo         string          `json:"ref_no,omitempty"`
	Memo          string          `json:"memo,omitempty"`
	UserID        string          `json:"user_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BalanceResponse saldo por (sku, bodega, ubicación).
type BalanceResponse struct {
	SKU       string          `json:"sku"`
	Warehouse string          `json:"warehouse"`
	Location  string          `json:"location"`
	Qty       decimal.Decimal `json:"qty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryRecordResponse registro proyectado de inventario.
type InventoryRecordResponse struct {
	SKU       string          `json:"sku"`
	Warehouse string          `json:"warehouse"`
	Location  string          `json:"location"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Reserved  decimal.Decimal `json:"reserved"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FinalizeMovementResponse respuesta de POST /api/inventory/movements.
type FinalizeMovementResponse struct {
	Movement  MovementResponse          `json:"movement"`
	Balances  []BalanceResponse         `json:"balances"`
	Inventory []InventoryRecordResponse `json:"inventory"`
	Warnings  []string                  `json:"warnings,omitempty"`
}

// BalanceSnapshotResponse respuesta de GET /api/inventory/balances.
type BalanceSnapshotResponse struct {
	Items []BalanceResponse `json:"items"`
	Total int               `json:"total"`
}

// MovementListResponse movimientos recientes de un SKU (más nuevo primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementTotalsResponse acumulados de entradas/salidas de un SKU.
type MovementTotalsResponse struct {
	SKU      string          `json:"sku"`
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
}

// StockConflictResponse cuerpo 409 cuando el origen no alcanza.
type StockConflictResponse struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	SKU       string          `json:"sku"`
	Warehouse string          `json:"warehouse"`
	Location  string          `json:"location"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	Shortage  decimal.Decimal `json:"shortage"`
}
