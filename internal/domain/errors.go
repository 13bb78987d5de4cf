package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

// StockConflictError detalla un conflicto de stock: qué saldo y cuánto faltó.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type StockConflictError struct {
	SKU       string
	Warehouse string
	Location  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Shortage cantidad faltante (Requested - Available).
func (e *StockConflictError) Shortage() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("%s: sku=%s bodega=%s ubicación=%s solicitado=%s disponible=%s faltante=%s",
		ErrInsufficientStock.Error(), e.SKU, e.Warehouse, e.Location,
		e.Requested.String(), e.Available.String(), e.Shortage().String())
}

func (e *StockConflictError) Is(target error) bool {
	return target == ErrInsufficientStock
}
