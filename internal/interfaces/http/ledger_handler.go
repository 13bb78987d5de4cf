package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// LedgerHandler maneja movimientos, saldos y proyección de inventario (protegido).
type LedgerHandler struct {
	uc *inventory.FinalizeMovementUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *inventory.FinalizeMovementUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// FinalizeMovement godoc
// @Summary      Confirmar movimiento de inventario
// @Description  RECEIPT/RETURN suman en destino, ISSUE resta del origen, TRANSFER mueve entre ubicaciones,
//
//	ADJUST fija el saldo destino en qty (no es un delta).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementDraftRequest  true  "type, sku, qty, from_*/to_* según el tipo"
// @Success      201   {object}  dto.FinalizeMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockConflictResponse
// @Router       /api/inventory/movements [post]
func (h *LedgerHandler) FinalizeMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.FinalizeMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		var conflict *domain.StockConflictError
		switch {
		case errors.As(err, &conflict):
			return c.Status(fiber.StatusConflict).JSON(dto.StockConflictResponse{
				Code:      "INSUFFICIENT_STOCK",
				Message:   "stock insuficiente",
				SKU:       conflict.SKU,
				Warehouse: conflict.Warehouse,
				Location:  conflict.Location,
				Requested: conflict.Requested,
				Available: conflict.Available,
				Shortage:  conflict.Shortage(),
			})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalances godoc
// @Summary      Saldos por SKU/bodega/ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  query  string  false  "Filtrar por SKU"
// @Success      200  {object}  dto.BalanceSnapshotResponse
// @Router       /api/inventory/balances [get]
func (h *LedgerHandler) GetBalances(c *fiber.Ctx) error {
	snapshot := h.uc.GetInventoryBalancesSnapshot()
	if sku := strings.TrimSpace(c.Query("sku")); sku != "" {
		filtered := snapshot[:0]
		for _, b := range snapshot {
			if b.SKU == sku {
				filtered = append(filtered, b)
			}
		}
		snapshot = filtered
	}
	items := inventory.ToBalanceResponses(snapshot)
	return c.JSON(dto.BalanceSnapshotResponse{Items: items, Total: len(items)})
}

// GetSKUInventory godoc
// @Summary      Proyección de inventario de un SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {array}   dto.InventoryRecordResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/skus/{sku} [get]
func (h *LedgerHandler) GetSKUInventory(c *fiber.Ctx) error {
	records, err := h.uc.InventoryBySKU(c.Context(), c.Params("sku"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(inventory.ToInventoryRecordResponses(records))
}

// GetSKUTotals godoc
// @Summary      Acumulados de entradas/salidas de un SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.MovementTotalsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/skus/{sku}/totals [get]
func (h *LedgerHandler) GetSKUTotals(c *fiber.Ctx) error {
	sku := c.Params("sku")
	totals, err := h.uc.MovementTotals(c.Context(), sku)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acumulados no disponibles"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MovementTotalsResponse{SKU: sku, Inbound: totals.Inbound, Outbound: totals.Outbound})
}

// ListSKUMovements godoc
// @Summary      Movimientos recientes de un SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku    path   string  true   "SKU"
// @Param        limit  query  int     false  "Máximo de movimientos (default 50)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/skus/{sku}/movements [get]
func (h *LedgerHandler) ListSKUMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.RecentMovements(c.Context(), c.Params("sku"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ResetState godoc
// @Summary      Reiniciar todos los saldos (solo admin)
// @Tags         inventory
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/reset [post]
func (h *LedgerHandler) ResetState(c *fiber.Ctx) error {
	h.uc.ResetState()
	return c.SendStatus(fiber.StatusNoContent)
}
