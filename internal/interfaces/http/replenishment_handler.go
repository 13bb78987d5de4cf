package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// ReplenishmentHandler maneja punto de reorden y lista de reposición (protegido).
type ReplenishmentHandler struct {
	uc *inventory.ReplenishmentUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// CalculateReorderPoint godoc
// @Summary      Punto de reorden ad hoc
// @Description  Resume la demanda semanal enviada y calcula punto de reorden y cantidad recomendada.
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderPointRequest  true  "historial semanal y parámetros"
// @Success      200   {object}  dto.ReorderPointResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/reorder-point [post]
func (h *ReplenishmentHandler) CalculateReorderPoint(c *fiber.Ctx) error {
	var in dto.ReorderPointRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(h.uc.CalculateReorderPoint(in))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  SKUs con demanda cuya cantidad recomendada es mayor a cero, priorizados por cantidad.
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        warehouse  query  string  false  "Filtrar por bodega. Vacío = stock global."
// @Success      200  {object}  dto.ReplenishmentListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/replenishment/list [get]
func (h *ReplenishmentHandler) GetReplenishmentList(c *fiber.Ctx) error {
	warehouse := c.Query("warehouse")
	list, err := h.uc.GenerateReplenishmentList(c.Context(), warehouse)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReplenishmentListResponse{
		Warehouse:   warehouse,
		GeneratedAt: time.Now().UTC(),
		Items:       list,
	})
}

// GetReplenishmentReport godoc
// @Summary      Reporte PDF de reposición
// @Tags         replenishment
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse  query  string  false  "Filtrar por bodega"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/replenishment/report.pdf [get]
func (h *ReplenishmentHandler) GetReplenishmentReport(c *fiber.Ctx) error {
	pdf, err := h.uc.GenerateReport(c.Context(), c.Query("warehouse"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reposicion.pdf"`)
	return c.Send(pdf)
}
