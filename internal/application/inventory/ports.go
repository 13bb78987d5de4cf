package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// LedgerDeps dependencias del motor de movimientos. Store, Inventory y Movements
// son obligatorios; los colaboradores de conciliación pueden ser nil.
type LedgerDeps struct {
	Store          repository.BalanceStore
	Inventory      repository.InventoryRepository
	Movements      repository.MovementRepository
	PurchaseOrders repository.PurchaseOrderRepository
	SalesOrders    repository.SalesOrderRepository
	LeadTimes      repository.LeadTimeRepository
	Totals         repository.MovementTotalsRepository
	Log            *logger.Logger
}

// ReplenishmentReportGenerator genera la representación PDF de la lista de reposición.
type ReplenishmentReportGenerator interface {
	GenerateReplenishmentPDF(ctx context.Context, generatedAt time.Time, warehouse string, items []dto.ReplenishmentSuggestionDTO) ([]byte, error)
}
