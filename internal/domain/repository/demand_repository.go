package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// DemandRepository historial de demanda semanal (derivado externamente).
type DemandRepository interface {
	ListSKUs(ctx context.Context) ([]string, error)
	ListWeekly(ctx context.Context, sku string) ([]entity.WeeklyDemandPoint, error)
}
