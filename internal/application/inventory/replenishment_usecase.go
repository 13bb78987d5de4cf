package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ReplenishmentConfig parámetros de cálculo de reposición.
type ReplenishmentConfig struct {
	Window               domaininv.DemandWindow
	ServiceLevelZ        float64
	DefaultLeadTimeWeeks float64
}

// ReplenishmentUseCase genera la lista de reposición combinando demanda semanal,
// lead time observado y stock disponible de la proyección.
type ReplenishmentUseCase struct {
	demand    repository.DemandRepository
	inventory repository.InventoryRepository
	leadTimes repository.LeadTimeRepository
	report    ReplenishmentReportGenerator
	cfg       ReplenishmentConfig
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición. leadTimes y report pueden ser nil.
func NewReplenishmentUseCase(
	demand repository.DemandRepository,
	inventory repository.InventoryRepository,
	leadTimes repository.LeadTimeRepository,
	report ReplenishmentReportGenerator,
	cfg ReplenishmentConfig,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		demand:    demand,
		inventory: inventory,
		leadTimes: leadTimes,
		report:    report,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GenerateReplenishmentList devuelve los SKUs con cantidad recomendada > 0, ordenados por
// cantidad descendente (luego SKU) y con prioridad 1..n. warehouse vacío = stock global.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, warehouse string) ([]dto.ReplenishmentSuggestionDTO, error) {
	skus, err := uc.demand.ListSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list demand skus: %w", err)
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(skus))
	for _, sku := range skus {
		s, err := uc.Suggest(ctx, sku, warehouse)
		if err != nil {
			return nil, err
		}
		if s.RecommendedQty <= 0 {
			continue
		}
		suggestions = append(suggestions, *s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.RecommendedQty != b.RecommendedQty {
			return a.RecommendedQty > b.RecommendedQty
		}
		return a.SKU < b.SKU
	})
	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// Suggest calcula la sugerencia de un SKU aunque la cantidad recomendada sea cero.
func (uc *ReplenishmentUseCase) Suggest(ctx context.Context, sku, warehouse string) (*dto.ReplenishmentSuggestionDTO, error) {
	history, err := uc.demand.ListWeekly(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("list weekly demand %s: %w", sku, err)
	}
	summary := domaininv.SummarizeWeeklyDemand(history, uc.cfg.Window)

	lead, source, err := uc.leadTimeWeeks(ctx, sku)
	if err != nil {
		return nil, err
	}
	available, err := uc.availableStock(ctx, sku, warehouse)
	if err != nil {
		return nil, err
	}

	rop := domaininv.CalculateReorderPointWeekly(domaininv.ReorderPointInput{
		MeanWeeklyDemand: summary.Mean,
		StdWeeklyDemand:  summary.StdDev,
		LeadTimeWeeks:    lead,
		ServiceLevelZ:    uc.cfg.ServiceLevelZ,
	})
	return &dto.ReplenishmentSuggestionDTO{
		SKU:              sku,
		MeanWeeklyDemand: summary.Mean,
		StdWeeklyDemand:  summary.StdDev,
		SampleSize:       summary.SampleSize,
		LeadTimeWeeks:    lead,
		LeadTimeSource:   source,
		ReorderPoint:     rop,
		AvailableStock:   available,
		RecommendedQty:   domaininv.CalculateRecommendedOrderQuantity(float64(rop), available),
	}, nil
}

// CalculateReorderPoint cálculo ad hoc sobre un historial enviado por el cliente.
func (uc *ReplenishmentUseCase) CalculateReorderPoint(in dto.ReorderPointRequest) dto.ReorderPointResponse {
	window := uc.cfg.Window
	if in.MinWeeks > 0 {
		window.MinWeeks = in.MinWeeks
	}
	if in.MaxWeeks > 0 {
		window.MaxWeeks = in.MaxWeeks
	}
	if in.ExcludePromoWeeks != nil {
		window.ExcludePromoWeeks = *in.ExcludePromoWeeks
	}
	lead := uc.cfg.DefaultLeadTimeWeeks
	if in.LeadTimeWeeks != nil {
		lead = *in.LeadTimeWeeks
	}
	z := uc.cfg.ServiceLevelZ
	if in.ServiceLevelZ != nil {
		z = *in.ServiceLevelZ
	}

	history := make([]entity.WeeklyDemandPoint, 0, len(in.History))
	for i, h := range in.History {
		p := entity.WeeklyDemandPoint{Quantity: h.Quantity, Promo: h.Promo}
		if h.Week != nil {
			p.Week = *h.Week
		} else {
			// sin fecha: el orden del arreglo es el orden cronológico
			p.Week = time.Unix(0, 0).UTC().AddDate(0, 0, 7*i)
		}
		history = append(history, p)
	}

	summary := domaininv.SummarizeWeeklyDemand(history, window)
	rop := domaininv.CalculateReorderPointWeekly(domaininv.ReorderPointInput{
		MeanWeeklyDemand: summary.Mean,
		StdWeeklyDemand:  summary.StdDev,
		LeadTimeWeeks:    lead,
		ServiceLevelZ:    z,
	})
	return dto.ReorderPointResponse{
		MeanWeeklyDemand: summary.Mean,
		StdWeeklyDemand:  summary.StdDev,
		SampleSize:       summary.SampleSize,
		TotalQuantity:    summary.TotalQuantity,
		LeadTimeWeeks:    lead,
		ServiceLevelZ:    z,
		ReorderPoint:     rop,
		RecommendedQty:   domaininv.CalculateRecommendedOrderQuantity(float64(rop), in.AvailableStock),
	}
}

// GenerateReport arma la lista y la renderiza como PDF.
func (uc *ReplenishmentUseCase) GenerateReport(ctx context.Context, warehouse string) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	items, err := uc.GenerateReplenishmentList(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateReplenishmentPDF(ctx, uc.now(), warehouse, items)
}

func (uc *ReplenishmentUseCase) leadTimeWeeks(ctx context.Context, sku string) (float64, string, error) {
	if uc.leadTimes != nil {
		days, ok, err := uc.leadTimes.AverageFinalLeadTimeDays(ctx, sku)
		if err != nil {
			return 0, "", fmt.Errorf("lead time %s: %w", sku, err)
		}
		if ok && days > 0 {
			return days / 7, dto.LeadTimeSourceSamples, nil
		}
	}
	return uc.cfg.DefaultLeadTimeWeeks, dto.LeadTimeSourceDefault, nil
}

func (uc *ReplenishmentUseCase) availableStock(ctx context.Context, sku, warehouse string) (float64, error) {
	records, err := uc.inventory.ListBySKU(ctx, sku)
	if err != nil {
		return 0, fmt.Errorf("list inventory %s: %w", sku, err)
	}
	var total float64
	for _, r := range records {
		if warehouse != "" && !strings.EqualFold(r.Warehouse, warehouse) {
			continue
		}
		free, _ := r.OnHand.Sub(r.Reserved).Float64()
		if free > 0 {
			total += free
		}
	}
	return total, nil
}
