package dto

import "time"

// WeeklyDemandDTO demanda de una semana.
type WeeklyDemandDTO struct {
	Week     *time.Time `json:"week,omitempty"`
	Quantity float64    `json:"quantity"`
	Promo    bool       `json:"promo,omitempty"`
}

// ReorderPointRequest body para POST /api/replenishment/reorder-point.
// Los campos en cero u omitidos toman la configuración del servicio; lead_time_weeks
// y service_level_z solo cuando se omiten (un lead time enviado <= 0 da ROP 0).
type ReorderPointRequest struct {
	History           []WeeklyDemandDTO `json:"history"`
	MinWeeks          int               `json:"min_weeks,omitempty"`
	MaxWeeks          int               `json:"max_weeks,omitempty"`
	ExcludePromoWeeks *bool             `json:"exclude_promo_weeks,omitempty"`
	LeadTimeWeeks     *float64          `json:"lead_time_weeks,omitempty"`
	ServiceLevelZ     *float64          `json:"service_level_z,omitempty"`
	AvailableStock    float64           `json:"available_stock"`
}

// ReorderPointResponse resumen de demanda, punto de reorden y cantidad sugerida.
type ReorderPointResponse struct {
	MeanWeeklyDemand float64 `json:"mean_weekly_demand"`
	StdWeeklyDemand  float64 `json:"std_weekly_demand"`
	SampleSize       int     `json:"sample_size"`
	TotalQuantity    float64 `json:"total_quantity"`
	LeadTimeWeeks    float64 `json:"lead_time_weeks"`
	ServiceLevelZ    float64 `json:"service_level_z"`
	ReorderPoint     int64   `json:"reorder_point"`
	RecommendedQty   int64   `json:"recommended_qty"`
}

// Origen del lead time usado en una sugerencia.
const (
	LeadTimeSourceSamples = "samples"
	LeadTimeSourceDefault = "default"
)

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	SKU              string  `json:"sku"`
	MeanWeeklyDemand float64 `json:"mean_weekly_demand"`
	StdWeeklyDemand  float64 `json:"std_weekly_demand"`
	SampleSize       int     `json:"sample_size"`
	LeadTimeWeeks    float64 `json:"lead_time_weeks"`
	LeadTimeSource   string  `json:"lead_time_source"` // samples | default
	ReorderPoint     int64   `json:"reorder_point"`
	AvailableStock   float64 `json:"available_stock"` // Σ max(0, on_hand - reserved)
	RecommendedQty   int64   `json:"recommended_qty"`
	Priority         int     `json:"priority"` // 1 = más urgente
}

// ReplenishmentListResponse respuesta de GET /api/replenishment/list.
type ReplenishmentListResponse struct {
	Warehouse   string                       `json:"warehouse,omitempty"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Items       []ReplenishmentSuggestionDTO `json:"items"`
}
