package inventory

import (
	"math"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Ventana por defecto de semanas para resumir la demanda.
const (
	DefaultMinWeeks = 4
	DefaultMaxWeeks = 8
)

// DemandWindow opciones de la ventana de demanda.
// MinWeeks/MaxWeeks <= 0 toman los valores por defecto; MaxWeeks < MinWeeks se eleva a MinWeeks.
type DemandWindow struct {
	MinWeeks          int
	MaxWeeks          int
	ExcludePromoWeeks bool
}

// DemandSummary resumen estadístico de la demanda semanal.
type DemandSummary struct {
	Mean          float64
	StdDev        float64 // muestral (n-1); 0 si n <= 1
	SampleSize    int
	TotalQuantity float64
}

// ReorderPointInput entradas del punto de reorden semanal.
type ReorderPointInput struct {
	MeanWeeklyDemand float64
	StdWeeklyDemand  float64
	LeadTimeWeeks    float64
	ServiceLevelZ    float64
}

// SummarizeWeeklyDemand toma las semanas elegibles más recientes y calcula media y desviación.
// Tamaño de ventana = min(max(MinWeeks, disponibles), MaxWeeks).
func SummarizeWeeklyDemand(history []entity.WeeklyDemandPoint, w DemandWindow) DemandSummary {
	minWeeks, maxWeeks := w.MinWeeks, w.MaxWeeks
	if minWeeks <= 0 {
		minWeeks = DefaultMinWeeks
	}
	if maxWeeks <= 0 {
		maxWeeks = DefaultMaxWeeks
	}
	if maxWeeks < minWeeks {
		maxWeeks = minWeeks
	}

	eligible := make([]entity.WeeklyDemandPoint, 0, len(history))
	for _, p := range history {
		if w.ExcludePromoWeeks && p.Promo {
			continue
		}
		eligible = append(eligible, p)
	}
	if len(eligible) == 0 {
		return DemandSummary{}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Week.Before(eligible[j].Week)
	})

	window := max(minWeeks, len(eligible))
	window = min(window, maxWeeks)
	window = min(window, len(eligible))
	recent := eligible[len(eligible)-window:]

	values := make([]float64, len(recent))
	var total float64
	for i, p := range recent {
		values[i] = nonNegative(p.Quantity)
		total += values[i]
	}
	n := len(values)
	mean := total / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}
	return DemandSummary{Mean: mean, StdDev: std, SampleSize: n, TotalQuantity: total}
}

// CalculateReorderPointWeekly round(max(0, media·L + z·σ·√L)); 0 si L <= 0.
// Entradas negativas o no finitas se llevan a 0; z puede ser negativo pero no infinito.
func CalculateReorderPointWeekly(in ReorderPointInput) int64 {
	mean := nonNegative(in.MeanWeeklyDemand)
	std := nonNegative(in.StdWeeklyDemand)
	lead := nonNegative(in.LeadTimeWeeks)
	z := in.ServiceLevelZ
	if math.IsNaN(z) || math.IsInf(z, 0) {
		z = 0
	}
	if lead <= 0 {
		return 0
	}
	rop := mean*lead + z*std*math.Sqrt(lead)
	return int64(math.Round(math.Max(0, rop)))
}

// CalculateRecommendedOrderQuantity max(0, round(puntoReorden - disponible)).
func CalculateRecommendedOrderQuantity(reorderPoint, availableStock float64) int64 {
	rop := nonNegative(reorderPoint)
	available := nonNegative(availableStock)
	return int64(math.Max(0, math.Round(rop-available)))
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
