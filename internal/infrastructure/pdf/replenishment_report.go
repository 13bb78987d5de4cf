// Package pdf genera el reporte de reposición en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + bodega      │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Media | σ | LT | ROP | Disp. | Pedir       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: SKUs a reponer / unidades totales                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReplenishmentReportGenerator implementa inventory.ReplenishmentReportGenerator usando Maroto v2.
type ReplenishmentReportGenerator struct {
	author string
}

// NewReplenishmentReportGenerator construye el generador.
func NewReplenishmentReportGenerator(author string) *ReplenishmentReportGenerator {
	return &ReplenishmentReportGenerator{author: author}
}

// GenerateReplenishmentPDF genera el PDF y devuelve sus bytes.
func (g *ReplenishmentReportGenerator) GenerateReplenishmentPDF(
	_ context.Context,
	generatedAt time.Time,
	warehouse string,
	items []dto.ReplenishmentSuggestionDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de reposición", true).
		WithAuthor(nonEmpty(g.author, "stock-ledger"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt, warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin SKUs por reponer", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}
	for _, r := range tableDetailRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time, warehouse string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE REPOSICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+nonEmpty(warehouse, "todas"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 3, align.Left),
		h("Media/sem", 1, align.Right),
		h("σ", 1, align.Right),
		h("LT (sem)", 1, align.Right),
		h("ROP", 1, align.Right),
		h("Disponible", 2, align.Right),
		h("Pedir", 2, align.Right),
	)
}

func tableDetailRows(items []dto.ReplenishmentSuggestionDTO) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			cell(strconv.Itoa(it.Priority), 1, align.Center),
			cell(it.SKU, 3, align.Left),
			cell(formatFloat(it.MeanWeeklyDemand), 1, align.Right),
			cell(formatFloat(it.StdWeeklyDemand), 1, align.Right),
			cell(formatFloat(it.LeadTimeWeeks), 1, align.Right),
			cell(strconv.FormatInt(it.ReorderPoint, 10), 1, align.Right),
			cell(formatFloat(it.AvailableStock), 2, align.Right),
			cell(strconv.FormatInt(it.RecommendedQty, 10), 2, align.Right),
		))
	}
	return result
}

func summaryRow(items []dto.ReplenishmentSuggestionDTO) core.Row {
	var units int64
	for _, it := range items {
		units += it.RecommendedQty
	}
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(
			text.New(fmt.Sprintf("SKUs a reponer: %d", len(items)), props.Text{
				Size: 9, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Unidades totales: %d", units), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 5,
			}),
		),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
