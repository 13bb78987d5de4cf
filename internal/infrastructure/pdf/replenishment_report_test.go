package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
)

func TestGenerateReplenishmentPDF(t *testing.T) {
	g := pdf.NewReplenishmentReportGenerator("test")
	items := []dto.ReplenishmentSuggestionDTO{
		{SKU: "SKU-A", MeanWeeklyDemand: 25, StdWeeklyDemand: 5, LeadTimeWeeks: 2, ReorderPoint: 62, AvailableStock: 10, RecommendedQty: 52, Priority: 1},
		{SKU: "SKU-B", MeanWeeklyDemand: 3, LeadTimeWeeks: 2, ReorderPoint: 6, RecommendedQty: 6, Priority: 2},
	}

	out, err := g.GenerateReplenishmentPDF(context.Background(), time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), "BOG", items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateReplenishmentPDF_SinItems(t *testing.T) {
	g := pdf.NewReplenishmentReportGenerator("")
	out, err := g.GenerateReplenishmentPDF(context.Background(), time.Now(), "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
