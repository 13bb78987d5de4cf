package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestPurchaseOrderLine_Receive(t *testing.T) {
	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	line := entity.PurchaseOrderLine{ID: "L1", SKU: "SKU-1", OrderedQty: decimal.NewFromInt(10)}

	tr := line.Receive(decimal.NewFromInt(4), at)
	assert.Equal(t, entity.LineTransition{From: entity.LineStatusOpen, To: entity.LineStatusPartiallyReceived}, tr)
	assert.Nil(t, line.ClosedAt)

	tr = line.Receive(decimal.NewFromInt(6), at)
	assert.Equal(t, entity.LineTransition{From: entity.LineStatusPartiallyReceived, To: entity.LineStatusClosed}, tr)
	require.NotNil(t, line.ClosedAt)
	assert.Equal(t, at, *line.ClosedAt)

	// recepciones extra sobre una línea cerrada no la reabren
	tr = line.Receive(decimal.NewFromInt(1), at.Add(time.Hour))
	assert.Equal(t, entity.LineTransition{From: entity.LineStatusClosed, To: entity.LineStatusClosed}, tr)
	assert.False(t, tr.Changed())
	assert.Equal(t, at, *line.ClosedAt)
	assert.True(t, line.ReceivedQty.Equal(decimal.NewFromInt(11)))
}

func TestPurchaseOrderLine_ReceiveCompletaDeUnaVez(t *testing.T) {
	line := entity.PurchaseOrderLine{ID: "L1", OrderedQty: decimal.NewFromInt(5), Status: entity.LineStatusOpen}

	tr := line.Receive(decimal.NewFromInt(5), time.Now())
	assert.Equal(t, entity.LineStatusOpen, tr.From)
	assert.Equal(t, entity.LineStatusClosed, tr.To)
}

func TestPurchaseOrderLine_ReceiveCeroNoMueveLaLinea(t *testing.T) {
	line := entity.PurchaseOrderLine{ID: "L1", OrderedQty: decimal.NewFromInt(5)}

	tr := line.Receive(decimal.Zero, time.Now())
	assert.Equal(t, entity.LineStatusOpen, tr.To)
	assert.False(t, tr.Changed())
}

func TestPurchaseReceiptResult_PrimeraRecepcionYCierre(t *testing.T) {
	first := entity.PurchaseReceiptResult{
		PreviousReceivedQty: decimal.Zero,
		Line:                entity.PurchaseOrderLine{ReceivedQty: decimal.NewFromInt(3)},
		Transition:          entity.LineTransition{From: entity.LineStatusOpen, To: entity.LineStatusPartiallyReceived},
	}
	assert.True(t, first.IsFirstReceipt())
	assert.False(t, first.ClosedLine())

	second := entity.PurchaseReceiptResult{
		PreviousReceivedQty: decimal.NewFromInt(3),
		Line:                entity.PurchaseOrderLine{ReceivedQty: decimal.NewFromInt(10)},
		Transition:          entity.LineTransition{From: entity.LineStatusPartiallyReceived, To: entity.LineStatusClosed},
	}
	assert.False(t, second.IsFirstReceipt())
	assert.True(t, second.ClosedLine())
}

func TestSalesOrderLine_Ship(t *testing.T) {
	line := entity.SalesOrderLine{ID: "L1", OrderedQty: decimal.NewFromInt(2)}

	assert.Equal(t, entity.LineStatusPartiallyShipped, line.Ship(decimal.NewFromInt(1)).To)
	assert.Equal(t, entity.LineStatusShipped, line.Ship(decimal.NewFromInt(1)).To)
}

func TestLeadTimeSample_Days(t *testing.T) {
	approved := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := entity.LeadTimeSample{ApprovedAt: approved, ReceivedAt: approved.Add(36 * time.Hour)}
	assert.InDelta(t, 1.5, s.Days(), 1e-9)
}
