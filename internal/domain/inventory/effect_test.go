package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func TestEffectOf(t *testing.T) {
	five := decimal.NewFromInt(5)
	a := entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG", Location: "A-01"}
	b := entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG", Location: "B-02"}

	tests := []struct {
		name    string
		m       entity.MovementRecord
		want    inventory.Effect
		wantErr bool
	}{
		{
			name: "receipt",
			m:    entity.MovementRecord{Type: entity.MovementTypeReceipt, SKU: "SKU-1", Qty: five, ToWarehouse: "BOG", ToLocation: "A-01"},
			want: inventory.Receipt{To: a, Qty: five},
		},
		{
			name: "return",
			m:    entity.MovementRecord{Type: entity.MovementTypeReturn, SKU: "SKU-1", Qty: five, ToWarehouse: "BOG", ToLocation: "A-01"},
			want: inventory.Return{To: a, Qty: five},
		},
		{
			name: "issue",
			m:    entity.MovementRecord{Type: entity.MovementTypeIssue, SKU: "SKU-1", Qty: five, FromWarehouse: "BOG", FromLocation: "A-01"},
			want: inventory.Issue{From: a, Qty: five},
		},
		{
			name: "transfer",
			m: entity.MovementRecord{Type: entity.MovementTypeTransfer, SKU: "SKU-1", Qty: five,
				FromWarehouse: "BOG", FromLocation: "A-01", ToWarehouse: "BOG", ToLocation: "B-02"},
			want: inventory.Transfer{From: a, To: b, Qty: five},
		},
		{
			name: "adjust",
			m:    entity.MovementRecord{Type: entity.MovementTypeAdjust, SKU: "SKU-1", Qty: five, ToWarehouse: "BOG", ToLocation: "A-01"},
			want: inventory.Adjust{To: a, Qty: five},
		},
		{
			name: "cantidad cero permitida",
			m:    entity.MovementRecord{Type: entity.MovementTypeReceipt, SKU: "SKU-1", Qty: decimal.Zero, ToWarehouse: "BOG", ToLocation: "A-01"},
			want: inventory.Receipt{To: a, Qty: decimal.Zero},
		},
		{name: "sin sku", m: entity.MovementRecord{Type: entity.MovementTypeReceipt, Qty: five, ToWarehouse: "BOG", ToLocation: "A-01"}, wantErr: true},
		{name: "qty negativa", m: entity.MovementRecord{Type: entity.MovementTypeReceipt, SKU: "SKU-1", Qty: five.Neg(), ToWarehouse: "BOG", ToLocation: "A-01"}, wantErr: true},
		{name: "tipo desconocido", m: entity.MovementRecord{Type: "SCRAP", SKU: "SKU-1", Qty: five}, wantErr: true},
		{name: "issue sin origen", m: entity.MovementRecord{Type: entity.MovementTypeIssue, SKU: "SKU-1", Qty: five, ToWarehouse: "BOG", ToLocation: "A-01"}, wantErr: true},
		{name: "receipt sin ubicación", m: entity.MovementRecord{Type: entity.MovementTypeReceipt, SKU: "SKU-1", Qty: five, ToWarehouse: "BOG"}, wantErr: true},
		{
			name: "transfer a la misma clave",
			m: entity.MovementRecord{Type: entity.MovementTypeTransfer, SKU: "SKU-1", Qty: five,
				FromWarehouse: "BOG", FromLocation: "A-01", ToWarehouse: "BOG", ToLocation: "A-01"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.EffectOf(tt.m)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.m.Type, got.Type())
		})
	}
}

func TestKeys_OrigenPrimero(t *testing.T) {
	from := entity.BalanceKey{SKU: "S", Warehouse: "W1", Location: "L1"}
	to := entity.BalanceKey{SKU: "S", Warehouse: "W2", Location: "L2"}

	assert.Equal(t, []entity.BalanceKey{from, to}, inventory.Keys(inventory.Transfer{From: from, To: to}))
	assert.Equal(t, []entity.BalanceKey{to}, inventory.Keys(inventory.Adjust{To: to}))
	assert.Nil(t, inventory.Keys(nil))
}

func TestTotalsDelta(t *testing.T) {
	q := decimal.NewFromInt(3)
	k := entity.BalanceKey{SKU: "S", Warehouse: "W", Location: "L"}
	k2 := entity.BalanceKey{SKU: "S", Warehouse: "W", Location: "L2"}

	tests := []struct {
		name         string
		e            inventory.Effect
		inbound, out int64
	}{
		{"receipt", inventory.Receipt{To: k, Qty: q}, 3, 0},
		{"return", inventory.Return{To: k, Qty: q}, 3, 0},
		{"issue", inventory.Issue{From: k, Qty: q}, 0, 3},
		{"transfer", inventory.Transfer{From: k, To: k2, Qty: q}, 3, 3},
		{"adjust", inventory.Adjust{To: k, Qty: q}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := inventory.TotalsDelta(tt.e)
			assert.True(t, d.Inbound.Equal(decimal.NewFromInt(tt.inbound)), "inbound=%s", d.Inbound)
			assert.True(t, d.Outbound.Equal(decimal.NewFromInt(tt.out)), "outbound=%s", d.Outbound)
		})
	}
	assert.True(t, inventory.TotalsDelta(inventory.Adjust{To: k, Qty: q}).IsZero())
}
