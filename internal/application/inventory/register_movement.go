package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// FinalizeMovementFromRequest adapta el request HTTP al borrador de movimiento.
// userID viene del token, nunca del body.
func (uc *FinalizeMovementUseCase) FinalizeMovementFromRequest(ctx context.Context, userID string, in dto.MovementDraftRequest) (*dto.FinalizeMovementResponse, error) {
	draft := entity.MovementDraft{
		Type:          entity.MovementType(in.Type),
		SKU:           in.SKU,
		Qty:           in.Qty,
		FromWarehouse: in.FromWarehouse,
		FromLocation:  in.FromLocation,
		ToWarehouse:   in.ToWarehouse,
		ToLocation:    in.ToLocation,
		POID:          in.POID,
		POLineID:      in.POLineID,
		SOID:          in.SOID,
		SOLineID:      in.SOLineID,
		PartnerID:     in.PartnerID,
		RefNo:         in.RefNo,
		Memo:          in.Memo,
		UserID:        userID,
		OccurredAt:    in.OccurredAt,
	}
	res, err := uc.FinalizeMovementDraft(ctx, draft)
	if err != nil {
		return nil, err
	}
	out := &dto.FinalizeMovementResponse{
		Movement:  ToMovementResponse(res.Movement),
		Balances:  ToBalanceResponses(res.Balances),
		Inventory: ToInventoryRecordResponses(res.Inventory),
		Warnings:  res.Warnings,
	}
	return out, nil
}

// RecentMovements últimos movimientos del SKU, más nuevo primero.
func (uc *FinalizeMovementUseCase) RecentMovements(ctx context.Context, sku string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.journal.ListBySKU(ctx, sku, page.Limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(*m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Total: len(items)},
	}, nil
}

func ToMovementResponse(m entity.MovementRecord) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		Type:          string(m.Type),
		SKU:           m.SKU,
		Qty:           m.Qty,
		FromWarehouse: m.FromWarehouse,
		FromLocation:  m.FromLocation,
		ToWarehouse:   m.ToWarehouse,
		ToLocation:    m.ToLocation,
		POID:          m.POID,
		POLineID:      m.POLineID,
		SOID:          m.SOID,
		SOLineID:      m.SOLineID,
		PartnerID:     m.PartnerID,
		RefNo:         m.RefNo,
		Memo:          m.Memo,
		UserID:        m.UserID,
		OccurredAt:    m.OccurredAt,
		CreatedAt:     m.CreatedAt,
	}
}

func ToBalanceResponses(list []entity.InventoryBalance) []dto.BalanceResponse {
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BalanceResponse{
			SKU:       b.SKU,
			Warehouse: b.Warehouse,
			Location:  b.Location,
			Qty:       b.Qty,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return out
}

func ToInventoryRecordResponses(list []entity.InventoryRecord) []dto.InventoryRecordResponse {
	out := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.InventoryRecordResponse{
			SKU:       r.SKU,
			Warehouse: r.Warehouse,
			Location:  r.Location,
			OnHand:    r.OnHand,
			Reserved:  r.Reserved,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}
