package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo journal de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, type, sku, qty, from_warehouse, from_location, to_warehouse, to_location,
	po_id, po_line_id, so_id, so_line_id, partner_id, ref_no, memo, user_id, occurred_at, created_at`

// Append persiste un movimiento confirmado. Un ID repetido devuelve domain.ErrDuplicate.
func (r *MovementRepo) Append(ctx context.Context, m *entity.MovementRecord) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Type), m.SKU, m.Qty,
		m.FromWarehouse, m.FromLocation, m.ToWarehouse, m.ToLocation,
		m.POID, m.POLineID, m.SOID, m.SOLineID,
		m.PartnerID, m.RefNo, m.Memo, m.UserID,
		m.OccurredAt, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListBySKU movimientos del SKU, más nuevo primero.
func (r *MovementRepo) ListBySKU(ctx context.Context, sku string, limit int) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE sku = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, sku, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.MovementRecord, error) {
	var m entity.MovementRecord
	var typ string
	err := row.Scan(
		&m.ID, &typ, &m.SKU, &m.Qty,
		&m.FromWarehouse, &m.FromLocation, &m.ToWarehouse, &m.ToLocation,
		&m.POID, &m.POLineID, &m.SOID, &m.SOLineID,
		&m.PartnerID, &m.RefNo, &m.Memo, &m.UserID,
		&m.OccurredAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}
