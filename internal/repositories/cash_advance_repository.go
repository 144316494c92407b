package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotPending is returned when a transition requires a PENDING advance and
// the row has already moved on (approved, rejected, settled, or deleted).
var ErrNotPending = errors.New("advance is not pending")

const advanceColumns = `id, farmer_id, amount, reason, advance_date, status,
	approved_by_user_id, approved_at, settlement_id, notes, deleted_at,
	created_by_user_id, created_at, updated_at`

type CashAdvanceRepository struct {
	DB *pgxpool.Pool
}

func NewCashAdvanceRepository(db *pgxpool.Pool) *CashAdvanceRepository {
	return &CashAdvanceRepository{DB: db}
}

func scanAdvance(row pgx.Row) (*models.CashAdvance, error) {
	var a models.CashAdvance
	err := row.Scan(
		&a.ID, &a.FarmerID, &a.Amount, &a.Reason, &a.AdvanceDate, &a.Status,
		&a.ApprovedByUserID, &a.ApprovedAt, &a.SettlementID, &a.Notes, &a.DeletedAt,
		&a.CreatedByUserID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *CashAdvanceRepository) Create(ctx context.Context, a *models.CashAdvance) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO cash_advances (farmer_id, amount, reason, advance_date, notes, created_by_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at, updated_at`,
		a.FarmerID, a.Amount, a.Reason, a.AdvanceDate, a.Notes, a.CreatedByUserID,
	).Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cash advance: %w", err)
	}
	return nil
}

func (r *CashAdvanceRepository) Get(ctx context.Context, id int) (*models.CashAdvance, error) {
	a, err := scanAdvance(r.DB.QueryRow(ctx,
		`SELECT `+advanceColumns+` FROM cash_advances
		 WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *CashAdvanceRepository) List(ctx context.Context, farmerID int, status models.AdvanceStatus, page, perPage int) ([]models.CashAdvance, int, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}

	where := "WHERE deleted_at IS NULL"
	args := []interface{}{}
	argNum := 1

	if farmerID > 0 {
		where += fmt.Sprintf(" AND farmer_id = $%d", argNum)
		args = append(args, farmerID)
		argNum++
	}
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, status)
		argNum++
	}

	var total int
	if err := r.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM cash_advances "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT "+advanceColumns+" FROM cash_advances %s ORDER BY advance_date DESC, id DESC LIMIT $%d OFFSET $%d",
		where, argNum, argNum+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var advances []models.CashAdvance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, 0, err
		}
		advances = append(advances, *a)
	}
	return advances, total, rows.Err()
}

// Approve flips a PENDING advance to APPROVED and debits the farmer balance
// in one transaction. The status guard and the balance mutation commit
// together or not at all.
func (r *CashAdvanceRepository) Approve(ctx context.Context, id, approverID int) (*models.CashAdvance, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	a, err := scanAdvance(tx.QueryRow(ctx,
		`UPDATE cash_advances
		 SET status = 'APPROVED', approved_by_user_id = $1, approved_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND status = 'PENDING' AND deleted_at IS NULL
		 RETURNING `+advanceColumns, approverID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("failed to approve advance: %w", err)
	}

	// Debit immediately: the farmer owes this amount before any settlement.
	_, err = tx.Exec(ctx,
		`UPDATE farmers
		 SET total_advances = total_advances + $1,
		     current_balance = current_balance - $1,
		     updated_at = NOW()
		 WHERE id = $2`, a.Amount, a.FarmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit farmer balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Reject flips a PENDING advance to REJECTED. No balance effect.
func (r *CashAdvanceRepository) Reject(ctx context.Context, id, approverID int) (*models.CashAdvance, error) {
	a, err := scanAdvance(r.DB.QueryRow(ctx,
		`UPDATE cash_advances
		 SET status = 'REJECTED', approved_by_user_id = $1, approved_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND status = 'PENDING' AND deleted_at IS NULL
		 RETURNING `+advanceColumns, approverID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reject advance: %w", err)
	}
	return a, nil
}

// UpdateNotes edits notes on a PENDING advance only.
func (r *CashAdvanceRepository) UpdateNotes(ctx context.Context, id int, notes string) (*models.CashAdvance, error) {
	a, err := scanAdvance(r.DB.QueryRow(ctx,
		`UPDATE cash_advances SET notes = $1, updated_at = NOW()
		 WHERE id = $2 AND status = 'PENDING' AND deleted_at IS NULL
		 RETURNING `+advanceColumns, notes, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotPending
	}
	return a, err
}

// SoftDelete removes a PENDING advance only.
func (r *CashAdvanceRepository) SoftDelete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE cash_advances SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND status = 'PENDING' AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotPending
	}
	return nil
}

// ListApprovedInPeriod returns advances consumable by a settlement run:
// APPROVED, not yet tied to a settlement, dated inside the period.
func (r *CashAdvanceRepository) ListApprovedInPeriod(ctx context.Context, tx pgx.Tx, farmerID int, start, end time.Time) ([]models.CashAdvance, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+advanceColumns+` FROM cash_advances
		 WHERE farmer_id = $1 AND status = 'APPROVED' AND settlement_id IS NULL
		   AND advance_date BETWEEN $2 AND $3 AND deleted_at IS NULL
		 ORDER BY advance_date, id`, farmerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []models.CashAdvance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, err
		}
		advances = append(advances, *a)
	}
	return advances, rows.Err()
}
