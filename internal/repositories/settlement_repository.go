package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flower-backend/internal/models"
	"flower-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrOverlappingPeriod means an open (draft or pending-approval)
	// settlement for the farmer collides with the requested period.
	ErrOverlappingPeriod = errors.New("settlement period overlaps an open settlement")
	// ErrNoEligibleEntries means no unsettled entries exist in the period.
	ErrNoEligibleEntries = errors.New("no eligible entries in period")
	// ErrInvalidStatus means the requested transition is not legal from the
	// settlement's current status.
	ErrInvalidStatus = errors.New("invalid settlement status for transition")
)

// Advisory lock classes. Class 1 serializes settlement generation per
// farmer; class 2 serializes settlement numbering per calendar month.
const (
	lockClassFarmerSettlement = 1
	lockClassSettlementNumber = 2
)

// eligibleEntryCond selects entries that may still be settled: not deleted,
// in period, and not already part of an APPROVED or PAID settlement. Entries
// in drafts stay eligible; drafts are disposable.
const eligibleEntryCond = `
	de.farmer_id = $1 AND de.deleted_at IS NULL
	AND de.entry_date BETWEEN $2 AND $3
	AND NOT EXISTS (
	    SELECT 1 FROM settlement_items si
	    JOIN settlements s ON s.id = si.settlement_id
	    WHERE si.daily_entry_id = de.id
	      AND s.deleted_at IS NULL
	      AND s.status IN ('APPROVED', 'PAID')
	)`

const settlementColumns = `id, farmer_id, settlement_number, settlement_date, period_start,
	period_end, total_entries, total_quantity, gross_amount, total_commission, total_fees,
	total_advances, net_payable, status, approved_by_user_id, approved_at, paid_at, notes,
	deleted_at, created_by_user_id, created_at, updated_at`

type SettlementRepository struct {
	DB *pgxpool.Pool
}

func NewSettlementRepository(db *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{DB: db}
}

func scanSettlement(row pgx.Row) (*models.Settlement, error) {
	var s models.Settlement
	err := row.Scan(
		&s.ID, &s.FarmerID, &s.SettlementNumber, &s.SettlementDate, &s.PeriodStart,
		&s.PeriodEnd, &s.TotalEntries, &s.TotalQuantity, &s.GrossAmount, &s.TotalCommission,
		&s.TotalFees, &s.TotalAdvances, &s.NetPayable, &s.Status, &s.ApprovedByUserID,
		&s.ApprovedAt, &s.PaidAt, &s.Notes, &s.DeletedAt, &s.CreatedByUserID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Generate aggregates a farmer's unsettled entries over the period into a
// DRAFT settlement with per-entry snapshot items, consuming the approved
// advances dated in the period. The whole sequence runs in one transaction
// under a per-farmer advisory lock, so two concurrent runs for the same
// farmer cannot both aggregate the same entries.
func (r *SettlementRepository) Generate(ctx context.Context, farmerID int, periodStart, periodEnd time.Time, notes string, userID int) (*models.Settlement, error) {
	// Repeatable read pins one snapshot for the whole transaction. The
	// aggregate SELECT and the item INSERT..SELECT evaluate the eligibility
	// condition twice; under read committed an entry committed between them
	// would be snapshotted without being counted in the stored totals.
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, $2)`, lockClassFarmerSettlement, farmerID); err != nil {
		return nil, fmt.Errorf("failed to take farmer lock: %w", err)
	}

	// Overlap check against open settlements only; approved/paid periods are
	// guarded by the per-entry exclusion instead.
	var overlaps bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM settlements
		     WHERE farmer_id = $1 AND deleted_at IS NULL
		       AND status IN ('DRAFT', 'PENDING_APPROVAL')
		       AND period_start <= $3 AND period_end >= $2
		 )`, farmerID, periodStart, periodEnd).Scan(&overlaps)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrOverlappingPeriod
	}

	var s models.Settlement
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(de.quantity), 0), COALESCE(SUM(de.total_amount), 0),
		        COALESCE(SUM(de.commission_amount), 0), COALESCE(SUM(de.net_amount), 0)
		 FROM daily_entries de
		 WHERE `+eligibleEntryCond,
		farmerID, periodStart, periodEnd,
	).Scan(&s.TotalEntries, &s.TotalQuantity, &s.GrossAmount, &s.TotalCommission, &s.NetPayable)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries: %w", err)
	}
	if s.TotalEntries == 0 {
		return nil, ErrNoEligibleEntries
	}

	advances, err := NewCashAdvanceRepository(r.DB).ListApprovedInPeriod(ctx, tx, farmerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	for _, a := range advances {
		s.TotalAdvances = s.TotalAdvances.Add(a.Amount)
	}
	// May go negative; the farmer can end a period owing the market.
	s.NetPayable = s.NetPayable.Sub(s.TotalAdvances)

	number, err := r.nextNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.FarmerID = farmerID
	s.SettlementNumber = number
	s.SettlementDate = timeutil.StartOfDay(timeutil.Now())
	s.PeriodStart = periodStart
	s.PeriodEnd = periodEnd
	s.Status = models.SettlementDraft
	s.Notes = notes
	s.CreatedByUserID = userID

	err = tx.QueryRow(ctx,
		`INSERT INTO settlements (farmer_id, settlement_number, settlement_date, period_start,
		        period_end, total_entries, total_quantity, gross_amount, total_commission,
		        total_advances, net_payable, status, notes, created_by_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, total_fees, created_at, updated_at`,
		s.FarmerID, s.SettlementNumber, s.SettlementDate, s.PeriodStart, s.PeriodEnd,
		s.TotalEntries, s.TotalQuantity, s.GrossAmount, s.TotalCommission,
		s.TotalAdvances, s.NetPayable, s.Status, s.Notes, s.CreatedByUserID,
	).Scan(&s.ID, &s.TotalFees, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert settlement: %w", err)
	}

	// Snapshot every aggregated entry so later entry edits cannot change
	// what this settlement pays out.
	_, err = tx.Exec(ctx,
		`INSERT INTO settlement_items (settlement_id, daily_entry_id, entry_date,
		        flower_type_name, quantity, rate_per_unit, total_amount,
		        commission_amount, net_amount)
		 SELECT $4, de.id, de.entry_date, COALESCE(ft.name, ''), de.quantity,
		        de.rate_per_unit, de.total_amount, de.commission_amount, de.net_amount
		 FROM daily_entries de
		 LEFT JOIN flower_types ft ON ft.id = de.flower_type_id
		 WHERE `+eligibleEntryCond,
		farmerID, periodStart, periodEnd, s.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot settlement items: %w", err)
	}

	// Tie the consumed advances to this settlement so they can never be
	// deducted from a second one.
	for _, a := range advances {
		_, err = tx.Exec(ctx,
			`UPDATE cash_advances SET status = 'SETTLED', settlement_id = $1, updated_at = NOW()
			 WHERE id = $2`, s.ID, a.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to mark advance settled: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

// nextNumber issues SET-YYYYMM-NNNN, serialized by a per-month advisory
// lock inside the caller's transaction. A UNIQUE constraint on
// settlement_number backs this up.
func (r *SettlementRepository) nextNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	now := timeutil.Now()
	month := now.Format("200601")
	monthKey := now.Year()*100 + int(now.Month())

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, $2)`, lockClassSettlementNumber, monthKey); err != nil {
		return "", fmt.Errorf("failed to take numbering lock: %w", err)
	}

	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM settlements WHERE settlement_number LIKE $1`,
		"SET-"+month+"-%").Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SET-%s-%04d", month, count+1), nil
}

func (r *SettlementRepository) Get(ctx context.Context, id int) (*models.Settlement, error) {
	s, err := scanSettlement(r.DB.QueryRow(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// GetWithItems loads the settlement and its snapshot items.
func (r *SettlementRepository) GetWithItems(ctx context.Context, id int) (*models.Settlement, error) {
	s, err := r.Get(ctx, id)
	if err != nil || s == nil {
		return s, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, settlement_id, daily_entry_id, entry_date, flower_type_name,
		        quantity, rate_per_unit, total_amount, commission_amount, net_amount, created_at
		 FROM settlement_items
		 WHERE settlement_id = $1
		 ORDER BY entry_date, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.SettlementItem
		if err := rows.Scan(&it.ID, &it.SettlementID, &it.DailyEntryID, &it.EntryDate,
			&it.FlowerTypeName, &it.Quantity, &it.RatePerUnit, &it.TotalAmount,
			&it.CommissionAmount, &it.NetAmount, &it.CreatedAt); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

func (r *SettlementRepository) List(ctx context.Context, farmerID int, status models.SettlementStatus, page, perPage int) ([]models.Settlement, int, error) {
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
		"SELECT COUNT(*) FROM settlements "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT "+settlementColumns+" FROM settlements %s ORDER BY settlement_date DESC, id DESC LIMIT $%d OFFSET $%d",
		where, argNum, argNum+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, 0, err
		}
		settlements = append(settlements, *s)
	}
	return settlements, total, rows.Err()
}

// Submit moves DRAFT to PENDING_APPROVAL.
func (r *SettlementRepository) Submit(ctx context.Context, id int) (*models.Settlement, error) {
	s, err := scanSettlement(r.DB.QueryRow(ctx,
		`UPDATE settlements SET status = 'PENDING_APPROVAL', updated_at = NOW()
		 WHERE id = $1 AND status = 'DRAFT' AND deleted_at IS NULL
		 RETURNING `+settlementColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidStatus
	}
	return s, err
}

// Approve is legal from DRAFT or PENDING_APPROVAL. No balance effect.
func (r *SettlementRepository) Approve(ctx context.Context, id, approverID int) (*models.Settlement, error) {
	s, err := scanSettlement(r.DB.QueryRow(ctx,
		`UPDATE settlements
		 SET status = 'APPROVED', approved_by_user_id = $1, approved_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND status IN ('DRAFT', 'PENDING_APPROVAL') AND deleted_at IS NULL
		 RETURNING `+settlementColumns, approverID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidStatus
	}
	return s, err
}

// Pay flips an APPROVED settlement to PAID and credits net_payable to the
// farmer in one transaction. This is the only place settlement money reaches
// the farmer balance.
func (r *SettlementRepository) Pay(ctx context.Context, id int) (*models.Settlement, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	s, err := scanSettlement(tx.QueryRow(ctx,
		`UPDATE settlements SET status = 'PAID', paid_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND status = 'APPROVED' AND deleted_at IS NULL
		 RETURNING `+settlementColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidStatus
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark settlement paid: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE farmers
		 SET current_balance = current_balance + $1,
		     total_settlements = total_settlements + $1,
		     updated_at = NOW()
		 WHERE id = $2`, s.NetPayable, s.FarmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit farmer balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// SoftDeleteDraft removes a DRAFT settlement and releases its advances back
// to APPROVED so a later run can consume them again.
func (r *SettlementRepository) SoftDeleteDraft(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE settlements SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND status = 'DRAFT' AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidStatus
	}

	_, err = tx.Exec(ctx,
		`UPDATE cash_advances
		 SET status = 'APPROVED', settlement_id = NULL, updated_at = NOW()
		 WHERE settlement_id = $1 AND status = 'SETTLED'`, id)
	if err != nil {
		return fmt.Errorf("failed to release advances: %w", err)
	}

	return tx.Commit(ctx)
}

// ListForRegister returns settlements in a date range with farmer details
// for the Excel register export.
func (r *SettlementRepository) ListForRegister(ctx context.Context, from, to time.Time) ([]models.Settlement, map[int]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.id, s.farmer_id, s.settlement_number, s.settlement_date, s.period_start,
		        s.period_end, s.total_entries, s.total_quantity, s.gross_amount,
		        s.total_commission, s.total_fees, s.total_advances, s.net_payable, s.status,
		        s.approved_by_user_id, s.approved_at, s.paid_at, s.notes, s.deleted_at,
		        s.created_by_user_id, s.created_at, s.updated_at, f.name
		 FROM settlements s
		 JOIN farmers f ON f.id = s.farmer_id
		 WHERE s.deleted_at IS NULL AND s.settlement_date BETWEEN $1 AND $2
		 ORDER BY s.settlement_date, s.id`, from, to)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var settlements []models.Settlement
	names := make(map[int]string)
	for rows.Next() {
		var s models.Settlement
		var farmerName string
		err := rows.Scan(
			&s.ID, &s.FarmerID, &s.SettlementNumber, &s.SettlementDate, &s.PeriodStart,
			&s.PeriodEnd, &s.TotalEntries, &s.TotalQuantity, &s.GrossAmount, &s.TotalCommission,
			&s.TotalFees, &s.TotalAdvances, &s.NetPayable, &s.Status, &s.ApprovedByUserID,
			&s.ApprovedAt, &s.PaidAt, &s.Notes, &s.DeletedAt, &s.CreatedByUserID,
			&s.CreatedAt, &s.UpdatedAt, &farmerName,
		)
		if err != nil {
			return nil, nil, err
		}
		settlements = append(settlements, s)
		names[s.FarmerID] = farmerName
	}
	return settlements, names, rows.Err()
}
