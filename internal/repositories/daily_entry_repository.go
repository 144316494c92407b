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

const dailyEntryColumns = `id, farmer_id, flower_type_id, time_slot_id, entry_date,
	to_char(entry_time, 'HH24:MI:SS'), quantity, rate_per_unit, commission_rate,
	total_amount, commission_amount, net_amount, notes, deleted_at,
	created_by_user_id, created_at, updated_at`

type DailyEntryRepository struct {
	DB *pgxpool.Pool
}

func NewDailyEntryRepository(db *pgxpool.Pool) *DailyEntryRepository {
	return &DailyEntryRepository{DB: db}
}

func scanDailyEntry(row pgx.Row) (*models.DailyEntry, error) {
	var e models.DailyEntry
	err := row.Scan(
		&e.ID, &e.FarmerID, &e.FlowerTypeID, &e.TimeSlotID, &e.EntryDate,
		&e.EntryTime, &e.Quantity, &e.RatePerUnit, &e.CommissionRate,
		&e.TotalAmount, &e.CommissionAmount, &e.NetAmount, &e.Notes, &e.DeletedAt,
		&e.CreatedByUserID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *DailyEntryRepository) Create(ctx context.Context, e *models.DailyEntry) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO daily_entries (farmer_id, flower_type_id, time_slot_id, entry_date,
		        entry_time, quantity, rate_per_unit, commission_rate,
		        total_amount, commission_amount, net_amount, notes, created_by_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		e.FarmerID, e.FlowerTypeID, e.TimeSlotID, e.EntryDate,
		e.EntryTime, e.Quantity, e.RatePerUnit, e.CommissionRate,
		e.TotalAmount, e.CommissionAmount, e.NetAmount, e.Notes, e.CreatedByUserID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create daily entry: %w", err)
	}
	return nil
}

func (r *DailyEntryRepository) Get(ctx context.Context, id int) (*models.DailyEntry, error) {
	e, err := scanDailyEntry(r.DB.QueryRow(ctx,
		`SELECT `+dailyEntryColumns+` FROM daily_entries
		 WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// Update rewrites the editable fields plus the re-derived amounts. The rate
// columns are deliberately untouched.
func (r *DailyEntryRepository) Update(ctx context.Context, e *models.DailyEntry) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE daily_entries
		 SET quantity = $1, entry_time = $2, notes = $3,
		     total_amount = $4, commission_amount = $5, net_amount = $6,
		     updated_at = NOW()
		 WHERE id = $7 AND deleted_at IS NULL`,
		e.Quantity, e.EntryTime, e.Notes,
		e.TotalAmount, e.CommissionAmount, e.NetAmount, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update daily entry: %w", err)
	}
	return nil
}

func (r *DailyEntryRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE daily_entries SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

// IsSettled reports whether the entry is locked into an approved or paid
// settlement.
func (r *DailyEntryRepository) IsSettled(ctx context.Context, id int) (bool, error) {
	var settled bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM settlement_items si
		     JOIN settlements s ON s.id = si.settlement_id
		     WHERE si.daily_entry_id = $1
		       AND s.deleted_at IS NULL
		       AND s.status IN ('APPROVED', 'PAID')
		 )`, id).Scan(&settled)
	return settled, err
}

func (r *DailyEntryRepository) List(ctx context.Context, farmerID int, from, to *time.Time, page, perPage int) ([]models.DailyEntry, int, error) {
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
	if from != nil {
		where += fmt.Sprintf(" AND entry_date >= $%d", argNum)
		args = append(args, *from)
		argNum++
	}
	if to != nil {
		where += fmt.Sprintf(" AND entry_date <= $%d", argNum)
		args = append(args, *to)
		argNum++
	}

	var total int
	if err := r.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM daily_entries "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT "+dailyEntryColumns+" FROM daily_entries %s ORDER BY entry_date DESC, id DESC LIMIT $%d OFFSET $%d",
		where, argNum, argNum+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.DailyEntry
	for rows.Next() {
		e, err := scanDailyEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, total, rows.Err()
}
