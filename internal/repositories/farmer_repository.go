package repositories

import (
	"context"
	"errors"
	"fmt"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const farmerColumns = `id, code, name, village, phone, current_balance, total_advances,
	total_settlements, is_active, deleted_at, created_at, updated_at`

type FarmerRepository struct {
	DB *pgxpool.Pool
}

func NewFarmerRepository(db *pgxpool.Pool) *FarmerRepository {
	return &FarmerRepository{DB: db}
}

func scanFarmer(row pgx.Row) (*models.Farmer, error) {
	var f models.Farmer
	err := row.Scan(
		&f.ID, &f.Code, &f.Name, &f.Village, &f.Phone,
		&f.CurrentBalance, &f.TotalAdvances, &f.TotalSettlements,
		&f.IsActive, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FarmerRepository) Create(ctx context.Context, f *models.Farmer) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO farmers (code, name, village, phone)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, current_balance, total_advances, total_settlements,
		           is_active, created_at, updated_at`,
		f.Code, f.Name, f.Village, f.Phone,
	).Scan(&f.ID, &f.CurrentBalance, &f.TotalAdvances, &f.TotalSettlements,
		&f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create farmer: %w", err)
	}
	return nil
}

func (r *FarmerRepository) Get(ctx context.Context, id int) (*models.Farmer, error) {
	f, err := scanFarmer(r.DB.QueryRow(ctx,
		`SELECT `+farmerColumns+` FROM farmers WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

func (r *FarmerRepository) GetByPhone(ctx context.Context, phone string) (*models.Farmer, error) {
	f, err := scanFarmer(r.DB.QueryRow(ctx,
		`SELECT `+farmerColumns+` FROM farmers WHERE phone = $1 AND deleted_at IS NULL`, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

func (r *FarmerRepository) List(ctx context.Context, page, perPage int) ([]models.Farmer, int, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM farmers WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+farmerColumns+` FROM farmers
		 WHERE deleted_at IS NULL
		 ORDER BY name
		 LIMIT $1 OFFSET $2`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var farmers []models.Farmer
	for rows.Next() {
		f, err := scanFarmer(rows)
		if err != nil {
			return nil, 0, err
		}
		farmers = append(farmers, *f)
	}
	return farmers, total, rows.Err()
}

func (r *FarmerRepository) Update(ctx context.Context, f *models.Farmer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE farmers SET name = $1, village = $2, phone = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $5 AND deleted_at IS NULL`,
		f.Name, f.Village, f.Phone, f.IsActive, f.ID)
	if err != nil {
		return fmt.Errorf("failed to update farmer: %w", err)
	}
	return nil
}

// SoftDelete marks the farmer deleted. Callers must have verified there are
// no open entries first.
func (r *FarmerRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE farmers SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

// CountOpenEntries counts non-deleted entries not yet locked into an
// approved or paid settlement, used to guard farmer deletion.
func (r *FarmerRepository) CountOpenEntries(ctx context.Context, farmerID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM daily_entries de
		 WHERE de.farmer_id = $1 AND de.deleted_at IS NULL
		   AND NOT EXISTS (
		       SELECT 1 FROM settlement_items si
		       JOIN settlements s ON s.id = si.settlement_id
		       WHERE si.daily_entry_id = de.id
		         AND s.deleted_at IS NULL
		         AND s.status IN ('APPROVED', 'PAID')
		   )`, farmerID).Scan(&count)
	return count, err
}

// GetLedger returns the balance snapshot plus open workflow counts.
func (r *FarmerRepository) GetLedger(ctx context.Context, id int) (*models.FarmerLedger, error) {
	farmer, err := r.Get(ctx, id)
	if err != nil || farmer == nil {
		return nil, err
	}

	ledger := &models.FarmerLedger{
		Farmer:           farmer,
		CurrentBalance:   farmer.CurrentBalance,
		TotalAdvances:    farmer.TotalAdvances,
		TotalSettlements: farmer.TotalSettlements,
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM cash_advances
		 WHERE farmer_id = $1 AND status = 'PENDING' AND deleted_at IS NULL`, id,
	).Scan(&ledger.PendingAdvances)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM settlements
		 WHERE farmer_id = $1 AND status IN ('DRAFT', 'PENDING_APPROVAL', 'APPROVED')
		   AND deleted_at IS NULL`, id,
	).Scan(&ledger.OpenSettlements)
	if err != nil {
		return nil, err
	}

	return ledger, nil
}
