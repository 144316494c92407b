package repositories

import (
	"context"
	"errors"
	"time"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MarketRateRepository struct {
	DB *pgxpool.Pool
}

func NewMarketRateRepository(db *pgxpool.Pool) *MarketRateRepository {
	return &MarketRateRepository{DB: db}
}

func (r *MarketRateRepository) Create(ctx context.Context, mr *models.MarketRate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO market_rates (flower_type_id, time_slot_id, rate_per_unit,
		                           commission_percent, effective_date, expiry_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, is_active, created_at`,
		mr.FlowerTypeID, mr.TimeSlotID, mr.RatePerUnit, mr.CommissionPercent,
		mr.EffectiveDate, mr.ExpiryDate,
	).Scan(&mr.ID, &mr.IsActive, &mr.CreatedAt)
}

// FindEffective returns the most recent active rate whose effective_date is
// on or before the given date for the (flower, slot) pair, or nil when none
// exists. Expiry dates are not consulted here; an expired rate still matches
// as long as a newer one has not been recorded.
func (r *MarketRateRepository) FindEffective(ctx context.Context, flowerTypeID, timeSlotID int, date time.Time) (*models.MarketRate, error) {
	var mr models.MarketRate
	err := r.DB.QueryRow(ctx,
		`SELECT id, flower_type_id, time_slot_id, rate_per_unit, commission_percent,
		        effective_date, expiry_date, is_active, created_at
		 FROM market_rates
		 WHERE flower_type_id = $1 AND time_slot_id = $2
		   AND is_active = TRUE AND effective_date <= $3
		 ORDER BY effective_date DESC, id DESC
		 LIMIT 1`,
		flowerTypeID, timeSlotID, date,
	).Scan(&mr.ID, &mr.FlowerTypeID, &mr.TimeSlotID, &mr.RatePerUnit, &mr.CommissionPercent,
		&mr.EffectiveDate, &mr.ExpiryDate, &mr.IsActive, &mr.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

func (r *MarketRateRepository) ListByFlowerType(ctx context.Context, flowerTypeID int) ([]models.MarketRate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, flower_type_id, time_slot_id, rate_per_unit, commission_percent,
		        effective_date, expiry_date, is_active, created_at
		 FROM market_rates
		 WHERE flower_type_id = $1
		 ORDER BY effective_date DESC, id DESC`, flowerTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.MarketRate
	for rows.Next() {
		var mr models.MarketRate
		if err := rows.Scan(&mr.ID, &mr.FlowerTypeID, &mr.TimeSlotID, &mr.RatePerUnit,
			&mr.CommissionPercent, &mr.EffectiveDate, &mr.ExpiryDate, &mr.IsActive, &mr.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, mr)
	}
	return rates, rows.Err()
}
