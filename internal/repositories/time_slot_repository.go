package repositories

import (
	"context"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TimeSlotRepository struct {
	DB *pgxpool.Pool
}

func NewTimeSlotRepository(db *pgxpool.Pool) *TimeSlotRepository {
	return &TimeSlotRepository{DB: db}
}

func (r *TimeSlotRepository) Create(ctx context.Context, ts *models.TimeSlot) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO time_slots (name, start_time, end_time)
		 VALUES ($1, $2, $3)
		 RETURNING id, is_active, created_at`,
		ts.Name, ts.StartTime, ts.EndTime,
	).Scan(&ts.ID, &ts.IsActive, &ts.CreatedAt)
}

// ListActive returns active slots ordered by start time, the order the
// matcher depends on.
func (r *TimeSlotRepository) ListActive(ctx context.Context) ([]models.TimeSlot, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
		        is_active, created_at
		 FROM time_slots
		 WHERE is_active = TRUE
		 ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var ts models.TimeSlot
		if err := rows.Scan(&ts.ID, &ts.Name, &ts.StartTime, &ts.EndTime, &ts.IsActive, &ts.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}
	return slots, rows.Err()
}

func (r *TimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
		        is_active, created_at
		 FROM time_slots
		 ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var ts models.TimeSlot
		if err := rows.Scan(&ts.ID, &ts.Name, &ts.StartTime, &ts.EndTime, &ts.IsActive, &ts.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}
	return slots, rows.Err()
}
