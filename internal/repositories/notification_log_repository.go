package repositories

import (
	"context"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationLogRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationLogRepository(db *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{DB: db}
}

func (r *NotificationLogRepository) Create(ctx context.Context, l *models.NotificationLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO notification_logs (farmer_id, kind, amount, reference, phone, status, error, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		l.FarmerID, l.Kind, l.Amount, l.Reference, l.Phone, l.Status, l.Error, l.SentAt,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *NotificationLogRepository) ListByFarmer(ctx context.Context, farmerID, limit int) ([]models.NotificationLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, farmer_id, kind, amount, reference, phone, status, error, sent_at, created_at
		 FROM notification_logs
		 WHERE farmer_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`, farmerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.NotificationLog
	for rows.Next() {
		var l models.NotificationLog
		if err := rows.Scan(&l.ID, &l.FarmerID, &l.Kind, &l.Amount, &l.Reference,
			&l.Phone, &l.Status, &l.Error, &l.SentAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
