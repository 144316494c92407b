package repositories

import (
	"context"
	"fmt"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, l *models.AuditLog) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO audit_logs (user_id, action, entity_type, entity_id, old_values, new_values)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		l.UserID, l.Action, l.EntityType, l.EntityID, l.OldValues, l.NewValues,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, action, entity_type, entity_id, old_values, new_values, created_at
		 FROM audit_logs
		 WHERE entity_type = $1 AND entity_id = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3`, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID,
			&l.OldValues, &l.NewValues, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
