package services

import (
	"context"
	"encoding/json"
	"log"

	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
)

// AuditService records who changed what. It is injected into every service
// that mutates state; an audit failure is logged but never fails the
// business operation.
type AuditService struct {
	Repo *repositories.AuditLogRepository
}

func NewAuditService(repo *repositories.AuditLogRepository) *AuditService {
	return &AuditService{Repo: repo}
}

// Record writes one audit row. old and new are marshalled to JSON; nil
// means the side is absent (create has no old, delete has no new).
func (s *AuditService) Record(ctx context.Context, userID int, action models.AuditAction, entityType string, entityID int, old, new interface{}) {
	l := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if old != nil {
		if b, err := json.Marshal(old); err == nil {
			l.OldValues = b
		}
	}
	if new != nil {
		if b, err := json.Marshal(new); err == nil {
			l.NewValues = b
		}
	}

	if err := s.Repo.Create(ctx, l); err != nil {
		log.Printf("[Audit] Failed to record %s %s/%d: %v", action, entityType, entityID, err)
	}
}

// History returns the audit trail for one entity, newest first.
func (s *AuditService) History(ctx context.Context, entityType string, entityID, limit int) ([]models.AuditLog, error) {
	return s.Repo.ListByEntity(ctx, entityType, entityID, limit)
}
