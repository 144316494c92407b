package services

import (
	"context"
	"log"
	"time"

	"flower-backend/internal/metrics"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
	"flower-backend/internal/timeutil"
	"flower-backend/internal/whatsapp"
)

const (
	templateAdvanceApproved = "advance_approved"
	templateSettlementPaid  = "settlement_paid"
)

// NotificationService delivers WhatsApp notifications for ledger events.
// Dispatch is called only after the owning transaction has committed and
// never blocks the caller.
type NotificationService struct {
	Provider   whatsapp.Provider
	LogRepo    *repositories.NotificationLogRepository
	FarmerRepo *repositories.FarmerRepository
}

func NewNotificationService(provider whatsapp.Provider, logRepo *repositories.NotificationLogRepository, farmerRepo *repositories.FarmerRepository) *NotificationService {
	return &NotificationService{Provider: provider, LogRepo: logRepo, FarmerRepo: farmerRepo}
}

// Dispatch sends the event in the background. The passed context may belong
// to an HTTP request that ends before delivery, so a fresh one is used.
func (s *NotificationService) Dispatch(event models.NotificationEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		s.deliver(ctx, event)
	}()
}

func (s *NotificationService) deliver(ctx context.Context, event models.NotificationEvent) {
	farmer, err := s.FarmerRepo.Get(ctx, event.FarmerID)
	if err != nil || farmer == nil {
		log.Printf("[Notify] Farmer %d lookup failed, dropping %s event", event.FarmerID, event.Kind)
		return
	}

	entry := &models.NotificationLog{
		FarmerID:  event.FarmerID,
		Kind:      event.Kind,
		Amount:    event.Amount,
		Reference: event.Reference,
		Phone:     farmer.Phone,
		Status:    "SENT",
	}

	template := templateAdvanceApproved
	if event.Kind == models.NotificationSettlementPaid {
		template = templateSettlementPaid
	}

	err = s.Provider.SendTemplateMessage(farmer.Phone, template,
		[]string{farmer.Name, event.Amount.StringFixed(2), event.Reference})
	if err != nil {
		log.Printf("[Notify] WhatsApp delivery failed for farmer %d: %v", event.FarmerID, err)
		entry.Status = "FAILED"
		entry.Error = err.Error()
	} else {
		now := timeutil.Now()
		entry.SentAt = &now
	}
	metrics.NotificationsSentTotal.WithLabelValues(entry.Status).Inc()

	if err := s.LogRepo.Create(ctx, entry); err != nil {
		log.Printf("[Notify] Failed to log notification: %v", err)
	}
}

// History returns recent delivery attempts for a farmer, newest first.
func (s *NotificationService) History(ctx context.Context, farmerID, limit int) ([]models.NotificationLog, error) {
	return s.LogRepo.ListByFarmer(ctx, farmerID, limit)
}
