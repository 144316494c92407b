package services

import (
	"context"
	"errors"
	"time"

	"flower-backend/internal/apperr"
	"flower-backend/internal/metrics"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
	"flower-backend/internal/timeutil"
)

type SettlementService struct {
	SettlementRepo *repositories.SettlementRepository
	FarmerRepo     *repositories.FarmerRepository
	Audit          *AuditService
	Notifier       *NotificationService
}

func NewSettlementService(settlementRepo *repositories.SettlementRepository, farmerRepo *repositories.FarmerRepository, audit *AuditService, notifier *NotificationService) *SettlementService {
	return &SettlementService{
		SettlementRepo: settlementRepo,
		FarmerRepo:     farmerRepo,
		Audit:          audit,
		Notifier:       notifier,
	}
}

// Generate aggregates the farmer's unsettled entries over the period into a
// new DRAFT settlement.
func (s *SettlementService) Generate(ctx context.Context, req *models.GenerateSettlementRequest, userID int) (*models.Settlement, error) {
	farmer, err := s.FarmerRepo.Get(ctx, req.FarmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil || !farmer.IsActive {
		return nil, apperr.BadRequest("INVALID_FARMER", "farmer not found or inactive")
	}

	periodStart, err := timeutil.ParseInIST(timeutil.DateLayout, req.PeriodStart)
	if err != nil {
		return nil, apperr.BadRequest("VALIDATION", "period_start must be YYYY-MM-DD")
	}
	periodEnd, err := timeutil.ParseInIST(timeutil.DateLayout, req.PeriodEnd)
	if err != nil {
		return nil, apperr.BadRequest("VALIDATION", "period_end must be YYYY-MM-DD")
	}
	if periodEnd.Before(periodStart) {
		return nil, apperr.BadRequest("VALIDATION", "period_end must not precede period_start")
	}

	settlement, err := s.SettlementRepo.Generate(ctx, req.FarmerID, periodStart, periodEnd, req.Notes, userID)
	if err != nil {
		return nil, mapGenerateErr(err)
	}

	metrics.SettlementsGeneratedTotal.Inc()
	s.Audit.Record(ctx, userID, models.AuditCreate, "settlement", settlement.ID, nil, settlement)
	return settlement, nil
}

func (s *SettlementService) GetSettlement(ctx context.Context, id int) (*models.Settlement, error) {
	settlement, err := s.SettlementRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, apperr.NotFound("SETTLEMENT_NOT_FOUND", "settlement not found")
	}
	return settlement, nil
}

func (s *SettlementService) ListSettlements(ctx context.Context, farmerID int, status models.SettlementStatus, page, perPage int) ([]models.Settlement, int, error) {
	return s.SettlementRepo.List(ctx, farmerID, status, page, perPage)
}

func (s *SettlementService) Submit(ctx context.Context, id, userID int) (*models.Settlement, error) {
	settlement, err := s.SettlementRepo.Submit(ctx, id)
	if err != nil {
		return nil, s.mapSettlementErr(ctx, id, err)
	}

	s.Audit.Record(ctx, userID, models.AuditUpdate, "settlement", settlement.ID, nil, settlement)
	return settlement, nil
}

func (s *SettlementService) Approve(ctx context.Context, id, approverID int) (*models.Settlement, error) {
	settlement, err := s.SettlementRepo.Approve(ctx, id, approverID)
	if err != nil {
		return nil, s.mapSettlementErr(ctx, id, err)
	}

	s.Audit.Record(ctx, approverID, models.AuditApprove, "settlement", settlement.ID, nil, settlement)
	return settlement, nil
}

// Pay credits the farmer balance and notifies the farmer after the
// transaction has committed.
func (s *SettlementService) Pay(ctx context.Context, id, userID int) (*models.Settlement, error) {
	settlement, err := s.SettlementRepo.Pay(ctx, id)
	if err != nil {
		return nil, s.mapSettlementErr(ctx, id, err)
	}

	metrics.SettlementsPaidTotal.Inc()
	s.Audit.Record(ctx, userID, models.AuditPay, "settlement", settlement.ID, nil, settlement)
	s.Notifier.Dispatch(models.NotificationEvent{
		FarmerID:  settlement.FarmerID,
		Kind:      models.NotificationSettlementPaid,
		Amount:    settlement.NetPayable,
		Reference: settlement.SettlementNumber,
	})
	return settlement, nil
}

// DeleteDraft removes a DRAFT settlement; its advances go back to APPROVED.
func (s *SettlementService) DeleteDraft(ctx context.Context, id, userID int) error {
	settlement, err := s.GetSettlement(ctx, id)
	if err != nil {
		return err
	}
	if settlement.Status != models.SettlementDraft {
		return apperr.BadRequest("CANNOT_DELETE", "only DRAFT settlements can be deleted")
	}

	if err := s.SettlementRepo.SoftDeleteDraft(ctx, id); err != nil {
		return s.mapSettlementErr(ctx, id, err)
	}

	s.Audit.Record(ctx, userID, models.AuditDelete, "settlement", id, settlement, nil)
	return nil
}

func (s *SettlementService) ListForRegister(ctx context.Context, from, to time.Time) ([]models.Settlement, map[int]string, error) {
	return s.SettlementRepo.ListForRegister(ctx, from, to)
}

// mapGenerateErr translates the generator's sentinel errors onto the fixed
// wire codes. Both are client errors, not conflicts.
func mapGenerateErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrOverlappingPeriod):
		return apperr.BadRequest("OVERLAPPING_PERIOD", "an open settlement overlaps this period")
	case errors.Is(err, repositories.ErrNoEligibleEntries):
		return apperr.BadRequest("NO_ENTRIES", "no unsettled entries in the period")
	}
	return err
}

func (s *SettlementService) mapSettlementErr(ctx context.Context, id int, err error) error {
	if !errors.Is(err, repositories.ErrInvalidStatus) {
		return err
	}
	settlement, getErr := s.SettlementRepo.Get(ctx, id)
	if getErr == nil && settlement == nil {
		return apperr.NotFound("SETTLEMENT_NOT_FOUND", "settlement not found")
	}
	return apperr.BadRequest("INVALID_STATUS", "settlement is not in a valid status for this transition")
}
