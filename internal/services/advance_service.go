package services

import (
	"context"
	"errors"

	"flower-backend/internal/apperr"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
	"flower-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

type AdvanceService struct {
	AdvanceRepo *repositories.CashAdvanceRepository
	FarmerRepo  *repositories.FarmerRepository
	Audit       *AuditService
	Notifier    *NotificationService
}

func NewAdvanceService(advanceRepo *repositories.CashAdvanceRepository, farmerRepo *repositories.FarmerRepository, audit *AuditService, notifier *NotificationService) *AdvanceService {
	return &AdvanceService{
		AdvanceRepo: advanceRepo,
		FarmerRepo:  farmerRepo,
		Audit:       audit,
		Notifier:    notifier,
	}
}

func (s *AdvanceService) CreateAdvance(ctx context.Context, req *models.CreateAdvanceRequest, userID int) (*models.CashAdvance, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.BadRequest("VALIDATION", "amount must be positive")
	}

	farmer, err := s.FarmerRepo.Get(ctx, req.FarmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil || !farmer.IsActive {
		return nil, apperr.BadRequest("INVALID_FARMER", "farmer not found or inactive")
	}

	advanceDate := timeutil.StartOfDay(timeutil.Now())
	if req.AdvanceDate != "" {
		advanceDate, err = timeutil.ParseInIST(timeutil.DateLayout, req.AdvanceDate)
		if err != nil {
			return nil, apperr.BadRequest("VALIDATION", "advance_date must be YYYY-MM-DD")
		}
	}

	advance := &models.CashAdvance{
		FarmerID:        req.FarmerID,
		Amount:          req.Amount,
		Reason:          req.Reason,
		AdvanceDate:     advanceDate,
		Notes:           req.Notes,
		CreatedByUserID: userID,
	}
	if err := s.AdvanceRepo.Create(ctx, advance); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, userID, models.AuditCreate, "cash_advance", advance.ID, nil, advance)
	return advance, nil
}

func (s *AdvanceService) GetAdvance(ctx context.Context, id int) (*models.CashAdvance, error) {
	advance, err := s.AdvanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if advance == nil {
		return nil, apperr.NotFound("ADVANCE_NOT_FOUND", "cash advance not found")
	}
	return advance, nil
}

func (s *AdvanceService) ListAdvances(ctx context.Context, farmerID int, status models.AdvanceStatus, page, perPage int) ([]models.CashAdvance, int, error) {
	return s.AdvanceRepo.List(ctx, farmerID, status, page, perPage)
}

// ApproveAdvance debits the farmer balance and notifies the farmer once the
// transaction has committed.
func (s *AdvanceService) ApproveAdvance(ctx context.Context, id, approverID int) (*models.CashAdvance, error) {
	advance, err := s.AdvanceRepo.Approve(ctx, id, approverID)
	if err != nil {
		return nil, s.mapAdvanceErr(ctx, id, err)
	}

	s.Audit.Record(ctx, approverID, models.AuditApprove, "cash_advance", advance.ID, nil, advance)
	s.Notifier.Dispatch(models.NotificationEvent{
		FarmerID:  advance.FarmerID,
		Kind:      models.NotificationAdvanceApproved,
		Amount:    advance.Amount,
		Reference: advance.Reason,
	})
	return advance, nil
}

func (s *AdvanceService) RejectAdvance(ctx context.Context, id, approverID int) (*models.CashAdvance, error) {
	advance, err := s.AdvanceRepo.Reject(ctx, id, approverID)
	if err != nil {
		return nil, s.mapAdvanceErr(ctx, id, err)
	}

	s.Audit.Record(ctx, approverID, models.AuditReject, "cash_advance", advance.ID, nil, advance)
	return advance, nil
}

func (s *AdvanceService) UpdateAdvance(ctx context.Context, id int, req *models.UpdateAdvanceRequest, userID int) (*models.CashAdvance, error) {
	old, err := s.GetAdvance(ctx, id)
	if err != nil {
		return nil, err
	}

	advance, err := s.AdvanceRepo.UpdateNotes(ctx, id, req.Notes)
	if err != nil {
		return nil, s.mapAdvanceErr(ctx, id, err)
	}

	s.Audit.Record(ctx, userID, models.AuditUpdate, "cash_advance", advance.ID, old, advance)
	return advance, nil
}

func (s *AdvanceService) DeleteAdvance(ctx context.Context, id, userID int) error {
	advance, err := s.GetAdvance(ctx, id)
	if err != nil {
		return err
	}

	if err := s.AdvanceRepo.SoftDelete(ctx, id); err != nil {
		return s.mapAdvanceErr(ctx, id, err)
	}

	s.Audit.Record(ctx, userID, models.AuditDelete, "cash_advance", id, advance, nil)
	return nil
}

// mapAdvanceErr distinguishes "gone" from "wrong state" for ErrNotPending,
// which the repository returns for both.
func (s *AdvanceService) mapAdvanceErr(ctx context.Context, id int, err error) error {
	if !errors.Is(err, repositories.ErrNotPending) {
		return err
	}
	advance, getErr := s.AdvanceRepo.Get(ctx, id)
	if getErr == nil && advance == nil {
		return apperr.NotFound("ADVANCE_NOT_FOUND", "cash advance not found")
	}
	return apperr.BadRequest("INVALID_STATUS", "advance is not in PENDING status")
}
