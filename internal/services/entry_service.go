package services

import (
	"context"
	"time"

	"flower-backend/internal/apperr"
	"flower-backend/internal/metrics"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
	"flower-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

type EntryService struct {
	EntryRepo      *repositories.DailyEntryRepository
	FarmerRepo     *repositories.FarmerRepository
	FlowerTypeRepo *repositories.FlowerTypeRepository
	RateService    *RateService
	Audit          *AuditService
}

func NewEntryService(entryRepo *repositories.DailyEntryRepository, farmerRepo *repositories.FarmerRepository, flowerTypeRepo *repositories.FlowerTypeRepository, rateService *RateService, audit *AuditService) *EntryService {
	return &EntryService{
		EntryRepo:      entryRepo,
		FarmerRepo:     farmerRepo,
		FlowerTypeRepo: flowerTypeRepo,
		RateService:    rateService,
		Audit:          audit,
	}
}

// buildEntry validates one create request and resolves slot, rate and
// amounts. Shared by the single and bulk creation paths.
func (s *EntryService) buildEntry(ctx context.Context, req *models.CreateEntryRequest, userID int) (*models.DailyEntry, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.BadRequest("VALIDATION", "quantity must be positive")
	}

	farmer, err := s.FarmerRepo.Get(ctx, req.FarmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil || !farmer.IsActive {
		return nil, apperr.BadRequest("INVALID_FARMER", "farmer not found or inactive")
	}

	flowerType, err := s.FlowerTypeRepo.Get(ctx, req.FlowerTypeID)
	if err != nil {
		return nil, err
	}
	if flowerType == nil || !flowerType.IsActive {
		return nil, apperr.BadRequest("VALIDATION", "flower type not found or inactive")
	}

	now := timeutil.Now()
	entryDate := timeutil.StartOfDay(now)
	if req.EntryDate != "" {
		entryDate, err = timeutil.ParseInIST(timeutil.DateLayout, req.EntryDate)
		if err != nil {
			return nil, apperr.BadRequest("VALIDATION", "entry_date must be YYYY-MM-DD")
		}
	}
	entryTime := now.Format("15:04:05")
	if req.EntryTime != "" {
		if _, err := time.Parse("15:04:05", req.EntryTime); err != nil {
			return nil, apperr.BadRequest("VALIDATION", "entry_time must be HH:MM:SS")
		}
		entryTime = req.EntryTime
	}

	slot, err := s.RateService.MatchTimeSlot(ctx, entryTime)
	if err != nil {
		return nil, err
	}

	rate, commissionPct, err := s.RateService.Resolve(ctx, req.FlowerTypeID, slot.ID, entryDate)
	if err != nil {
		return nil, err
	}

	total, commission, net := ComputeEntryAmounts(req.Quantity, rate, commissionPct)

	return &models.DailyEntry{
		FarmerID:         req.FarmerID,
		FlowerTypeID:     req.FlowerTypeID,
		TimeSlotID:       slot.ID,
		EntryDate:        entryDate,
		EntryTime:        entryTime,
		Quantity:         req.Quantity,
		RatePerUnit:      rate,
		CommissionRate:   commissionPct,
		TotalAmount:      total,
		CommissionAmount: commission,
		NetAmount:        net,
		Notes:            req.Notes,
		CreatedByUserID:  userID,
	}, nil
}

func (s *EntryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest, userID int) (*models.DailyEntry, error) {
	entry, err := s.buildEntry(ctx, req, userID)
	if err != nil {
		return nil, err
	}
	if err := s.EntryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	metrics.EntriesCreatedTotal.Inc()
	s.Audit.Record(ctx, userID, models.AuditCreate, "daily_entry", entry.ID, nil, entry)
	return entry, nil
}

// BulkCreateEntries validates each item independently and continues past
// per-item failures: a partial-success batch, unlike the all-or-nothing
// single endpoint.
func (s *EntryService) BulkCreateEntries(ctx context.Context, req *models.BulkCreateEntriesRequest, userID int) (*models.BulkCreateEntriesResult, error) {
	if len(req.Entries) == 0 {
		return nil, apperr.BadRequest("VALIDATION", "entries must not be empty")
	}

	result := &models.BulkCreateEntriesResult{
		CreatedIDs: []int{},
		Errors:     []models.BulkItemError{},
	}

	for i := range req.Entries {
		entry, err := s.buildEntry(ctx, &req.Entries[i], userID)
		if err == nil {
			err = s.EntryRepo.Create(ctx, entry)
		}
		if err != nil {
			result.Errors = append(result.Errors, models.BulkItemError{Index: i, Error: err.Error()})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, entry.ID)
		metrics.EntriesCreatedTotal.Inc()
		s.Audit.Record(ctx, userID, models.AuditCreate, "daily_entry", entry.ID, nil, entry)
	}

	return result, nil
}

func (s *EntryService) GetEntry(ctx context.Context, id int) (*models.DailyEntry, error) {
	entry, err := s.EntryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperr.NotFound("ENTRY_NOT_FOUND", "daily entry not found")
	}
	return entry, nil
}

func (s *EntryService) ListEntries(ctx context.Context, farmerID int, from, to *time.Time, page, perPage int) ([]models.DailyEntry, int, error) {
	return s.EntryRepo.List(ctx, farmerID, from, to, page, perPage)
}

// UpdateEntry edits quantity, time and notes. The amounts are re-derived
// from the rate recorded at creation; the rate is never re-resolved.
func (s *EntryService) UpdateEntry(ctx context.Context, id int, req *models.UpdateEntryRequest, userID int) (*models.DailyEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	settled, err := s.EntryRepo.IsSettled(ctx, id)
	if err != nil {
		return nil, err
	}
	if settled {
		return nil, apperr.BadRequest("INVALID_STATUS", "entry belongs to an approved settlement")
	}
	old := *entry

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.BadRequest("VALIDATION", "quantity must be positive")
	}
	if req.EntryTime != "" {
		if _, err := time.Parse("15:04:05", req.EntryTime); err != nil {
			return nil, apperr.BadRequest("VALIDATION", "entry_time must be HH:MM:SS")
		}
		entry.EntryTime = req.EntryTime
	}

	entry.Quantity = req.Quantity
	entry.Notes = req.Notes
	entry.TotalAmount, entry.CommissionAmount, entry.NetAmount =
		ComputeEntryAmounts(entry.Quantity, entry.RatePerUnit, entry.CommissionRate)

	if err := s.EntryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, userID, models.AuditUpdate, "daily_entry", entry.ID, &old, entry)
	return entry, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, id, userID int) error {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	if err := s.EntryRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.Audit.Record(ctx, userID, models.AuditDelete, "daily_entry", id, entry, nil)
	return nil
}
