package services

import (
	"context"
	"log"
	"time"

	"flower-backend/internal/apperr"
	"flower-backend/internal/cache"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// Fallback applied when no market rate row matches. Entry recording must
// never block on missing rate data; staff correct the rate later.
var (
	fallbackRate       = decimal.NewFromInt(100)
	fallbackCommission = decimal.NewFromInt(5)
)

type RateService struct {
	RateRepo *repositories.MarketRateRepository
	SlotRepo *repositories.TimeSlotRepository
	Cache    *cache.Cache
}

func NewRateService(rateRepo *repositories.MarketRateRepository, slotRepo *repositories.TimeSlotRepository, c *cache.Cache) *RateService {
	return &RateService{RateRepo: rateRepo, SlotRepo: slotRepo, Cache: c}
}

// Resolve returns the rate and commission percent for a (flower, slot, date)
// triple: newest active rate effective on or before the date, first match
// wins, fallback when none.
func (s *RateService) Resolve(ctx context.Context, flowerTypeID, timeSlotID int, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if rate, commission, ok := s.Cache.GetRate(ctx, flowerTypeID, timeSlotID, date); ok {
		return rate, commission, nil
	}

	mr, err := s.RateRepo.FindEffective(ctx, flowerTypeID, timeSlotID, date)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if mr == nil {
		log.Printf("[Rates] No rate for flower=%d slot=%d on %s, using fallback",
			flowerTypeID, timeSlotID, date.Format("2006-01-02"))
		return fallbackRate, fallbackCommission, nil
	}

	s.Cache.SetRate(ctx, flowerTypeID, timeSlotID, date, mr.RatePerUnit, mr.CommissionPercent)
	return mr.RatePerUnit, mr.CommissionPercent, nil
}

// MatchTimeSlot maps a wall-clock entry time ("HH:MM:SS") to a slot: first
// active slot containing the time, else the earliest-starting active slot.
func (s *RateService) MatchTimeSlot(ctx context.Context, entryTime string) (*models.TimeSlot, error) {
	slots, err := s.SlotRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, apperr.BadRequest("NO_TIME_SLOT", "no active time slots configured")
	}
	return matchTimeSlot(slots, entryTime), nil
}

// matchTimeSlot assumes slots are ordered by start time and non-empty.
// Fixed-width HH:MM:SS strings compare correctly lexicographically.
func matchTimeSlot(slots []models.TimeSlot, entryTime string) *models.TimeSlot {
	for i := range slots {
		if slots[i].StartTime <= entryTime && entryTime <= slots[i].EndTime {
			return &slots[i]
		}
	}
	return &slots[0]
}

func (s *RateService) CreateRate(ctx context.Context, req *models.CreateMarketRateRequest) (*models.MarketRate, error) {
	if req.RatePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.BadRequest("VALIDATION", "rate_per_unit must be positive")
	}
	if req.CommissionPercent.IsNegative() {
		return nil, apperr.BadRequest("VALIDATION", "commission_percent must not be negative")
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return nil, apperr.BadRequest("VALIDATION", "effective_date must be YYYY-MM-DD")
	}

	mr := &models.MarketRate{
		FlowerTypeID:      req.FlowerTypeID,
		TimeSlotID:        req.TimeSlotID,
		RatePerUnit:       req.RatePerUnit,
		CommissionPercent: req.CommissionPercent,
		EffectiveDate:     effective,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, apperr.BadRequest("VALIDATION", "expiry_date must be YYYY-MM-DD")
		}
		mr.ExpiryDate = &expiry
	}

	if err := s.RateRepo.Create(ctx, mr); err != nil {
		return nil, err
	}

	s.Cache.InvalidateRates(ctx)
	return mr, nil
}

func (s *RateService) ListRates(ctx context.Context, flowerTypeID int) ([]models.MarketRate, error) {
	return s.RateRepo.ListByFlowerType(ctx, flowerTypeID)
}
