package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlowerType struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Unit      string     `json:"unit"`
	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TimeSlot is a named wall-clock window, e.g. "Morning" 06:00-10:00.
// StartTime/EndTime use the "15:04:05" layout.
type TimeSlot struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type MarketRate struct {
	ID                int             `json:"id"`
	FlowerTypeID      int             `json:"flower_type_id"`
	TimeSlotID        int             `json:"time_slot_id"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	EffectiveDate     time.Time       `json:"effective_date"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}

type CreateMarketRateRequest struct {
	FlowerTypeID      int             `json:"flower_type_id"`
	TimeSlotID        int             `json:"time_slot_id"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	EffectiveDate     string          `json:"effective_date"`
	ExpiryDate        string          `json:"expiry_date,omitempty"`
}
