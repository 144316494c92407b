package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettlementStatus string

const (
	SettlementDraft           SettlementStatus = "DRAFT"
	SettlementPendingApproval SettlementStatus = "PENDING_APPROVAL"
	SettlementApproved        SettlementStatus = "APPROVED"
	SettlementPaid            SettlementStatus = "PAID"
)

type Settlement struct {
	ID               int              `json:"id"`
	FarmerID         int              `json:"farmer_id"`
	SettlementNumber string           `json:"settlement_number"`
	SettlementDate   time.Time        `json:"settlement_date"`
	PeriodStart      time.Time        `json:"period_start"`
	PeriodEnd        time.Time        `json:"period_end"`
	TotalEntries     int              `json:"total_entries"`
	TotalQuantity    decimal.Decimal  `json:"total_quantity"`
	GrossAmount      decimal.Decimal  `json:"gross_amount"`
	TotalCommission  decimal.Decimal  `json:"total_commission"`
	TotalFees        decimal.Decimal  `json:"total_fees"`
	TotalAdvances    decimal.Decimal  `json:"total_advances"`
	NetPayable       decimal.Decimal  `json:"net_payable"`
	Status           SettlementStatus `json:"status"`
	ApprovedByUserID *int             `json:"approved_by_user_id,omitempty"`
	ApprovedAt       *time.Time       `json:"approved_at,omitempty"`
	PaidAt           *time.Time       `json:"paid_at,omitempty"`
	Notes            string           `json:"notes"`
	DeletedAt        *time.Time       `json:"deleted_at,omitempty"`
	CreatedByUserID  int              `json:"created_by_user_id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Items            []SettlementItem `json:"items,omitempty"`
}

// SettlementItem is a snapshot of one daily entry's figures at aggregation
// time, decoupled from later entry edits.
type SettlementItem struct {
	ID               int             `json:"id"`
	SettlementID     int             `json:"settlement_id"`
	DailyEntryID     int             `json:"daily_entry_id"`
	EntryDate        time.Time       `json:"entry_date"`
	FlowerTypeName   string          `json:"flower_type_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	RatePerUnit      decimal.Decimal `json:"rate_per_unit"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	CreatedAt        time.Time       `json:"created_at"`
}

type GenerateSettlementRequest struct {
	FarmerID    int    `json:"farmer_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Notes       string `json:"notes"`
}
