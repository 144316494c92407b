package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdvanceStatus string

const (
	AdvancePending  AdvanceStatus = "PENDING"
	AdvanceApproved AdvanceStatus = "APPROVED"
	AdvanceRejected AdvanceStatus = "REJECTED"
	// AdvanceSettled marks an approved advance consumed by a settlement.
	// SettlementID is set exactly once, at generation time.
	AdvanceSettled AdvanceStatus = "SETTLED"
)

type CashAdvance struct {
	ID               int             `json:"id"`
	FarmerID         int             `json:"farmer_id"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
	AdvanceDate      time.Time       `json:"advance_date"`
	Status           AdvanceStatus   `json:"status"`
	ApprovedByUserID *int            `json:"approved_by_user_id,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	SettlementID     *int            `json:"settlement_id,omitempty"`
	Notes            string          `json:"notes"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	CreatedByUserID  int             `json:"created_by_user_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type CreateAdvanceRequest struct {
	FarmerID    int             `json:"farmer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	AdvanceDate string          `json:"advance_date"`
	Notes       string          `json:"notes"`
}

type UpdateAdvanceRequest struct {
	Notes string `json:"notes"`
}
