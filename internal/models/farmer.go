package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Farmer carries the running ledger totals. CurrentBalance, TotalAdvances and
// TotalSettlements are written only by the advance-approve and settlement-pay
// transitions; everything else treats them as read-only.
type Farmer struct {
	ID               int             `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Village          string          `json:"village"`
	Phone            string          `json:"phone"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	TotalAdvances    decimal.Decimal `json:"total_advances"`
	TotalSettlements decimal.Decimal `json:"total_settlements"`
	IsActive         bool            `json:"is_active"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type CreateFarmerRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Village string `json:"village"`
	Phone   string `json:"phone"`
}

type UpdateFarmerRequest struct {
	Name     string `json:"name"`
	Village  string `json:"village"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// FarmerLedger is the balance snapshot returned by the ledger endpoint.
type FarmerLedger struct {
	Farmer           *Farmer         `json:"farmer"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	TotalAdvances    decimal.Decimal `json:"total_advances"`
	TotalSettlements decimal.Decimal `json:"total_settlements"`
	PendingAdvances  int             `json:"pending_advances"`
	OpenSettlements  int             `json:"open_settlements"`
}
