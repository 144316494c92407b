package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnlineTransaction records a Razorpay dues-recovery payment link and its
// webhook outcome. It never touches the farmer balance; reconciliation of
// collected dues is a manual back-office step.
type OnlineTransaction struct {
	ID                int             `json:"id"`
	FarmerID          int             `json:"farmer_id"`
	SettlementID      *int            `json:"settlement_id,omitempty"`
	RazorpayLinkID    string          `json:"razorpay_link_id"`
	RazorpayPaymentID string          `json:"razorpay_payment_id"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
