package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	NotificationAdvanceApproved = "ADVANCE_APPROVED"
	NotificationSettlementPaid  = "SETTLEMENT_PAID"
)

// NotificationEvent is what the core emits after a balance-mutating
// transaction commits; delivery is fire-and-forget.
type NotificationEvent struct {
	FarmerID  int             `json:"farmer_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

type NotificationLog struct {
	ID        int             `json:"id"`
	FarmerID  int             `json:"farmer_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Phone     string          `json:"phone"`
	Status    string          `json:"status"`
	Error     string          `json:"error"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
