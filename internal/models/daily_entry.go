package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEntry is one produce delivery. The rate fields are resolved once at
// creation; edits re-derive the amounts from the stored rate, never from a
// fresh rate lookup.
type DailyEntry struct {
	ID               int             `json:"id"`
	FarmerID         int             `json:"farmer_id"`
	FlowerTypeID     int             `json:"flower_type_id"`
	TimeSlotID       int             `json:"time_slot_id"`
	EntryDate        time.Time       `json:"entry_date"`
	EntryTime        string          `json:"entry_time"`
	Quantity         decimal.Decimal `json:"quantity"`
	RatePerUnit      decimal.Decimal `json:"rate_per_unit"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	Notes            string          `json:"notes"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	CreatedByUserID  int             `json:"created_by_user_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type CreateEntryRequest struct {
	FarmerID     int             `json:"farmer_id"`
	FlowerTypeID int             `json:"flower_type_id"`
	EntryDate    string          `json:"entry_date"`
	EntryTime    string          `json:"entry_time"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes"`
}

// UpdateEntryRequest edits quantity/time/notes only. Amounts are recomputed
// from the already-recorded rate.
type UpdateEntryRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	EntryTime string          `json:"entry_time"`
	Notes     string          `json:"notes"`
}

type BulkCreateEntriesRequest struct {
	Entries []CreateEntryRequest `json:"entries"`
}

// BulkItemError reports one failed item of a bulk create.
type BulkItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkCreateEntriesResult is the partial-success batch response.
type BulkCreateEntriesResult struct {
	CreatedIDs []int           `json:"created_ids"`
	Errors     []BulkItemError `json:"errors"`
}
