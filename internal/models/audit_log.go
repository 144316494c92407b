package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
	AuditApprove AuditAction = "APPROVE"
	AuditReject  AuditAction = "REJECT"
	AuditPay     AuditAction = "PAY"
)

type AuditLog struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	Action     AuditAction     `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   int             `json:"entity_id"`
	OldValues  json.RawMessage `json:"old_values,omitempty"`
	NewValues  json.RawMessage `json:"new_values,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
