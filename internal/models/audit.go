package models

import "time"

// OperationLog records an admin action in operation_logs.
type OperationLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      *string   `db:"user_id" json:"user_id,omitempty"`
	Action      string    `db:"action" json:"action"`
	TargetTable *string   `db:"target_table" json:"target_table,omitempty"`
	TargetID    *string   `db:"target_id" json:"target_id,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	IPAddress   *string   `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent   *string   `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
