package models

import "time"

// Department is an organizational unit. LeaderID and ManagerID reference the
// student ids of the members responsible for it; either grants the scoped
// applicant view.
type Department struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"dept_name" json:"dept_name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	LeaderID     *string   `db:"leader_id" json:"leader_id,omitempty"`
	ManagerID    *string   `db:"manager_id" json:"manager_id,omitempty"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
