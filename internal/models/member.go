package models

import "time"

// BackboneMember is a permanent organizational role, written exactly once
// per assigned applicant by the assignment transaction.
type BackboneMember struct {
	ID        string     `db:"id" json:"id"`
	StudentID string     `db:"student_id" json:"student_id"`
	Name      string     `db:"name" json:"name"`
	DeptID    string     `db:"dept_id" json:"dept_id"`
	Position  string     `db:"position" json:"position"`
	PhotoKey  *string    `db:"photo_key" json:"photo_key,omitempty"`
	TermStart *time.Time `db:"term_start" json:"term_start,omitempty"`
	TermEnd   *time.Time `db:"term_end" json:"term_end,omitempty"`
	Remark    *string    `db:"remark" json:"remark,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
