package models

import "time"

// AuthInfo is the profile directory record for a student. The recruitment
// core reads the display name and writes join_date during assignment; the
// rest belongs to the profile subsystem.
type AuthInfo struct {
	ID         string     `db:"id" json:"id"`
	StudentID  string     `db:"student_id" json:"student_id"`
	Name       string     `db:"name" json:"name"`
	Gender     *string    `db:"gender" json:"gender,omitempty"`
	College    *string    `db:"college" json:"college,omitempty"`
	Major      *string    `db:"major" json:"major,omitempty"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	AvatarKey  *string    `db:"avatar_key" json:"avatar_key,omitempty"`
	JoinDate   *time.Time `db:"join_date" json:"join_date,omitempty"`
	TotalHours float64    `db:"total_hours" json:"total_hours"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
