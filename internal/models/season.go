package models

import "time"

// RecruitmentType distinguishes the two kinds of recruitment seasons.
type RecruitmentType string

const (
	RecruitmentNewStudent       RecruitmentType = "new_student"
	RecruitmentInternalElection RecruitmentType = "internal_election"
)

// Valid reports whether the type is one of the known season kinds.
func (t RecruitmentType) Valid() bool {
	return t == RecruitmentNewStudent || t == RecruitmentInternalElection
}

// InterviewRounds returns how many review rounds applicants of this type go
// through: elections run a single round, new-student intake runs two.
func (t RecruitmentType) InterviewRounds() int {
	if t == RecruitmentInternalElection {
		return 1
	}
	return 2
}

// Season is a year+type recruitment window stored in recruitment_seasons.
// At most one season per type should be open at a time; when both types are
// open, internal_election takes priority for "current" resolution.
type Season struct {
	ID        string          `db:"id" json:"id"`
	Year      int             `db:"year" json:"year"`
	Type      RecruitmentType `db:"type" json:"type"`
	IsOpen    bool            `db:"is_open" json:"is_open"`
	Title     string          `db:"title" json:"title"`
	StartTime *time.Time      `db:"start_time" json:"start_time,omitempty"`
	EndTime   *time.Time      `db:"end_time" json:"end_time,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// SeasonFilter captures listing criteria for the admin season view.
type SeasonFilter struct {
	Search   string
	Page     int
	PageSize int
}
