package models

import (
	"time"

	"github.com/lib/pq"
)

// ApplicantStatus is the review state of a submitted candidacy.
type ApplicantStatus string

const (
	StatusPendingReview     ApplicantStatus = "pending_review"
	StatusInterview1Passed  ApplicantStatus = "interview1_passed"
	StatusInterview1Failed  ApplicantStatus = "interview1_failed"
	StatusInterview2Passed  ApplicantStatus = "interview2_passed"
	StatusInterview2Failed  ApplicantStatus = "interview2_failed"
	StatusPendingAssignment ApplicantStatus = "pending_assignment"
	StatusAssigned          ApplicantStatus = "assigned"
	StatusRejected          ApplicantStatus = "rejected"
)

// Terminal reports whether no further review operation may move the status.
func (s ApplicantStatus) Terminal() bool {
	switch s {
	case StatusInterview1Failed, StatusInterview2Failed, StatusRejected, StatusAssigned:
		return true
	}
	return false
}

// reviewTransition keys the state machine: the applicant's current status,
// the stage being decided, the outcome, and the applicant's round count.
type reviewTransition struct {
	From   ApplicantStatus
	Stage  int
	Pass   bool
	Rounds int
}

// reviewTransitions is the complete transition table for stage review.
// A stage-1 pass on a single-round applicant lands directly in
// pending_assignment; interview2_passed never rests (a stage-2 pass resolves
// straight to pending_assignment). Terminal states have no outgoing edges.
var reviewTransitions = map[reviewTransition]ApplicantStatus{
	{StatusPendingReview, 1, true, 1}:  StatusPendingAssignment,
	{StatusPendingReview, 1, true, 2}:  StatusInterview1Passed,
	{StatusPendingReview, 1, false, 1}: StatusInterview1Failed,
	{StatusPendingReview, 1, false, 2}: StatusInterview1Failed,

	{StatusInterview1Passed, 2, true, 2}:  StatusPendingAssignment,
	{StatusInterview1Passed, 2, false, 2}: StatusInterview2Failed,
}

// NextReviewStatus resolves the state machine for one applicant. The second
// return value is false when the transition is illegal (wrong source state,
// wrong stage for the round count, or a terminal state).
func NextReviewStatus(current ApplicantStatus, stage int, pass bool, rounds int) (ApplicantStatus, bool) {
	next, ok := reviewTransitions[reviewTransition{From: current, Stage: stage, Pass: pass, Rounds: rounds}]
	return next, ok
}

// ReviewSourceStatus returns the only status a row may hold to be eligible
// for the given stage. Guarding updates on it keeps transitions monotonic.
func ReviewSourceStatus(stage int) (ApplicantStatus, bool) {
	switch stage {
	case 1:
		return StatusPendingReview, true
	case 2:
		return StatusInterview1Passed, true
	}
	return "", false
}

// Applicant is a candidacy record in team_recruitment. Rows are created by
// intake, mutated by review and assignment, and never deleted.
type Applicant struct {
	ID              string          `db:"id" json:"id"`
	Year            int             `db:"year" json:"year"`
	RecruitmentType RecruitmentType `db:"recruitment_type" json:"recruitment_type"`
	InterviewRounds int             `db:"interview_rounds" json:"interview_rounds"`
	StudentID       string          `db:"student_id" json:"student_id"`

	Name      string  `db:"name" json:"name"`
	Gender    string  `db:"gender" json:"gender"`
	College   string  `db:"college" json:"college"`
	Major     string  `db:"major" json:"major"`
	Grade     string  `db:"grade" json:"grade"`
	Phone     string  `db:"phone" json:"phone"`
	Email     string  `db:"email" json:"email"`
	QQ        *string `db:"qq" json:"qq,omitempty"`
	Dormitory *string `db:"dormitory" json:"dormitory,omitempty"`

	IntentionDept1 string  `db:"intention_dept1" json:"intention_dept1"`
	IntentionDept2 *string `db:"intention_dept2" json:"intention_dept2,omitempty"`

	// Election-only fields.
	CurrentPosition  *string `db:"current_position" json:"current_position,omitempty"`
	ElectionPosition *string `db:"election_position" json:"election_position,omitempty"`
	WorkPlan         *string `db:"work_plan" json:"work_plan,omitempty"`

	SelfIntro        *string        `db:"self_intro" json:"self_intro,omitempty"`
	PastExperience   *string        `db:"past_experience" json:"past_experience,omitempty"`
	ReasonForJoining string         `db:"reason_for_joining" json:"reason_for_joining"`
	SkillTags        pq.StringArray `db:"skill_tags" json:"skill_tags,omitempty"`

	Status ApplicantStatus `db:"status" json:"status"`

	FinalDepartment *string `db:"final_department" json:"final_department,omitempty"`
	FinalPosition   *string `db:"final_position" json:"final_position,omitempty"`

	ReviewedByStage1   *string `db:"reviewed_by_stage1" json:"reviewed_by_stage1,omitempty"`
	ReviewRemarkStage1 *string `db:"review_remark_stage1" json:"review_remark_stage1,omitempty"`
	ReviewedByStage2   *string `db:"reviewed_by_stage2" json:"reviewed_by_stage2,omitempty"`
	ReviewRemarkStage2 *string `db:"review_remark_stage2" json:"review_remark_stage2,omitempty"`
	AssignedBy         *string `db:"assigned_by" json:"assigned_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ApplicantDetail joins profile directory fields onto an applicant row.
type ApplicantDetail struct {
	Applicant
	AvatarKey *string    `db:"avatar_key" json:"avatar_key,omitempty"`
	JoinDate  *time.Time `db:"join_date" json:"join_date,omitempty"`
}

// ApplicantFilter captures listing criteria for admin applicant views.
type ApplicantFilter struct {
	Year           int
	Type           RecruitmentType
	Status         ApplicantStatus
	IntentionDepts []string
	Search         string
	Page           int
	PageSize       int
}

// ReviewStageParams is the batch input of a stage review.
type ReviewStageParams struct {
	Year       int
	StudentIDs []string
	Stage      int
	Pass       bool
	ReviewerID string
	Remark     *string
}

// ReviewStageResult reports what the batch actually touched. Missing holds
// ids that matched no eligible row so partial batches are visible to callers.
type ReviewStageResult struct {
	Updated int      `json:"updated"`
	Missing []string `json:"missing,omitempty"`
}

// AssignFinalParams is the batch input of the terminal assignment.
type AssignFinalParams struct {
	Year       int
	StudentIDs []string
	Department string
	Position   string
	AssignerID string
}

// AssignFinalResult reports the promoted ids.
type AssignFinalResult struct {
	Assigned int      `json:"assigned"`
	Missing  []string `json:"missing,omitempty"`
}
