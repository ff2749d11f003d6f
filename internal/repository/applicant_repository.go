package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// Sentinel errors surfaced by the assignment transaction so the service can
// classify them without leaking SQL details.
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrIdentityNotFound   = errors.New("identity not found")
)

// IsUniqueViolation reports whether the error is a Postgres unique-constraint
// violation. The (year, student_id) unique index on team_recruitment is the
// authority on duplicate applications; the pre-insert existence check is only
// advisory.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// ApplicantRepository handles persistence of candidacy records.
type ApplicantRepository struct {
	db *sqlx.DB
}

// NewApplicantRepository constructs the repository.
func NewApplicantRepository(db *sqlx.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// Create persists a new applicant row.
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	if applicant.ID == "" {
		applicant.ID = uuid.NewString()
	}
	const query = `INSERT INTO team_recruitment (
        id, year, recruitment_type, interview_rounds, student_id,
        name, gender, college, major, grade, phone, email, qq, dormitory,
        intention_dept1, intention_dept2, current_position, election_position, work_plan,
        self_intro, past_experience, reason_for_joining, skill_tags, status)
        VALUES (
        :id, :year, :recruitment_type, :interview_rounds, :student_id,
        :name, :gender, :college, :major, :grade, :phone, :email, :qq, :dormitory,
        :intention_dept1, :intention_dept2, :current_position, :election_position, :work_plan,
        :self_intro, :past_experience, :reason_for_joining, :skill_tags, :status)`
	if _, err := r.db.NamedExecContext(ctx, query, applicant); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create applicant: %w", err)
	}
	return nil
}

// ExistsForYear checks whether the student already applied in the given year.
func (r *ApplicantRepository) ExistsForYear(ctx context.Context, year int, studentID string) (bool, error) {
	const query = `SELECT 1 FROM team_recruitment WHERE year = $1 AND student_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, year, studentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check applicant existence: %w", err)
	}
	return true, nil
}

const applicantDetailColumns = `r.id, r.year, r.recruitment_type, r.interview_rounds, r.student_id,
        r.name, r.gender, r.college, r.major, r.grade, r.phone, r.email, r.qq, r.dormitory,
        r.intention_dept1, r.intention_dept2, r.current_position, r.election_position, r.work_plan,
        r.self_intro, r.past_experience, r.reason_for_joining, r.skill_tags, r.status,
        r.final_department, r.final_position,
        r.reviewed_by_stage1, r.review_remark_stage1, r.reviewed_by_stage2, r.review_remark_stage2,
        r.assigned_by, r.created_at, r.updated_at,
        i.avatar_key, i.join_date`

// List returns applicant rows joined with directory profile fields.
func (r *ApplicantRepository) List(ctx context.Context, filter models.ApplicantFilter) ([]models.ApplicantDetail, int, error) {
	base := `FROM team_recruitment r
        LEFT JOIN auth_info i ON i.student_id = r.student_id`

	conditions := []string{"r.year = $1"}
	args := []interface{}{filter.Year}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("r.recruitment_type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if len(filter.IntentionDepts) > 0 {
		placeholders := make([]string, len(filter.IntentionDepts))
		for i, dept := range filter.IntentionDepts {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, dept)
		}
		conditions = append(conditions, fmt.Sprintf("r.intention_dept1 IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(r.student_id ILIKE $%d OR r.name ILIKE $%d)", len(args)+1, len(args)+2))
		args = append(args, "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	clause := " WHERE " + strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY r.created_at DESC LIMIT %d OFFSET %d",
		applicantDetailColumns, base+clause, size, offset)

	var applicants []models.ApplicantDetail
	if err := r.db.SelectContext(ctx, &applicants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}
	return applicants, total, nil
}

// ListAllByYear returns every applicant row of a year for roster export.
func (r *ApplicantRepository) ListAllByYear(ctx context.Context, year int) ([]models.ApplicantDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_recruitment r
        LEFT JOIN auth_info i ON i.student_id = r.student_id
        WHERE r.year = $1 ORDER BY r.created_at`, applicantDetailColumns)
	var applicants []models.ApplicantDetail
	if err := r.db.SelectContext(ctx, &applicants, query, year); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return applicants, nil
}

// FindByYearAndStudent returns a single applicant row.
func (r *ApplicantRepository) FindByYearAndStudent(ctx context.Context, year int, studentID string) (*models.Applicant, error) {
	const query = `SELECT id, year, recruitment_type, interview_rounds, student_id,
        name, gender, college, major, grade, phone, email, qq, dormitory,
        intention_dept1, intention_dept2, current_position, election_position, work_plan,
        self_intro, past_experience, reason_for_joining, skill_tags, status,
        final_department, final_position,
        reviewed_by_stage1, review_remark_stage1, reviewed_by_stage2, review_remark_stage2,
        assigned_by, created_at, updated_at
        FROM team_recruitment WHERE year = $1 AND student_id = $2`
	var applicant models.Applicant
	if err := r.db.GetContext(ctx, &applicant, query, year, studentID); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// ReviewStage applies one batched status update for a review stage. The
// update is guarded on the legal source status so terminal and already
// reviewed rows are never regressed; the caller supplies the FSM targets per
// round count. It returns the student ids actually updated.
func (r *ApplicantRepository) ReviewStage(ctx context.Context, params models.ReviewStageParams, source models.ApplicantStatus, targets map[int]models.ApplicantStatus) ([]string, error) {
	if len(params.StudentIDs) == 0 {
		return nil, nil
	}

	var query string
	var args []interface{}

	switch params.Stage {
	case 1:
		query = `UPDATE team_recruitment
        SET status = CASE interview_rounds WHEN 1 THEN $1 ELSE $2 END,
            reviewed_by_stage1 = $3, review_remark_stage1 = $4, updated_at = NOW()
        WHERE year = $5 AND status = $6`
		args = []interface{}{targets[1], targets[2], params.ReviewerID, params.Remark, params.Year, source}
	case 2:
		query = `UPDATE team_recruitment
        SET status = $1,
            reviewed_by_stage2 = $2, review_remark_stage2 = $3, updated_at = NOW()
        WHERE year = $4 AND status = $5 AND interview_rounds = 2`
		args = []interface{}{targets[2], params.ReviewerID, params.Remark, params.Year, source}
	default:
		return nil, fmt.Errorf("review stage %d: unsupported stage", params.Stage)
	}

	placeholders := make([]string, len(params.StudentIDs))
	for i, sid := range params.StudentIDs {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, sid)
	}
	query += fmt.Sprintf(" AND student_id IN (%s) RETURNING student_id", strings.Join(placeholders, ","))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("review stage update: %w", err)
	}
	defer rows.Close()

	var updated []string
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return nil, fmt.Errorf("scan reviewed student id: %w", err)
		}
		updated = append(updated, sid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review stage rows: %w", err)
	}
	return updated, nil
}

// AssignFinal promotes pending_assignment applicants into permanent member
// roles inside one transaction: status flip, idempotent backbone_members
// insert, and the directory join_date write either all commit or none do.
// A missing identity row aborts the whole batch.
func (r *ApplicantRepository) AssignFinal(ctx context.Context, params models.AssignFinalParams) (assigned []string, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin assignment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	updateQuery := `UPDATE team_recruitment
        SET status = $1, final_department = $2, final_position = $3, assigned_by = $4, updated_at = NOW()
        WHERE year = $5 AND status = $6`
	args := []interface{}{models.StatusAssigned, params.Department, params.Position, params.AssignerID, params.Year, models.StatusPendingAssignment}

	placeholders := make([]string, len(params.StudentIDs))
	for i, sid := range params.StudentIDs {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, sid)
	}
	updateQuery += fmt.Sprintf(" AND student_id IN (%s) RETURNING student_id", strings.Join(placeholders, ","))

	rows, err := tx.QueryxContext(ctx, updateQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("assign applicants: %w", err)
	}
	for rows.Next() {
		var sid string
		if err = rows.Scan(&sid); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan assigned student id: %w", err)
		}
		assigned = append(assigned, sid)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("assigned rows: %w", err)
	}
	rows.Close()

	if len(assigned) == 0 {
		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit assignment: %w", err)
		}
		return nil, nil
	}

	var deptID string
	if err = tx.GetContext(ctx, &deptID, `SELECT id FROM departments WHERE dept_name = $1`, params.Department); err != nil {
		if err == sql.ErrNoRows {
			err = fmt.Errorf("%w: %s", ErrDepartmentNotFound, params.Department)
		}
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, sid := range assigned {
		var name string
		if err = tx.GetContext(ctx, &name, `SELECT name FROM auth_info WHERE student_id = $1`, sid); err != nil {
			if err == sql.ErrNoRows {
				err = fmt.Errorf("%w: %s", ErrIdentityNotFound, sid)
			}
			return nil, err
		}

		const memberQuery = `INSERT INTO backbone_members (id, student_id, name, dept_id, position, term_start)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (student_id) DO NOTHING`
		if _, err = tx.ExecContext(ctx, memberQuery, uuid.NewString(), sid, name, deptID, params.Position, today); err != nil {
			return nil, fmt.Errorf("insert member role: %w", err)
		}

		const joinQuery = `UPDATE auth_info SET join_date = $2, updated_at = NOW() WHERE student_id = $1`
		if _, err = tx.ExecContext(ctx, joinQuery, sid, today); err != nil {
			return nil, fmt.Errorf("update join date: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit assignment: %w", err)
	}
	return assigned, nil
}
