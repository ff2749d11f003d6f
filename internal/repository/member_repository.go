package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// MemberRepository reads permanent member roles. Writes happen only inside
// the assignment transaction owned by ApplicantRepository.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository constructs the repository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Exists reports whether the student already holds a member role.
func (r *MemberRepository) Exists(ctx context.Context, studentID string) (bool, error) {
	const query = `SELECT 1 FROM backbone_members WHERE student_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check member role: %w", err)
	}
	return true, nil
}

// FindByStudentID returns the member role for a student.
func (r *MemberRepository) FindByStudentID(ctx context.Context, studentID string) (*models.BackboneMember, error) {
	const query = `SELECT id, student_id, name, dept_id, position, photo_key, term_start, term_end, remark, created_at, updated_at
        FROM backbone_members WHERE student_id = $1`
	var member models.BackboneMember
	if err := r.db.GetContext(ctx, &member, query, studentID); err != nil {
		return nil, err
	}
	return &member, nil
}
