package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// IdentityRepository reads the student profile directory (auth_info).
type IdentityRepository struct {
	db *sqlx.DB
}

// NewIdentityRepository constructs the repository.
func NewIdentityRepository(db *sqlx.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// FindByStudentID returns a directory profile.
func (r *IdentityRepository) FindByStudentID(ctx context.Context, studentID string) (*models.AuthInfo, error) {
	const query = `SELECT id, student_id, name, gender, college, major, phone, avatar_key, join_date, total_hours, created_at, updated_at
        FROM auth_info WHERE student_id = $1`
	var info models.AuthInfo
	if err := r.db.GetContext(ctx, &info, query, studentID); err != nil {
		return nil, err
	}
	return &info, nil
}
