package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// UserRepository handles login credentials in auth_login.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const accountColumns = `id, student_id, email, password_hash, role, created_at, updated_at`

// FindByStudentID returns the credential row for a student id.
func (r *UserRepository) FindByStudentID(ctx context.Context, studentID string) (*models.AuthAccount, error) {
	query := fmt.Sprintf("SELECT %s FROM auth_login WHERE student_id = $1", accountColumns)
	var account models.AuthAccount
	if err := r.db.GetContext(ctx, &account, query, studentID); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail returns the credential row for an email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.AuthAccount, error) {
	query := fmt.Sprintf("SELECT %s FROM auth_login WHERE email = $1", accountColumns)
	var account models.AuthAccount
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, err
	}
	return &account, nil
}

// Create persists a new credential row.
func (r *UserRepository) Create(ctx context.Context, account *models.AuthAccount) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.Role == "" {
		account.Role = models.RoleStudent
	}
	const query = `INSERT INTO auth_login (id, student_id, email, password_hash, role)
        VALUES (:id, :student_id, :email, :password_hash, :role)`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
