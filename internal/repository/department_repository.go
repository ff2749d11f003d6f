package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// DepartmentRepository reads organizational units.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs the repository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// ListManagedNames returns the names of departments the student leads or
// manages. An empty result is not an error.
func (r *DepartmentRepository) ListManagedNames(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT dept_name FROM departments WHERE manager_id = $1 OR leader_id = $1 ORDER BY display_order`
	var names []string
	if err := r.db.SelectContext(ctx, &names, query, studentID); err != nil {
		return nil, fmt.Errorf("list managed departments: %w", err)
	}
	return names, nil
}

// FindByName returns a department by its unique name.
func (r *DepartmentRepository) FindByName(ctx context.Context, name string) (*models.Department, error) {
	const query = `SELECT id, dept_name, description, leader_id, manager_id, display_order, created_at, updated_at
        FROM departments WHERE dept_name = $1`
	var dept models.Department
	if err := r.db.GetContext(ctx, &dept, query, name); err != nil {
		return nil, err
	}
	return &dept, nil
}
