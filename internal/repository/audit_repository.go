package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// AuditRepository persists operation logs.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an operation log entry.
func (r *AuditRepository) Create(ctx context.Context, log *models.OperationLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	const query = `INSERT INTO operation_logs (id, user_id, action, target_table, target_id, description, ip_address, user_agent)
        VALUES (:id, :user_id, :action, :target_table, :target_id, :description, :ip_address, :user_agent)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create operation log: %w", err)
	}
	return nil
}
