package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// SeasonRepository handles persistence of recruitment seasons.
type SeasonRepository struct {
	db *sqlx.DB
}

// NewSeasonRepository constructs the repository.
func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// Current returns the single open season, preferring internal_election over
// new_student and newer years first. It returns (nil, nil) when no season is
// open; "current" is always resolved from storage, never cached.
func (r *SeasonRepository) Current(ctx context.Context) (*models.Season, error) {
	const query = `SELECT id, year, type, is_open, title, start_time, end_time, created_at, updated_at
        FROM recruitment_seasons
        WHERE is_open = TRUE
        ORDER BY CASE type WHEN 'internal_election' THEN 0 ELSE 1 END, year DESC
        LIMIT 1`
	var season models.Season
	if err := r.db.GetContext(ctx, &season, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve current season: %w", err)
	}
	return &season, nil
}

// List returns seasons filtered by the provided criteria.
func (r *SeasonRepository) List(ctx context.Context, filter models.SeasonFilter) ([]models.Season, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, year, type, is_open, title, start_time, end_time, created_at, updated_at
        FROM recruitment_seasons%s ORDER BY year DESC, type LIMIT %d OFFSET %d`, clause, size, offset)

	var seasons []models.Season
	if err := r.db.SelectContext(ctx, &seasons, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list seasons: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM recruitment_seasons%s", clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count seasons: %w", err)
	}
	return seasons, total, nil
}

// Open upserts a season keyed by (year, type) and marks it open. Re-opening
// an existing season only refreshes title and window.
func (r *SeasonRepository) Open(ctx context.Context, season *models.Season) error {
	if season.ID == "" {
		season.ID = uuid.NewString()
	}
	const query = `INSERT INTO recruitment_seasons (id, year, type, is_open, title, start_time, end_time)
        VALUES ($1, $2, $3, TRUE, $4, $5, $6)
        ON CONFLICT (year, type) DO UPDATE
        SET is_open = TRUE, title = EXCLUDED.title, start_time = EXCLUDED.start_time,
            end_time = EXCLUDED.end_time, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, season.ID, season.Year, season.Type, season.Title, season.StartTime, season.EndTime); err != nil {
		return fmt.Errorf("open season: %w", err)
	}
	return nil
}

// FindByKey returns the season for a (year, type) pair.
func (r *SeasonRepository) FindByKey(ctx context.Context, year int, seasonType models.RecruitmentType) (*models.Season, error) {
	const query = `SELECT id, year, type, is_open, title, start_time, end_time, created_at, updated_at
        FROM recruitment_seasons WHERE year = $1 AND type = $2`
	var season models.Season
	if err := r.db.GetContext(ctx, &season, query, year, seasonType); err != nil {
		return nil, err
	}
	return &season, nil
}

// Close marks one season closed. Closing never deletes.
func (r *SeasonRepository) Close(ctx context.Context, year int, seasonType models.RecruitmentType) error {
	const query = `UPDATE recruitment_seasons SET is_open = FALSE, updated_at = NOW() WHERE year = $1 AND type = $2`
	if _, err := r.db.ExecContext(ctx, query, year, seasonType); err != nil {
		return fmt.Errorf("close season: %w", err)
	}
	return nil
}

// CloseAll marks every season closed.
func (r *SeasonRepository) CloseAll(ctx context.Context) error {
	const query = `UPDATE recruitment_seasons SET is_open = FALSE, updated_at = NOW() WHERE is_open = TRUE`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("close all seasons: %w", err)
	}
	return nil
}

// Delete hard-deletes a season row.
func (r *SeasonRepository) Delete(ctx context.Context, year int, seasonType models.RecruitmentType) error {
	const query = `DELETE FROM recruitment_seasons WHERE year = $1 AND type = $2`
	if _, err := r.db.ExecContext(ctx, query, year, seasonType); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}
