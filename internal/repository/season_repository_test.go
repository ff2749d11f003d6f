package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

func newSeasonRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func seasonRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "year", "type", "is_open", "title", "start_time", "end_time", "created_at", "updated_at"})
}

func TestSeasonRepositoryCurrentPrefersElection(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	now := time.Now()
	rows := seasonRows().
		AddRow("season-1", 2026, "internal_election", true, sql.NullString{String: "换届", Valid: true}, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY CASE type WHEN 'internal_election' THEN 0 ELSE 1 END, year DESC")).
		WillReturnRows(rows)

	season, err := repo.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, season)
	assert.Equal(t, models.RecruitmentInternalElection, season.Type)
	assert.Equal(t, 2026, season.Year)
}

func TestSeasonRepositoryCurrentNoneOpen(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_open = TRUE")).
		WillReturnError(sql.ErrNoRows)

	season, err := repo.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, season)
}

func TestSeasonRepositoryOpenUpsert(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (year, type) DO UPDATE")).
		WithArgs(sqlmock.AnyArg(), 2026, models.RecruitmentNewStudent, "", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	season := &models.Season{Year: 2026, Type: models.RecruitmentNewStudent}
	err := repo.Open(context.Background(), season)
	require.NoError(t, err)
	assert.NotEmpty(t, season.ID)
}

func TestSeasonRepositoryClose(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE recruitment_seasons SET is_open = FALSE, updated_at = NOW() WHERE year = $1 AND type = $2")).
		WithArgs(2026, models.RecruitmentNewStudent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Close(context.Background(), 2026, models.RecruitmentNewStudent)
	require.NoError(t, err)
}

func TestSeasonRepositoryCloseAll(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET is_open = FALSE, updated_at = NOW() WHERE is_open = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.CloseAll(context.Background())
	require.NoError(t, err)
}

func TestSeasonRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	now := time.Now()
	rows := seasonRows().
		AddRow("season-1", 2026, "new_student", false, sql.NullString{String: "2026 秋招", Valid: true}, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("title ILIKE $1")).
		WithArgs("%秋招%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM recruitment_seasons WHERE title ILIKE $1")).
		WithArgs("%秋招%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	seasons, total, err := repo.List(context.Background(), models.SeasonFilter{Search: "秋招"})
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, 1, total)
}

func TestSeasonRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newSeasonRepoMock(t)
	defer cleanup()
	repo := NewSeasonRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recruitment_seasons WHERE year = $1 AND type = $2")).
		WithArgs(2025, models.RecruitmentInternalElection).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 2025, models.RecruitmentInternalElection)
	require.NoError(t, err)
}
