package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

func newApplicantRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
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

func TestApplicantRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO team_recruitment")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applicant := &models.Applicant{
		Year:             2026,
		RecruitmentType:  models.RecruitmentNewStudent,
		InterviewRounds:  2,
		StudentID:        "2023214001",
		Name:             "张三",
		Gender:           "男",
		College:          "计算机学院",
		Major:            "软件工程",
		Grade:            "2023",
		Phone:            "13800000000",
		Email:            "zhangsan@example.com",
		IntentionDept1:   "技术部",
		ReasonForJoining: "希望在团队中锻炼工程能力并参与平台建设",
		Status:           models.StatusPendingReview,
	}
	err := repo.Create(context.Background(), applicant)
	require.NoError(t, err)
	assert.NotEmpty(t, applicant.ID)
}

func TestApplicantRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO team_recruitment")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Applicant{StudentID: "2023214001"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestApplicantRepositoryExistsForYear(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM team_recruitment WHERE year = $1 AND student_id = $2")).
		WithArgs(2026, "2023214001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsForYear(context.Background(), 2026, "2023214001")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM team_recruitment")).
		WithArgs(2026, "2023214002").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsForYear(context.Background(), 2026, "2023214002")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplicantRepositoryReviewStageOne(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	rows := sqlmock.NewRows([]string{"student_id"}).
		AddRow("2023214001").
		AddRow("2023214002")

	mock.ExpectQuery(regexp.QuoteMeta("SET status = CASE interview_rounds WHEN 1 THEN $1 ELSE $2 END")).
		WithArgs(
			models.StatusPendingAssignment, models.StatusInterview1Passed,
			"admin-1", nil, 2026, models.StatusPendingReview,
			"2023214001", "2023214002", "2023214003",
		).
		WillReturnRows(rows)

	updated, err := repo.ReviewStage(context.Background(),
		models.ReviewStageParams{
			Year:       2026,
			StudentIDs: []string{"2023214001", "2023214002", "2023214003"},
			Stage:      1,
			Pass:       true,
			ReviewerID: "admin-1",
		},
		models.StatusPendingReview,
		map[int]models.ApplicantStatus{
			1: models.StatusPendingAssignment,
			2: models.StatusInterview1Passed,
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023214001", "2023214002"}, updated)
}

func TestApplicantRepositoryReviewStageTwoGuardsRounds(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	rows := sqlmock.NewRows([]string{"student_id"}).AddRow("2023214001")

	mock.ExpectQuery(regexp.QuoteMeta("AND interview_rounds = 2")).
		WithArgs(
			models.StatusPendingAssignment,
			"admin-1", nil, 2026, models.StatusInterview1Passed,
			"2023214001",
		).
		WillReturnRows(rows)

	updated, err := repo.ReviewStage(context.Background(),
		models.ReviewStageParams{
			Year:       2026,
			StudentIDs: []string{"2023214001"},
			Stage:      2,
			Pass:       true,
			ReviewerID: "admin-1",
		},
		models.StatusInterview1Passed,
		map[int]models.ApplicantStatus{2: models.StatusPendingAssignment})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023214001"}, updated)
}

func TestApplicantRepositoryReviewStageEmptyBatch(t *testing.T) {
	db, _, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	updated, err := repo.ReviewStage(context.Background(),
		models.ReviewStageParams{Year: 2026, Stage: 1},
		models.StatusPendingReview, nil)
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestApplicantRepositoryAssignFinalCommits(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SET status = $1, final_department = $2, final_position = $3, assigned_by = $4")).
		WithArgs(
			models.StatusAssigned, "技术部", "队员", "admin-1",
			2026, models.StatusPendingAssignment, "2023214001",
		).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow("2023214001"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM departments WHERE dept_name = $1")).
		WithArgs("技术部").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("dept-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM auth_info WHERE student_id = $1")).
		WithArgs("2023214001").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("张三"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO backbone_members")).
		WithArgs(sqlmock.AnyArg(), "2023214001", "张三", "dept-1", "队员", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE auth_info SET join_date = $2")).
		WithArgs("2023214001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assigned, err := repo.AssignFinal(context.Background(), models.AssignFinalParams{
		Year:       2026,
		StudentIDs: []string{"2023214001"},
		Department: "技术部",
		Position:   "队员",
		AssignerID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023214001"}, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantRepositoryAssignFinalNoEligibleRows(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("RETURNING student_id")).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}))
	mock.ExpectCommit()

	assigned, err := repo.AssignFinal(context.Background(), models.AssignFinalParams{
		Year:       2026,
		StudentIDs: []string{"2023214009"},
		Department: "技术部",
		Position:   "队员",
		AssignerID: "admin-1",
	})
	require.NoError(t, err)
	assert.Empty(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantRepositoryAssignFinalUnknownDepartmentRollsBack(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("RETURNING student_id")).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow("2023214001"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM departments")).
		WithArgs("不存在的部门").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assigned, err := repo.AssignFinal(context.Background(), models.AssignFinalParams{
		Year:       2026,
		StudentIDs: []string{"2023214001"},
		Department: "不存在的部门",
		Position:   "队员",
		AssignerID: "admin-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDepartmentNotFound))
	assert.Empty(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantRepositoryAssignFinalMissingIdentityAbortsBatch(t *testing.T) {
	db, mock, cleanup := newApplicantRepoMock(t)
	defer cleanup()
	repo := NewApplicantRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("RETURNING student_id")).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).
			AddRow("2023214001").
			AddRow("2023214002"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM departments")).
		WithArgs("技术部").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("dept-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM auth_info")).
		WithArgs("2023214001").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assigned, err := repo.AssignFinal(context.Background(), models.AssignFinalParams{
		Year:       2026,
		StudentIDs: []string{"2023214001", "2023214002"},
		Department: "技术部",
		Position:   "队员",
		AssignerID: "admin-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIdentityNotFound))
	assert.Empty(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
