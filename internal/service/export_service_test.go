package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
)

type rosterRepoStub struct {
	applicants []models.ApplicantDetail
	err        error
	years      []int
}

func (s *rosterRepoStub) ListAllByYear(ctx context.Context, year int) ([]models.ApplicantDetail, error) {
	s.years = append(s.years, year)
	return s.applicants, s.err
}

func rosterFixture() []models.ApplicantDetail {
	dept := "技术部"
	position := "队员"
	return []models.ApplicantDetail{
		{
			Applicant: models.Applicant{
				Year:            2026,
				RecruitmentType: models.RecruitmentNewStudent,
				StudentID:       "2023214001",
				Name:            "张三",
				College:         "计算机学院",
				Major:           "软件工程",
				Grade:           "2023",
				IntentionDept1:  "技术部",
				Status:          models.StatusAssigned,
				FinalDepartment: &dept,
				FinalPosition:   &position,
			},
		},
	}
}

func TestExportServiceRosterCSV(t *testing.T) {
	repo := &rosterRepoStub{applicants: rosterFixture()}
	svc := NewExportService(repo, seasonResolverStub{}, nil, nil, nil)

	result, err := svc.Roster(context.Background(), 2026, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "recruitment_2026.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	content := string(result.Payload)
	assert.True(t, strings.HasPrefix(content, "student_id,name,college"))
	assert.Contains(t, content, "2023214001")
	assert.Contains(t, content, "assigned")
}

func TestExportServiceRosterPDF(t *testing.T) {
	repo := &rosterRepoStub{applicants: rosterFixture()}
	svc := NewExportService(repo, seasonResolverStub{}, nil, nil, nil)

	result, err := svc.Roster(context.Background(), 2026, ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "recruitment_2026.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.NotEmpty(t, result.Payload)
}

func TestExportServiceRosterDefaultsYear(t *testing.T) {
	repo := &rosterRepoStub{}
	svc := NewExportService(repo, seasonResolverStub{season: newStudentSeason()}, nil, nil, nil)

	_, err := svc.Roster(context.Background(), 0, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, []int{2026}, repo.years)
}

func TestExportServiceRosterNoYearResolvable(t *testing.T) {
	svc := NewExportService(&rosterRepoStub{}, seasonResolverStub{}, nil, nil, nil)

	_, err := svc.Roster(context.Background(), 0, ExportCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRosterUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&rosterRepoStub{}, seasonResolverStub{season: newStudentSeason()}, nil, nil, nil)

	_, err := svc.Roster(context.Background(), 2026, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
