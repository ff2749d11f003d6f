package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/export"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
)

type rosterRepository interface {
	ListAllByYear(ctx context.Context, year int) ([]models.ApplicantDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFormat selects the rendered output.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders applicant rosters for download.
type ExportService struct {
	applicants rosterRepository
	seasons    seasonResolver
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(applicants rosterRepository, seasons seasonResolver, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{applicants: applicants, seasons: seasons, csv: csv, pdf: pdf, logger: logger}
}

var rosterHeaders = []string{"student_id", "name", "college", "major", "grade", "type", "intention", "status", "final_department", "final_position"}

// Roster renders the applicant roster of a year. Year defaults to the
// current season's.
func (s *ExportService) Roster(ctx context.Context, year int, format ExportFormat) (*ExportResult, error) {
	if year <= 0 {
		season, err := s.seasons.Current(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve current season")
		}
		if season == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "specify a year or open a season first")
		}
		year = season.Year
	}

	applicants, err := s.applicants.ListAllByYear(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	dataset := export.Dataset{Headers: rosterHeaders, Rows: make([]map[string]string, 0, len(applicants))}
	for _, a := range applicants {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"student_id":       a.StudentID,
			"name":             a.Name,
			"college":          a.College,
			"major":            a.Major,
			"grade":            a.Grade,
			"type":             string(a.RecruitmentType),
			"intention":        a.IntentionDept1,
			"status":           string(a.Status),
			"final_department": derefOrEmpty(a.FinalDepartment),
			"final_position":   derefOrEmpty(a.FinalPosition),
		})
	}

	title := fmt.Sprintf("Recruitment roster %d", year)
	var result ExportResult
	switch format {
	case ExportCSV, "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		result = ExportResult{
			Filename:    fmt.Sprintf("recruitment_%d.csv", year),
			ContentType: "text/csv",
			Payload:     payload,
		}
	case ExportPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		result = ExportResult{
			Filename:    fmt.Sprintf("recruitment_%d.pdf", year),
			ContentType: "application/pdf",
			Payload:     payload,
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+strings.ToLower(string(format)))
	}

	s.logger.Info("roster exported", zap.Int("year", year), zap.String("format", string(format)), zap.Int("rows", len(dataset.Rows)))
	return &result, nil
}

func derefOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
