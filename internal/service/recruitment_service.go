package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/repository"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
)

type applicantRepository interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	ExistsForYear(ctx context.Context, year int, studentID string) (bool, error)
	List(ctx context.Context, filter models.ApplicantFilter) ([]models.ApplicantDetail, int, error)
	FindByYearAndStudent(ctx context.Context, year int, studentID string) (*models.Applicant, error)
}

type seasonResolver interface {
	Current(ctx context.Context) (*models.Season, error)
}

type memberReader interface {
	Exists(ctx context.Context, studentID string) (bool, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.BackboneMember, error)
}

type departmentReader interface {
	ListManagedNames(ctx context.Context, studentID string) ([]string, error)
	FindByName(ctx context.Context, name string) (*models.Department, error)
}

// SubmitApplyRequest is the applicant-facing submission payload. Year, type
// and round count are derived from the open season, never trusted from the
// client.
type SubmitApplyRequest struct {
	RecruitmentType models.RecruitmentType `json:"recruitment_type" validate:"omitempty,oneof=new_student internal_election"`

	Name      string  `json:"name" validate:"required"`
	Gender    string  `json:"gender" validate:"required"`
	College   string  `json:"college" validate:"required"`
	Major     string  `json:"major" validate:"required"`
	Grade     string  `json:"grade" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	QQ        *string `json:"qq,omitempty"`
	Dormitory *string `json:"dormitory,omitempty"`

	IntentionDept1 string  `json:"intention_dept1" validate:"required"`
	IntentionDept2 *string `json:"intention_dept2,omitempty"`

	CurrentPosition  *string `json:"current_position,omitempty"`
	ElectionPosition *string `json:"election_position,omitempty"`
	WorkPlan         *string `json:"work_plan,omitempty"`

	SelfIntro        *string  `json:"self_intro,omitempty"`
	PastExperience   *string  `json:"past_experience,omitempty"`
	ReasonForJoining string   `json:"reason_for_joining" validate:"required,min=20"`
	SkillTags        []string `json:"skill_tags,omitempty"`
}

// RecruitmentService handles applicant intake and read projections.
type RecruitmentService struct {
	applicants applicantRepository
	seasons    seasonResolver
	members    memberReader
	depts      departmentReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRecruitmentService constructs RecruitmentService.
func NewRecruitmentService(applicants applicantRepository, seasons seasonResolver, members memberReader, depts departmentReader, validate *validator.Validate, logger *zap.Logger) *RecruitmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecruitmentService{applicants: applicants, seasons: seasons, members: members, depts: depts, validator: validate, logger: logger}
}

// SubmitApply accepts a submission against the currently open season.
func (s *RecruitmentService) SubmitApply(ctx context.Context, studentID string, req SubmitApplyRequest) (*models.Applicant, error) {
	season, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve current season")
	}
	if season == nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no recruitment season is open")
	}
	if req.RecruitmentType != "" && req.RecruitmentType != season.Type {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only "+string(season.Type)+" applications are open")
	}

	isMember, err := s.members.Exists(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if isMember {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "already a team member")
	}

	exists, err := s.applicants.ExistsForYear(ctx, season.Year, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing application")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an application for this year already exists")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}
	if season.Type == models.RecruitmentInternalElection {
		if emptyText(req.CurrentPosition) || emptyText(req.ElectionPosition) || emptyText(req.WorkPlan) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "election applications require current position, election position and work plan")
		}
	}

	if err := s.checkDepartment(ctx, req.IntentionDept1); err != nil {
		return nil, err
	}
	if req.IntentionDept2 != nil && !emptyText(req.IntentionDept2) {
		if err := s.checkDepartment(ctx, *req.IntentionDept2); err != nil {
			return nil, err
		}
	}

	applicant := &models.Applicant{
		Year:            season.Year,
		RecruitmentType: season.Type,
		InterviewRounds: season.Type.InterviewRounds(),
		StudentID:       studentID,

		Name:      req.Name,
		Gender:    req.Gender,
		College:   req.College,
		Major:     req.Major,
		Grade:     req.Grade,
		Phone:     req.Phone,
		Email:     req.Email,
		QQ:        req.QQ,
		Dormitory: req.Dormitory,

		IntentionDept1: req.IntentionDept1,
		IntentionDept2: req.IntentionDept2,

		CurrentPosition:  req.CurrentPosition,
		ElectionPosition: req.ElectionPosition,
		WorkPlan:         req.WorkPlan,

		SelfIntro:        req.SelfIntro,
		PastExperience:   req.PastExperience,
		ReasonForJoining: req.ReasonForJoining,
		SkillTags:        pq.StringArray(req.SkillTags),

		Status: models.StatusPendingReview,
	}

	if err := s.applicants.Create(ctx, applicant); err != nil {
		// The unique index on (year, student_id) is the authority on
		// duplicates; the existence check above only narrows the window.
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an application for this year already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	s.logger.Info("application submitted",
		zap.String("student_id", studentID),
		zap.Int("year", season.Year),
		zap.String("type", string(season.Type)))
	return applicant, nil
}

// AdminPage returns the full applicant listing for administrators. The year
// defaults to the current season's when unspecified.
func (s *RecruitmentService) AdminPage(ctx context.Context, filter models.ApplicantFilter) ([]models.ApplicantDetail, *models.Pagination, error) {
	year, err := s.resolveYear(ctx, filter.Year)
	if err != nil {
		return nil, nil, err
	}
	filter.Year = year

	applicants, total, err := s.applicants.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applicants")
	}
	return applicants, paginationFor(filter.Page, filter.PageSize, total), nil
}

// DepartmentApplicants restricts the listing to applicants whose first-choice
// department is one the caller leads or manages. Managing no departments
// yields an empty page, not an error.
func (s *RecruitmentService) DepartmentApplicants(ctx context.Context, adminStudentID string, filter models.ApplicantFilter) ([]models.ApplicantDetail, *models.Pagination, error) {
	year, err := s.resolveYear(ctx, filter.Year)
	if err != nil {
		return nil, nil, err
	}
	filter.Year = year

	depts, err := s.depts.ListManagedNames(ctx, adminStudentID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve managed departments")
	}
	if len(depts) == 0 {
		return []models.ApplicantDetail{}, paginationFor(filter.Page, filter.PageSize, 0), nil
	}
	filter.IntentionDepts = depts

	applicants, total, err := s.applicants.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list department applicants")
	}
	return applicants, paginationFor(filter.Page, filter.PageSize, total), nil
}

// MyApplicationResult pairs the applicant's own record with the member role
// the assignment may have created.
type MyApplicationResult struct {
	Application *models.Applicant      `json:"application"`
	MemberRole  *models.BackboneMember `json:"member_role,omitempty"`
}

// MyApplication returns the caller's own application for a year, defaulting
// to the current season's year.
func (s *RecruitmentService) MyApplication(ctx context.Context, studentID string, year int) (*MyApplicationResult, error) {
	resolved, err := s.resolveYear(ctx, year)
	if err != nil {
		return nil, err
	}

	applicant, err := s.applicants.FindByYearAndStudent(ctx, resolved, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no application for this year")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}

	result := &MyApplicationResult{Application: applicant}
	if applicant.Status == models.StatusAssigned {
		if member, err := s.members.FindByStudentID(ctx, studentID); err == nil {
			result.MemberRole = member
		}
	}
	return result, nil
}

func (s *RecruitmentService) checkDepartment(ctx context.Context, name string) error {
	if _, err := s.depts.FindByName(ctx, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "unknown department: "+name)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify department")
	}
	return nil
}

func (s *RecruitmentService) resolveYear(ctx context.Context, year int) (int, error) {
	if year > 0 {
		return year, nil
	}
	season, err := s.seasons.Current(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve current season")
	}
	if season == nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "specify a year or open a season first")
	}
	return season.Year, nil
}

func paginationFor(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

func emptyText(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}
