package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/repository"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
)

type reviewRepository interface {
	ReviewStage(ctx context.Context, params models.ReviewStageParams, source models.ApplicantStatus, targets map[int]models.ApplicantStatus) ([]string, error)
	AssignFinal(ctx context.Context, params models.AssignFinalParams) ([]string, error)
}

// ReviewStageRequest is the batch review payload.
type ReviewStageRequest struct {
	Year       int      `json:"year" validate:"required,gte=2000,lte=2100"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,required"`
	Stage      int      `json:"stage" validate:"required,oneof=1 2"`
	Pass       *bool    `json:"pass" validate:"required"`
	Remark     *string  `json:"remark,omitempty"`
}

// AssignFinalRequest is the batch assignment payload.
type AssignFinalRequest struct {
	Year       int      `json:"year" validate:"required,gte=2000,lte=2100"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,required"`
	Department string   `json:"department" validate:"required"`
	Position   string   `json:"position,omitempty"`
}

// ReviewService advances applicants through review stages and the terminal
// assignment.
type ReviewService struct {
	repo            reviewRepository
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPosition string
}

// NewReviewService constructs ReviewService.
func NewReviewService(repo reviewRepository, validate *validator.Validate, logger *zap.Logger, defaultPosition string) *ReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPosition == "" {
		defaultPosition = "队员"
	}
	return &ReviewService{repo: repo, validator: validate, logger: logger, defaultPosition: defaultPosition}
}

// ReviewStage applies one stage outcome to a batch of applicants. Targets
// come from the status transition table; rows in any other state than the
// stage's legal source are left untouched and reported as missing.
func (s *ReviewService) ReviewStage(ctx context.Context, reviewerID string, req ReviewStageRequest) (*models.ReviewStageResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	source, ok := models.ReviewSourceStatus(req.Stage)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported review stage")
	}

	pass := *req.Pass
	targets := make(map[int]models.ApplicantStatus, 2)
	for rounds := 1; rounds <= 2; rounds++ {
		if next, legal := models.NextReviewStatus(source, req.Stage, pass, rounds); legal {
			targets[rounds] = next
		}
	}

	params := models.ReviewStageParams{
		Year:       req.Year,
		StudentIDs: req.StudentIDs,
		Stage:      req.Stage,
		Pass:       pass,
		ReviewerID: reviewerID,
		Remark:     req.Remark,
	}
	updated, err := s.repo.ReviewStage(ctx, params, source, targets)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply review")
	}

	result := &models.ReviewStageResult{
		Updated: len(updated),
		Missing: missingIDs(req.StudentIDs, updated),
	}
	s.logger.Info("stage review applied",
		zap.String("reviewer", reviewerID),
		zap.Int("year", req.Year),
		zap.Int("stage", req.Stage),
		zap.Bool("pass", pass),
		zap.Int("updated", result.Updated),
		zap.Int("missing", len(result.Missing)))
	return result, nil
}

// AssignFinal promotes a batch of pending_assignment applicants into member
// roles. All writes share one transaction: either every eligible applicant
// in the batch is promoted and granted a role, or none is.
func (s *ReviewService) AssignFinal(ctx context.Context, adminID string, req AssignFinalRequest) (*models.AssignFinalResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	position := req.Position
	if position == "" {
		position = s.defaultPosition
	}

	params := models.AssignFinalParams{
		Year:       req.Year,
		StudentIDs: req.StudentIDs,
		Department: req.Department,
		Position:   position,
		AssignerID: adminID,
	}
	assigned, err := s.repo.AssignFinal(ctx, params)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found: "+req.Department)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "assignment failed, no applicant was modified")
	}

	result := &models.AssignFinalResult{
		Assigned: len(assigned),
		Missing:  missingIDs(req.StudentIDs, assigned),
	}
	s.logger.Info("final assignment applied",
		zap.String("assigner", adminID),
		zap.Int("year", req.Year),
		zap.String("department", req.Department),
		zap.String("position", position),
		zap.Int("assigned", result.Assigned))
	return result, nil
}

// missingIDs returns the requested ids that were not touched, preserving
// request order and collapsing duplicates.
func missingIDs(requested, touched []string) []string {
	touchedSet := make(map[string]struct{}, len(touched))
	for _, id := range touched {
		touchedSet[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(requested))
	var missing []string
	for _, id := range requested {
		if _, ok := touchedSet[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}
