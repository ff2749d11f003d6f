package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
)

type seasonRepository interface {
	Current(ctx context.Context) (*models.Season, error)
	List(ctx context.Context, filter models.SeasonFilter) ([]models.Season, int, error)
	Open(ctx context.Context, season *models.Season) error
	FindByKey(ctx context.Context, year int, seasonType models.RecruitmentType) (*models.Season, error)
	Close(ctx context.Context, year int, seasonType models.RecruitmentType) error
	CloseAll(ctx context.Context) error
	Delete(ctx context.Context, year int, seasonType models.RecruitmentType) error
}

// OpenSeasonRequest describes the open/reopen payload.
type OpenSeasonRequest struct {
	Year      int                    `json:"year" validate:"required,gte=2000,lte=2100"`
	Type      models.RecruitmentType `json:"type" validate:"required,oneof=new_student internal_election"`
	Title     string                 `json:"title" validate:"required"`
	StartTime *time.Time             `json:"start_time,omitempty"`
	EndTime   *time.Time             `json:"end_time,omitempty"`
}

// SeasonService manages recruitment season windows.
type SeasonService struct {
	repo      seasonRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSeasonService constructs SeasonService.
func NewSeasonService(repo seasonRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SeasonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeasonService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Current returns the open season, or nil when none is open. The election
// season wins when both types are open. Never an error for "nothing open".
func (s *SeasonService) Current(ctx context.Context) (*models.Season, error) {
	season, err := s.repo.Current(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve current season")
	}
	return season, nil
}

type cachedSeasonList struct {
	Seasons    []models.Season    `json:"seasons"`
	Pagination *models.Pagination `json:"pagination"`
}

// List returns seasons with pagination metadata for the admin view.
func (s *SeasonService) List(ctx context.Context, filter models.SeasonFilter) ([]models.Season, *models.Pagination, error) {
	key := fmt.Sprintf("seasons:list:%d:%d:%s", filter.Page, filter.PageSize, filter.Search)
	var cached cachedSeasonList
	if s.cache.Get(ctx, key, &cached) {
		return cached.Seasons, cached.Pagination, nil
	}

	seasons, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list seasons")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}

	s.cache.Set(ctx, key, cachedSeasonList{Seasons: seasons, Pagination: pagination})
	return seasons, pagination, nil
}

// Open creates or reopens the season for (year, type). Idempotent: reopening
// only refreshes the title and time window.
func (s *SeasonService) Open(ctx context.Context, req OpenSeasonRequest) (*models.Season, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid season payload")
	}
	season := &models.Season{
		Year:      req.Year,
		Type:      req.Type,
		IsOpen:    true,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Open(ctx, season); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open season")
	}
	s.cache.Invalidate(ctx, "seasons:*")

	opened, err := s.repo.FindByKey(ctx, req.Year, req.Type)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load season")
	}
	return opened, nil
}

// Close marks one season closed.
func (s *SeasonService) Close(ctx context.Context, year int, seasonType models.RecruitmentType) error {
	if !seasonType.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown recruitment type")
	}
	if err := s.repo.Close(ctx, year, seasonType); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close season")
	}
	s.cache.Invalidate(ctx, "seasons:*")
	return nil
}

// CloseAll closes every open season.
func (s *SeasonService) CloseAll(ctx context.Context) error {
	if err := s.repo.CloseAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close seasons")
	}
	s.cache.Invalidate(ctx, "seasons:*")
	return nil
}

// Delete removes a season configuration. Open seasons must be closed first.
func (s *SeasonService) Delete(ctx context.Context, year int, seasonType models.RecruitmentType) error {
	if !seasonType.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown recruitment type")
	}
	season, err := s.repo.FindByKey(ctx, year, seasonType)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "season not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load season")
	}
	if season.IsOpen {
		return appErrors.Clone(appErrors.ErrConflict, "close the season before deleting it")
	}
	if err := s.repo.Delete(ctx, year, seasonType); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete season")
	}
	s.cache.Invalidate(ctx, "seasons:*")
	return nil
}
