package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/service"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/response"
)

// SeasonHandler exposes recruitment season endpoints.
type SeasonHandler struct {
	seasons *service.SeasonService
}

// NewSeasonHandler constructs SeasonHandler.
func NewSeasonHandler(seasons *service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasons: seasons}
}

// Current godoc
// @Summary Get the currently open recruitment season
// @Tags Seasons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /recruitment-seasons/current [get]
func (h *SeasonHandler) Current(c *gin.Context) {
	season, err := h.seasons.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, season, nil)
}

// List godoc
// @Summary List recruitment seasons
// @Tags Seasons
// @Produce json
// @Param search query string false "Filter by title"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /recruitment-seasons [get]
func (h *SeasonHandler) List(c *gin.Context) {
	var filter models.SeasonFilter
	filter.Search = c.Query("search")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	seasons, pagination, err := h.seasons.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, seasons, pagination)
}

// Open godoc
// @Summary Open or reopen a recruitment season
// @Tags Seasons
// @Accept json
// @Produce json
// @Param payload body service.OpenSeasonRequest true "Season payload"
// @Success 200 {object} response.Envelope
// @Router /recruitment-seasons/open [post]
func (h *SeasonHandler) Open(c *gin.Context) {
	var req service.OpenSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	season, err := h.seasons.Open(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, season, nil)
}

type seasonKeyRequest struct {
	Year int                    `json:"year"`
	Type models.RecruitmentType `json:"type"`
}

// Close godoc
// @Summary Close one recruitment season
// @Tags Seasons
// @Accept json
// @Produce json
// @Param payload body seasonKeyRequest true "Season key"
// @Success 204 "closed"
// @Router /recruitment-seasons/close [post]
func (h *SeasonHandler) Close(c *gin.Context) {
	var req seasonKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.seasons.Close(c.Request.Context(), req.Year, req.Type); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CloseAll godoc
// @Summary Close every recruitment season
// @Tags Seasons
// @Produce json
// @Success 204 "closed"
// @Router /recruitment-seasons/close-all [post]
func (h *SeasonHandler) CloseAll(c *gin.Context) {
	if err := h.seasons.CloseAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a closed recruitment season
// @Tags Seasons
// @Produce json
// @Param year query int true "Season year"
// @Param type query string true "Season type"
// @Success 204 "deleted"
// @Router /recruitment-seasons [delete]
func (h *SeasonHandler) Delete(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
		return
	}
	if err := h.seasons.Delete(c.Request.Context(), year, models.RecruitmentType(c.Query("type"))); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
