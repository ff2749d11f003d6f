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

// RecruitmentHandler exposes applicant intake, listing, review and assignment
// endpoints.
type RecruitmentHandler struct {
	recruitment *service.RecruitmentService
	reviews     *service.ReviewService
}

// NewRecruitmentHandler constructs RecruitmentHandler.
func NewRecruitmentHandler(recruitment *service.RecruitmentService, reviews *service.ReviewService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitment: recruitment, reviews: reviews}
}

// Submit godoc
// @Summary Submit an application for the open recruitment season
// @Tags Recruitment
// @Accept json
// @Produce json
// @Param payload body service.SubmitApplyRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /recruitment/apply [post]
func (h *RecruitmentHandler) Submit(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	applicant, err := h.recruitment.SubmitApply(c.Request.Context(), claims.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, applicant)
}

// MyApplication godoc
// @Summary Get the caller's own application
// @Tags Recruitment
// @Produce json
// @Param year query int false "Season year, defaults to the open season"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /recruitment/my-application [get]
func (h *RecruitmentHandler) MyApplication(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	year := 0
	if parsed, err := strconv.Atoi(c.Query("year")); err == nil {
		year = parsed
	}

	result, err := h.recruitment.MyApplication(c.Request.Context(), claims.StudentID, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AdminPage godoc
// @Summary List applicants for administrators
// @Tags Recruitment
// @Produce json
// @Param year query int false "Season year, defaults to the open season"
// @Param type query string false "Recruitment type"
// @Param status query string false "Applicant status"
// @Param search query string false "Match name or student id"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /recruitment/applicants [get]
func (h *RecruitmentHandler) AdminPage(c *gin.Context) {
	filter := applicantFilterFromQuery(c)
	applicants, pagination, err := h.recruitment.AdminPage(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicants, pagination)
}

// DepartmentApplicants godoc
// @Summary List applicants whose first choice is a department the caller manages
// @Tags Recruitment
// @Produce json
// @Param year query int false "Season year, defaults to the open season"
// @Param status query string false "Applicant status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /recruitment/department-applicants [get]
func (h *RecruitmentHandler) DepartmentApplicants(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := applicantFilterFromQuery(c)
	applicants, pagination, err := h.recruitment.DepartmentApplicants(c.Request.Context(), claims.StudentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicants, pagination)
}

// Review godoc
// @Summary Apply one interview stage outcome to a batch of applicants
// @Tags Recruitment
// @Accept json
// @Produce json
// @Param payload body service.ReviewStageRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /recruitment/review [post]
func (h *RecruitmentHandler) Review(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ReviewStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.reviews.ReviewStage(c.Request.Context(), claims.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Assign godoc
// @Summary Assign pending applicants into a department as members
// @Tags Recruitment
// @Accept json
// @Produce json
// @Param payload body service.AssignFinalRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /recruitment/assign [post]
func (h *RecruitmentHandler) Assign(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.AssignFinalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.reviews.AssignFinal(c.Request.Context(), claims.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

func applicantFilterFromQuery(c *gin.Context) models.ApplicantFilter {
	var filter models.ApplicantFilter
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}
	filter.Type = models.RecruitmentType(c.Query("type"))
	filter.Status = models.ApplicantStatus(c.Query("status"))
	filter.Search = c.Query("search")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}
