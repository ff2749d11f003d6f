package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/service"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/response"
)

// ExportHandler streams applicant roster downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Download the applicant roster of a year
// @Tags Recruitment
// @Produce text/csv
// @Produce application/pdf
// @Param year query int false "Season year, defaults to the open season"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /recruitment/export [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	year := 0
	if parsed, err := strconv.Atoi(c.Query("year")); err == nil {
		year = parsed
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.exports.Roster(c.Request.Context(), year, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(200, result.ContentType, result.Payload)
}
