package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/period"
	"homebudget/internal/reports"
	"homebudget/internal/services"
)

// AnalyticsHandler serves period summaries.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// parseSummaryQuery reads period, date_from and date_to. The name is only
// checked when no dates are given, since explicit dates take precedence.
func parseSummaryQuery(c *gin.Context) (period.Query, error) {
	from, err := queryTime(c, "date_from")
	if err != nil {
		return period.Query{}, err
	}
	to, err := queryTime(c, "date_to")
	if err != nil {
		return period.Query{}, err
	}
	return period.Query{Name: c.Query("period"), From: from, To: to}, nil
}

func (h *AnalyticsHandler) summary(c *gin.Context) (*services.Summary, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}

	q, err := parseSummaryQuery(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), userID, q)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	return summary, true
}

// GetSummary returns totals and breakdowns for a period
// @Summary     Analytics summary
// @Description Totals, spend by category and income by source for a named period
// @Description (this_month, last_month, this_quarter, last_quarter, this_year, last_year)
// @Description or an explicit date_from/date_to pair. Defaults to last_month.
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       period    query string false "Named period"
// @Param       date_from query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       date_to   query string false "Range end, inclusive (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid period or range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Database unavailable"
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, ok := h.summary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportSummary returns the same summary as an xlsx workbook
// @Summary     Export analytics summary
// @Tags        analytics
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       period    query string false "Named period"
// @Param       date_from query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       date_to   query string false "Range end, inclusive (RFC3339 or YYYY-MM-DD)"
// @Success     200 {file} file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid period or range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/summary/export [get]
func (h *AnalyticsHandler) ExportSummary(c *gin.Context) {
	summary, ok := h.summary(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteSummary(&buf, summary); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reports.Filename(summary)))
	c.Data(http.StatusOK, reports.ContentType, buf.Bytes())
}
