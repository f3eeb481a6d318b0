package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the derived financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers company-scoped reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlowStatement)
		reports.GET("/equity-statement", h.getEquityStatement)
	}
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Builds the balance sheet as of a date, optionally with a comparative column
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   asOfDate query string true "Report date (YYYY-MM-DD)"
// @Param   comparativeDate query string false "Comparative date (YYYY-MM-DD)"
// @Param   includeZeroBalances query bool false "Keep zero-balance accounts in the sections"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Accounting identity violated"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var query dto.BalanceSheetQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for BalanceSheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	opts := dto.BalanceSheetOptions{
		ComparativeDate:     query.ComparativeDate,
		IncludeZeroBalances: query.IncludeZeroBalances,
	}
	report, err := h.reportingService.GenerateBalanceSheet(c.Request.Context(), companyID, query.AsOfDate, opts, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getCashFlowStatement godoc
// @Summary Generate a cash flow statement
// @Description Builds the indirect-method cash flow statement for a period
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   periodStart query string true "Period start (YYYY-MM-DD)"
// @Param   periodEnd query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowStatementReport
// @Failure 400 {object} map[string]string "Invalid query parameters or period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlowStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for CashFlowStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GenerateCashFlowStatement(c.Request.Context(), companyID, query.PeriodStart, query.PeriodEnd, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate cash flow statement")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getEquityStatement godoc
// @Summary Generate a statement of changes in equity
// @Description Builds the equity statement pivot for a period
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   periodStart query string true "Period start (YYYY-MM-DD)"
// @Param   periodEnd query string true "Period end (YYYY-MM-DD)"
// @Param   consolidated query bool false "Include the non-controlling interest column"
// @Success 200 {object} domain.EquityStatementReport
// @Failure 400 {object} map[string]string "Invalid query parameters or period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/equity-statement [get]
func (h *reportingHandler) getEquityStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var query dto.EquityStatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for EquityStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	opts := dto.EquityStatementOptions{Consolidated: query.Consolidated}
	report, err := h.reportingService.GenerateEquityStatement(c.Request.Context(), companyID, query.PeriodStart, query.PeriodEnd, opts, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate equity statement")
		return
	}

	c.JSON(http.StatusOK, report)
}
