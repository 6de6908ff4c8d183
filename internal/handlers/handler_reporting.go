package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/dto"
	"github.com/praxio/fundledger/internal/middleware"
)

const asOfLayout = "2006-01-02"

// reportingHandler handles HTTP requests for balance reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers balance reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/accounts/:accountID/balance", h.getAccountBalance)
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// parseAsOf reads the asOf query parameter, defaulting to today. End of
// day is used so entries dated on the asOf date are included.
func parseAsOf(c *gin.Context) (time.Time, error) {
	asOfStr := c.Query("asOf")
	if asOfStr == "" {
		return time.Now().UTC(), nil
	}
	asOf, err := time.Parse(asOfLayout, asOfStr)
	if err != nil {
		return time.Time{}, err
	}
	return asOf.Add(24*time.Hour - time.Nanosecond), nil
}

func fundIDParam(c *gin.Context) *string {
	if fundID := c.Query("fundID"); fundID != "" {
		return &fundID
	}
	return nil
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Computes the balance of one account from posted activity up to the asOf date
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Param asOf query string false "Balance date (YYYY-MM-DD, default today)"
// @Param fundID query string false "Restrict to one fund"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/accounts/{accountID}/balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}
	fundID := fundIDParam(c)

	balance, err := h.reportingService.GetAccountBalance(c.Request.Context(), accountID, asOf, fundID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute account balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(&balance, c.Query("fundID")))
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Computes the trial balance as of a date. Total debits always equal total credits.
// @Tags reports
// @Produce json
// @Param asOf query string false "Balance date (YYYY-MM-DD, default today)"
// @Param fundID query string false "Restrict to one fund"
// @Param accountType query string false "Restrict to one account type"
// @Param category query string false "Restrict to one category"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}
	fundID := fundIDParam(c)
	filter := domain.TrialBalanceFilter{
		AccountType: domain.AccountType(c.Query("accountType")),
		Category:    c.Query("category"),
	}

	rows, err := h.reportingService.GetTrialBalance(c.Request.Context(), asOf, fundID, filter)
	if err != nil {
		logger.Error("Failed to get trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf, c.Query("fundID")))
}
