package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers company-scoped account routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/hierarchy", h.getHierarchy)
		accounts.GET("/validation", h.validateChart)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/ancestors", h.getAncestors)
		accounts.GET("/:accountID/descendants", h.getDescendants)
	}
}

// requestScope extracts the company path parameter and the authenticated
// user, aborting with 401 when no user is present.
func requestScope(c *gin.Context) (companyID, userID string, ok bool) {
	companyID = c.Param("companyID")
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return companyID, userID, ok
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account in the company's chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account number already in use"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), companyID, c.Param("accountID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a paginated list of the company's accounts
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountType query string false "Filter by account type"
// @Param   includeInactive query bool false "Include deactivated accounts"
// @Param   limit query int false "Limit number of results" default(100)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.accountService.ListAccounts(c.Request.Context(), companyID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's details; omitted fields are unchanged
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), companyID, c.Param("accountID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive; history is preserved
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	if err := h.accountService.DeactivateAccount(c.Request.Context(), companyID, accountID, userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate account")
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getHierarchy godoc
// @Summary Get the account hierarchy
// @Description Retrieves the company's chart of accounts as a tree
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Success 200 {array} accounting.AccountNode
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/hierarchy [get]
func (h *accountHandler) getHierarchy(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	tree, err := h.accountService.GetAccountHierarchy(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to build account hierarchy")
		return
	}

	c.JSON(http.StatusOK, tree)
}

// getAncestors godoc
// @Summary Get an account's ancestors
// @Description Walks the parent chain from the account up to its root
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/{accountID}/ancestors [get]
func (h *accountHandler) getAncestors(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	ancestors, err := h.accountService.GetAccountAncestors(c.Request.Context(), companyID, c.Param("accountID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve ancestors")
		return
	}

	list := make([]dto.AccountResponse, len(ancestors))
	for i, a := range ancestors {
		list[i] = dto.ToAccountResponse(&a)
	}
	c.JSON(http.StatusOK, list)
}

// getDescendants godoc
// @Summary Get an account's descendants
// @Description Retrieves every account below the given one in the hierarchy
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/{accountID}/descendants [get]
func (h *accountHandler) getDescendants(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	descendants, err := h.accountService.GetAccountDescendants(c.Request.Context(), companyID, c.Param("accountID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve descendants")
		return
	}

	list := make([]dto.AccountResponse, len(descendants))
	for i, a := range descendants {
		list[i] = dto.ToAccountResponse(&a)
	}
	c.JSON(http.StatusOK, list)
}

// validateChart godoc
// @Summary Validate the chart of accounts
// @Description Runs every account and hierarchy check and reports violations
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Success 200 {object} dto.ChartValidationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/validation [get]
func (h *accountHandler) validateChart(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	resp, err := h.accountService.ValidateChart(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to validate chart of accounts")
		return
	}

	c.JSON(http.StatusOK, resp)
}
