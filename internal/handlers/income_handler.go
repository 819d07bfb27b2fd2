package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/money"
	"homebudget/internal/pagination"
	"homebudget/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService   services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// IncomeRequest represents the request payload for creating or replacing an income.
// The description doubles as the income source in reports.
// Amount accepts a JSON number or a decimal string.
type IncomeRequest struct {
	Description string       `json:"description" binding:"max=500"`
	Amount      money.Amount `json:"amount" binding:"positive_amount" swaggertype:"number"`
}

func (r IncomeRequest) input() services.IncomeInput {
	return services.IncomeInput{Description: r.Description, Amount: r.Amount}
}

// CreateIncome records a new income and raises the balance by its amount
// @Summary     Create an income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeRequest true "Income details"
// @Success     201 {object} IncomeResponse "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Database unavailable"
// @Router      /incomes [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateIncome, "income", income.ID, c.ClientIP(),
		map[string]any{"amount": income.Amount.String(), "description": income.Description})

	c.JSON(http.StatusCreated, IncomeResponse{Income: income})
}

// ListIncomes returns the user's incomes, newest first
// @Summary     List incomes
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       amount_min  query number false "Minimum amount"
// @Param       amount_max  query number false "Maximum amount"
// @Param       date_from   query string false "Created at or after (RFC3339 or YYYY-MM-DD)"
// @Param       date_to     query string false "Created at or before (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Income] "Paginated incomes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /incomes [get]
func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseIncomeFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.incomeService.ListIncomes(c.Request.Context(), userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseIncomeFilter(c *gin.Context) (services.IncomeFilter, error) {
	var filter services.IncomeFilter
	var err error

	if filter.MinAmount, err = queryAmount(c, "amount_min"); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = queryAmount(c, "amount_max"); err != nil {
		return filter, err
	}
	if filter.FromDate, err = queryTime(c, "date_from"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = queryEndTime(c, "date_to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// GetIncomeByID handles the retrieval of a specific income
// @Summary     Get income by ID
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     200 {object} IncomeResponse "Income details"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/{id} [get]
func (h *IncomeHandler) GetIncomeByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncomeByID(c.Request.Context(), userID, incomeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeResponse{Income: income})
}

// UpdateIncome replaces an income and moves the balance by the difference
// @Summary     Update income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Income ID"
// @Param       request body IncomeRequest true "Replacement fields"
// @Success     200 {object} IncomeResponse "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), userID, incomeID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateIncome, "income", incomeID, c.ClientIP(),
		map[string]any{"amount": income.Amount.String(), "description": income.Description})

	c.JSON(http.StatusOK, IncomeResponse{Income: income})
}

// DeleteIncome removes an income and takes its amount back off the balance
// @Summary     Delete income
// @Tags        incomes
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     204 "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteIncome, "income", incomeID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
