package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/services"
)

// ExpenseHandler handles expense writes and the merged read views.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	ledgerService  services.LedgerServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, ledgerService services.LedgerServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, ledgerService: ledgerService}
}

// AddExpenseRequest represents the request payload for recording an expense.
type AddExpenseRequest struct {
	Category    string    `json:"category" binding:"max=100"`
	Name        string    `json:"name" binding:"required,min=1,max=100"`
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	Date        time.Time `json:"date"`
	Description string    `json:"description" binding:"max=500"`
}

// EditExpenseRequest represents the request payload for editing an expense.
type EditExpenseRequest struct {
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Amount      *int64     `json:"amount" binding:"omitempty,gt=0"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
}

// AddExpense handles recording an expense against the live budget.
// @Summary     Add expense
// @Description Record an expense and deduct its amount from the live budget
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.AddExpense(userID, req.Category, req.Name, req.Amount, req.Date, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// EditExpense handles updating an expense's fields.
// @Summary     Edit expense
// @Description Update an expense's fields without re-adjusting the budget balance
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Expense ID"
// @Param       request body EditExpenseRequest true "Updated fields"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) EditExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EditExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.EditExpense(userID, expenseID, services.ExpenseUpdateFields{
		Category:    req.Category,
		Name:        req.Name,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles removing an expense and restoring its amount.
// @Summary     Delete expense
// @Description Delete an expense and restore its amount to the live budget
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetLedger handles listing the merged ledger for the live period.
// @Summary     Get ledger
// @Description Get expenses merged with projected subscription occurrences, newest first
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.LedgerEntry "Ledger entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.ledgerService.GetLedger(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": entries})
}

// GetDailySeries handles the per-day spending series for the live period.
// @Summary     Get daily spending
// @Description Get combined spend per calendar day across the full live period
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.DailyTotal "Daily totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/daily [get]
func (h *ExpenseHandler) GetDailySeries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.ledgerService.GetDailySeries(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily": series})
}

// GetCategoryBreakdown handles the per-category spending breakdown.
// @Summary     Get category breakdown
// @Description Get spend per category with percentage shares for the live period
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.CategoryShare "Category shares"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/categories [get]
func (h *ExpenseHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.ledgerService.GetCategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}

// GetExpensesByRange handles listing raw expenses within a date range.
// @Summary     Get expenses by range
// @Description Get raw expenses recorded between two dates, inclusive
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string true "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param       end_date   query string true "Range end (RFC 3339 or YYYY-MM-DD)"
// @Success     200 {array}  models.Expense "Expenses in range"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No expenses in range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/range [get]
func (h *ExpenseHandler) GetExpensesByRange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, err := parseDateParam(c.Query("start_date"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start_date"))
		return
	}
	to, err := parseDateParam(c.Query("end_date"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end_date"))
		return
	}

	expenses, err := h.ledgerService.GetExpensesByRange(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// parseDateParam accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
