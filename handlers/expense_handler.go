package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// ExpenseHandler handles expense recording and settlement endpoints.
type ExpenseHandler struct {
	expenses *models.ExpenseModel
}

func NewExpenseHandler(expenses *models.ExpenseModel) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// CreateExpense handles POST /trips/:id/expenses.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.ExpenseCreate
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenses.CreateExpense(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses handles GET /trips/:id/expenses.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	expenses, err := h.expenses.ListExpenses(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpense handles GET /trips/:id/expenses/:expenseId.
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "expenseId")
	if !ok {
		return
	}

	expense, err := h.expenses.GetExpense(c.Request.Context(), tripID, expenseID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// SettleShare handles POST /trips/:id/expenses/:expenseId/settle. The caller
// settles their own share; repeating the call is a harmless no-op.
func (h *ExpenseHandler) SettleShare(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "expenseId")
	if !ok {
		return
	}

	expense, err := h.expenses.SettleShare(c.Request.Context(), tripID, expenseID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// SettlementProgress handles GET /trips/:id/expenses/:expenseId/progress.
func (h *ExpenseHandler) SettlementProgress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "expenseId")
	if !ok {
		return
	}

	progress, err := h.expenses.SettlementProgress(c.Request.Context(), tripID, expenseID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
