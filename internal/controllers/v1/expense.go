package v1

import (
	"net/http"

	"github.com/finansmart/backend/internal/httputil"
	"github.com/finansmart/backend/internal/models"
	ez_uuid "github.com/finansmart/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func (co Controller) OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.Budgets.GetExpense(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create expense
// @Description	Adds an expense to a budget and updates the totals of the budget. Categories referenced by name are created if they do not exist.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			expense	body		ExpenseCreate	true	"Expense"
// @Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var create ExpenseCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	expense, err := co.Budgets.CreateExpense(c.Request.Context(), user.ID, create.BudgetID, create.item())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusCreated, ExpenseResponse{Data: &data})
}

// @Summary		Get expenses
// @Description	Returns a list of the expenses of the authenticated user, newest first
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseListResponse
// @Failure		400		{object}	ExpenseListResponse
// @Failure		500		{object}	ExpenseListResponse
// @Router			/v1/expenses [get]
// @Param			budget		query	string	false	"Filter by budget ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			status		query	string	false	"Filter by status"
// @Param			offset		query	uint	false	"The offset of the first Expense returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Expenses to return. Defaults to 50."
func (co Controller) GetExpenses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var filter ExpenseQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	limit := queryLimit(httputil.GetURLFields(c.Request.URL, filter), filter.Limit)

	expenses, err := co.Budgets.ListExpenses(c.Request.Context(), user.ID, budgetFilter(filter.BudgetID))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	matching := make([]models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if filter.CategoryID != ez_uuid.Nil && expense.CategoryID != filter.CategoryID.Google() {
			continue
		}

		if filter.Status != "" && expense.Status != filter.Status {
			continue
		}
		matching = append(matching, expense)
	}

	data := make([]Expense, 0)
	for _, expense := range paginate(matching, filter.Offset, limit) {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matching)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Failure		500	{object}	ExpenseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	expense, err := co.Budgets.GetExpense(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Update expense
// @Description	Update an existing expense and the totals of its budget. Only values to be updated need to be specified.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	expense, err := co.Budgets.UpdateExpense(c.Request.Context(), user.ID, uri.ID.Google(), data.patch(updateFields))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	r := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &r})
}

// @Summary		Delete expense
// @Description	Deletes an expense and updates the totals of its budget
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.Budgets.DeleteExpense(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
