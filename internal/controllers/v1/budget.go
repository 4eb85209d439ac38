package v1

import (
	"net/http"
	"time"

	"github.com/finansmart/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PUT("/:id", co.ReplaceBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func (co Controller) OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
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

	_, err = co.Budgets.GetBudget(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPutPatchDelete(c)
}

// @Summary		Create budget
// @Description	Creates a new budget with its incomes and expenses. Categories referenced by name are created if they do not exist.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetCreate	true	"Budget"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var create BudgetCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	budget, err := co.Budgets.CreateBudget(c.Request.Context(), user.ID, create.input())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, budget, time.Now())
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		Get budgets
// @Description	Returns a list of the budgets of the authenticated user, newest first
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetListResponse
// @Failure		400			{object}	BudgetListResponse
// @Failure		500			{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name		query	string	false	"Filter by name, * matches any characters"
// @Param			currency	query	string	false	"Filter by currency"
// @Param			offset		query	uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Budgets to return. Defaults to 50."
func (co Controller) GetBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var filter BudgetQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	limit := queryLimit(httputil.GetURLFields(c.Request.URL, filter), filter.Limit)

	budgets, total, err := co.Budgets.ListBudgets(c.Request.Context(), user.ID, filter.filter(limit))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	now := time.Now()
	data := make([]Budget, 0)
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget, now))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(total),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget with its incomes, expenses and their categories
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	budget, err := co.Budgets.GetBudget(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, budget, time.Now())
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Replace budget
// @Description	Updates the metadata of a budget and synchronizes its line items with the lists in the request. Line items without ID are created, line items missing from the lists are deleted.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetReplace	true	"Budget"
// @Router			/v1/budgets/{id} [put]
func (co Controller) ReplaceBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetReplace{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var data BudgetReplace
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	budget, err := co.Budgets.ReplaceBudget(c.Request.Context(), user.ID, uri.ID.Google(), data.replacement(updateFields))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	r := newBudget(c, budget, time.Now())
	c.JSON(http.StatusOK, BudgetResponse{Data: &r})
}

// @Summary		Update budget
// @Description	Update the metadata of an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	budget, err := co.Budgets.UpdateBudget(c.Request.Context(), user.ID, uri.ID.Google(), data.patch(updateFields))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	r := newBudget(c, budget, time.Now())
	c.JSON(http.StatusOK, BudgetResponse{Data: &r})
}

// @Summary		Delete budget
// @Description	Deletes a budget with all of its incomes and expenses
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
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

	err = co.Budgets.DeleteBudget(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
