package v1

import (
	"net/http"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsIncomeList)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncome)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", co.OptionsIncomeDetail)
		r.GET("/:id", co.GetIncome)
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func (co Controller) OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [options]
func (co Controller) OptionsIncomeDetail(c *gin.Context) {
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

	_, err = co.Budgets.GetIncome(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create income
// @Description	Adds an income to a budget and updates the totals of the budget
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		201		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			income	body		IncomeCreate	true	"Income"
// @Router			/v1/incomes [post]
func (co Controller) CreateIncome(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var create IncomeCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	income, err := co.Budgets.CreateIncome(c.Request.Context(), user.ID, create.BudgetID, budgeting.IncomeItem{
		Concept: create.Concept,
		Amount:  create.Amount,
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusCreated, IncomeResponse{Data: &data})
}

// @Summary		Get incomes
// @Description	Returns a list of the incomes of the authenticated user, newest first
// @Tags			Incomes
// @Produce		json
// @Success		200		{object}	IncomeListResponse
// @Failure		400		{object}	IncomeListResponse
// @Failure		500		{object}	IncomeListResponse
// @Router			/v1/incomes [get]
// @Param			budget	query	string	false	"Filter by budget ID"
// @Param			offset	query	uint	false	"The offset of the first Income returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Incomes to return. Defaults to 50."
func (co Controller) GetIncomes(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var filter IncomeQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	limit := queryLimit(httputil.GetURLFields(c.Request.URL, filter), filter.Limit)

	incomes, err := co.Budgets.ListIncomes(c.Request.Context(), user.ID, budgetFilter(filter.BudgetID))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Income, 0)
	for _, income := range paginate(incomes, filter.Offset, limit) {
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(incomes)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	IncomeResponse
// @Failure		404	{object}	IncomeResponse
// @Failure		500	{object}	IncomeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [get]
func (co Controller) GetIncome(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	income, err := co.Budgets.GetIncome(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// @Summary		Update income
// @Description	Update an existing income and the totals of its budget. Only values to be updated need to be specified.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var data IncomeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	income, err := co.Budgets.UpdateIncome(c.Request.Context(), user.ID, uri.ID.Google(), data.patch(updateFields))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	r := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &r})
}

// @Summary		Delete income
// @Description	Deletes an income and updates the totals of its budget
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
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

	err = co.Budgets.DeleteIncome(c.Request.Context(), user.ID, uri.ID.Google())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
