package v1

import (
	"net/http"
	"time"

	"github.com/finansmart/backend/internal/dashboard"
	"github.com/finansmart/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", co.OptionsDashboardSummary)
	r.GET("/summary", co.GetDashboardSummary)
}

type DashboardQuery struct {
	Month *int `form:"month" binding:"omitempty,min=1,max=12" example:"6"` // Month of the summary, 1 to 12. Defaults to the current month.
	Year  *int `form:"year" binding:"omitempty,min=1" example:"2025"`      // Year of the summary. Defaults to the current year.
}

// period returns the month and year of the query, defaulting to the
// month of now.
func (q DashboardQuery) period(now time.Time) (int, int) {
	month, year := int(now.Month()), now.Year()

	if q.Month != nil {
		month = *q.Month
	}

	if q.Year != nil {
		year = *q.Year
	}

	return month, year
}

type DashboardResponse struct {
	Data  *dashboard.Summary `json:"data"`                                                                                // The dashboard summary
	Error *string            `json:"error" example:"the query string contains unparseable data. Please check the values"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard/summary [options]
func (co Controller) OptionsDashboardSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Dashboard summary
// @Description	Returns the totals, expenses by category, trend, active budgets, recent transactions and alerts for a month
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardResponse
// @Failure		400		{object}	DashboardResponse
// @Failure		500		{object}	DashboardResponse
// @Param			month	query		int	false	"Month, 1 to 12. Defaults to the current month."
// @Param			year	query		int	false	"Year. Defaults to the current year."
// @Router			/v1/dashboard/summary [get]
func (co Controller) GetDashboardSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var query DashboardQuery
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	month, year := query.period(time.Now())

	summary, err := co.Dashboard.Summary(c.Request.Context(), user.ID, month, year)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &summary})
}
