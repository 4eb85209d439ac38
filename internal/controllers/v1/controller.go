// Package v1 implements the HTTP handlers for the v1 API.
package v1

import (
	"net/http"

	"github.com/finansmart/backend/internal/auth"
	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/dashboard"
	"github.com/finansmart/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds the dependencies of the handlers.
type Controller struct {
	DB        *gorm.DB
	Budgets   *budgeting.Service
	Dashboard *dashboard.Service
}

// RegisterRoutes registers all v1 routes with the group.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	RegisterRootRoutes(r)
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterIncomeRoutes(r.Group("/incomes"))
	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterDashboardRoutes(r.Group("/dashboard"))
	co.RegisterUserRoutes(r.Group("/users"))
}

// currentUser returns the authenticated user. If there is none, it writes
// the error response.
func currentUser(c *gin.Context) (models.User, bool) {
	user, ok := auth.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{
			Error: auth.ErrMissingToken.Error(),
		})
	}

	return user, ok
}
