package v1

import (
	"fmt"
	"net/http"

	"github.com/finansmart/backend/internal/httputil"
	"github.com/finansmart/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for the authenticated user with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/me", co.OptionsMe)
	r.GET("/me", co.GetMe)
	r.PATCH("/me", co.UpdateMe)
}

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name string `json:"name" binding:"required,max=255" example:"Ana"` // Display name of the user
}

type UserLinks struct {
	Self       string `json:"self" example:"https://example.com/v1/users/me"`         // The user itself
	Categories string `json:"categories" example:"https://example.com/v1/categories"` // Categories of the user
	Budgets    string `json:"budgets" example:"https://example.com/v1/budgets"`       // Budgets of the user
}

type User struct {
	models.User
	Categories []models.Category `json:"categories"` // Categories of the user
	Links      UserLinks         `json:"links"`
}

func (co Controller) newUser(c *gin.Context, model models.User) (User, error) {
	url := c.GetString(string(models.DBContextURL))

	categories, err := co.Budgets.ListCategories(c.Request.Context(), model.ID)
	if err != nil {
		return User{}, err
	}

	return User{
		User:       model,
		Categories: categories,
		Links: UserLinks{
			Self:       fmt.Sprintf("%s/v1/users/me", url),
			Categories: fmt.Sprintf("%s/v1/categories", url),
			Budgets:    fmt.Sprintf("%s/v1/budgets", url),
		},
	}, nil
}

type UserResponse struct {
	Data  *User   `json:"data"`                             // Data for the User
	Error *string `json:"error" example:"Name is required"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/me [options]
func (co Controller) OptionsMe(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get authenticated user
// @Description	Returns the authenticated user with its categories
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	UserResponse
// @Router			/v1/users/me [get]
func (co Controller) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	data, err := co.newUser(c, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update authenticated user
// @Description	Updates the name of the authenticated user. Email and identity are managed by the identity provider.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/me [patch]
func (co Controller) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var editable UserEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	user.Name = editable.Name
	err = co.DB.WithContext(c.Request.Context()).Model(&user).Update("name", user.Name).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data, err := co.newUser(c, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &data})
}
