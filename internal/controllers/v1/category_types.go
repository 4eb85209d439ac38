package v1

import (
	"fmt"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string  `json:"name" binding:"max=100" example:"Mercado"`                           // Name of the category, unique per user
	Color *string `json:"color" binding:"omitempty,hexcolor" example:"#22c55e"`               // Color of the category as hex string
	Icon  *string `json:"icon" binding:"omitempty,max=50" example:"shopping-cart" default:""` // Icon of the category
}

func (editable CategoryEditable) input() budgeting.CategoryInput {
	return budgeting.CategoryInput{
		Name:  editable.Name,
		Color: editable.Color,
		Icon:  editable.Icon,
	}
}

// patch returns the patch for the fields that are set in the request body.
func (editable CategoryEditable) patch(updateFields []string) budgeting.CategoryPatch {
	var patch budgeting.CategoryPatch

	if slices.Contains(updateFields, "Name") {
		patch.Name = &editable.Name
	}

	if slices.Contains(updateFields, "Color") {
		patch.Color = editable.Color
	}

	if slices.Contains(updateFields, "Icon") {
		patch.Icon = editable.Icon
	}

	return patch
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The category itself
	Expenses string `json:"expenses" example:"https://example.com/v1/expenses?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Expenses with this category
}

type Category struct {
	models.Category
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		Category: model,
		Links: CategoryLinks{
			Self:     fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Offset uint `form:"offset"` // The offset of the first Category returned. Defaults to 0.
	Limit  int  `form:"limit"`  // Maximum number of Categories to return. Defaults to 50.
}
