package v1

import (
	"fmt"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/models"
	ez_uuid "github.com/finansmart/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CategoryReference references the category of an expense, either by ID or
// by name. A name that does not exist yet creates the category.
type CategoryReference struct {
	ID    *uuid.UUID `json:"id" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`       // ID of an existing category
	Name  string     `json:"name" binding:"max=100" example:"Mercado"`                // Name of the category
	Color *string    `json:"color" binding:"omitempty,hexcolor" example:"#22c55e"`    // Color of the category as hex string
	Icon  *string    `json:"icon" binding:"omitempty,max=50" example:"shopping-cart"` // Icon of the category
}

func (r *CategoryReference) input() *budgeting.CategoryInput {
	if r == nil {
		return nil
	}

	return &budgeting.CategoryInput{
		ID:    r.ID,
		Name:  r.Name,
		Color: r.Color,
		Icon:  r.Icon,
	}
}

// BudgetIncome is an income in the income list of a budget.
type BudgetIncome struct {
	ID      *uuid.UUID      `json:"id" example:"3f5c9e44-0c2f-4f6b-9d8c-1a2b3c4d5e6f"`    // ID of an existing income. Incomes without ID are created.
	Concept string          `json:"concept" binding:"required,max=255" example:"Salario"` // What the income is for
	Amount  decimal.Decimal `json:"amount" swaggertype:"number" example:"3500000"`        // Amount, must be greater than 0
}

func (i BudgetIncome) item() budgeting.IncomeItem {
	return budgeting.IncomeItem{
		ID:      i.ID,
		Concept: i.Concept,
		Amount:  i.Amount,
	}
}

// BudgetExpense is an expense in the expense list of a budget.
type BudgetExpense struct {
	ID         *uuid.UUID           `json:"id" example:"8a0f2e4c-5b6d-4e7f-8a9b-0c1d2e3f4a5b"`            // ID of an existing expense. Expenses without ID are created.
	Concept    string               `json:"concept" binding:"required,max=255" example:"Arriendo"`        // What the expense is for
	Amount     decimal.Decimal      `json:"amount" swaggertype:"number" example:"1200000"`                // Amount, must be greater than 0
	Status     models.ExpenseStatus `json:"status" binding:"omitempty,oneof=PENDING PAID" example:"PAID"` // Status of the expense. New expenses default to PENDING, existing ones keep their status.
	CategoryID *uuid.UUID           `json:"categoryId" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`    // ID of the category. Ignored if category is set.
	Category   *CategoryReference   `json:"category"`                                                     // Category to use or create
}

func (e BudgetExpense) item() budgeting.ExpenseItem {
	return budgeting.ExpenseItem{
		ID:         e.ID,
		Concept:    e.Concept,
		Amount:     e.Amount,
		Status:     e.Status,
		CategoryID: e.CategoryID,
		Category:   e.Category.input(),
	}
}

// IncomeCreate contains the parameters for a new income.
type IncomeCreate struct {
	BudgetID uuid.UUID       `json:"budgetId" binding:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // ID of the budget
	Concept  string          `json:"concept" binding:"required,max=255" example:"Salario"`                       // What the income is for
	Amount   decimal.Decimal `json:"amount" swaggertype:"number" example:"3500000"`                              // Amount, must be greater than 0
}

// IncomeEditable represents all user configurable parameters of an income.
type IncomeEditable struct {
	Concept string          `json:"concept" binding:"max=255" example:"Salario"`   // What the income is for
	Amount  decimal.Decimal `json:"amount" swaggertype:"number" example:"3500000"` // Amount, must be greater than 0
}

func (editable IncomeEditable) patch(updateFields []string) budgeting.IncomePatch {
	var patch budgeting.IncomePatch

	if slices.Contains(updateFields, "Concept") {
		patch.Concept = &editable.Concept
	}

	if slices.Contains(updateFields, "Amount") {
		patch.Amount = &editable.Amount
	}

	return patch
}

// ExpenseCreate contains the parameters for a new expense.
type ExpenseCreate struct {
	BudgetID   uuid.UUID            `json:"budgetId" binding:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // ID of the budget
	Concept    string               `json:"concept" binding:"required,max=255" example:"Arriendo"`                      // What the expense is for
	Amount     decimal.Decimal      `json:"amount" swaggertype:"number" example:"1200000"`                              // Amount, must be greater than 0
	Status     models.ExpenseStatus `json:"status" binding:"omitempty,oneof=PENDING PAID" example:"PENDING"`            // Status of the expense. Defaults to PENDING.
	CategoryID *uuid.UUID           `json:"categoryId" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`                  // ID of the category. Ignored if category is set.
	Category   *CategoryReference   `json:"category"`                                                                   // Category to use or create
}

func (e ExpenseCreate) item() budgeting.ExpenseItem {
	return budgeting.ExpenseItem{
		Concept:    e.Concept,
		Amount:     e.Amount,
		Status:     e.Status,
		CategoryID: e.CategoryID,
		Category:   e.Category.input(),
	}
}

// ExpenseEditable represents all user configurable parameters of an expense.
type ExpenseEditable struct {
	Concept    string               `json:"concept" binding:"max=255" example:"Arriendo"`                 // What the expense is for
	Amount     decimal.Decimal      `json:"amount" swaggertype:"number" example:"1200000"`                // Amount, must be greater than 0
	Status     models.ExpenseStatus `json:"status" binding:"omitempty,oneof=PENDING PAID" example:"PAID"` // Status of the expense
	CategoryID *uuid.UUID           `json:"categoryId" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`    // ID of the category
}

func (editable ExpenseEditable) patch(updateFields []string) budgeting.ExpensePatch {
	var patch budgeting.ExpensePatch

	if slices.Contains(updateFields, "Concept") {
		patch.Concept = &editable.Concept
	}

	if slices.Contains(updateFields, "Amount") {
		patch.Amount = &editable.Amount
	}

	if slices.Contains(updateFields, "Status") {
		patch.Status = &editable.Status
	}

	if slices.Contains(updateFields, "CategoryID") {
		patch.CategoryID = editable.CategoryID
	}

	return patch
}

type IncomeLinks struct {
	Self   string `json:"self" example:"https://example.com/v1/incomes/3f5c9e44-0c2f-4f6b-9d8c-1a2b3c4d5e6f"`   // The income itself
	Budget string `json:"budget" example:"https://example.com/v1/budgets/1e777d24-3f5b-4c43-8000-04f65f895578"` // The budget of the income
}

type Income struct {
	models.Income
	Links IncomeLinks `json:"links"`
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	return Income{
		Income: model,
		Links: IncomeLinks{
			Self:   fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
			Budget: fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
		},
	}
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/expenses/8a0f2e4c-5b6d-4e7f-8a9b-0c1d2e3f4a5b"`       // The expense itself
	Budget   string `json:"budget" example:"https://example.com/v1/budgets/1e777d24-3f5b-4c43-8000-04f65f895578"`      // The budget of the expense
	Category string `json:"category" example:"https://example.com/v1/categories/dafd9a74-6aeb-46b9-9f5a-cfca624fea85"` // The category of the expense
}

type Expense struct {
	models.Expense
	Category *models.Category `json:"category"` // The category of the expense
	Links    ExpenseLinks     `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	expense := Expense{
		Expense: model,
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Budget:   fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}

	if model.Category.ID != uuid.Nil {
		category := model.Category
		expense.Category = &category
	}

	return expense
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the Income
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                          // List of Incomes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the Expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of Expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type IncomeQueryFilter struct {
	BudgetID ez_uuid.UUID `form:"budget"` // By ID of the Budget
	Offset   uint         `form:"offset"` // The offset of the first Income returned. Defaults to 0.
	Limit    int          `form:"limit"`  // Maximum number of Incomes to return. Defaults to 50.
}

type ExpenseQueryFilter struct {
	BudgetID   ez_uuid.UUID         `form:"budget"`                                        // By ID of the Budget
	CategoryID ez_uuid.UUID         `form:"category"`                                      // By ID of the Category
	Status     models.ExpenseStatus `form:"status" binding:"omitempty,oneof=PENDING PAID"` // By status
	Offset     uint                 `form:"offset"`                                        // The offset of the first Expense returned. Defaults to 0.
	Limit      int                  `form:"limit"`                                         // Maximum number of Expenses to return. Defaults to 50.
}

// budgetFilter returns the budget to filter by, nil for all budgets.
func budgetFilter(id ez_uuid.UUID) *uuid.UUID {
	if id == ez_uuid.Nil {
		return nil
	}

	u := id.Google()
	return &u
}
