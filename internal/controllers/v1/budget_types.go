package v1

import (
	"fmt"
	"time"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetCreate contains the parameters for a new budget with its line items.
type BudgetCreate struct {
	Name      string          `json:"name" binding:"required,max=255" example:"Diciembre"`                  // Name of the budget
	StartDate time.Time       `json:"startDate" binding:"required" example:"2025-12-01T00:00:00Z"`          // First day of the budget
	EndDate   time.Time       `json:"endDate" binding:"required" example:"2025-12-31T00:00:00Z"`            // Last day of the budget
	Currency  string          `json:"currency" binding:"omitempty,oneof=COP USD EUR MXN ARS" example:"COP"` // Currency of the budget. Defaults to COP.
	Incomes   []BudgetIncome  `json:"incomes" binding:"dive"`                                               // Incomes of the budget
	Expenses  []BudgetExpense `json:"expenses" binding:"dive"`                                              // Expenses of the budget
}

func (b BudgetCreate) input() budgeting.BudgetInput {
	return budgeting.BudgetInput{
		Name:      b.Name,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Currency:  b.Currency,
		Incomes:   incomeItems(b.Incomes),
		Expenses:  expenseItems(b.Expenses),
	}
}

// BudgetEditable represents all user configurable metadata of a budget.
type BudgetEditable struct {
	Name      string    `json:"name" binding:"max=255" example:"Diciembre"`                           // Name of the budget
	StartDate time.Time `json:"startDate" example:"2025-12-01T00:00:00Z"`                             // First day of the budget
	EndDate   time.Time `json:"endDate" example:"2025-12-31T00:00:00Z"`                               // Last day of the budget
	Currency  string    `json:"currency" binding:"omitempty,oneof=COP USD EUR MXN ARS" example:"COP"` // Currency of the budget
}

func (editable BudgetEditable) patch(updateFields []string) budgeting.BudgetPatch {
	var patch budgeting.BudgetPatch

	if slices.Contains(updateFields, "Name") {
		patch.Name = &editable.Name
	}

	if slices.Contains(updateFields, "StartDate") {
		patch.StartDate = &editable.StartDate
	}

	if slices.Contains(updateFields, "EndDate") {
		patch.EndDate = &editable.EndDate
	}

	if slices.Contains(updateFields, "Currency") {
		patch.Currency = &editable.Currency
	}

	return patch
}

// BudgetReplace contains the metadata to update and the complete lists of
// line items of a budget. Line items missing from the lists are deleted.
type BudgetReplace struct {
	Name      string          `json:"name" binding:"max=255" example:"Diciembre"`                           // Name of the budget
	StartDate time.Time       `json:"startDate" example:"2025-12-01T00:00:00Z"`                             // First day of the budget
	EndDate   time.Time       `json:"endDate" example:"2025-12-31T00:00:00Z"`                               // Last day of the budget
	Currency  string          `json:"currency" binding:"omitempty,oneof=COP USD EUR MXN ARS" example:"COP"` // Currency of the budget
	Incomes   []BudgetIncome  `json:"incomes" binding:"dive"`                                               // All incomes of the budget
	Expenses  []BudgetExpense `json:"expenses" binding:"dive"`                                              // All expenses of the budget
}

func (b BudgetReplace) replacement(updateFields []string) budgeting.BudgetReplacement {
	return budgeting.BudgetReplacement{
		BudgetPatch: BudgetEditable{
			Name:      b.Name,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Currency:  b.Currency,
		}.patch(updateFields),
		Incomes:  incomeItems(b.Incomes),
		Expenses: expenseItems(b.Expenses),
	}
}

func incomeItems(incomes []BudgetIncome) []budgeting.IncomeItem {
	items := make([]budgeting.IncomeItem, 0, len(incomes))
	for _, income := range incomes {
		items = append(items, income.item())
	}
	return items
}

func expenseItems(expenses []BudgetExpense) []budgeting.ExpenseItem {
	items := make([]budgeting.ExpenseItem, 0, len(expenses))
	for _, expense := range expenses {
		items = append(items, expense.item())
	}
	return items
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/budgets/1e777d24-3f5b-4c43-8000-04f65f895578"`             // The budget itself
	Incomes  string `json:"incomes" example:"https://example.com/v1/incomes?budget=1e777d24-3f5b-4c43-8000-04f65f895578"`   // Incomes of the budget
	Expenses string `json:"expenses" example:"https://example.com/v1/expenses?budget=1e777d24-3f5b-4c43-8000-04f65f895578"` // Expenses of the budget
}

type Budget struct {
	models.Budget
	Links BudgetLinks `json:"links"`

	// These fields are computed
	TotalPaidExpenses decimal.Decimal   `json:"totalPaidExpenses" swaggertype:"number" example:"300"` // Sum of the paid expenses
	PercentageUsed    decimal.Decimal   `json:"percentageUsed" swaggertype:"number" example:"50.25"`  // Share of the incomes that is spent, in percent
	DaysRemaining     int               `json:"daysRemaining" example:"12"`                           // Days until the end of the budget, 0 if it has ended
	IncomesCount      int               `json:"incomesCount" example:"2"`                             // Number of incomes
	ExpensesCount     int               `json:"expensesCount" example:"5"`                            // Number of expenses
	Incomes           []Income          `json:"incomes"`                                              // Incomes of the budget
	Expenses          []Expense         `json:"expenses"`                                             // Expenses of the budget
	Categories        []models.Category `json:"categories"`                                           // Categories used by the expenses
}

func newBudget(c *gin.Context, model models.Budget, now time.Time) Budget {
	url := c.GetString(string(models.DBContextURL))

	budget := Budget{
		Budget: model,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Incomes:  fmt.Sprintf("%s/v1/incomes?budget=%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?budget=%s", url, model.ID),
		},
		TotalPaidExpenses: budgeting.ComputeTotals(model.Incomes, model.Expenses).TotalPaidExpenses,
		PercentageUsed:    budgeting.PercentageUsed(model.TotalIncomes, model.TotalExpenses),
		DaysRemaining:     budgeting.DaysRemaining(model.EndDate, now),
		IncomesCount:      len(model.Incomes),
		ExpensesCount:     len(model.Expenses),
		Incomes:           make([]Income, 0, len(model.Incomes)),
		Expenses:          make([]Expense, 0, len(model.Expenses)),
		Categories:        make([]models.Category, 0),
	}

	for _, income := range model.Incomes {
		budget.Incomes = append(budget.Incomes, newIncome(c, income))
	}

	seen := make(map[uuid.UUID]bool)
	for _, expense := range model.Expenses {
		budget.Expenses = append(budget.Expenses, newExpense(c, expense))

		if expense.Category.ID == uuid.Nil || seen[expense.Category.ID] {
			continue
		}
		seen[expense.Category.ID] = true
		budget.Categories = append(budget.Categories, expense.Category)
	}

	return budget
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of Budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetQueryFilter struct {
	Name     string `form:"name"`                                                   // By name, supports * as wildcard
	Currency string `form:"currency" binding:"omitempty,oneof=COP USD EUR MXN ARS"` // By currency
	Offset   uint   `form:"offset"`                                                 // The offset of the first Budget returned. Defaults to 0.
	Limit    int    `form:"limit"`                                                  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) filter(limit int) budgeting.BudgetFilter {
	return budgeting.BudgetFilter{
		Name:     f.Name,
		Currency: f.Currency,
		Offset:   int(f.Offset),
		Limit:    limit,
	}
}
