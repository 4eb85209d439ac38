package budgeting

import (
	"time"

	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for budgets created without a currency.
const DefaultCurrency = "COP"

// CategoryInput describes a desired category, either an existing one by ID
// or a category by name.
type CategoryInput struct {
	ID    *uuid.UUID
	Name  string
	Color *string
	Icon  *string
}

// CategoryPatch contains the fields of a category to update. Nil fields
// are left untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

// IncomeItem is an income in the target list of a budget. Items without
// ID are created.
type IncomeItem struct {
	ID      *uuid.UUID
	Concept string
	Amount  decimal.Decimal
}

// ExpenseItem is an expense in the target list of a budget. Items without
// ID are created.
//
// The category is either referenced by CategoryID or resolved from Category.
// When both are set, Category wins.
type ExpenseItem struct {
	ID         *uuid.UUID
	Concept    string
	Amount     decimal.Decimal
	Status     models.ExpenseStatus
	CategoryID *uuid.UUID
	Category   *CategoryInput
}

// BudgetPatch contains the metadata of a budget to update. Nil fields are
// left untouched.
type BudgetPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Currency  *string
}

// BudgetInput is a new budget with its line items.
type BudgetInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Currency  string
	Incomes   []IncomeItem
	Expenses  []ExpenseItem
}

// BudgetReplacement updates the metadata of a budget and replaces its
// line items with the given lists.
type BudgetReplacement struct {
	BudgetPatch
	Incomes  []IncomeItem
	Expenses []ExpenseItem
}

// BudgetFilter selects budgets in ListBudgets.
type BudgetFilter struct {
	Name     string // Glob pattern for the name
	Currency string
	Offset   int
	Limit    int // Negative for no limit
}

// IncomePatch contains the fields of an income to update.
type IncomePatch struct {
	Concept *string
	Amount  *decimal.Decimal
}

// ExpensePatch contains the fields of an expense to update.
type ExpensePatch struct {
	Concept    *string
	Amount     *decimal.Decimal
	Status     *models.ExpenseStatus
	CategoryID *uuid.UUID
}

// Totals are the values derived from the line items of a budget.
type Totals struct {
	TotalIncomes      decimal.Decimal
	TotalExpenses     decimal.Decimal
	AvailableMoney    decimal.Decimal
	TotalPaidExpenses decimal.Decimal
}
