package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus is the state of a budget relative to the current time.
type BudgetStatus string

const (
	BudgetStatusActive    BudgetStatus = "ACTIVO"
	BudgetStatusPlanned   BudgetStatus = "PLANIFICADO"
	BudgetStatusCompleted BudgetStatus = "COMPLETADO"
)

// order returns the position of the status in the list of active budgets.
func (s BudgetStatus) order() int {
	switch s {
	case BudgetStatusActive:
		return 0
	case BudgetStatusPlanned:
		return 1
	default:
		return 2
	}
}

type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction states shown in the list of recent transactions.
const (
	TransactionStatusCompleted = "Completado"
	TransactionStatusPending   = "Pendiente"
)

type AlertType string

const (
	AlertTypeWarning AlertType = "warning"
	AlertTypeInfo    AlertType = "info"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Defaults for expenses whose category cannot be found.
const (
	UncategorizedName  = "Sin categoría"
	UncategorizedColor = "#6b7280"
)

type Period struct {
	Month int `json:"month" example:"12"`
	Year  int `json:"year" example:"2025"`
}

// Totals are the income and expense sums of all budgets in the month.
//
// The changes are percentages relative to the previous month. They are
// null when the previous month has no total to compare with.
type Totals struct {
	TotalIncome         decimal.Decimal `json:"totalIncome" example:"1000"`
	TotalIncomeChange   *int64          `json:"totalIncomeChange" example:"25"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses" example:"500"`
	TotalExpensesChange *int64          `json:"totalExpensesChange" example:"-10"`
	Available           decimal.Decimal `json:"available" example:"500"`
}

type CategoryExpenses struct {
	CategoryID    uuid.UUID       `json:"categoryId" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`
	CategoryName  string          `json:"categoryName" example:"Vivienda"`
	CategoryColor string          `json:"categoryColor" example:"#10b981"`
	CategoryIcon  *string         `json:"categoryIcon" example:"home"`
	Total         decimal.Decimal `json:"total" example:"400"`
	Percentage    int64           `json:"percentage" example:"80"`
	Count         int64           `json:"count" example:"2"`
}

type TrendPoint struct {
	Month  string          `json:"month" example:"Dic"`
	Year   int             `json:"year" example:"2025"`
	Amount decimal.Decimal `json:"amount" example:"500"`
}

type ActiveBudget struct {
	ID             uuid.UUID       `json:"id" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Name           string          `json:"name" example:"Diciembre"`
	Status         BudgetStatus    `json:"status" example:"ACTIVO"`
	StartDate      time.Time       `json:"startDate" example:"2025-12-01T00:00:00Z"`
	EndDate        time.Time       `json:"endDate" example:"2025-12-31T00:00:00Z"`
	TotalIncome    decimal.Decimal `json:"totalIncome" example:"1000"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses" example:"500"`
	PercentageUsed int64           `json:"percentageUsed" example:"50"`
	DaysRemaining  int             `json:"daysRemaining" example:"12"`
}

type RecentTransaction struct {
	ID            uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Type          TransactionType `json:"type" example:"expense"`
	Category      string          `json:"category" example:"Vivienda"`
	CategoryIcon  *string         `json:"categoryIcon" example:"home"`
	CategoryColor *string         `json:"categoryColor" example:"#10b981"`
	Amount        decimal.Decimal `json:"amount" example:"-400"`
	Status        string          `json:"status" example:"Completado"`
	CreatedAt     time.Time       `json:"createdAt" example:"2025-12-03T10:00:00Z"`
	TimeAgo       string          `json:"timeAgo" example:"Hace 2h"`
}

type Alert struct {
	Type     AlertType `json:"type" example:"warning"`
	Severity Severity  `json:"severity" example:"high"`
	Title    string    `json:"title" example:"Presupuesto 'Diciembre' al 85%"`
	Message  string    `json:"message" example:"Has consumido 85% de tu presupuesto"`
	BudgetID uuid.UUID `json:"budgetId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
}

// Summary is the dashboard of a user for one month.
type Summary struct {
	Period             Period              `json:"period"`
	Summary            Totals              `json:"summary"`
	ExpensesByCategory []CategoryExpenses  `json:"expensesByCategory"`
	MonthlyTrend       []TrendPoint        `json:"monthlyTrend"`
	ActiveBudgets      []ActiveBudget      `json:"activeBudgets"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
	Alerts             []Alert             `json:"alerts"`
}
