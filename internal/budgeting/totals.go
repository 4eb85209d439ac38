package budgeting

import (
	"fmt"
	"math"
	"time"

	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals folds the line items of a budget into its totals.
//
// All expenses count towards TotalExpenses regardless of their status,
// TotalPaidExpenses only contains the paid ones.
func ComputeTotals(incomes []models.Income, expenses []models.Expense) Totals {
	t := Totals{
		TotalIncomes:      decimal.Zero,
		TotalExpenses:     decimal.Zero,
		TotalPaidExpenses: decimal.Zero,
	}

	for _, income := range incomes {
		t.TotalIncomes = t.TotalIncomes.Add(income.Amount)
	}

	for _, expense := range expenses {
		t.TotalExpenses = t.TotalExpenses.Add(expense.Amount)
		if expense.Status == models.ExpenseStatusPaid {
			t.TotalPaidExpenses = t.TotalPaidExpenses.Add(expense.Amount)
		}
	}

	t.AvailableMoney = t.TotalIncomes.Sub(t.TotalExpenses)
	return t
}

// PercentageUsed returns the share of the incomes that is spent, in percent
// with two decimal places. It is 0 when there are no incomes.
func PercentageUsed(totalIncomes, totalExpenses decimal.Decimal) decimal.Decimal {
	if !totalIncomes.IsPositive() {
		return decimal.Zero
	}

	return totalExpenses.Div(totalIncomes).Mul(hundred).Round(2)
}

// DaysRemaining returns the number of started days until end, never less than 0.
func DaysRemaining(end, now time.Time) int {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}

	return int(math.Ceil(remaining.Hours() / 24))
}

// recalculate recomputes the totals of a budget from its persisted line
// items and stores them on the budget. It must run in the same transaction
// as the change to the line items.
func recalculate(tx *gorm.DB, budgetID uuid.UUID) (models.Budget, Totals, error) {
	var budget models.Budget
	err := tx.First(&budget, "id = ?", budgetID).Error
	if err != nil {
		return models.Budget{}, Totals{}, err
	}

	var incomes []models.Income
	err = tx.Select("amount").Where(&models.Income{BudgetID: budgetID}).Find(&incomes).Error
	if err != nil {
		return models.Budget{}, Totals{}, err
	}

	var expenses []models.Expense
	err = tx.Select("amount", "status").Where(&models.Expense{BudgetID: budgetID}).Find(&expenses).Error
	if err != nil {
		return models.Budget{}, Totals{}, err
	}

	totals := ComputeTotals(incomes, expenses)
	budget.TotalIncomes = totals.TotalIncomes
	budget.TotalExpenses = totals.TotalExpenses
	budget.AvailableMoney = totals.AvailableMoney

	err = tx.Model(&budget).
		Select("TotalIncomes", "TotalExpenses", "AvailableMoney").
		Updates(models.Budget{
			TotalIncomes:   totals.TotalIncomes,
			TotalExpenses:  totals.TotalExpenses,
			AvailableMoney: totals.AvailableMoney,
		}).Error
	if err != nil {
		return models.Budget{}, Totals{}, fmt.Errorf("storing totals for budget %s failed: %w", budgetID, err)
	}

	return budget, totals, nil
}
