package dashboard

import (
	"context"

	"github.com/finansmart/backend/internal/models"
	"github.com/finansmart/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// monthTotals are the sums of all line items of the budgets in a month.
type monthTotals struct {
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
}

// budgetsForMonth returns the budgets of the user whose date range
// overlaps with the month.
func budgetsForMonth(ctx context.Context, db *gorm.DB, userID uuid.UUID, month types.Month) ([]models.Budget, error) {
	start, end := month.Window()

	var budgets []models.Budget
	err := db.WithContext(ctx).
		Where(&models.Budget{UserID: userID}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("created_at ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

// budgetIDs returns the IDs of the budgets.
func budgetIDs(budgets []models.Budget) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.ID)
	}
	return ids
}

// sumAmounts adds up the amounts of all rows of the model that belong to
// one of the budgets.
//
// The amounts are summed as decimals since the SQL sum of the drivers
// returns floats.
func sumAmounts(ctx context.Context, db *gorm.DB, model any, ids []uuid.UUID) (decimal.Decimal, error) {
	if len(ids) == 0 {
		return decimal.Zero, nil
	}

	var amounts []decimal.Decimal
	err := db.WithContext(ctx).Model(model).Where("budget_id IN ?", ids).Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Sum(decimal.Zero, amounts...), nil
}

// totalsFor sums up the incomes and expenses of the budgets.
func totalsFor(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (monthTotals, error) {
	incomes, err := sumAmounts(ctx, db, &models.Income{}, ids)
	if err != nil {
		return monthTotals{}, err
	}

	expenses, err := sumAmounts(ctx, db, &models.Expense{}, ids)
	if err != nil {
		return monthTotals{}, err
	}

	return monthTotals{Incomes: incomes, Expenses: expenses}, nil
}

// totalsForMonth sums up the line items of all budgets overlapping the month.
func totalsForMonth(ctx context.Context, db *gorm.DB, userID uuid.UUID, month types.Month) (monthTotals, error) {
	budgets, err := budgetsForMonth(ctx, db, userID, month)
	if err != nil {
		return monthTotals{}, err
	}

	return totalsFor(ctx, db, budgetIDs(budgets))
}
