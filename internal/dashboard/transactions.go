package dashboard

import (
	"context"
	"time"

	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// expensesByCategory groups the expenses of the budgets by their category.
//
// Groups are sorted by their total, largest first. The percentage is the
// share of the group in the sum of all expenses, rounded to an integer.
func expensesByCategory(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]CategoryExpenses, error) {
	var expenses []models.Expense
	err := db.WithContext(ctx).
		Select("category_id", "amount").
		Where("budget_id IN ?", ids).
		Order("created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	groups := []CategoryExpenses{}
	index := make(map[uuid.UUID]int)
	total := decimal.Zero

	for _, e := range expenses {
		i, ok := index[e.CategoryID]
		if !ok {
			i = len(groups)
			index[e.CategoryID] = i
			groups = append(groups, CategoryExpenses{CategoryID: e.CategoryID, Total: decimal.Zero})
		}

		groups[i].Total = groups[i].Total.Add(e.Amount)
		groups[i].Count++
		total = total.Add(e.Amount)
	}

	if len(groups) == 0 {
		return groups, nil
	}

	var categories []models.Category
	err = db.WithContext(ctx).Where("id IN ?", categoryIDs(groups)).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for i := range groups {
		groups[i].CategoryName = UncategorizedName
		groups[i].CategoryColor = UncategorizedColor

		if c, ok := byID[groups[i].CategoryID]; ok {
			groups[i].CategoryName = c.Name
			if c.Color != nil && *c.Color != "" {
				groups[i].CategoryColor = *c.Color
			}
			if c.Icon != nil && *c.Icon != "" {
				groups[i].CategoryIcon = c.Icon
			}
		}

		if total.IsPositive() {
			groups[i].Percentage = groups[i].Total.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		}
	}

	slices.SortStableFunc(groups, func(a, b CategoryExpenses) int {
		return b.Total.Cmp(a.Total)
	})

	return groups, nil
}

func categoryIDs(groups []CategoryExpenses) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.CategoryID)
	}
	return ids
}

// recentTransactions merges the latest expenses and incomes of the budgets,
// newest first. Expenses have negative amounts.
func recentTransactions(ctx context.Context, db *gorm.DB, ids []uuid.UUID, now time.Time) ([]RecentTransaction, error) {
	var expenses []models.Expense
	err := db.WithContext(ctx).
		Preload("Category").
		Where("budget_id IN ?", ids).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	var incomes []models.Income
	err = db.WithContext(ctx).
		Where("budget_id IN ?", ids).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]RecentTransaction, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		status := TransactionStatusPending
		if e.Status == models.ExpenseStatusPaid {
			status = TransactionStatusCompleted
		}

		transactions = append(transactions, RecentTransaction{
			ID:            e.ID,
			Type:          TransactionTypeExpense,
			Category:      e.Category.Name,
			CategoryIcon:  e.Category.Icon,
			CategoryColor: e.Category.Color,
			Amount:        e.Amount.Neg(),
			Status:        status,
			CreatedAt:     e.CreatedAt,
			TimeAgo:       TimeAgo(e.CreatedAt, now),
		})
	}

	for _, i := range incomes {
		transactions = append(transactions, RecentTransaction{
			ID:        i.ID,
			Type:      TransactionTypeIncome,
			Category:  i.Concept,
			Amount:    i.Amount,
			Status:    TransactionStatusCompleted,
			CreatedAt: i.CreatedAt,
			TimeAgo:   TimeAgo(i.CreatedAt, now),
		})
	}

	slices.SortStableFunc(transactions, func(a, b RecentTransaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if len(transactions) > recentLimit {
		transactions = transactions[:recentLimit]
	}

	return transactions, nil
}
