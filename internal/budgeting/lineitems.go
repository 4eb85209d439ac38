package budgeting

import (
	"context"

	"github.com/finansmart/backend/internal/events"
	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mutateLineItems runs f in a transaction for a budget of the user and
// recomputes the totals of the budget afterwards.
func (s *Service) mutateLineItems(ctx context.Context, userID, budgetID uuid.UUID, f func(tx *gorm.DB) error) error {
	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ownedBudget(tx, userID, budgetID)
		if err != nil {
			return err
		}

		err = f(tx)
		if err != nil {
			return err
		}

		budget, _, err = recalculate(tx, budgetID)
		return err
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.ActionRecomputed, budget)
	return nil
}

// lineItemBudgets returns a query for the budget IDs of the user.
func lineItemBudgets(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Model(&models.Budget{}).Select("id").Where("user_id = ?", userID)
}

// CreateIncome adds an income to a budget of the user.
func (s *Service) CreateIncome(ctx context.Context, userID, budgetID uuid.UUID, item IncomeItem) (models.Income, error) {
	if err := validateAmount(item.Amount); err != nil {
		return models.Income{}, err
	}

	income := item.row(budgetID)
	err := s.mutateLineItems(ctx, userID, budgetID, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&income).Error
	})
	if err != nil {
		return models.Income{}, err
	}

	return s.GetIncome(ctx, userID, income.ID)
}

// GetIncome returns an income of a budget of the user.
func (s *Service) GetIncome(ctx context.Context, userID, id uuid.UUID) (models.Income, error) {
	db := s.db.WithContext(ctx)

	var income models.Income
	err := db.Where("budget_id IN (?)", lineItemBudgets(db, userID)).First(&income, "id = ?", id).Error
	if err != nil {
		return models.Income{}, err
	}

	return income, nil
}

// ListIncomes returns the incomes of the user, newest first. If budgetID is
// set, only incomes of that budget are returned.
func (s *Service) ListIncomes(ctx context.Context, userID uuid.UUID, budgetID *uuid.UUID) ([]models.Income, error) {
	db := s.db.WithContext(ctx)
	q := db.Where("budget_id IN (?)", lineItemBudgets(db, userID)).Order("created_at DESC")
	if budgetID != nil {
		q = q.Where("budget_id = ?", *budgetID)
	}

	var incomes []models.Income
	err := q.Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	return incomes, nil
}

// UpdateIncome updates an income of the user.
func (s *Service) UpdateIncome(ctx context.Context, userID, id uuid.UUID, patch IncomePatch) (models.Income, error) {
	income, err := s.GetIncome(ctx, userID, id)
	if err != nil {
		return models.Income{}, err
	}

	if patch.Concept != nil {
		income.Concept = *patch.Concept
	}

	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return models.Income{}, err
		}
		income.Amount = *patch.Amount
	}

	err = s.mutateLineItems(ctx, userID, income.BudgetID, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(&income).Error
	})
	if err != nil {
		return models.Income{}, err
	}

	return s.GetIncome(ctx, userID, id)
}

// DeleteIncome deletes an income of the user.
func (s *Service) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	income, err := s.GetIncome(ctx, userID, id)
	if err != nil {
		return err
	}

	return s.mutateLineItems(ctx, userID, income.BudgetID, func(tx *gorm.DB) error {
		return tx.Delete(&income).Error
	})
}

// CreateExpense adds an expense to a budget of the user.
func (s *Service) CreateExpense(ctx context.Context, userID, budgetID uuid.UUID, item ExpenseItem) (models.Expense, error) {
	if err := validateExpense(item.Amount, item.Status); err != nil {
		return models.Expense{}, err
	}

	var expense models.Expense
	err := s.mutateLineItems(ctx, userID, budgetID, func(tx *gorm.DB) error {
		categoryID, err := expenseCategory(tx, userID, item)
		if err != nil {
			return err
		}

		expense = resolvedExpense{ExpenseItem: item, categoryID: categoryID}.row(budgetID)
		return tx.Omit(clause.Associations).Create(&expense).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	return s.GetExpense(ctx, userID, expense.ID)
}

// GetExpense returns an expense of a budget of the user with its category.
func (s *Service) GetExpense(ctx context.Context, userID, id uuid.UUID) (models.Expense, error) {
	db := s.db.WithContext(ctx)

	var expense models.Expense
	err := db.Preload("Category").Where("budget_id IN (?)", lineItemBudgets(db, userID)).First(&expense, "id = ?", id).Error
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// ListExpenses returns the expenses of the user with their categories,
// newest first. If budgetID is set, only expenses of that budget are returned.
func (s *Service) ListExpenses(ctx context.Context, userID uuid.UUID, budgetID *uuid.UUID) ([]models.Expense, error) {
	db := s.db.WithContext(ctx)
	q := db.Preload("Category").Where("budget_id IN (?)", lineItemBudgets(db, userID)).Order("created_at DESC")
	if budgetID != nil {
		q = q.Where("budget_id = ?", *budgetID)
	}

	var expenses []models.Expense
	err := q.Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// UpdateExpense updates an expense of the user.
func (s *Service) UpdateExpense(ctx context.Context, userID, id uuid.UUID, patch ExpensePatch) (models.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, id)
	if err != nil {
		return models.Expense{}, err
	}

	if patch.Concept != nil {
		expense.Concept = *patch.Concept
	}

	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}

	if patch.Status != nil {
		expense.Status = *patch.Status
	}

	if err := validateExpense(expense.Amount, expense.Status); err != nil {
		return models.Expense{}, err
	}

	err = s.mutateLineItems(ctx, userID, expense.BudgetID, func(tx *gorm.DB) error {
		if patch.CategoryID != nil {
			err := checkCategoryOwner(tx, userID, *patch.CategoryID)
			if err != nil {
				return err
			}
			expense.CategoryID = *patch.CategoryID
		}

		return tx.Omit(clause.Associations).Save(&expense).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	return s.GetExpense(ctx, userID, id)
}

// DeleteExpense deletes an expense of the user.
func (s *Service) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	expense, err := s.GetExpense(ctx, userID, id)
	if err != nil {
		return err
	}

	return s.mutateLineItems(ctx, userID, expense.BudgetID, func(tx *gorm.DB) error {
		return tx.Delete(&expense).Error
	})
}
