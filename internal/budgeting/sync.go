package budgeting

import (
	"fmt"

	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncResult counts the changes a synchronization made.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
}

// Changed reports if the synchronization changed any rows.
func (r SyncResult) Changed() bool {
	return r.Created+r.Updated+r.Deleted > 0
}

// lineItem is a target line item of type M for a budget.
type lineItem[M any] interface {
	// identity returns the ID of the item and true if the item refers to an existing row
	identity() (uuid.UUID, bool)

	// row returns a new row for the item
	row(budgetID uuid.UUID) M

	// apply writes the item to the row and reports if anything changed
	apply(row *M) bool
}

// syncLineItems reconciles the rows of type M for a budget with the target
// items. Rows not referenced by any item are deleted, rows referenced by an
// item are updated and items without ID are created, in that order.
//
// Items referencing a row that does not belong to the budget are an error.
// Rows that would not change are not written, which makes repeated calls
// with the same items a no-op.
func syncLineItems[M any, I lineItem[M]](tx *gorm.DB, budgetID uuid.UUID, items []I) (SyncResult, error) {
	var result SyncResult

	var current []uuid.UUID
	err := tx.Model(new(M)).Where("budget_id = ?", budgetID).Pluck("id", &current).Error
	if err != nil {
		return SyncResult{}, err
	}

	var keep []uuid.UUID
	var updates, creates []I
	for _, item := range items {
		id, ok := item.identity()
		if !ok {
			creates = append(creates, item)
			continue
		}

		keep = append(keep, id)
		updates = append(updates, item)
	}

	var remove []uuid.UUID
	for _, id := range current {
		if !slices.Contains(keep, id) {
			remove = append(remove, id)
		}
	}

	if len(remove) > 0 {
		err = tx.Where("budget_id = ? AND id IN ?", budgetID, remove).Delete(new(M)).Error
		if err != nil {
			return SyncResult{}, err
		}
		result.Deleted = len(remove)
	}

	for _, item := range updates {
		id, _ := item.identity()

		var row M
		err = tx.Where("budget_id = ?", budgetID).First(&row, "id = ?", id).Error
		if err != nil {
			return SyncResult{}, err
		}

		if !item.apply(&row) {
			continue
		}

		err = tx.Omit(clause.Associations).Save(&row).Error
		if err != nil {
			return SyncResult{}, err
		}
		result.Updated++
	}

	for _, item := range creates {
		row := item.row(budgetID)
		err = tx.Omit(clause.Associations).Create(&row).Error
		if err != nil {
			return SyncResult{}, err
		}
		result.Created++
	}

	return result, nil
}

func (i IncomeItem) identity() (uuid.UUID, bool) {
	if i.ID == nil || *i.ID == uuid.Nil {
		return uuid.Nil, false
	}
	return *i.ID, true
}

func (i IncomeItem) row(budgetID uuid.UUID) models.Income {
	return models.Income{
		BudgetID: budgetID,
		Concept:  i.Concept,
		Amount:   i.Amount,
	}
}

func (i IncomeItem) apply(row *models.Income) bool {
	if row.Concept == i.Concept && row.Amount.Equal(i.Amount) {
		return false
	}

	row.Concept = i.Concept
	row.Amount = i.Amount
	return true
}

// resolvedExpense is an ExpenseItem with its category resolved to an ID.
type resolvedExpense struct {
	ExpenseItem
	categoryID uuid.UUID
}

func (e resolvedExpense) identity() (uuid.UUID, bool) {
	if e.ID == nil || *e.ID == uuid.Nil {
		return uuid.Nil, false
	}
	return *e.ID, true
}

func (e resolvedExpense) row(budgetID uuid.UUID) models.Expense {
	status := e.Status
	if status == "" {
		status = models.ExpenseStatusPending
	}

	return models.Expense{
		BudgetID:   budgetID,
		CategoryID: e.categoryID,
		Concept:    e.Concept,
		Amount:     e.Amount,
		Status:     status,
	}
}

// apply keeps the status of the row when the item has none.
func (e resolvedExpense) apply(row *models.Expense) bool {
	status := row.Status
	if e.Status != "" {
		status = e.Status
	}

	if row.Concept == e.Concept && row.Amount.Equal(e.Amount) && row.CategoryID == e.categoryID && row.Status == status {
		return false
	}

	row.Concept = e.Concept
	row.Amount = e.Amount
	row.CategoryID = e.categoryID
	row.Status = status
	return true
}

// syncIncomes reconciles the incomes of a budget with the target list.
func syncIncomes(tx *gorm.DB, budgetID uuid.UUID, items []IncomeItem) (SyncResult, error) {
	for _, item := range items {
		if err := validateAmount(item.Amount); err != nil {
			return SyncResult{}, err
		}
	}

	return syncLineItems[models.Income](tx, budgetID, items)
}

// syncExpenses resolves the categories of the target expenses for the user
// and reconciles the expenses of the budget with them.
func syncExpenses(tx *gorm.DB, userID, budgetID uuid.UUID, items []ExpenseItem) (SyncResult, error) {
	resolved := make([]resolvedExpense, 0, len(items))
	for _, item := range items {
		if err := validateExpense(item.Amount, item.Status); err != nil {
			return SyncResult{}, err
		}

		categoryID, err := expenseCategory(tx, userID, item)
		if err != nil {
			return SyncResult{}, fmt.Errorf("resolving category for expense '%s' failed: %w", item.Concept, err)
		}

		resolved = append(resolved, resolvedExpense{ExpenseItem: item, categoryID: categoryID})
	}

	return syncLineItems[models.Expense](tx, budgetID, resolved)
}

// expenseCategory returns the ID of the category for an expense item.
func expenseCategory(tx *gorm.DB, userID uuid.UUID, item ExpenseItem) (uuid.UUID, error) {
	if item.Category != nil {
		category, err := resolveCategory(tx, userID, *item.Category)
		if err != nil {
			return uuid.Nil, err
		}
		return category.ID, nil
	}

	if item.CategoryID == nil || *item.CategoryID == uuid.Nil {
		return uuid.Nil, ErrCategoryRequired
	}

	err := checkCategoryOwner(tx, userID, *item.CategoryID)
	if err != nil {
		return uuid.Nil, err
	}

	return *item.CategoryID, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

func validateExpense(amount decimal.Decimal, status models.ExpenseStatus) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	switch status {
	case "", models.ExpenseStatusPending, models.ExpenseStatusPaid:
		return nil
	}
	return ErrInvalidStatus
}
