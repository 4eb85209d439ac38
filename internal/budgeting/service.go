// Package budgeting keeps budgets, their line items and their categories
// consistent.
//
// Every operation that changes the line items of a budget recomputes the
// totals of the budget in the same transaction.
package budgeting

import (
	"context"
	"time"

	"github.com/finansmart/backend/internal/events"
	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service implements the operations on budgets, line items and categories.
type Service struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

// NewService returns a Service using db for persistence. Events are
// published to publisher after the changes are committed.
func NewService(db *gorm.DB, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}

	return &Service{
		db:     db,
		events: publisher,
		now:    time.Now,
	}
}

// publish sends a change event for a budget.
func (s *Service) publish(ctx context.Context, action events.Action, budget models.Budget) {
	s.events.Publish(ctx, events.BudgetChanged{
		BudgetID:       budget.ID,
		UserID:         budget.UserID,
		Action:         action,
		TotalIncomes:   budget.TotalIncomes,
		TotalExpenses:  budget.TotalExpenses,
		AvailableMoney: budget.AvailableMoney,
		OccurredAt:     s.now().UTC(),
	})
}

// ownedBudget returns the budget if it belongs to the user.
func ownedBudget(tx *gorm.DB, userID, budgetID uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := tx.Where(&models.Budget{UserID: userID}).First(&budget, "id = ?", budgetID).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

func validateDates(start, end time.Time) error {
	if end.Before(start) {
		return ErrDateRange
	}
	return nil
}

// CreateBudget creates a budget with its line items and computes its totals.
func (s *Service) CreateBudget(ctx context.Context, userID uuid.UUID, in BudgetInput) (models.Budget, error) {
	if err := validateDates(in.StartDate, in.EndDate); err != nil {
		return models.Budget{}, err
	}

	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		budget = models.Budget{
			UserID:         userID,
			Name:           in.Name,
			StartDate:      in.StartDate,
			EndDate:        in.EndDate,
			Currency:       currency,
			TotalIncomes:   decimal.Zero,
			TotalExpenses:  decimal.Zero,
			AvailableMoney: decimal.Zero,
		}

		err := tx.Omit(clause.Associations).Create(&budget).Error
		if err != nil {
			return err
		}

		_, err = syncIncomes(tx, budget.ID, in.Incomes)
		if err != nil {
			return err
		}

		_, err = syncExpenses(tx, userID, budget.ID, in.Expenses)
		if err != nil {
			return err
		}

		budget, _, err = recalculate(tx, budget.ID)
		return err
	})
	if err != nil {
		return models.Budget{}, err
	}

	s.publish(ctx, events.ActionCreated, budget)
	return s.GetBudget(ctx, userID, budget.ID)
}

// applyPatch writes the set fields of the patch to the budget.
func applyPatch(budget *models.Budget, patch BudgetPatch) error {
	if patch.Name != nil {
		budget.Name = *patch.Name
	}

	if patch.StartDate != nil {
		budget.StartDate = *patch.StartDate
	}

	if patch.EndDate != nil {
		budget.EndDate = *patch.EndDate
	}

	if patch.Currency != nil && *patch.Currency != "" {
		budget.Currency = *patch.Currency
	}

	return validateDates(budget.StartDate, budget.EndDate)
}

// ReplaceBudget updates the metadata of a budget and synchronizes its line
// items with the lists in the replacement. The whole operation is one
// transaction, a failure leaves the budget unchanged.
func (s *Service) ReplaceBudget(ctx context.Context, userID, budgetID uuid.UUID, in BudgetReplacement) (models.Budget, error) {
	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		budget, err = ownedBudget(tx, userID, budgetID)
		if err != nil {
			return err
		}

		err = applyPatch(&budget, in.BudgetPatch)
		if err != nil {
			return err
		}

		err = tx.Model(&budget).Select("Name", "StartDate", "EndDate", "Currency").Updates(budget).Error
		if err != nil {
			return err
		}

		_, err = syncIncomes(tx, budget.ID, in.Incomes)
		if err != nil {
			return err
		}

		_, err = syncExpenses(tx, userID, budget.ID, in.Expenses)
		if err != nil {
			return err
		}

		budget, _, err = recalculate(tx, budget.ID)
		return err
	})
	if err != nil {
		return models.Budget{}, err
	}

	s.publish(ctx, events.ActionReplaced, budget)
	return s.GetBudget(ctx, userID, budget.ID)
}

// UpdateBudget updates the metadata of a budget. Totals are not touched.
func (s *Service) UpdateBudget(ctx context.Context, userID, budgetID uuid.UUID, patch BudgetPatch) (models.Budget, error) {
	budget, err := ownedBudget(s.db.WithContext(ctx), userID, budgetID)
	if err != nil {
		return models.Budget{}, err
	}

	err = applyPatch(&budget, patch)
	if err != nil {
		return models.Budget{}, err
	}

	err = s.db.WithContext(ctx).Model(&budget).Select("Name", "StartDate", "EndDate", "Currency").Updates(budget).Error
	if err != nil {
		return models.Budget{}, err
	}

	s.publish(ctx, events.ActionUpdated, budget)
	return s.GetBudget(ctx, userID, budget.ID)
}

// DeleteBudget deletes a budget with all of its line items.
func (s *Service) DeleteBudget(ctx context.Context, userID, budgetID uuid.UUID) error {
	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		budget, err = ownedBudget(tx, userID, budgetID)
		if err != nil {
			return err
		}

		err = tx.Where(&models.Income{BudgetID: budget.ID}).Delete(&models.Income{}).Error
		if err != nil {
			return err
		}

		err = tx.Where(&models.Expense{BudgetID: budget.ID}).Delete(&models.Expense{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&budget).Error
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.ActionDeleted, budget)
	return nil
}

// GetBudget returns a budget of the user with its incomes and its expenses
// with their categories.
func (s *Service) GetBudget(ctx context.Context, userID, budgetID uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := s.db.WithContext(ctx).
		Preload("Incomes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Expenses.Category").
		Where(&models.Budget{UserID: userID}).
		First(&budget, "id = ?", budgetID).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// ListBudgets returns the budgets of the user matching the filter, newest
// first, and the number of matching budgets before paging.
func (s *Service) ListBudgets(ctx context.Context, userID uuid.UUID, filter BudgetFilter) ([]models.Budget, int, error) {
	db := s.db.WithContext(ctx)

	base := func() *gorm.DB {
		q := db.Model(&models.Budget{}).Where(&models.Budget{UserID: userID})
		if filter.Currency != "" {
			q = q.Where("currency = ?", filter.Currency)
		}
		return q
	}

	preloaded := func(q *gorm.DB) *gorm.DB {
		return q.
			Preload("Incomes").
			Preload("Expenses").
			Preload("Expenses.Category").
			Order("created_at DESC, id DESC")
	}

	budgets := []models.Budget{}

	if filter.Name == "" {
		var total int64
		err := base().Count(&total).Error
		if err != nil {
			return nil, 0, err
		}

		q := preloaded(base()).Limit(filter.Limit)
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}

		err = q.Find(&budgets).Error
		if err != nil {
			return nil, 0, err
		}

		return budgets, int(total), nil
	}

	// Names are matched in Go as glob patterns are not portable between SQL dialects
	var candidates []models.Budget
	err := base().Select("id", "name").Order("created_at DESC, id DESC").Find(&candidates).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, budget := range candidates {
		if glob.Glob(filter.Name, budget.Name) {
			ids = append(ids, budget.ID)
		}
	}

	total := len(ids)
	ids = page(ids, filter.Offset, filter.Limit)
	if len(ids) == 0 {
		return budgets, total, nil
	}

	err = preloaded(db).Where("id IN ?", ids).Find(&budgets).Error
	if err != nil {
		return nil, 0, err
	}

	return budgets, total, nil
}

// page returns the part of the list selected by offset and limit.
// A negative limit returns everything after the offset.
func page[T any](list []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}

	if offset >= len(list) {
		return []T{}
	}

	list = list[offset:]
	if limit >= 0 && limit < len(list) {
		list = list[:limit]
	}

	return list
}

// Recalculate recomputes and stores the totals of a budget.
func (s *Service) Recalculate(ctx context.Context, budgetID uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		budget, _, err = recalculate(tx, budgetID)
		return err
	})
	if err != nil {
		return models.Budget{}, err
	}

	s.publish(ctx, events.ActionRecomputed, budget)
	return budget, nil
}
