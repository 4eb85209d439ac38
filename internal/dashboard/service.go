// Package dashboard aggregates the budgets of a user into a monthly summary.
package dashboard

import (
	"context"
	"time"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/models"
	"github.com/finansmart/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// DefaultLocale is used to format amounts in alerts.
var DefaultLocale = language.MustParse("es-CO")

const (
	// trendMonths is the number of months in the expense trend, including
	// the requested one.
	trendMonths = 6

	// recentLimit is the number of recent transactions in the summary.
	recentLimit = 5
)

// Service computes dashboard summaries. All its operations are reads.
type Service struct {
	db     *gorm.DB
	locale language.Tag
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLocale sets the locale used to format amounts.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		s.locale = tag
	}
}

// WithClock sets the function returning the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService returns a Service reading from db.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:     db,
		locale: DefaultLocale,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Summary returns the dashboard of the user for a month.
//
// Months outside of 1 to 12 are carried into the adjacent years. The
// reads for the different parts of the summary run concurrently.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, month, year int) (Summary, error) {
	current := types.NormalizeMonth(year, month)
	now := s.now()

	budgets, err := budgetsForMonth(ctx, s.db, userID, current)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Period: Period{
			Month: int(current.Month()),
			Year:  current.Year(),
		},
		Summary: Totals{
			TotalIncome:   decimal.Zero,
			TotalExpenses: decimal.Zero,
			Available:     decimal.Zero,
		},
		ExpensesByCategory: []CategoryExpenses{},
		ActiveBudgets:      []ActiveBudget{},
		RecentTransactions: []RecentTransaction{},
		Alerts:             []Alert{},
	}

	g, gctx := errgroup.WithContext(ctx)

	// The trend does not depend on budgets in the requested month
	g.Go(func() error {
		trend, err := s.trend(gctx, userID, current)
		summary.MonthlyTrend = trend
		return err
	})

	if len(budgets) == 0 {
		if err := g.Wait(); err != nil {
			return Summary{}, err
		}
		return summary, nil
	}

	ids := budgetIDs(budgets)
	var currentTotals, previousTotals monthTotals

	g.Go(func() error {
		var err error
		currentTotals, err = totalsFor(gctx, s.db, ids)
		return err
	})

	g.Go(func() error {
		var err error
		previousTotals, err = totalsForMonth(gctx, s.db, userID, current.AddDate(0, -1))
		return err
	})

	g.Go(func() error {
		var err error
		summary.ExpensesByCategory, err = expensesByCategory(gctx, s.db, ids)
		return err
	})

	g.Go(func() error {
		var err error
		summary.RecentTransactions, err = recentTransactions(gctx, s.db, ids, now)
		return err
	})

	g.Go(func() error {
		pending, err := pendingByBudget(gctx, s.db, ids)
		if err != nil {
			return err
		}

		p := message.NewPrinter(s.locale)
		for _, b := range budgets {
			summary.Alerts = append(summary.Alerts, budgetAlerts(p, b, pending[b.ID], now)...)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary.Summary = Totals{
		TotalIncome:         currentTotals.Incomes,
		TotalIncomeChange:   PercentageChange(previousTotals.Incomes, currentTotals.Incomes),
		TotalExpenses:       currentTotals.Expenses,
		TotalExpensesChange: PercentageChange(previousTotals.Expenses, currentTotals.Expenses),
		Available:           currentTotals.Incomes.Sub(currentTotals.Expenses),
	}

	summary.ActiveBudgets = activeBudgets(budgets, now)
	return summary, nil
}

// PercentageChange returns the change from previous to current in percent,
// rounded to an integer. It is nil when previous is zero.
func PercentageChange(previous, current decimal.Decimal) *int64 {
	if previous.IsZero() {
		return nil
	}

	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return &change
}

// trend returns the expenses of the month and the months before it, oldest first.
func (s *Service) trend(ctx context.Context, userID uuid.UUID, month types.Month) ([]TrendPoint, error) {
	points := make([]TrendPoint, trendMonths)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < trendMonths; i++ {
		m := month.AddDate(0, i-(trendMonths-1))
		g.Go(func() error {
			totals, err := totalsForMonth(gctx, s.db, userID, m)
			if err != nil {
				return err
			}

			points[i] = TrendPoint{
				Month:  m.ShortName(),
				Year:   m.Year(),
				Amount: totals.Expenses,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}

// budgetStatus returns the status of the budget at the time now.
func budgetStatus(b models.Budget, now time.Time) BudgetStatus {
	if b.EndDate.Before(now) {
		return BudgetStatusCompleted
	}

	if b.StartDate.After(now) {
		return BudgetStatusPlanned
	}

	return BudgetStatusActive
}

// activeBudgets maps the budgets of the month to their status, active
// budgets first, then planned and completed ones.
func activeBudgets(budgets []models.Budget, now time.Time) []ActiveBudget {
	active := make([]ActiveBudget, 0, len(budgets))
	for _, b := range budgets {
		active = append(active, ActiveBudget{
			ID:             b.ID,
			Name:           b.Name,
			Status:         budgetStatus(b, now),
			StartDate:      b.StartDate,
			EndDate:        b.EndDate,
			TotalIncome:    b.TotalIncomes,
			TotalExpenses:  b.TotalExpenses,
			PercentageUsed: percentage(b.TotalIncomes, b.TotalExpenses).Round(0).IntPart(),
			DaysRemaining:  budgeting.DaysRemaining(b.EndDate, now),
		})
	}

	slices.SortStableFunc(active, func(a, b ActiveBudget) int {
		return a.Status.order() - b.Status.order()
	})

	return active
}
