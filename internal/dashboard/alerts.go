package dashboard

import (
	"context"
	"time"

	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gorm.io/gorm"
)

// Thresholds of the share of incomes spent that raise a warning.
var (
	warningThreshold = decimal.NewFromInt(50)
	highThreshold    = decimal.NewFromInt(80)
)

// pendingExpenses is the sum and number of the unpaid expenses of a budget.
type pendingExpenses struct {
	Sum   decimal.Decimal
	Count int
}

// pendingByBudget collects the unpaid expenses of the budgets.
func pendingByBudget(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]pendingExpenses, error) {
	var expenses []models.Expense
	err := db.WithContext(ctx).
		Select("budget_id", "amount").
		Where("budget_id IN ?", ids).
		Where(&models.Expense{Status: models.ExpenseStatusPending}).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	pending := make(map[uuid.UUID]pendingExpenses)
	for _, e := range expenses {
		p := pending[e.BudgetID]
		if p.Count == 0 {
			p.Sum = decimal.Zero
		}
		p.Sum = p.Sum.Add(e.Amount)
		p.Count++
		pending[e.BudgetID] = p
	}

	return pending, nil
}

// percentage returns the unrounded share of the incomes that is spent.
func percentage(totalIncomes, totalExpenses decimal.Decimal) decimal.Decimal {
	if !totalIncomes.IsPositive() {
		return decimal.Zero
	}
	return totalExpenses.Div(totalIncomes).Mul(decimal.NewFromInt(100))
}

// budgetAlerts returns the alerts for a budget.
//
// A warning is raised when at least half of the incomes are spent and the
// budget has not ended yet. Unpaid expenses are reported as information.
func budgetAlerts(p *message.Printer, budget models.Budget, pending pendingExpenses, now time.Time) []Alert {
	alerts := []Alert{}

	used := percentage(budget.TotalIncomes, budget.TotalExpenses)
	if used.GreaterThanOrEqual(warningThreshold) && budget.EndDate.After(now) {
		severity := SeverityMedium
		if used.GreaterThanOrEqual(highThreshold) {
			severity = SeverityHigh
		}

		rounded := used.Round(0).IntPart()
		alerts = append(alerts, Alert{
			Type:     AlertTypeWarning,
			Severity: severity,
			Title:    p.Sprintf("Presupuesto '%s' al %d%%", budget.Name, rounded),
			Message:  p.Sprintf("Has consumido %d%% de tu presupuesto", rounded),
			BudgetID: budget.ID,
		})
	}

	if pending.Count > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertTypeInfo,
			Severity: SeverityLow,
			Title:    p.Sprintf("Gastos pendientes de $%v", number.Decimal(pending.Sum.InexactFloat64())),
			Message:  p.Sprintf("Tienes %d facturas marcadas como pendientes de pago", pending.Count),
			BudgetID: budget.ID,
		})
	}

	return alerts
}
