package dashboard_test

import (
	"context"
	"time"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/dashboard"
	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestSummaryEmptyMonth() {
	// Only a budget in March, nothing in June
	suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Marzo",
		StartDate: date(2025, 3, 1),
		EndDate:   date(2025, 3, 31),
		Incomes:   incomes(1000),
		Expenses:  []budgeting.ExpenseItem{expense("Vivienda", 200, models.ExpenseStatusPaid)},
	})

	summary := suite.summary(6, 2025)

	suite.Assert().Equal(dashboard.Period{Month: 6, Year: 2025}, summary.Period)
	suite.Assert().True(summary.Summary.TotalIncome.IsZero())
	suite.Assert().True(summary.Summary.TotalExpenses.IsZero())
	suite.Assert().True(summary.Summary.Available.IsZero())
	suite.Assert().Nil(summary.Summary.TotalIncomeChange)
	suite.Assert().Nil(summary.Summary.TotalExpensesChange)
	suite.Assert().Empty(summary.ActiveBudgets)
	suite.Assert().Empty(summary.ExpensesByCategory)
	suite.Assert().Empty(summary.RecentTransactions)
	suite.Assert().Empty(summary.Alerts)

	suite.Require().Len(summary.MonthlyTrend, 6)
	names := []string{}
	for _, p := range summary.MonthlyTrend {
		names = append(names, p.Month)
		suite.Assert().Equal(2025, p.Year)
	}
	suite.Assert().Equal([]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun"}, names)
	suite.Assert().True(summary.MonthlyTrend[2].Amount.Equal(dec(200)), "March amount is %s", summary.MonthlyTrend[2].Amount)
	suite.Assert().True(summary.MonthlyTrend[5].Amount.IsZero())
}

func (suite *TestSuiteStandard) TestSummaryEmptyListsAreNotNil() {
	summary := suite.summary(6, 2025)

	suite.Assert().NotNil(summary.ActiveBudgets)
	suite.Assert().NotNil(summary.ExpensesByCategory)
	suite.Assert().NotNil(summary.RecentTransactions)
	suite.Assert().NotNil(summary.Alerts)
}

func (suite *TestSuiteStandard) TestSummaryTotals() {
	suite.createTestBudget(budgeting.BudgetInput{
		Incomes: incomes(1000, 500),
		Expenses: []budgeting.ExpenseItem{
			expense("Vivienda", 400, models.ExpenseStatusPaid),
			expense("Comida", 100, models.ExpenseStatusPaid),
		},
	})

	summary := suite.summary(6, 2025)

	suite.Assert().True(summary.Summary.TotalIncome.Equal(dec(1500)), summary.Summary.TotalIncome.String())
	suite.Assert().True(summary.Summary.TotalExpenses.Equal(dec(500)), summary.Summary.TotalExpenses.String())
	suite.Assert().True(summary.Summary.Available.Equal(dec(1000)), summary.Summary.Available.String())

	// No budgets in May
	suite.Assert().Nil(summary.Summary.TotalIncomeChange)
	suite.Assert().Nil(summary.Summary.TotalExpensesChange)
}

func (suite *TestSuiteStandard) TestSummaryPercentageChange() {
	suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Mayo",
		StartDate: date(2025, 5, 1),
		EndDate:   date(2025, 5, 31),
		Incomes:   incomes(500),
		Expenses:  []budgeting.ExpenseItem{expense("Comida", 400, models.ExpenseStatusPaid)},
	})

	suite.createTestBudget(budgeting.BudgetInput{
		Incomes:  incomes(1000),
		Expenses: []budgeting.ExpenseItem{expense("Comida", 300, models.ExpenseStatusPaid)},
	})

	summary := suite.summary(6, 2025)

	suite.Require().NotNil(summary.Summary.TotalIncomeChange)
	suite.Assert().Equal(int64(100), *summary.Summary.TotalIncomeChange)
	suite.Require().NotNil(summary.Summary.TotalExpensesChange)
	suite.Assert().Equal(int64(-25), *summary.Summary.TotalExpensesChange)
}

func (suite *TestSuiteStandard) TestSummaryJanuaryComparesWithDecember() {
	suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Diciembre",
		StartDate: date(2024, 12, 1),
		EndDate:   date(2024, 12, 31),
		Incomes:   incomes(500),
	})

	suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Enero",
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 1, 31),
		Incomes:   incomes(1000),
	})

	summary := suite.summary(1, 2025)

	suite.Require().NotNil(summary.Summary.TotalIncomeChange)
	suite.Assert().Equal(int64(100), *summary.Summary.TotalIncomeChange)
	suite.Assert().Nil(summary.Summary.TotalExpensesChange)

	suite.Require().Len(summary.MonthlyTrend, 6)
	suite.Assert().Equal(dashboard.TrendPoint{Month: "Ago", Year: 2024, Amount: summary.MonthlyTrend[0].Amount}, summary.MonthlyTrend[0])
	suite.Assert().Equal("Dic", summary.MonthlyTrend[4].Month)
	suite.Assert().Equal(2024, summary.MonthlyTrend[4].Year)
	suite.Assert().Equal("Ene", summary.MonthlyTrend[5].Month)
	suite.Assert().Equal(2025, summary.MonthlyTrend[5].Year)
}

func (suite *TestSuiteStandard) TestSummaryWarningAlertHigh() {
	budget := suite.createTestBudget(budgeting.BudgetInput{
		Incomes:  incomes(1000),
		Expenses: []budgeting.ExpenseItem{expense("Vivienda", 850, models.ExpenseStatusPaid)},
	})

	summary := suite.summary(6, 2025)

	suite.Require().Len(summary.Alerts, 1)
	suite.Assert().Equal(dashboard.Alert{
		Type:     dashboard.AlertTypeWarning,
		Severity: dashboard.SeverityHigh,
		Title:    "Presupuesto 'Junio' al 85%",
		Message:  "Has consumido 85% de tu presupuesto",
		BudgetID: budget.ID,
	}, summary.Alerts[0])
}

func (suite *TestSuiteStandard) TestSummaryWarningAlertMedium() {
	suite.createTestBudget(budgeting.BudgetInput{
		Incomes:  incomes(1000),
		Expenses: []budgeting.ExpenseItem{expense("Vivienda", 500, models.ExpenseStatusPaid)},
	})

	summary := suite.summary(6, 2025)

	suite.Require().Len(summary.Alerts, 1)
	suite.Assert().Equal(dashboard.SeverityMedium, summary.Alerts[0].Severity)
	suite.Assert().Equal("Presupuesto 'Junio' al 50%", summary.Alerts[0].Title)
}

func (suite *TestSuiteStandard) TestSummaryNoWarningForEndedBudget() {
	suite.createTestBudget(budgeting.BudgetInput{
		StartDate: date(2025, 5, 20),
		EndDate:   date(2025, 6, 10),
		Incomes:   incomes(1000),
		Expenses:  []budgeting.ExpenseItem{expense("Vivienda", 900, models.ExpenseStatusPaid)},
	})

	summary := suite.summary(6, 2025)
	suite.Assert().Empty(summary.Alerts)
}

func (suite *TestSuiteStandard) TestSummaryNoWarningWithoutIncomes() {
	suite.createTestBudget(budgeting.BudgetInput{
		Expenses: []budgeting.ExpenseItem{expense("Vivienda", 900, models.ExpenseStatusPaid)},
	})

	summary := suite.summary(6, 2025)
	suite.Assert().Empty(summary.Alerts)
	suite.Require().Len(summary.ActiveBudgets, 1)
	suite.Assert().Equal(int64(0), summary.ActiveBudgets[0].PercentageUsed)
}

func (suite *TestSuiteStandard) TestSummaryPendingAlert() {
	budget := suite.createTestBudget(budgeting.BudgetInput{
		Incomes: incomes(10000),
		Expenses: []budgeting.ExpenseItem{
			expense("Servicios", 1500, models.ExpenseStatusPending),
			expense("Internet", 500, models.ExpenseStatusPending),
			expense("Vivienda", 1000, models.ExpenseStatusPaid),
		},
	})

	summary := suite.summary(6, 2025)

	suite.Require().Len(summary.Alerts, 1)
	suite.Assert().Equal(dashboard.Alert{
		Type:     dashboard.AlertTypeInfo,
		Severity: dashboard.SeverityLow,
		Title:    "Gastos pendientes de $2,000",
		Message:  "Tienes 2 facturas marcadas como pendientes de pago",
		BudgetID: budget.ID,
	}, summary.Alerts[0])
}

func (suite *TestSuiteStandard) TestSummaryWarningBeforePendingAlert() {
	suite.createTestBudget(budgeting.BudgetInput{
		Incomes:  incomes(1000),
		Expenses: []budgeting.ExpenseItem{expense("Vivienda", 900, models.ExpenseStatusPending)},
	})

	summary := suite.summary(6, 2025)

	suite.Require().Len(summary.Alerts, 2)
	suite.Assert().Equal(dashboard.AlertTypeWarning, summary.Alerts[0].Type)
	suite.Assert().Equal(dashboard.AlertTypeInfo, summary.Alerts[1].Type)
}

func (suite *TestSuiteStandard) TestSummaryExpensesByCategory() {
	suite.createTestBudget(budgeting.BudgetInput{
		Incomes: incomes(1000),
		Expenses: []budgeting.ExpenseItem{
			expense("Comida", 100, models.ExpenseStatusPaid),
			{
				Concept:  "Arriendo",
				Amount:   dec(300),
				Category: &budgeting.CategoryInput{Name: "Vivienda", Color: ptr("#10b981"), Icon: ptr("home")},
			},
			expense("Comida", 100, models.ExpenseStatusPending),
		},
	})

	summary := suite.summary(6, 2025)

	suite.Require().Len(summary.ExpensesByCategory, 2)

	housing := summary.ExpensesByCategory[0]
	suite.Assert().Equal("Vivienda", housing.CategoryName)
	suite.Assert().Equal("#10b981", housing.CategoryColor)
	suite.Require().NotNil(housing.CategoryIcon)
	suite.Assert().Equal("home", *housing.CategoryIcon)
	suite.Assert().True(housing.Total.Equal(dec(300)))
	suite.Assert().Equal(int64(60), housing.Percentage)
	suite.Assert().Equal(int64(1), housing.Count)

	food := summary.ExpensesByCategory[1]
	suite.Assert().Equal("Comida", food.CategoryName)
	suite.Assert().Equal(dashboard.UncategorizedColor, food.CategoryColor)
	suite.Assert().Nil(food.CategoryIcon)
	suite.Assert().True(food.Total.Equal(dec(200)))
	suite.Assert().Equal(int64(40), food.Percentage)
	suite.Assert().Equal(int64(2), food.Count)
}

func (suite *TestSuiteStandard) TestSummaryRecentTransactions() {
	suite.createTestBudget(budgeting.BudgetInput{
		Incomes: incomes(1000, 200, 300),
		Expenses: []budgeting.ExpenseItem{
			expense("Vivienda", 400, models.ExpenseStatusPaid),
			expense("Comida", 100, models.ExpenseStatusPending),
			expense("Transporte", 50, models.ExpenseStatusPaid),
			expense("Salud", 70, models.ExpenseStatusPending),
		},
	})

	summary := suite.summary(6, 2025)

	suite.Require().Len(summary.RecentTransactions, 5)
	for i := 1; i < len(summary.RecentTransactions); i++ {
		suite.Assert().False(summary.RecentTransactions[i].CreatedAt.After(summary.RecentTransactions[i-1].CreatedAt), "transactions are not sorted newest first")
	}

	for _, t := range summary.RecentTransactions {
		switch t.Type {
		case dashboard.TransactionTypeExpense:
			suite.Assert().True(t.Amount.IsNegative(), "expense amount %s is not negative", t.Amount)
			suite.Assert().Contains([]string{dashboard.TransactionStatusCompleted, dashboard.TransactionStatusPending}, t.Status)
		case dashboard.TransactionTypeIncome:
			suite.Assert().True(t.Amount.IsPositive())
			suite.Assert().Equal(dashboard.TransactionStatusCompleted, t.Status)
			suite.Assert().Equal("Salario", t.Category)
			suite.Assert().Nil(t.CategoryColor)
			suite.Assert().Nil(t.CategoryIcon)
		}
	}
}

func (suite *TestSuiteStandard) TestSummaryRecentExpenseStatus() {
	suite.createTestBudget(budgeting.BudgetInput{
		Expenses: []budgeting.ExpenseItem{
			expense("Vivienda", 400, models.ExpenseStatusPaid),
			expense("Comida", 100, models.ExpenseStatusPending),
		},
	})

	summary := suite.summary(6, 2025)
	suite.Require().Len(summary.RecentTransactions, 2)

	byCategory := map[string]dashboard.RecentTransaction{}
	for _, t := range summary.RecentTransactions {
		byCategory[t.Category] = t
	}

	suite.Assert().Equal(dashboard.TransactionStatusCompleted, byCategory["Vivienda"].Status)
	suite.Assert().True(byCategory["Vivienda"].Amount.Equal(dec(-400)))
	suite.Assert().Equal(dashboard.TransactionStatusPending, byCategory["Comida"].Status)
}

func (suite *TestSuiteStandard) TestSummaryActiveBudgetOrder() {
	completed := suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Cerrado",
		StartDate: date(2025, 5, 1),
		EndDate:   date(2025, 6, 10),
	})

	planned := suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Vacaciones",
		StartDate: date(2025, 6, 20),
		EndDate:   date(2025, 6, 30),
	})

	active := suite.createTestBudget(budgeting.BudgetInput{
		Name:     "Junio",
		Incomes:  incomes(1000),
		Expenses: []budgeting.ExpenseItem{expense("Vivienda", 333, models.ExpenseStatusPaid)},
	})

	// Outside of the month
	suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Julio",
		StartDate: date(2025, 7, 1),
		EndDate:   date(2025, 7, 31),
	})

	summary := suite.summary(6, 2025)
	suite.Require().Len(summary.ActiveBudgets, 3)

	ids := []uuid.UUID{}
	statuses := []dashboard.BudgetStatus{}
	for _, b := range summary.ActiveBudgets {
		ids = append(ids, b.ID)
		statuses = append(statuses, b.Status)
	}

	suite.Assert().Equal([]uuid.UUID{active.ID, planned.ID, completed.ID}, ids)
	suite.Assert().Equal([]dashboard.BudgetStatus{
		dashboard.BudgetStatusActive,
		dashboard.BudgetStatusPlanned,
		dashboard.BudgetStatusCompleted,
	}, statuses)

	suite.Assert().Equal(int64(33), summary.ActiveBudgets[0].PercentageUsed)
	suite.Assert().Equal(15, summary.ActiveBudgets[0].DaysRemaining)
	suite.Assert().Equal(0, summary.ActiveBudgets[2].DaysRemaining)
}

func (suite *TestSuiteStandard) TestSummaryBudgetSpanningMonth() {
	suite.createTestBudget(budgeting.BudgetInput{
		Name:      "Semestre",
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 12, 31),
		Incomes:   incomes(6000),
	})

	summary := suite.summary(6, 2025)
	suite.Require().Len(summary.ActiveBudgets, 1)
	suite.Assert().True(summary.Summary.TotalIncome.Equal(dec(6000)))
}

func (suite *TestSuiteStandard) TestSummaryOtherUser() {
	other, err := models.FindOrCreateUser(suite.db, models.Identity{Subject: "auth0|luis", Email: "luis@example.com"})
	suite.Require().Nil(err)

	_, err = suite.budgets.CreateBudget(context.Background(), other.ID, budgeting.BudgetInput{
		Name:      "Ajeno",
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 30),
		Incomes:   incomes(1000),
	})
	suite.Require().Nil(err)

	summary := suite.summary(6, 2025)
	suite.Assert().Empty(summary.ActiveBudgets)
	suite.Assert().True(summary.Summary.TotalIncome.IsZero())
}

func (suite *TestSuiteStandard) TestSummaryNormalizesMonth() {
	summary := suite.summary(13, 2024)
	suite.Assert().Equal(dashboard.Period{Month: 1, Year: 2025}, summary.Period)
}

func (suite *TestSuiteStandard) TestSummaryDatabaseError() {
	suite.CloseDB()

	_, err := suite.dashboard.Summary(context.Background(), suite.user.ID, 6, 2025)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestSummaryCanceledContext() {
	suite.createTestBudget(budgeting.BudgetInput{Incomes: incomes(1000)})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := suite.dashboard.Summary(ctx, suite.user.ID, 6, 2025)
	suite.Assert().NotNil(err)
}
