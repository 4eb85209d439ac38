package budgeting_test

import (
	"context"

	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestIncomeLifecycle() {
	budget := suite.createTestBudget(suite.user.ID, budgeting.BudgetInput{})

	income, err := suite.service.CreateIncome(context.Background(), suite.user.ID, budget.ID, budgeting.IncomeItem{Concept: "Salario", Amount: dec(1000)})
	suite.Require().Nil(err)
	suite.Assert().Equal(budget.ID, income.BudgetID)
	suite.assertTotals(budget.ID)

	income, err = suite.service.UpdateIncome(context.Background(), suite.user.ID, income.ID, budgeting.IncomePatch{Amount: ptr(dec(1500))})
	suite.Require().Nil(err)
	suite.Assert().True(income.Amount.Equal(dec(1500)))
	suite.Assert().Equal("Salario", income.Concept)
	suite.assertTotals(budget.ID)

	incomes, err := suite.service.ListIncomes(context.Background(), suite.user.ID, &budget.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(incomes, 1)

	suite.Require().Nil(suite.service.DeleteIncome(context.Background(), suite.user.ID, income.ID))
	suite.assertTotals(budget.ID)

	after, err := suite.service.GetBudget(context.Background(), suite.user.ID, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().True(after.TotalIncomes.IsZero())
}

func (suite *TestSuiteStandard) TestExpenseLifecycle() {
	home := suite.createTestCategory(suite.user.ID, "Hogar")
	food := suite.createTestCategory(suite.user.ID, "Comida")
	budget := suite.createTestBudget(suite.user.ID, budgeting.BudgetInput{
		Incomes: []budgeting.IncomeItem{{Concept: "Salario", Amount: dec(1000)}},
	})

	expense, err := suite.service.CreateExpense(context.Background(), suite.user.ID, budget.ID, budgeting.ExpenseItem{
		Concept:    "Arriendo",
		Amount:     dec(400),
		CategoryID: &home.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(models.ExpenseStatusPending, expense.Status)
	suite.Assert().Equal("Hogar", expense.Category.Name)
	suite.assertTotals(budget.ID)

	expense, err = suite.service.UpdateExpense(context.Background(), suite.user.ID, expense.ID, budgeting.ExpensePatch{
		Status:     ptr(models.ExpenseStatusPaid),
		CategoryID: &food.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(models.ExpenseStatusPaid, expense.Status)
	suite.Assert().Equal(food.ID, expense.CategoryID)
	suite.Assert().Equal("Comida", expense.Category.Name)

	_, err = suite.service.UpdateExpense(context.Background(), suite.user.ID, expense.ID, budgeting.ExpensePatch{Amount: ptr(dec(0))})
	suite.Assert().ErrorIs(err, budgeting.ErrAmountNotPositive)

	expenses, err := suite.service.ListExpenses(context.Background(), suite.user.ID, nil)
	suite.Require().Nil(err)
	suite.Assert().Len(expenses, 1)

	suite.Require().Nil(suite.service.DeleteExpense(context.Background(), suite.user.ID, expense.ID))
	suite.assertTotals(budget.ID)
}

func (suite *TestSuiteStandard) TestLineItemsOfOtherUsers() {
	other := suite.createTestUser("auth0|luis")
	category := suite.createTestCategory(other.ID, "Ajena")
	budget := suite.createTestBudget(other.ID, budgeting.BudgetInput{
		Incomes:  []budgeting.IncomeItem{{Concept: "Salario", Amount: dec(1000)}},
		Expenses: []budgeting.ExpenseItem{{Concept: "Arriendo", Amount: dec(400), CategoryID: &category.ID}},
	})

	_, err := suite.service.CreateIncome(context.Background(), suite.user.ID, budget.ID, budgeting.IncomeItem{Concept: "Intruso", Amount: dec(1)})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = suite.service.GetIncome(context.Background(), suite.user.ID, budget.Incomes[0].ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = suite.service.DeleteExpense(context.Background(), suite.user.ID, budget.Expenses[0].ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	incomes, err := suite.service.ListIncomes(context.Background(), suite.user.ID, nil)
	suite.Require().Nil(err)
	suite.Assert().Len(incomes, 0)

	// Own expenses cannot reference categories of other users
	own := suite.createTestBudget(suite.user.ID, budgeting.BudgetInput{})
	_, err = suite.service.CreateExpense(context.Background(), suite.user.ID, own.ID, budgeting.ExpenseItem{
		Concept:    "Prestado",
		Amount:     dec(1),
		CategoryID: &category.ID,
	})
	suite.Assert().ErrorIs(err, models.ErrInvalidReference)
}

func (suite *TestSuiteStandard) TestGetIncomeNotFound() {
	_, err := suite.service.GetIncome(context.Background(), suite.user.ID, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
