package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/finansmart/backend/internal/controllers/v1"
	"github.com/finansmart/backend/internal/models"
	"github.com/finansmart/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestExpense(create v1.ExpenseCreate, expectedStatus ...int) v1.ExpenseResponse {
	if create.Concept == "" {
		create.Concept = "Mercado"
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := suite.request(http.MethodPost, "http://example.com/v1/expenses", create)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestExpensesCreate() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Incomes: []v1.BudgetIncome{{Concept: "Salario", Amount: dec("1000")}},
	}).Data

	expense := suite.createTestExpense(v1.ExpenseCreate{
		BudgetID: budget.ID,
		Amount:   dec("250"),
		Category: &v1.CategoryReference{Name: "Comida", Color: ptr("#f97316")},
	}).Data

	suite.Assert().Equal(models.ExpenseStatusPending, expense.Status)
	suite.Require().NotNil(expense.Category)
	suite.Assert().Equal("Comida", expense.Category.Name)
	suite.Assert().Equal(expense.Category.ID, expense.CategoryID)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/categories/%s", expense.CategoryID), expense.Links.Category)

	// A second expense reuses the category by name
	second := suite.createTestExpense(v1.ExpenseCreate{
		BudgetID: budget.ID,
		Amount:   dec("100"),
		Status:   models.ExpenseStatusPaid,
		Category: &v1.CategoryReference{Name: "Comida"},
	}).Data
	suite.Assert().Equal(expense.CategoryID, second.CategoryID)

	updated := suite.getBudget(budget.ID)
	suite.Assert().True(dec("350").Equal(updated.TotalExpenses), updated.TotalExpenses.String())
	suite.Assert().True(dec("650").Equal(updated.AvailableMoney), updated.AvailableMoney.String())
	suite.Assert().True(dec("100").Equal(updated.TotalPaidExpenses), updated.TotalPaidExpenses.String())
	suite.Assert().True(dec("35").Equal(updated.PercentageUsed), updated.PercentageUsed.String())
	suite.Assert().Len(updated.Categories, 1)
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	budget := suite.createTestBudget(v1.BudgetCreate{}).Data

	r := suite.requestAs(suite.otherUser(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Ajena"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	var others v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &others)
	foreign := others.Data[0].Data.ID

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"No category", v1.ExpenseCreate{BudgetID: budget.ID, Concept: "Mercado", Amount: dec("10")}, http.StatusBadRequest},
		{"Category of other user", v1.ExpenseCreate{BudgetID: budget.ID, Concept: "Mercado", Amount: dec("10"), CategoryID: &foreign}, http.StatusBadRequest},
		{"Empty category name", v1.ExpenseCreate{BudgetID: budget.ID, Concept: "Mercado", Amount: dec("10"), Category: &v1.CategoryReference{Name: "  "}}, http.StatusBadRequest},
		{"Invalid status", v1.ExpenseCreate{BudgetID: budget.ID, Concept: "Mercado", Amount: dec("10"), Status: "DONE", CategoryID: &foreign}, http.StatusBadRequest},
		{"Zero amount", v1.ExpenseCreate{BudgetID: budget.ID, Concept: "Mercado", Category: &v1.CategoryReference{Name: "Comida"}}, http.StatusBadRequest},
		{"Unknown budget", v1.ExpenseCreate{BudgetID: uuid.New(), Concept: "Mercado", Amount: dec("10"), Category: &v1.CategoryReference{Name: "Comida"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, "http://example.com/v1/expenses", tt.body, test.Authorization(suite.token))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	// Failed requests do not leave categories behind
	r = suite.request(http.MethodGet, "http://example.com/v1/categories", nil)
	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)
	suite.Assert().Len(categories.Data, 0)
}

func (suite *TestSuiteStandard) TestExpensesGet() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Expenses: []v1.BudgetExpense{{Concept: "Arriendo", Amount: dec("1200"), Category: &v1.CategoryReference{Name: "Vivienda"}}},
	}).Data
	expense := budget.Expenses[0]

	r := suite.request(http.MethodGet, expense.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(expense.ID, response.Data.ID)
	suite.Require().NotNil(response.Data.Category)
	suite.Assert().Equal("Vivienda", response.Data.Category.Name)

	r = suite.requestAs(suite.otherUser(), http.MethodGet, expense.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesList() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Expenses: []v1.BudgetExpense{
			{Concept: "Arriendo", Amount: dec("1200"), Status: models.ExpenseStatusPaid, Category: &v1.CategoryReference{Name: "Vivienda"}},
			{Concept: "Mercado", Amount: dec("400"), Category: &v1.CategoryReference{Name: "Comida"}},
		},
	}).Data
	other := suite.createTestBudget(v1.BudgetCreate{
		Name:     "Julio",
		Expenses: []v1.BudgetExpense{{Concept: "Restaurante", Amount: dec("90"), Category: &v1.CategoryReference{Name: "Comida"}}},
	}).Data

	food := budget.Expenses[1].CategoryID

	tests := []struct {
		name     string
		query    string
		concepts []string
	}{
		{"By budget", fmt.Sprintf("?budget=%s", budget.ID), []string{"Arriendo", "Mercado"}},
		{"By other budget", fmt.Sprintf("?budget=%s", other.ID), []string{"Restaurante"}},
		{"By category", fmt.Sprintf("?category=%s", food), []string{"Restaurante", "Mercado"}},
		{"By status", "?status=PAID", []string{"Arriendo"}},
		{"By category and status", fmt.Sprintf("?category=%s&status=PENDING", food), []string{"Restaurante", "Mercado"}},
		{"By budget and status", fmt.Sprintf("?budget=%s&status=PENDING", budget.ID), []string{"Mercado"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/expenses"+tt.query, nil, test.Authorization(suite.token))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)

			concepts := []string{}
			for _, expense := range response.Data {
				concepts = append(concepts, expense.Concept)
			}
			assert.ElementsMatch(t, tt.concepts, concepts)
			assert.Equal(t, int64(len(tt.concepts)), response.Pagination.Total)
		})
	}

	r := suite.request(http.MethodGet, "http://example.com/v1/expenses?status=LATE", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Incomes:  []v1.BudgetIncome{{Concept: "Salario", Amount: dec("2000")}},
		Expenses: []v1.BudgetExpense{{Concept: "Arriendo", Amount: dec("1200"), Category: &v1.CategoryReference{Name: "Vivienda"}}},
	}).Data
	expense := budget.Expenses[0]
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Hogar"}).Data

	r := suite.request(http.MethodPatch, expense.Links.Self, map[string]any{
		"amount":     "1000",
		"status":     "PAID",
		"categoryId": category.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Arriendo", response.Data.Concept)
	suite.Assert().Equal(models.ExpenseStatusPaid, response.Data.Status)
	suite.Assert().Equal(category.ID, response.Data.CategoryID)
	suite.Require().NotNil(response.Data.Category)
	suite.Assert().Equal("Hogar", response.Data.Category.Name)

	updated := suite.getBudget(budget.ID)
	suite.Assert().True(dec("1000").Equal(updated.TotalExpenses), updated.TotalExpenses.String())
	suite.Assert().True(dec("1000").Equal(updated.TotalPaidExpenses), updated.TotalPaidExpenses.String())
	suite.Assert().True(dec("1000").Equal(updated.AvailableMoney), updated.AvailableMoney.String())
	suite.Assert().True(dec("50").Equal(updated.PercentageUsed), updated.PercentageUsed.String())
}

func (suite *TestSuiteStandard) TestExpensesUpdateFails() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Expenses: []v1.BudgetExpense{{Concept: "Arriendo", Amount: dec("1200"), Category: &v1.CategoryReference{Name: "Vivienda"}}},
	}).Data
	expense := budget.Expenses[0]

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Invalid status", map[string]any{"status": "LATE"}, http.StatusBadRequest},
		{"Negative amount", map[string]any{"amount": "-5"}, http.StatusBadRequest},
		{"Unknown category", map[string]any{"categoryId": uuid.New()}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPatch, expense.Links.Self, tt.body, test.Authorization(suite.token))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r := suite.requestAs(suite.otherUser(), http.MethodPatch, expense.Links.Self, map[string]any{"status": "PAID"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Nothing changed
	r = suite.request(http.MethodGet, expense.Links.Self, nil)
	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ExpenseStatusPending, response.Data.Status)
	suite.Assert().True(dec("1200").Equal(response.Data.Amount))
	suite.Assert().Equal(expense.CategoryID, response.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Expenses: []v1.BudgetExpense{
			{Concept: "Arriendo", Amount: dec("1200"), Category: &v1.CategoryReference{Name: "Vivienda"}},
			{Concept: "Mercado", Amount: dec("400"), Category: &v1.CategoryReference{Name: "Comida"}},
		},
	}).Data

	r := suite.request(http.MethodDelete, budget.Expenses[0].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	updated := suite.getBudget(budget.ID)
	suite.Assert().True(dec("400").Equal(updated.TotalExpenses), updated.TotalExpenses.String())
	suite.Assert().Equal(1, updated.ExpensesCount)
	suite.Assert().Len(updated.Categories, 1)

	r = suite.request(http.MethodDelete, budget.Expenses[0].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesOptions() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Expenses: []v1.BudgetExpense{{Concept: "Arriendo", Amount: dec("1200"), Category: &v1.CategoryReference{Name: "Vivienda"}}},
	}).Data

	r := suite.request(http.MethodOptions, "http://example.com/v1/expenses", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, budget.Expenses[0].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}
