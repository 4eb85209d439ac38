package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/finansmart/backend/internal/budgeting"
	v1 "github.com/finansmart/backend/internal/controllers/v1"
	"github.com/finansmart/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// getBudget returns the budget with the ID.
func (suite *TestSuiteStandard) getBudget(id uuid.UUID) v1.Budget {
	r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", id), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return *response.Data
}

func (suite *TestSuiteStandard) createTestIncome(create v1.IncomeCreate, expectedStatus ...int) v1.IncomeResponse {
	if create.Concept == "" {
		create.Concept = "Salario"
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := suite.request(http.MethodPost, "http://example.com/v1/incomes", create)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestIncomesCreate() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Expenses: []v1.BudgetExpense{{Concept: "Arriendo", Amount: dec("1000"), Category: &v1.CategoryReference{Name: "Vivienda"}}},
	}).Data

	income := suite.createTestIncome(v1.IncomeCreate{BudgetID: budget.ID, Amount: dec("2500.50")}).Data
	suite.Assert().Equal("Salario", income.Concept)
	suite.Assert().True(dec("2500.5").Equal(income.Amount))
	suite.Assert().Equal(budget.Links.Self, income.Links.Budget)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/incomes/%s", income.ID), income.Links.Self)

	updated := suite.getBudget(budget.ID)
	suite.Assert().True(dec("2500.5").Equal(updated.TotalIncomes), updated.TotalIncomes.String())
	suite.Assert().True(dec("1500.5").Equal(updated.AvailableMoney), updated.AvailableMoney.String())
	suite.Assert().Equal(1, updated.IncomesCount)
}

func (suite *TestSuiteStandard) TestIncomesCreateFails() {
	budget := suite.createTestBudget(v1.BudgetCreate{}).Data

	tests := []struct {
		name   string
		token  string
		body   any
		status int
	}{
		{"Empty body", suite.token, "", http.StatusBadRequest},
		{"No budget", suite.token, v1.IncomeCreate{Concept: "Salario", Amount: dec("10")}, http.StatusBadRequest},
		{"No concept", suite.token, v1.IncomeCreate{BudgetID: budget.ID, Amount: dec("10")}, http.StatusBadRequest},
		{"Negative amount", suite.token, v1.IncomeCreate{BudgetID: budget.ID, Concept: "Salario", Amount: dec("-10")}, http.StatusBadRequest},
		{"Unknown budget", suite.token, v1.IncomeCreate{BudgetID: uuid.New(), Concept: "Salario", Amount: dec("10")}, http.StatusNotFound},
		{"Budget of other user", suite.otherUser(), v1.IncomeCreate{BudgetID: budget.ID, Concept: "Salario", Amount: dec("10")}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, "http://example.com/v1/incomes", tt.body, test.Authorization(tt.token))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	suite.Assert().True(suite.getBudget(budget.ID).TotalIncomes.IsZero())
}

func (suite *TestSuiteStandard) TestIncomesGet() {
	budget := suite.createTestBudget(v1.BudgetCreate{}).Data
	income := suite.createTestIncome(v1.IncomeCreate{BudgetID: budget.ID, Amount: dec("10")}).Data

	r := suite.request(http.MethodGet, income.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(income.ID, response.Data.ID)

	r = suite.requestAs(suite.otherUser(), http.MethodGet, income.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodGet, "http://example.com/v1/incomes/12", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesList() {
	june := suite.createTestBudget(v1.BudgetCreate{Name: "Junio"}).Data
	july := suite.createTestBudget(v1.BudgetCreate{Name: "Julio"}).Data

	_ = suite.createTestIncome(v1.IncomeCreate{BudgetID: june.ID, Concept: "Salario junio", Amount: dec("10")})
	_ = suite.createTestIncome(v1.IncomeCreate{BudgetID: july.ID, Concept: "Salario julio", Amount: dec("10")})
	_ = suite.createTestIncome(v1.IncomeCreate{BudgetID: july.ID, Concept: "Bono julio", Amount: dec("10")})

	tests := []struct {
		name     string
		query    string
		concepts []string
	}{
		{"All", "", []string{"Bono julio", "Salario julio", "Salario junio"}},
		{"June", fmt.Sprintf("?budget=%s", june.ID), []string{"Salario junio"}},
		{"July, limited", fmt.Sprintf("?budget=%s&limit=1", july.ID), []string{"Bono julio"}},
		{"Unknown budget", fmt.Sprintf("?budget=%s", uuid.New()), []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/incomes"+tt.query, nil, test.Authorization(suite.token))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.IncomeListResponse
			test.DecodeResponse(t, &r, &response)

			concepts := []string{}
			for _, income := range response.Data {
				concepts = append(concepts, income.Concept)
			}
			assert.Equal(t, tt.concepts, concepts)
		})
	}

	r := suite.requestAs(suite.otherUser(), http.MethodGet, "http://example.com/v1/incomes", nil)
	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0)

	r = suite.request(http.MethodGet, "http://example.com/v1/incomes?budget=junio", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesUpdate() {
	budget := suite.createTestBudget(v1.BudgetCreate{}).Data
	income := suite.createTestIncome(v1.IncomeCreate{BudgetID: budget.ID, Amount: dec("100")}).Data

	r := suite.request(http.MethodPatch, income.Links.Self, map[string]any{"amount": "250"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Salario", response.Data.Concept)
	suite.Assert().True(dec("250").Equal(response.Data.Amount))
	suite.Assert().True(dec("250").Equal(suite.getBudget(budget.ID).TotalIncomes))

	r = suite.request(http.MethodPatch, income.Links.Self, map[string]any{"amount": "0"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), budgeting.ErrAmountNotPositive.Error())

	r = suite.requestAs(suite.otherUser(), http.MethodPatch, income.Links.Self, map[string]any{"concept": "Mío"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodPatch, income.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesDelete() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Incomes: []v1.BudgetIncome{
			{Concept: "Salario", Amount: dec("3000")},
			{Concept: "Bono", Amount: dec("500")},
		},
	}).Data

	r := suite.requestAs(suite.otherUser(), http.MethodDelete, budget.Incomes[1].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodDelete, budget.Incomes[1].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	updated := suite.getBudget(budget.ID)
	suite.Assert().True(dec("3000").Equal(updated.TotalIncomes), updated.TotalIncomes.String())
	suite.Assert().Equal(1, updated.IncomesCount)

	r = suite.request(http.MethodDelete, budget.Incomes[1].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomesOptions() {
	budget := suite.createTestBudget(v1.BudgetCreate{
		Incomes: []v1.BudgetIncome{{Concept: "Salario", Amount: dec("3000")}},
	}).Data

	r := suite.request(http.MethodOptions, "http://example.com/v1/incomes", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, budget.Incomes[0].Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, fmt.Sprintf("http://example.com/v1/incomes/%s", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
