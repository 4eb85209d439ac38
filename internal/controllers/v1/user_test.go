package v1_test

import (
	"net/http"

	v1 "github.com/finansmart/backend/internal/controllers/v1"
	"github.com/finansmart/backend/test"
)

func (suite *TestSuiteStandard) TestUsersGetMe() {
	_ = suite.createTestCategory(v1.CategoryEditable{Name: "Mercado"})

	r := suite.request(http.MethodGet, "http://example.com/v1/users/me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Ana", response.Data.Name)
	suite.Assert().Equal("ana@example.com", response.Data.Email)
	suite.Assert().Len(response.Data.Categories, 1)
	suite.Assert().Equal("http://example.com/v1/users/me", response.Data.Links.Self)
	suite.Assert().NotContains(r.Body.String(), "subject-ana", "The identity subject must not be exposed")

	// The same token always maps to the same user
	r = suite.request(http.MethodGet, "http://example.com/v1/users/me", nil)
	var again v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &again)
	suite.Assert().Equal(response.Data.ID, again.Data.ID)

	r = suite.requestAs(suite.otherUser(), http.MethodGet, "http://example.com/v1/users/me", nil)
	var other v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &other)
	suite.Assert().NotEqual(response.Data.ID, other.Data.ID)
	suite.Assert().Len(other.Data.Categories, 0)
}

func (suite *TestSuiteStandard) TestUsersUpdateMe() {
	r := suite.request(http.MethodPatch, "http://example.com/v1/users/me", v1.UserEditable{Name: "Ana María"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Ana María", response.Data.Name)

	r = suite.request(http.MethodGet, "http://example.com/v1/users/me", nil)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Ana María", response.Data.Name)
	suite.Assert().Equal("ana@example.com", response.Data.Email)
}

func (suite *TestSuiteStandard) TestUsersUpdateMeFails() {
	r := suite.request(http.MethodPatch, "http://example.com/v1/users/me", v1.UserEditable{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Error, "Name is required")

	r = suite.request(http.MethodPatch, "http://example.com/v1/users/me", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersOptions() {
	r := suite.request(http.MethodOptions, "http://example.com/v1/users/me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestUsersRequireToken() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/users/me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = suite.requestAs("not.a.token", http.MethodGet, "http://example.com/v1/users/me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = suite.requestAs(test.Token(suite.T(), "wrong-secret", "subject-ana", "ana@example.com", "Ana"), http.MethodGet, "http://example.com/v1/users/me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}
