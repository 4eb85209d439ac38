package models_test

import (
	"github.com/finansmart/backend/internal/models"
)

func (suite *TestSuiteStandard) TestFindOrCreateUser() {
	identity := models.Identity{Subject: "auth0|ana", Email: "ana@example.com", Name: "Ana"}

	first, err := models.FindOrCreateUser(suite.db, identity)
	suite.Require().Nil(err)
	suite.Assert().Equal("Ana", first.Name)

	// The identity is only used for the first creation
	identity.Name = "Ana María"
	second, err := models.FindOrCreateUser(suite.db, identity)
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, second.ID)
	suite.Assert().Equal("Ana", second.Name)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.User{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestFindOrCreateUserEmailTaken() {
	_, err := models.FindOrCreateUser(suite.db, models.Identity{Subject: "a", Email: "shared@example.com"})
	suite.Require().Nil(err)

	_, err = models.FindOrCreateUser(suite.db, models.Identity{Subject: "b", Email: "shared@example.com"})
	suite.Assert().ErrorIs(err, models.ErrUniqueViolation)
}
