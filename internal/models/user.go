package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// User is the owner of budgets and categories.
//
// Users are created on their first authenticated request and only their
// name can be changed afterwards.
type User struct {
	DefaultModel
	CognitoID  string     `json:"-" gorm:"uniqueIndex"` // Subject of the external identity
	Email      string     `json:"email" gorm:"uniqueIndex" example:"ana@example.com"`
	Name       string     `json:"name" example:"Ana"`
	Categories []Category `json:"-"`
}

// Identity is the result of a verified credential.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// FindOrCreateUser returns the user for the identity, creating it if it
// does not exist yet.
func FindOrCreateUser(db *gorm.DB, identity Identity) (User, error) {
	var user User
	err := db.Where(&User{CognitoID: identity.Subject}).First(&user).Error
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return User{}, err
	}

	user = User{
		CognitoID: identity.Subject,
		Email:     identity.Email,
		Name:      identity.Name,
	}

	err = db.Create(&user).Error
	if err != nil {
		return User{}, fmt.Errorf("creating user for subject %s failed: %w", identity.Subject, err)
	}

	return user, nil
}
