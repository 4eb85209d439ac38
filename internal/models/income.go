package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is money coming into a budget.
type Income struct {
	DefaultModel
	BudgetID uuid.UUID       `json:"budgetId" gorm:"type:uuid;index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Concept  string          `json:"concept" example:"Salario"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1000"`
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Concept = strings.TrimSpace(i.Concept)
	return nil
}
