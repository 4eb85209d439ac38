package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "PENDING"
	ExpenseStatusPaid    ExpenseStatus = "PAID"
)

// Expense is money spent from a budget. Every expense has a category.
type Expense struct {
	DefaultModel
	BudgetID   uuid.UUID       `json:"budgetId" gorm:"type:uuid;index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	CategoryID uuid.UUID       `json:"categoryId" gorm:"type:uuid;index" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`
	Category   Category        `json:"-"`
	Concept    string          `json:"concept" example:"Arriendo"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400"`
	Status     ExpenseStatus   `json:"status" gorm:"index;default:PENDING" example:"PENDING"`
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Concept = strings.TrimSpace(e.Concept)
	if e.Status == "" {
		e.Status = ExpenseStatusPending
	}
	return nil
}
