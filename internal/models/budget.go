package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a named, dated container of incomes and expenses.
//
// TotalIncomes, TotalExpenses and AvailableMoney are cached values derived
// from the line items of the budget. They are only written by the
// recalculation in the budgeting package.
type Budget struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"type:uuid;index" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	User           User            `json:"-"`
	Name           string          `json:"name" example:"Diciembre"`
	StartDate      time.Time       `json:"startDate" gorm:"index" example:"2025-12-01T00:00:00Z"`
	EndDate        time.Time       `json:"endDate" gorm:"index" example:"2025-12-31T00:00:00Z"`
	Currency       string          `json:"currency" example:"COP"`
	TotalIncomes   decimal.Decimal `json:"totalIncomes" gorm:"type:DECIMAL(20,8)" example:"1000"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses" gorm:"type:DECIMAL(20,8)" example:"500"`
	AvailableMoney decimal.Decimal `json:"availableMoney" gorm:"type:DECIMAL(20,8)" example:"500"`
	Incomes        []Income        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Expenses       []Expense       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return nil
}

// AfterFind sets the timezone of the dates to UTC.
func (b *Budget) AfterFind(tx *gorm.DB) error {
	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return b.DefaultModel.AfterFind(tx)
}
