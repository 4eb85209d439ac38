package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a user-owned label attached to expenses.
type Category struct {
	DefaultModel
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex:idx_category_user_name,priority:1" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	User   User      `json:"-"`
	Name   string    `json:"name" gorm:"uniqueIndex:idx_category_user_name,priority:2" example:"Mercado"`
	Color  *string   `json:"color" example:"#22c55e"`
	Icon   *string   `json:"icon" example:"shopping-cart"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
