package models

import "homebudget/internal/money"

// Expense is money spent by a user, optionally tagged with a category.
type Expense struct {
	Base
	UserID      string       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string      `gorm:"type:uuid;index" json:"category_id"`
	Description string       `gorm:"not null" json:"description"`
	Amount      money.Amount `gorm:"type:bigint;not null" json:"amount"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
