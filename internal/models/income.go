package models

import "homebudget/internal/money"

// Income is money received by a user. Description doubles as the source
// label in reports.
type Income struct {
	Base
	UserID      string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string       `gorm:"not null" json:"description"`
	Amount      money.Amount `gorm:"type:bigint;not null" json:"amount"`
}
