package models

import "homebudget/internal/money"

// User is an account holder. Balance is the cached running total maintained
// by the ledger on every expense and income change.
type User struct {
	Base
	Email          string       `gorm:"uniqueIndex;not null" json:"email"`
	Password       string       `gorm:"not null" json:"-"`
	Balance        money.Amount `gorm:"type:bigint;not null;default:0" json:"balance"`
	InitialBalance money.Amount `gorm:"type:bigint;not null;default:0" json:"initial_balance"`
	Expenses       []Expense    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Incomes        []Income     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
