// Package ledger holds the balance arithmetic for expense and income changes.
//
// A user's balance is a cached running total. Every mutation of an expense or
// income computes one signed delta here and applies it with Apply, inside the
// same database transaction that changes the record.
package ledger

import (
	"errors"
	"math"

	"homebudget/internal/money"
)

// ErrOverflow is returned when applying a delta would overflow the balance.
var ErrOverflow = errors.New("balance out of range")

// Apply returns the balance after adding delta.
func Apply(balance, delta money.Amount) (money.Amount, error) {
	if (delta > 0 && balance > math.MaxInt64-delta) || (delta < 0 && balance < math.MinInt64-delta) {
		return balance, ErrOverflow
	}
	return balance + delta, nil
}

// ExpenseCreated debits the amount.
func ExpenseCreated(amount money.Amount) money.Amount { return -amount }

// ExpenseAmended restores the old amount and debits the new one.
func ExpenseAmended(oldAmount, newAmount money.Amount) money.Amount { return oldAmount - newAmount }

// ExpenseDeleted credits the amount back.
func ExpenseDeleted(amount money.Amount) money.Amount { return amount }

// IncomeCreated credits the amount.
func IncomeCreated(amount money.Amount) money.Amount { return amount }

// IncomeAmended removes the old amount and credits the new one.
func IncomeAmended(oldAmount, newAmount money.Amount) money.Amount { return newAmount - oldAmount }

// IncomeDeleted debits the amount.
func IncomeDeleted(amount money.Amount) money.Amount { return -amount }

// InitialEstimate reconstructs the balance before any expense or income
// activity. It is a reconciliation aid and is not checked against anything.
func InitialEstimate(current, lifetimeSpent, lifetimeEarned money.Amount) money.Amount {
	return current + lifetimeSpent - lifetimeEarned
}
