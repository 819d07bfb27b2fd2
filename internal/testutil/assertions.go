package testutil

import (
	"errors"
	"testing"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/models"
	"homebudget/internal/money"

	"gorm.io/gorm"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertBalance reloads the user and compares the stored balance.
func AssertBalance(t *testing.T, db *gorm.DB, userID, want string) {
	t.Helper()

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("failed to reload user %s: %v", userID, err)
	}
	if user.Balance != money.MustParse(want) {
		t.Errorf("expected balance %s, got %s", want, user.Balance)
	}
}

// AssertLedgerInvariant checks that the stored balance equals the opening
// balance plus all incomes minus all expenses currently on record.
func AssertLedgerInvariant(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("failed to reload user %s: %v", userID, err)
	}

	var spent, earned int64
	if err := db.Model(&models.Expense{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").Scan(&spent).Error; err != nil {
		t.Fatalf("failed to sum expenses: %v", err)
	}
	if err := db.Model(&models.Income{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").Scan(&earned).Error; err != nil {
		t.Fatalf("failed to sum incomes: %v", err)
	}

	want := user.InitialBalance + money.FromCents(earned) - money.FromCents(spent)
	if user.Balance != want {
		t.Errorf("balance %s does not match opening %s + earned %s - spent %s",
			user.Balance, user.InitialBalance, money.FromCents(earned), money.FromCents(spent))
	}
}
