package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"homebudget/internal/models"
	"homebudget/internal/money"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultBalance is the opening balance given to fixture users.
var DefaultBalance = money.MustParse("1000.00")

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, unique email and the
// default opening balance.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          email,
		Password:       string(hash),
		Balance:        DefaultBalance,
		InitialBalance: DefaultBalance,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryNamed creates a category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense inserts an expense row at the given time without touching
// the user's balance. Use it to arrange report data.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, categoryID *string, amount string, at time.Time) *models.Expense {
	t.Helper()

	at = at.UTC()
	expense := &models.Expense{
		Base:        models.Base{CreatedAt: at, UpdatedAt: at},
		UserID:      userID,
		CategoryID:  categoryID,
		Description: fmt.Sprintf("expense %d", nextID()),
		Amount:      money.MustParse(amount),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome inserts an income row at the given time without touching
// the user's balance.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, description, amount string, at time.Time) *models.Income {
	t.Helper()

	at = at.UTC()
	income := &models.Income{
		Base:        models.Base{CreatedAt: at, UpdatedAt: at},
		UserID:      userID,
		Description: description,
		Amount:      money.MustParse(amount),
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
