package services

import (
	"context"
	"time"

	"homebudget/internal/models"
	"homebudget/internal/money"
	"homebudget/internal/pagination"
	"homebudget/internal/period"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	SeedCategories(ctx context.Context, names []string) (int, error)
}

// ExpenseInput carries the writable fields of an expense.
type ExpenseInput struct {
	Description string
	Amount      money.Amount
	CategoryID  *string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	CategoryID *string
	MinAmount  *money.Amount
	MaxAmount  *money.Amount
	FromDate   *time.Time
	ToDate     *time.Time
}

// ExpenseServicer defines the contract for expense-related business logic.
// Every mutation adjusts the owner's balance in the same transaction.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(ctx context.Context, userID, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// IncomeInput carries the writable fields of an income.
type IncomeInput struct {
	Description string
	Amount      money.Amount
}

// IncomeFilter holds optional filter parameters for listing incomes.
type IncomeFilter struct {
	MinAmount *money.Amount
	MaxAmount *money.Amount
	FromDate  *time.Time
	ToDate    *time.Time
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(ctx context.Context, userID string, in IncomeInput) (*models.Income, error)
	ListIncomes(ctx context.Context, userID string, page pagination.PageRequest, filter IncomeFilter) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(ctx context.Context, userID, incomeID string) (*models.Income, error)
	UpdateIncome(ctx context.Context, userID, incomeID string, in IncomeInput) (*models.Income, error)
	DeleteIncome(ctx context.Context, userID, incomeID string) error
}

// PeriodInfo describes the resolved reporting window.
type PeriodInfo struct {
	Name string    `json:"name"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Totals are the in-period sums.
type Totals struct {
	Earned        money.Amount `json:"earned"`
	Spent         money.Amount `json:"spent"`
	Net           money.Amount `json:"net"`
	CountExpenses int64        `json:"count_expenses"`
	CountIncomes  int64        `json:"count_incomes"`
}

// CategoryTotal is the in-period spend for one category label.
type CategoryTotal struct {
	Category string       `json:"category"`
	Total    money.Amount `json:"total"`
}

// SourceTotal is the in-period income for one description.
type SourceTotal struct {
	Source string       `json:"source"`
	Total  money.Amount `json:"total"`
}

// AccountSnapshot holds lifetime figures independent of the period.
type AccountSnapshot struct {
	CurrentBalance  money.Amount `json:"current_balance"`
	InitialEstimate money.Amount `json:"initial_estimate"`
	LifetimeSpent   money.Amount `json:"lifetime_spent"`
	LifetimeEarned  money.Amount `json:"lifetime_earned"`
}

// Summary is the analytics report for one user and period.
type Summary struct {
	Period     PeriodInfo      `json:"period"`
	Totals     Totals          `json:"totals"`
	ByCategory []CategoryTotal `json:"by_category"`
	BySource   []SourceTotal   `json:"by_source"`
	Account    AccountSnapshot `json:"account"`
}

// AnalyticsServicer defines the contract for reporting.
type AnalyticsServicer interface {
	Summary(ctx context.Context, userID string, q period.Query) (*Summary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
