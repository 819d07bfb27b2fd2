package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/ledger"
	"homebudget/internal/models"
	"homebudget/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records an expense and debits the owner's balance.
func (s *expenseService) CreateExpense(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	var expense *models.Expense
	err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		category, err := resolveCategory(tx, in.CategoryID)
		if err != nil {
			return err
		}

		ts := now()
		expense = &models.Expense{
			Base:        models.Base{CreatedAt: ts, UpdatedAt: ts},
			UserID:      user.ID,
			Description: strings.TrimSpace(in.Description),
			Amount:      in.Amount,
		}
		if category != nil {
			expense.CategoryID = &category.ID
		}
		if err := tx.Omit(clause.Associations).Create(expense).Error; err != nil {
			return dbError(err)
		}
		expense.Category = category

		return applyDelta(tx, user, ledger.ExpenseCreated(in.Amount))
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func expenseFilters(userID string, f ExpenseFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
		if f.CategoryID != nil {
			q = q.Where("category_id = ?", *f.CategoryID)
		}
		if f.MinAmount != nil {
			q = q.Where("amount >= ?", f.MinAmount.Cents())
		}
		if f.MaxAmount != nil {
			q = q.Where("amount <= ?", f.MaxAmount.Cents())
		}
		if f.FromDate != nil {
			q = q.Where("created_at >= ?", f.FromDate.UTC())
		}
		if f.ToDate != nil {
			q = q.Where("created_at <= ?", f.ToDate.UTC())
		}
		return q
	}
}

// ListExpenses retrieves a paginated, filtered list of the user's expenses, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()
	db := s.db.WithContext(ctx)
	scope := expenseFilters(userID, filter)

	var totalItems int64
	if err := db.Model(&models.Expense{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, dbError(err)
	}

	var expenses []models.Expense
	if err := db.Scopes(scope, pagination.Paginate(page)).
		Preload("Category").
		Order("created_at DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, dbError(err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves one of the user's expenses.
func (s *expenseService) GetExpenseByID(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := findOwned[models.Expense](s.db.WithContext(ctx).Preload("Category"), userID, expenseID, apperrors.ErrExpenseNotFound)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense replaces an expense's fields and moves the balance by old - new.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	var expense *models.Expense
	err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		expense, err = findOwned[models.Expense](tx, user.ID, expenseID, apperrors.ErrExpenseNotFound)
		if err != nil {
			return err
		}
		category, err := resolveCategory(tx, in.CategoryID)
		if err != nil {
			return err
		}

		var categoryID *string
		if category != nil {
			categoryID = &category.ID
		}
		delta := ledger.ExpenseAmended(expense.Amount, in.Amount)
		description := strings.TrimSpace(in.Description)

		if err := tx.Model(expense).Omit(clause.Associations).Updates(map[string]any{
			"description": description,
			"amount":      in.Amount.Cents(),
			"category_id": categoryID,
			"updated_at":  now(),
		}).Error; err != nil {
			return dbError(err)
		}
		if err := applyDelta(tx, user, delta); err != nil {
			return err
		}

		expense.Description = description
		expense.Amount = in.Amount
		expense.CategoryID = categoryID
		expense.Category = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense and credits its amount back.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return withTx(ctx, s.db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		expense, err := findOwned[models.Expense](tx, user.ID, expenseID, apperrors.ErrExpenseNotFound)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Expense{}, "id = ?", expense.ID).Error; err != nil {
			return dbError(err)
		}
		return applyDelta(tx, user, ledger.ExpenseDeleted(expense.Amount))
	})
}
