package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/ledger"
	"homebudget/internal/models"
	"homebudget/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records an income and credits the owner's balance.
func (s *incomeService) CreateIncome(ctx context.Context, userID string, in IncomeInput) (*models.Income, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	var income *models.Income
	err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		ts := now()
		income = &models.Income{
			Base:        models.Base{CreatedAt: ts, UpdatedAt: ts},
			UserID:      user.ID,
			Description: strings.TrimSpace(in.Description),
			Amount:      in.Amount,
		}
		if err := tx.Create(income).Error; err != nil {
			return dbError(err)
		}

		return applyDelta(tx, user, ledger.IncomeCreated(in.Amount))
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

func incomeFilters(userID string, f IncomeFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
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

// ListIncomes retrieves a paginated, filtered list of the user's incomes, newest first.
func (s *incomeService) ListIncomes(ctx context.Context, userID string, page pagination.PageRequest, filter IncomeFilter) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()
	db := s.db.WithContext(ctx)
	scope := incomeFilters(userID, filter)

	var totalItems int64
	if err := db.Model(&models.Income{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, dbError(err)
	}

	var incomes []models.Income
	if err := db.Scopes(scope, pagination.Paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&incomes).Error; err != nil {
		return nil, dbError(err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves one of the user's incomes.
func (s *incomeService) GetIncomeByID(ctx context.Context, userID, incomeID string) (*models.Income, error) {
	return findOwned[models.Income](s.db.WithContext(ctx), userID, incomeID, apperrors.ErrIncomeNotFound)
}

// UpdateIncome replaces an income's fields and moves the balance by new - old.
func (s *incomeService) UpdateIncome(ctx context.Context, userID, incomeID string, in IncomeInput) (*models.Income, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	var income *models.Income
	err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		income, err = findOwned[models.Income](tx, user.ID, incomeID, apperrors.ErrIncomeNotFound)
		if err != nil {
			return err
		}

		delta := ledger.IncomeAmended(income.Amount, in.Amount)
		description := strings.TrimSpace(in.Description)

		if err := tx.Model(income).Updates(map[string]any{
			"description": description,
			"amount":      in.Amount.Cents(),
			"updated_at":  now(),
		}).Error; err != nil {
			return dbError(err)
		}
		if err := applyDelta(tx, user, delta); err != nil {
			return err
		}

		income.Description = description
		income.Amount = in.Amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

// DeleteIncome removes an income and debits its amount.
func (s *incomeService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	return withTx(ctx, s.db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		income, err := findOwned[models.Income](tx, user.ID, incomeID, apperrors.ErrIncomeNotFound)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Income{}, "id = ?", income.ID).Error; err != nil {
			return dbError(err)
		}
		return applyDelta(tx, user, ledger.IncomeDeleted(income.Amount))
	})
}
