package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/ledger"
	"homebudget/internal/models"
	"homebudget/internal/money"
	"homebudget/internal/uuid"
)

// withTx runs fn in a database transaction bound to ctx. Errors that are not
// already AppErrors (driver failures, commit failures, cancellation) are
// reported as SERVICE_UNAVAILABLE.
func withTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrUnavailable, err)
}

// dbError classifies a persistence failure.
func dbError(err error) error {
	return apperrors.Wrap(apperrors.ErrUnavailable, err)
}

// now returns the timestamp stored on new records.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// validateAmount rejects zero and negative amounts before any write happens.
func validateAmount(amount money.Amount) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrValidation, "Amount must be positive")
	}
	return nil
}

// lockUser loads the user row and holds a write lock on it until the
// transaction ends. SQLite ignores the locking clause and serialises writers.
func lockUser(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, dbError(err)
	}
	return &user, nil
}

// applyDelta moves the locked user's balance by delta.
func applyDelta(tx *gorm.DB, user *models.User, delta money.Amount) error {
	next, err := ledger.Apply(user.Balance, delta)
	if err != nil {
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrValidation, "balance out of range"), err)
	}
	if delta == 0 {
		return nil
	}
	res := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update("balance", gorm.Expr("balance + ?", int64(delta)))
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected != 1 {
		return apperrors.ErrUserNotFound
	}
	user.Balance = next
	return nil
}

// resolveCategory checks an optional category reference.
func resolveCategory(tx *gorm.DB, categoryID *string) (*models.Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	invalid := apperrors.WithMessage(apperrors.ErrInvalidReference, "Invalid category_id")
	id := strings.TrimSpace(*categoryID)
	if !uuid.IsValid(id) {
		return nil, invalid
	}
	var category models.Category
	if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, dbError(err)
	}
	return &category, nil
}

// findOwned loads a record of type T by id, scoped to its owner. Records that
// are missing or belong to another user are reported as notFound.
func findOwned[T any](tx *gorm.DB, userID, id string, notFound *apperrors.AppError) (*T, error) {
	if !uuid.IsValid(id) {
		return nil, notFound
	}
	var record T
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, dbError(err)
	}
	return &record, nil
}
