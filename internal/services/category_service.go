package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/uuid"
)

// categoryService handles category-related business logic.
// Categories are global and shared by every user.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "category name is required")
	}
	if len(name) > 100 {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "category name must be at most 100 characters")
	}
	return name, nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	// Check if a category with the same name already exists
	var count int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, dbError(err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, dbError(err)
	}

	return category, nil
}

// ListCategories returns every category ordered by name.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, dbError(err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	if !uuid.IsValid(categoryID) {
		return nil, apperrors.ErrCategoryNotFound
	}
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, dbError(err)
	}
	return &category, nil
}

// UpdateCategory renames a category
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID, name string) (*models.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.Name == name {
		return category, nil
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, category.ID).Count(&count).Error; err != nil {
		return nil, dbError(err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	if err := db.Model(category).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, dbError(err)
	}

	return category, nil
}

// DeleteCategory removes a category. Expenses tagged with it become
// uncategorized; amounts and balances are untouched.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}

	return withTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Expense{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return dbError(err)
		}

		res := tx.Delete(&models.Category{}, "id = ?", category.ID)
		if res.Error != nil {
			return dbError(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrCategoryNotFound
		}
		return nil
	})
}

// SeedCategories creates each named category that does not already exist.
// Names are matched case-insensitively. Returns how many were created.
func (s *categoryService) SeedCategories(ctx context.Context, names []string) (int, error) {
	created := 0
	seen := make(map[string]bool, len(names))

	err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		for _, raw := range names {
			name := strings.TrimSpace(raw)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true

			var count int64
			if err := tx.Model(&models.Category{}).Where("LOWER(name) = ?", key).Count(&count).Error; err != nil {
				return dbError(err)
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&models.Category{Name: name}).Error; err != nil {
				return dbError(err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if created > 0 {
		logger.Get().Infow("Seeded categories", "created", created)
	}
	return created, nil
}
