package handlers

import "homebudget/internal/models"

// ProfileResponse wraps the authenticated user.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// CategoryResponse wraps a single category.
type CategoryResponse struct {
	Category *models.Category `json:"category"`
}

// CategoryListResponse wraps every category, ordered by name.
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
}

// ExpenseResponse wraps a single expense.
type ExpenseResponse struct {
	Expense *models.Expense `json:"expense"`
}

// IncomeResponse wraps a single income.
type IncomeResponse struct {
	Income *models.Income `json:"income"`
}
