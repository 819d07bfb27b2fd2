package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebudget/internal/services"
)

// CategoryHandler handles category-related requests. Categories are shared
// by all users.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
	defaultSeed     []string
}

// NewCategoryHandler creates a new CategoryHandler. defaultSeed is used by
// SeedCategories when the request names no categories.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer, defaultSeed []string) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService, defaultSeed: defaultSeed}
}

// CategoryRequest represents the request payload for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// SeedCategoriesRequest lists the categories to ensure exist
type SeedCategoriesRequest struct {
	Names []string `json:"names"`
}

// SeedCategoriesResponse reports how many categories were created
type SeedCategoriesResponse struct {
	Created int `json:"created"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new expense category. Names are unique.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateCategory, "category", category.ID, c.ClientIP(),
		map[string]any{"name": category.Name})

	c.JSON(http.StatusCreated, CategoryResponse{Category: category})
}

// ListCategories returns every category ordered by name
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoryListResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Categories: categories})
}

// GetCategoryByID handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} CategoryResponse "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// UpdateCategory renames a category
// @Summary     Rename category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Category ID"
// @Param       request body CategoryRequest true "New name"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateCategory, "category", categoryID, c.ClientIP(),
		map[string]any{"name": category.Name})

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// DeleteCategory deletes a category. Expenses that used it become uncategorized.
// @Summary     Delete category
// @Tags        categories
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     204 "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteCategory, "category", categoryID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// SeedCategories creates any missing categories. Matching is case-insensitive,
// so repeated calls are harmless.
// @Summary     Seed categories
// @Description Create missing categories. An empty body seeds the configured defaults.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body SeedCategoriesRequest false "Category names"
// @Success     200 {object} SeedCategoriesResponse "Number created"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Admin endpoints disabled"
// @Router      /admin/categories/seed [post]
func (h *CategoryHandler) SeedCategories(c *gin.Context) {
	var req SeedCategoriesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
	}

	names := req.Names
	if len(names) == 0 {
		names = h.defaultSeed
	}

	created, err := h.categoryService.SeedCategories(c.Request.Context(), names)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SeedCategoriesResponse{Created: created})
}
