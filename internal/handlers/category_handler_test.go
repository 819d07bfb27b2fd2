package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/models"
)

const testCategoryID = "0190a5c4-0000-7000-8000-0000000000c1"

type mockCategoryService struct {
	createCategoryFn  func(name string) (*models.Category, error)
	listCategoriesFn  func() ([]models.Category, error)
	getCategoryByIDFn func(id string) (*models.Category, error)
	updateCategoryFn  func(id, name string) (*models.Category, error)
	deleteCategoryFn  func(id string) error
	seedCategoriesFn  func(names []string) (int, error)
}

func (m *mockCategoryService) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) ListCategories(_ context.Context) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(_ context.Context, id string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(id)
	}
	return &models.Category{Base: models.Base{ID: id}}, nil
}

func (m *mockCategoryService) UpdateCategory(_ context.Context, id, name string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, name)
	}
	return &models.Category{Base: models.Base{ID: id}, Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(_ context.Context, id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

func (m *mockCategoryService) SeedCategories(_ context.Context, names []string) (int, error) {
	if m.seedCategoriesFn != nil {
		return m.seedCategoriesFn(names)
	}
	return len(names), nil
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/categories", handler.CreateCategory)
	auth.GET("/categories", handler.ListCategories)
	auth.GET("/categories/:id", handler.GetCategoryByID)
	auth.PUT("/categories/:id", handler.UpdateCategory)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	r.POST("/admin/categories/seed", handler.SeedCategories)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockCategoryService{
			createCategoryFn: func(name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: testCategoryID}, Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit, nil))

		rec := doRequest(r, "POST", "/categories", `{"name":"food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		category := parseJSON(t, rec)["category"].(map[string]interface{})
		if category["name"] != "food" {
			t.Errorf("expected food, got %v", category["name"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_CATEGORY" {
			t.Errorf("expected one CREATE_CATEGORY audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on blank name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, nil))

		rec := doRequest(r, "POST", "/categories", `{"name":"   "}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(_ string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, nil))

		rec := doRequest(r, "POST", "/categories", `{"name":"food"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, nil)
		r := gin.New()
		r.POST("/categories", handler.CreateCategory)

		rec := doRequest(r, "POST", "/categories", `{"name":"food"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("returns 200 with all categories", func(t *testing.T) {
		svc := &mockCategoryService{
			listCategoriesFn: func() ([]models.Category, error) {
				return []models.Category{{Name: "car"}, {Name: "food"}}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, nil))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 2 {
			t.Errorf("expected 2 categories, got %d", len(categories))
		}
	})
}

func TestCategoryHandler_GetCategoryByID(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, nil))

		rec := doRequest(r, "GET", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, nil))

		rec := doRequest(r, "GET", "/categories/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(_ string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, nil))

		rec := doRequest(r, "GET", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotID, gotName string
		svc := &mockCategoryService{
			updateCategoryFn: func(id, name string) (*models.Category, error) {
				gotID, gotName = id, name
				return &models.Category{Base: models.Base{ID: id}, Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, nil))

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID, `{"name":"groceries"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != testCategoryID || gotName != "groceries" {
			t.Errorf("unexpected call: id=%s name=%s", gotID, gotName)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, nil))

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID, `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, audit, nil))

		rec := doRequest(r, "DELETE", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != testCategoryID {
			t.Errorf("expected delete audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(_ string) error { return apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, nil))

		rec := doRequest(r, "DELETE", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_SeedCategories(t *testing.T) {
	t.Run("seeds defaults on empty body", func(t *testing.T) {
		var got []string
		svc := &mockCategoryService{
			seedCategoriesFn: func(names []string) (int, error) {
				got = names
				return 2, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, []string{"food", "car"}))

		rec := doRequest(r, "POST", "/admin/categories/seed", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 2 || got[0] != "food" {
			t.Errorf("expected defaults, got %v", got)
		}
		if parseJSON(t, rec)["created"] != float64(2) {
			t.Errorf("expected created=2, got %s", rec.Body.String())
		}
	})

	t.Run("seeds names from body", func(t *testing.T) {
		var got []string
		svc := &mockCategoryService{
			seedCategoriesFn: func(names []string) (int, error) {
				got = names
				return 0, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, []string{"food"}))

		rec := doRequest(r, "POST", "/admin/categories/seed", `{"names":["travel"]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(got) != 1 || got[0] != "travel" {
			t.Errorf("expected [travel], got %v", got)
		}
	})
}
