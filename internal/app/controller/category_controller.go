package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// CategoryController manages the category tree from the back office
type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryRequest struct {
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description"`
	ImageURL        string             `json:"image_url"`
	ParentID        *uint              `json:"parent_id"`
	CategoryType    model.CategoryType `json:"category_type"`
	IsActive        *bool              `json:"is_active"`
	SortOrder       *int               `json:"sort_order"`
	MetaTitle       string             `json:"meta_title"`
	MetaDescription string             `json:"meta_description"`
}

func (req *CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		ParentID:        req.ParentID,
		CategoryType:    req.CategoryType,
		IsActive:        req.IsActive,
		SortOrder:       req.SortOrder,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrInvalidParentCategory):
		apperrors.BadRequest(c, apperrors.CategoryInvalidParent, "Invalid parent category")
	case errors.Is(err, service.ErrCategoryHasChildren):
		apperrors.Conflict(c, apperrors.CategoryHasChildren, "Remove or move the subcategories first")
	case errors.Is(err, service.ErrCategoryInUse):
		apperrors.Conflict(c, apperrors.CategoryInUse, "Category still has products")
	default:
		middleware.GetLoggerFromContext(c).Error("Category operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category")
	}
}

// ListCategories returns the full tree, inactive branches included
// GET /api/v1/admin/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GetCategory returns one category with its parent and children
// GET /api/v1/admin/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategory(id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory adds a category under an optional parent
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory updates a category, reparenting it if requested
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes an empty, childless category
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}
