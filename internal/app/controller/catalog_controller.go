package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// CatalogController serves the public storefront catalog
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func listOptionsFromQuery(c *gin.Context) service.ProductListOptions {
	return service.ProductListOptions{
		Category:   c.Query("category"),
		Collection: c.Query("collection"),
		PriceMin:   queryDecimal(c, "price_min"),
		PriceMax:   queryDecimal(c, "price_max"),
		Metal:      c.Query("metal"),
		Gemstone:   c.Query("gemstone"),
		Featured:   queryBool(c, "featured"),
		InStock:    queryBool(c, "in_stock"),
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Order:      c.DefaultQuery("order", "desc"),
		Page:       queryInt(c, "page", 1),
		PerPage:    queryInt(c, "per_page", 0),
	}
}

// ListProducts returns the filtered, paginated storefront catalog
// GET /api/v1/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	result, err := ctrl.catalogService.ListProducts(listOptionsFromQuery(c))
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   result.Products,
		"pagination": result.Pagination,
	})
}

// ListProductsByCategory returns products scoped to a category slug
// GET /api/v1/categories/:slug/products
func (ctrl *CatalogController) ListProductsByCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	result, err := ctrl.catalogService.ListByCategory(slug, listOptionsFromQuery(c))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to list category products", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   result.Products,
		"pagination": result.Pagination,
	})
}

// GetProduct returns the product detail page payload
// GET /api/v1/products/:slug
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	detail, err := ctrl.catalogService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":         detail.Product,
		"breadcrumbs":     detail.Breadcrumbs,
		"sizes":           detail.Sizes,
		"recommendations": detail.Recommendations,
	})
}

// GetCategoryTree returns the active category hierarchy with product counts
// GET /api/v1/categories
func (ctrl *CatalogController) GetCategoryTree(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.GetCategoryTree()
	if err != nil {
		log.Error("Failed to fetch category tree", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GetNavigation returns the storefront menu and filter metadata
// GET /api/v1/navigation
func (ctrl *CatalogController) GetNavigation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	navigation, err := ctrl.catalogService.GetNavigation()
	if err != nil {
		log.Error("Failed to fetch navigation", err, nil)
		apperrors.InternalError(c, "Failed to fetch navigation")
		return
	}

	c.JSON(http.StatusOK, navigation)
}
