package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// AdminProductController manages the catalog from the back office
type AdminProductController struct {
	productService service.ProductAdminService
}

func NewAdminProductController(productService service.ProductAdminService) *AdminProductController {
	return &AdminProductController{productService: productService}
}

type ProductRequest struct {
	Name             string           `json:"name" binding:"required"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	BasePrice        decimal.Decimal  `json:"base_price" binding:"required"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	CategoryID       uint             `json:"category_id" binding:"required"`
	CollectionID     *uint            `json:"collection_id"`
	IsActive         *bool            `json:"is_active"`
	IsFeatured       *bool            `json:"is_featured"`
	InStock          *bool            `json:"in_stock"`
	StockQuantity    *int             `json:"stock_quantity"`
	Weight           *decimal.Decimal `json:"weight"`
	Dimensions       string           `json:"dimensions"`
	CareInstructions string           `json:"care_instructions"`
	WarrantyInfo     string           `json:"warranty_info"`
	MetaTitle        string           `json:"meta_title"`
	MetaDescription  string           `json:"meta_description"`
	SortOrder        *int             `json:"sort_order"`
	RingTypeIDs      []uint           `json:"ring_type_ids"`
	GemstoneIDs      []uint           `json:"gemstone_ids"`
	MetalIDs         []uint           `json:"metal_ids"`
}

type BulkActionRequest struct {
	Action       string `json:"action" binding:"required"`
	ProductIDs   []uint `json:"product_ids" binding:"required,min=1"`
	CategoryID   *uint  `json:"category_id"`
	CollectionID *uint  `json:"collection_id"`
}

type BulkDeleteRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
}

type ProductImageRequest struct {
	ImageURL  string `json:"image_url" binding:"required"`
	AltText   string `json:"alt_text"`
	Title     string `json:"title"`
	IsPrimary bool   `json:"is_primary"`
}

type ProductVideoRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
	Title    string `json:"title"`
}

func (req *ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		BasePrice:        req.BasePrice,
		SalePrice:        req.SalePrice,
		CategoryID:       req.CategoryID,
		CollectionID:     req.CollectionID,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
		InStock:          req.InStock,
		StockQuantity:    req.StockQuantity,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
		CareInstructions: req.CareInstructions,
		WarrantyInfo:     req.WarrantyInfo,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		SortOrder:        req.SortOrder,
		RingTypeIDs:      req.RingTypeIDs,
		GemstoneIDs:      req.GemstoneIDs,
		MetalIDs:         req.MetalIDs,
	}
}

func respondProductError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrCollectionNotFound):
		apperrors.BadRequest(c, apperrors.ResourceNotFound, "Collection not found")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.ProductInvalidPrice, "Base price must be positive and above any sale price")
	default:
		log.Error("Product operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
	}
}

// ListProducts returns the admin catalog, inactive products included
// GET /api/v1/admin/products
func (ctrl *AdminProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.AdminProductListOptions{
		IsActive: queryBool(c, "is_active"),
		Featured: queryBool(c, "featured"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Order:    c.DefaultQuery("order", "desc"),
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 20),
	}
	if id := queryInt(c, "category_id", 0); id > 0 {
		categoryID := uint(id)
		opts.CategoryID = &categoryID
	}
	if id := queryInt(c, "collection_id", 0); id > 0 {
		collectionID := uint(id)
		opts.CollectionID = &collectionID
	}

	result, err := ctrl.productService.ListProducts(opts)
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

// GetProduct returns one product with all relations for editing
// GET /api/v1/admin/products/:id
func (ctrl *AdminProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product with generated slug and SKU
// POST /api/v1/admin/products
func (ctrl *AdminProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.CreateProduct(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates a product and its taxonomy links
// PUT /api/v1/admin/products/:id
func (ctrl *AdminProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct soft-deletes a product
// DELETE /api/v1/admin/products/:id
func (ctrl *AdminProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// ToggleActive flips a product's visibility
// PATCH /api/v1/admin/products/:id/toggle-active
func (ctrl *AdminProductController) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.ToggleActive(id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        product.ID,
		"is_active": product.IsActive,
	})
}

// ToggleFeatured flips a product's featured flag
// PATCH /api/v1/admin/products/:id/toggle-featured
func (ctrl *AdminProductController) ToggleFeatured(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.ToggleFeatured(id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          product.ID,
		"is_featured": product.IsFeatured,
	})
}

// GetOptions returns the select-box data for the product form
// GET /api/v1/admin/products/options
func (ctrl *AdminProductController) GetOptions(c *gin.Context) {
	options, err := ctrl.productService.GetProductOptions()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch product options", err, nil)
		apperrors.InternalError(c, "Failed to fetch options")
		return
	}

	c.JSON(http.StatusOK, options)
}

// BulkAction applies one action to many products
// POST /api/v1/admin/products/bulk
func (ctrl *AdminProductController) BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.productService.BulkAction(req.Action, req.ProductIDs, service.BulkActionParams{
		CategoryID:   req.CategoryID,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownBulkAction) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown bulk action")
			return
		}
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// BulkDelete deletes many products, reporting per-item outcomes
// POST /api/v1/admin/products/bulk-delete
func (ctrl *AdminProductController) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.productService.BulkDelete(req.ProductIDs)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Bulk delete failed", err, nil)
		apperrors.InternalError(c, "Failed to delete products")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportProducts streams the catalog as an Excel workbook
// GET /api/v1/admin/products/export
func (ctrl *AdminProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	file, err := ctrl.productService.ExportProducts()
	if err != nil {
		log.Error("Product export failed", err, nil)
		apperrors.InternalError(c, "Failed to export products")
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to stream product export", err, nil)
	}
}

// AddImage attaches an image to a product
// POST /api/v1/admin/products/:id/images
func (ctrl *AdminProductController) AddImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	image, err := ctrl.productService.AddImage(id, req.ImageURL, req.AltText, req.Title, req.IsPrimary)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"image": image,
	})
}

// AddVideo attaches a video to a product
// POST /api/v1/admin/products/:id/videos
func (ctrl *AdminProductController) AddVideo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	video, err := ctrl.productService.AddVideo(id, req.VideoURL, req.Title)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"video": video,
	})
}

// SetPrimaryImage marks one image as the product's primary
// PATCH /api/v1/admin/products/:id/images/:imageId/primary
func (ctrl *AdminProductController) SetPrimaryImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := ctrl.productService.SetPrimaryImage(id, imageID); err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			apperrors.NotFound(c, apperrors.ProductMediaNotFound, "Image not found")
			return
		}
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Primary image updated",
	})
}

// DeleteImage removes a product image
// DELETE /api/v1/admin/products/:id/images/:imageId
func (ctrl *AdminProductController) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteImage(id, imageID); err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			apperrors.NotFound(c, apperrors.ProductMediaNotFound, "Image not found")
			return
		}
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image deleted",
	})
}

// DeleteVideo removes a product video
// DELETE /api/v1/admin/products/:id/videos/:videoId
func (ctrl *AdminProductController) DeleteVideo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteVideo(id, videoID); err != nil {
		if errors.Is(err, service.ErrProductVideoNotFound) {
			apperrors.NotFound(c, apperrors.ProductMediaNotFound, "Video not found")
			return
		}
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Video deleted",
	})
}
