package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// TaxonomyController manages product attribute tables from the back office
type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{taxonomyService: taxonomyService}
}

type TaxonomyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

type GemstoneRequest struct {
	TaxonomyRequest
	Color         string           `json:"color"`
	Hardness      string           `json:"hardness"`
	PricePerCarat *decimal.Decimal `json:"price_per_carat"`
}

type MetalRequest struct {
	TaxonomyRequest
	ColorCode       string           `json:"color_code"`
	PriceMultiplier *decimal.Decimal `json:"price_multiplier"`
}

type CollectionRequest struct {
	TaxonomyRequest
	IsFeatured *bool `json:"is_featured"`
}

type ProductSizeRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	SizeName   string `json:"size_name" binding:"required"`
	SizeValue  string `json:"size_value"`
	IsActive   *bool  `json:"is_active"`
	SortOrder  *int   `json:"sort_order"`
}

func (req *TaxonomyRequest) toInput() service.TaxonomyInput {
	return service.TaxonomyInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
}

func taxonomyListOptions(c *gin.Context) service.TaxonomyListOptions {
	opts := service.TaxonomyListOptions{}
	if active := queryBool(c, "is_active"); active != nil && *active {
		opts.ActiveOnly = true
	}
	return opts
}

func respondTaxonomyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaxonomyNotFound):
		apperrors.NotFound(c, apperrors.TaxonomyNotFound, "Record not found")
	case errors.Is(err, service.ErrTaxonomyInUse):
		apperrors.Conflict(c, apperrors.TaxonomyInUse, "Record is still linked to products")
	case errors.Is(err, service.ErrCollectionNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Collection not found")
	case errors.Is(err, service.ErrCollectionInUse):
		apperrors.Conflict(c, apperrors.TaxonomyInUse, "Collection still has products")
	case errors.Is(err, service.ErrProductSizeNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Size not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category not found")
	default:
		middleware.GetLoggerFromContext(c).Error("Taxonomy operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "taxonomy")
	}
}

// ==================== Storefront filters ====================

// The filter endpoints feed the storefront search sidebar. Only active
// entries are exposed.

// GET /api/v1/filters/ring-types
func (ctrl *TaxonomyController) FilterRingTypes(c *gin.Context) {
	ringTypes, _, err := ctrl.taxonomyService.ListRingTypes(service.TaxonomyListOptions{ActiveOnly: true})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ring_types": ringTypes})
}

// GET /api/v1/filters/gemstones
func (ctrl *TaxonomyController) FilterGemstones(c *gin.Context) {
	gemstones, _, err := ctrl.taxonomyService.ListGemstones(service.TaxonomyListOptions{ActiveOnly: true})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gemstones": gemstones})
}

// GET /api/v1/filters/stone-types
func (ctrl *TaxonomyController) FilterStoneTypes(c *gin.Context) {
	stoneTypes, _, err := ctrl.taxonomyService.ListStoneTypes(service.TaxonomyListOptions{ActiveOnly: true})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stone_types": stoneTypes})
}

// GET /api/v1/filters/metals
func (ctrl *TaxonomyController) FilterMetals(c *gin.Context) {
	metals, _, err := ctrl.taxonomyService.ListMetals(service.TaxonomyListOptions{ActiveOnly: true})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metals": metals})
}

// ==================== Ring types ====================

// GET /api/v1/admin/ring-types
func (ctrl *TaxonomyController) ListRingTypes(c *gin.Context) {
	ringTypes, total, err := ctrl.taxonomyService.ListRingTypes(taxonomyListOptions(c))
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ring_types": ringTypes, "total": total})
}

// POST /api/v1/admin/ring-types
func (ctrl *TaxonomyController) CreateRingType(c *gin.Context) {
	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	ringType, err := ctrl.taxonomyService.CreateRingType(req.toInput())
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ring_type": ringType})
}

// PUT /api/v1/admin/ring-types/:id
func (ctrl *TaxonomyController) UpdateRingType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	ringType, err := ctrl.taxonomyService.UpdateRingType(id, req.toInput())
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ring_type": ringType})
}

// DELETE /api/v1/admin/ring-types/:id
func (ctrl *TaxonomyController) DeleteRingType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteRingType(id); err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ring type deleted"})
}

// ==================== Gemstones ====================

// GET /api/v1/admin/gemstones
func (ctrl *TaxonomyController) ListGemstones(c *gin.Context) {
	gemstones, total, err := ctrl.taxonomyService.ListGemstones(taxonomyListOptions(c))
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gemstones": gemstones, "total": total})
}

// POST /api/v1/admin/gemstones
func (ctrl *TaxonomyController) CreateGemstone(c *gin.Context) {
	var req GemstoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	gemstone, err := ctrl.taxonomyService.CreateGemstone(service.GemstoneInput{
		TaxonomyInput: req.toInput(),
		Color:         req.Color,
		Hardness:      req.Hardness,
		PricePerCarat: req.PricePerCarat,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"gemstone": gemstone})
}

// PUT /api/v1/admin/gemstones/:id
func (ctrl *TaxonomyController) UpdateGemstone(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req GemstoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	gemstone, err := ctrl.taxonomyService.UpdateGemstone(id, service.GemstoneInput{
		TaxonomyInput: req.toInput(),
		Color:         req.Color,
		Hardness:      req.Hardness,
		PricePerCarat: req.PricePerCarat,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gemstone": gemstone})
}

// DELETE /api/v1/admin/gemstones/:id
func (ctrl *TaxonomyController) DeleteGemstone(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteGemstone(id); err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gemstone deleted"})
}

// ==================== Stone types ====================

// GET /api/v1/admin/stone-types
func (ctrl *TaxonomyController) ListStoneTypes(c *gin.Context) {
	stoneTypes, total, err := ctrl.taxonomyService.ListStoneTypes(taxonomyListOptions(c))
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stone_types": stoneTypes, "total": total})
}

// POST /api/v1/admin/stone-types
func (ctrl *TaxonomyController) CreateStoneType(c *gin.Context) {
	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	stoneType, err := ctrl.taxonomyService.CreateStoneType(req.toInput())
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stone_type": stoneType})
}

// PUT /api/v1/admin/stone-types/:id
func (ctrl *TaxonomyController) UpdateStoneType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	stoneType, err := ctrl.taxonomyService.UpdateStoneType(id, req.toInput())
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stone_type": stoneType})
}

// DELETE /api/v1/admin/stone-types/:id
func (ctrl *TaxonomyController) DeleteStoneType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteStoneType(id); err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stone type deleted"})
}

// ==================== Metals ====================

// GET /api/v1/admin/metals
func (ctrl *TaxonomyController) ListMetals(c *gin.Context) {
	metals, total, err := ctrl.taxonomyService.ListMetals(taxonomyListOptions(c))
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metals": metals, "total": total})
}

// POST /api/v1/admin/metals
func (ctrl *TaxonomyController) CreateMetal(c *gin.Context) {
	var req MetalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	metal, err := ctrl.taxonomyService.CreateMetal(service.MetalInput{
		TaxonomyInput:   req.toInput(),
		ColorCode:       req.ColorCode,
		PriceMultiplier: req.PriceMultiplier,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"metal": metal})
}

// PUT /api/v1/admin/metals/:id
func (ctrl *TaxonomyController) UpdateMetal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MetalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	metal, err := ctrl.taxonomyService.UpdateMetal(id, service.MetalInput{
		TaxonomyInput:   req.toInput(),
		ColorCode:       req.ColorCode,
		PriceMultiplier: req.PriceMultiplier,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metal": metal})
}

// DELETE /api/v1/admin/metals/:id
func (ctrl *TaxonomyController) DeleteMetal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteMetal(id); err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Metal deleted"})
}

// ==================== Collections ====================

// GET /api/v1/admin/collections
func (ctrl *TaxonomyController) ListCollections(c *gin.Context) {
	collections, err := ctrl.taxonomyService.ListCollections()
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GET /api/v1/admin/collections/:id
func (ctrl *TaxonomyController) GetCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := ctrl.taxonomyService.GetCollection(id)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// POST /api/v1/admin/collections
func (ctrl *TaxonomyController) CreateCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	collection, err := ctrl.taxonomyService.CreateCollection(service.CollectionInput{
		TaxonomyInput: req.toInput(),
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collection": collection})
}

// PUT /api/v1/admin/collections/:id
func (ctrl *TaxonomyController) UpdateCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	collection, err := ctrl.taxonomyService.UpdateCollection(id, service.CollectionInput{
		TaxonomyInput: req.toInput(),
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// DELETE /api/v1/admin/collections/:id
func (ctrl *TaxonomyController) DeleteCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteCollection(id); err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

// ==================== Product sizes ====================

// GET /api/v1/admin/categories/:id/sizes
func (ctrl *TaxonomyController) ListSizes(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sizes, err := ctrl.taxonomyService.ListSizesByCategory(categoryID)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sizes": sizes})
}

// POST /api/v1/admin/sizes
func (ctrl *TaxonomyController) CreateSize(c *gin.Context) {
	var req ProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	size, err := ctrl.taxonomyService.CreateSize(service.ProductSizeInput{
		CategoryID: req.CategoryID,
		SizeName:   req.SizeName,
		SizeValue:  req.SizeValue,
		IsActive:   req.IsActive,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"size": size})
}

// PUT /api/v1/admin/sizes/:id
func (ctrl *TaxonomyController) UpdateSize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	size, err := ctrl.taxonomyService.UpdateSize(id, service.ProductSizeInput{
		CategoryID: req.CategoryID,
		SizeName:   req.SizeName,
		SizeValue:  req.SizeValue,
		IsActive:   req.IsActive,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"size": size})
}

// DELETE /api/v1/admin/sizes/:id
func (ctrl *TaxonomyController) DeleteSize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteSize(id); err != nil {
		respondTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Size deleted"})
}
