package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// WatchController serves the watch boutique, storefront and back office both
type WatchController struct {
	watchService service.WatchService
}

func NewWatchController(watchService service.WatchService) *WatchController {
	return &WatchController{watchService: watchService}
}

type WatchBrandRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	LogoURL       string `json:"logo_url"`
	FoundedYear   *int   `json:"founded_year"`
	CountryOrigin string `json:"country_origin"`
	WebsiteURL    string `json:"website_url"`
	IsActive      *bool  `json:"is_active"`
	SortOrder     *int   `json:"sort_order"`
}

type WatchCollectionRequest struct {
	BrandID        uint              `json:"brand_id"`
	Name           string            `json:"name" binding:"required"`
	Description    string            `json:"description"`
	ImageURL       string            `json:"image_url"`
	TargetAudience model.WatchGender `json:"target_audience"`
	IsActive       *bool             `json:"is_active"`
	IsFeatured     *bool             `json:"is_featured"`
	SortOrder      *int              `json:"sort_order"`
}

type WatchRequest struct {
	BrandID         uint                    `json:"brand_id" binding:"required"`
	CollectionID    *uint                   `json:"collection_id"`
	Name            string                  `json:"name" binding:"required"`
	ModelNumber     string                  `json:"model_number"`
	Description     string                  `json:"description"`
	BasePrice       decimal.Decimal         `json:"base_price" binding:"required"`
	SalePrice       *decimal.Decimal        `json:"sale_price"`
	Gender          model.WatchGender       `json:"gender"`
	WatchType       model.WatchType         `json:"watch_type"`
	Style           model.WatchStyle        `json:"style"`
	WarrantyYears   *int                    `json:"warranty_years"`
	Availability    model.WatchAvailability `json:"availability"`
	StockQuantity   *int                    `json:"stock_quantity"`
	IsActive        *bool                   `json:"is_active"`
	IsFeatured      *bool                   `json:"is_featured"`
	MetaTitle       string                  `json:"meta_title"`
	MetaDescription string                  `json:"meta_description"`
	SortOrder       *int                    `json:"sort_order"`
}

type WatchSpecificationRequest struct {
	Movement        string `json:"movement"`
	CaseMaterial    string `json:"case_material"`
	CaseDiameter    string `json:"case_diameter"`
	CaseThickness   string `json:"case_thickness"`
	DialColor       string `json:"dial_color"`
	CrystalMaterial string `json:"crystal_material"`
	StrapMaterial   string `json:"strap_material"`
	StrapColor      string `json:"strap_color"`
	WaterResistance string `json:"water_resistance"`
	PowerReserve    string `json:"power_reserve"`
	Functions       string `json:"functions"`
}

type WatchImageRequest struct {
	ImageURL  string               `json:"image_url" binding:"required"`
	AltText   string               `json:"alt_text"`
	ImageType model.WatchImageType `json:"image_type"`
	IsPrimary bool                 `json:"is_primary"`
}

func (req *WatchRequest) toInput() service.WatchInput {
	return service.WatchInput{
		BrandID:         req.BrandID,
		CollectionID:    req.CollectionID,
		Name:            req.Name,
		ModelNumber:     req.ModelNumber,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		SalePrice:       req.SalePrice,
		Gender:          req.Gender,
		WatchType:       req.WatchType,
		Style:           req.Style,
		WarrantyYears:   req.WarrantyYears,
		Availability:    req.Availability,
		StockQuantity:   req.StockQuantity,
		IsActive:        req.IsActive,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SortOrder:       req.SortOrder,
	}
}

func (req *WatchCollectionRequest) toInput() service.WatchCollectionInput {
	return service.WatchCollectionInput{
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		TargetAudience: req.TargetAudience,
		IsActive:       req.IsActive,
		IsFeatured:     req.IsFeatured,
		SortOrder:      req.SortOrder,
	}
}

func respondWatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWatchNotFound):
		apperrors.NotFound(c, apperrors.WatchNotFound, "Watch not found")
	case errors.Is(err, service.ErrWatchBrandNotFound):
		apperrors.NotFound(c, apperrors.WatchBrandNotFound, "Brand not found")
	case errors.Is(err, service.ErrWatchBrandInUse):
		apperrors.Conflict(c, apperrors.WatchBrandInUse, "Brand still has watches")
	case errors.Is(err, service.ErrWatchCollectionNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Collection not found")
	case errors.Is(err, service.ErrWatchImageNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Image not found")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.ProductInvalidPrice, "Sale price must be below the base price")
	default:
		middleware.GetLoggerFromContext(c).Error("Watch operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "watch")
	}
}

// ==================== Storefront ====================

// ListBrands returns active brands for the boutique landing page
// GET /api/v1/watches/brands
func (ctrl *WatchController) ListBrands(c *gin.Context) {
	brands, err := ctrl.watchService.ListBrands(true)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetBrand returns one brand for its boutique page
// GET /api/v1/watches/brands/:slug
func (ctrl *WatchController) GetBrand(c *gin.Context) {
	brand, err := ctrl.watchService.GetBrandBySlug(c.Param("slug"))
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// ListBrandCollections returns a brand's active collections with watch counts
// GET /api/v1/watches/brands/:slug/collections
func (ctrl *WatchController) ListBrandCollections(c *gin.Context) {
	collections, err := ctrl.watchService.ListCollectionsByBrand(c.Param("slug"), true)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GetBrandCollection returns one collection with its active watches
// GET /api/v1/watches/brands/:slug/collections/:collectionSlug
func (ctrl *WatchController) GetBrandCollection(c *gin.Context) {
	detail, err := ctrl.watchService.GetCollectionBySlug(c.Param("slug"), c.Param("collectionSlug"))
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"collection": detail.Collection,
		"watches":    detail.Watches,
	})
}

// FeaturedCollections returns each brand's showcase collection
// GET /api/v1/watches/featured-collections
func (ctrl *WatchController) FeaturedCollections(c *gin.Context) {
	featured, err := ctrl.watchService.FeaturedCollections()
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured_collections": featured})
}

func watchListOptions(c *gin.Context) service.WatchListOptions {
	return service.WatchListOptions{
		Brand:     c.Query("brand"),
		Gender:    c.Query("gender"),
		WatchType: c.Query("watch_type"),
		Style:     c.Query("style"),
		PriceMin:  queryDecimal(c, "price_min"),
		PriceMax:  queryDecimal(c, "price_max"),
		Featured:  queryBool(c, "featured"),
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
		Order:     c.DefaultQuery("order", "desc"),
		Page:      queryInt(c, "page", 1),
		PerPage:   queryInt(c, "per_page", 0),
	}
}

// ListWatches returns the filtered, paginated storefront watch list
// GET /api/v1/watches
func (ctrl *WatchController) ListWatches(c *gin.Context) {
	opts := watchListOptions(c)
	active := true
	opts.IsActive = &active

	result, err := ctrl.watchService.ListWatches(opts)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"watches":    result.Watches,
		"pagination": result.Pagination,
	})
}

// GetWatch returns the watch detail page payload
// GET /api/v1/watches/:slug
func (ctrl *WatchController) GetWatch(c *gin.Context) {
	detail, err := ctrl.watchService.GetWatchBySlug(c.Param("slug"))
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"watch":           detail.Watch,
		"recommendations": detail.Recommendations,
	})
}

// ==================== Back office: brands ====================

// GET /api/v1/admin/watch-brands
func (ctrl *WatchController) AdminListBrands(c *gin.Context) {
	brands, err := ctrl.watchService.ListBrands(false)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// POST /api/v1/admin/watch-brands
func (ctrl *WatchController) CreateBrand(c *gin.Context) {
	var req WatchBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	brand, err := ctrl.watchService.CreateBrand(service.WatchBrandInput(req))
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"brand": brand})
}

// PUT /api/v1/admin/watch-brands/:id
func (ctrl *WatchController) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req WatchBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	brand, err := ctrl.watchService.UpdateBrand(id, service.WatchBrandInput(req))
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// DELETE /api/v1/admin/watch-brands/:id
func (ctrl *WatchController) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.watchService.DeleteBrand(id); err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}

// ==================== Back office: collections ====================

// POST /api/v1/admin/watch-collections
func (ctrl *WatchController) CreateCollection(c *gin.Context) {
	var req WatchCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}
	if req.BrandID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "brand_id is required")
		return
	}

	collection, err := ctrl.watchService.CreateCollection(req.BrandID, req.toInput())
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collection": collection})
}

// PUT /api/v1/admin/watch-collections/:id
func (ctrl *WatchController) UpdateCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req WatchCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	collection, err := ctrl.watchService.UpdateCollection(id, req.toInput())
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// DELETE /api/v1/admin/watch-collections/:id
func (ctrl *WatchController) DeleteCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.watchService.DeleteCollection(id); err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

// ==================== Back office: watches ====================

// AdminListWatches includes inactive watches and supports brand_id
// GET /api/v1/admin/watches
func (ctrl *WatchController) AdminListWatches(c *gin.Context) {
	opts := watchListOptions(c)
	opts.IsActive = queryBool(c, "is_active")
	if id := queryInt(c, "brand_id", 0); id > 0 {
		brandID := uint(id)
		opts.BrandID = &brandID
	}
	if opts.PerPage == 0 {
		opts.PerPage = 20
	}

	result, err := ctrl.watchService.ListWatches(opts)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"watches":    result.Watches,
		"pagination": result.Pagination,
	})
}

// GET /api/v1/admin/watches/:id
func (ctrl *WatchController) AdminGetWatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	watch, err := ctrl.watchService.GetWatch(id)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watch": watch})
}

// POST /api/v1/admin/watches
func (ctrl *WatchController) CreateWatch(c *gin.Context) {
	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	watch, err := ctrl.watchService.CreateWatch(req.toInput())
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"watch": watch})
}

// PUT /api/v1/admin/watches/:id
func (ctrl *WatchController) UpdateWatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	watch, err := ctrl.watchService.UpdateWatch(id, req.toInput())
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watch": watch})
}

// DELETE /api/v1/admin/watches/:id
func (ctrl *WatchController) DeleteWatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.watchService.DeleteWatch(id); err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Watch deleted"})
}

// UpsertSpecification creates or replaces the watch's spec sheet
// PUT /api/v1/admin/watches/:id/specification
func (ctrl *WatchController) UpsertSpecification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req WatchSpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	spec, err := ctrl.watchService.UpsertSpecification(id, service.WatchSpecificationInput(req))
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"specification": spec})
}

// POST /api/v1/admin/watches/:id/images
func (ctrl *WatchController) AddImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req WatchImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	image, err := ctrl.watchService.AddImage(id, req.ImageURL, req.AltText, req.ImageType, req.IsPrimary)
	if err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// DELETE /api/v1/admin/watches/:id/images/:imageId
func (ctrl *WatchController) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := ctrl.watchService.DeleteImage(id, imageID); err != nil {
		respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
