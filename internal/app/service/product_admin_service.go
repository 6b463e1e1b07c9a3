package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrProductImageNotFound = errors.New("product image not found")
	ErrProductVideoNotFound = errors.New("product video not found")
	ErrUnknownBulkAction    = errors.New("unknown bulk action")
)

type ProductInput struct {
	Name             string
	Description      string
	ShortDescription string
	BasePrice        decimal.Decimal
	SalePrice        *decimal.Decimal
	CategoryID       uint
	CollectionID     *uint
	IsActive         *bool
	IsFeatured       *bool
	InStock          *bool
	StockQuantity    *int
	Weight           *decimal.Decimal
	Dimensions       string
	CareInstructions string
	WarrantyInfo     string
	MetaTitle        string
	MetaDescription  string
	SortOrder        *int

	// nil leaves the links untouched on update; empty slice clears them
	RingTypeIDs []uint
	GemstoneIDs []uint
	MetalIDs    []uint
}

type AdminProductListOptions struct {
	CategoryID   *uint
	CollectionID *uint
	IsActive     *bool
	Featured     *bool
	Search       string
	Sort         string
	Order        string
	Page         int
	PerPage      int
}

// AdminProductSummary is the condensed row shape for back-office listings
type AdminProductSummary struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	SKU          string           `json:"sku"`
	BasePrice    decimal.Decimal  `json:"base_price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Category     string           `json:"category"`
	Collection   string           `json:"collection,omitempty"`
	IsActive     bool             `json:"is_active"`
	IsFeatured   bool             `json:"is_featured"`
	InStock      bool             `json:"in_stock"`
	PrimaryImage string           `json:"primary_image"`
	VariantCount int              `json:"variant_count"`
	TotalStock   int              `json:"total_stock"`
	CreatedAt    time.Time        `json:"created_at"`
}

type AdminProductList struct {
	Products   []AdminProductSummary `json:"products"`
	Pagination Pagination            `json:"pagination"`
}

func summarizeProduct(p *model.Product) AdminProductSummary {
	summary := AdminProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		SKU:          p.SKU,
		BasePrice:    p.BasePrice,
		SalePrice:    p.SalePrice,
		IsActive:     p.IsActive,
		IsFeatured:   p.IsFeatured,
		InStock:      p.InStock,
		PrimaryImage: p.PrimaryImageURL(),
		VariantCount: len(p.Variants),
		TotalStock:   p.StockQuantity,
		CreatedAt:    p.CreatedAt,
	}
	for _, variant := range p.Variants {
		summary.TotalStock += variant.StockQuantity
	}
	if p.Category != nil {
		summary.Category = p.Category.Name
	}
	if p.Collection != nil {
		summary.Collection = p.Collection.Name
	}
	return summary
}

// ProductOptions feeds the admin product form's select boxes
type ProductOptions struct {
	Categories  []model.Category   `json:"categories"`
	Collections []model.Collection `json:"collections"`
	RingTypes   []model.RingType   `json:"ring_types"`
	Gemstones   []model.Gemstone   `json:"gemstones"`
	StoneTypes  []model.StoneType  `json:"stone_types"`
	Metals      []model.Metal      `json:"metals"`
}

type BulkActionParams struct {
	CategoryID   *uint
	CollectionID *uint
}

type BulkResult struct {
	SuccessCount int    `json:"success_count"`
	FailedIDs    []uint `json:"failed_ids"`
}

type ProductAdminService interface {
	ListProducts(opts AdminProductListOptions) (*AdminProductList, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	ToggleActive(id uint) (*model.Product, error)
	ToggleFeatured(id uint) (*model.Product, error)
	GetProductOptions() (*ProductOptions, error)
	BulkAction(action string, ids []uint, params BulkActionParams) (*BulkResult, error)
	BulkDelete(ids []uint) (*BulkResult, error)
	ExportProducts() (*excelize.File, error)

	AddImage(productID uint, imageURL, altText, title string, isPrimary bool) (*model.ProductImage, error)
	AddVideo(productID uint, videoURL, title string) (*model.ProductVideo, error)
	SetPrimaryImage(productID, imageID uint) error
	DeleteImage(productID, imageID uint) error
	DeleteVideo(productID, videoID uint) error
}

type productAdminService struct {
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	collectionRepo repository.CollectionRepository
	ringTypeRepo   repository.RingTypeRepository
	gemstoneRepo   repository.GemstoneRepository
	stoneTypeRepo  repository.StoneTypeRepository
	metalRepo      repository.MetalRepository
}

func NewProductAdminService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	collectionRepo repository.CollectionRepository,
	ringTypeRepo repository.RingTypeRepository,
	gemstoneRepo repository.GemstoneRepository,
	stoneTypeRepo repository.StoneTypeRepository,
	metalRepo repository.MetalRepository,
) ProductAdminService {
	return &productAdminService{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		collectionRepo: collectionRepo,
		ringTypeRepo:   ringTypeRepo,
		gemstoneRepo:   gemstoneRepo,
		stoneTypeRepo:  stoneTypeRepo,
		metalRepo:      metalRepo,
	}
}

func (s *productAdminService) ListProducts(opts AdminProductListOptions) (*AdminProductList, error) {
	page, perPage := normalizePaging(opts.Page, opts.PerPage)

	filter := repository.ProductFilter{
		CategoryID:    opts.CategoryID,
		CollectionID:  opts.CollectionID,
		IsActive:      opts.IsActive,
		Featured:      opts.Featured,
		Search:        opts.Search,
		SortAscending: opts.Order == "asc",
		Limit:         perPage,
		Offset:        (page - 1) * perPage,
	}
	if sortBy, ok := productSorts[opts.Sort]; ok {
		filter.SortBy = sortBy
	} else {
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]AdminProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, summarizeProduct(&products[i]))
	}

	return &AdminProductList{
		Products:   summaries,
		Pagination: NewPagination(page, perPage, total),
	}, nil
}

func (s *productAdminService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productAdminService) validateInput(input ProductInput) (*model.Category, error) {
	if input.BasePrice.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if input.SalePrice != nil && input.SalePrice.GreaterThanOrEqual(input.BasePrice) {
		return nil, ErrInvalidPrice
	}

	category, err := s.categoryRepo.FindByID(input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.CollectionID != nil {
		if _, err := s.collectionRepo.FindByID(*input.CollectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCollectionNotFound
			}
			return nil, err
		}
	}

	return category, nil
}

func (s *productAdminService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	category, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(input.Name, s.productRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}
	sku, err := uniqueSKU(input.Name, category.Slug, s.productRepo.ExistsBySKU)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:             input.Name,
		Slug:             slug,
		SKU:              sku,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		BasePrice:        input.BasePrice,
		SalePrice:        input.SalePrice,
		CategoryID:       input.CategoryID,
		CollectionID:     input.CollectionID,
		IsActive:         true,
		Weight:           input.Weight,
		Dimensions:       input.Dimensions,
		CareInstructions: input.CareInstructions,
		WarrantyInfo:     input.WarrantyInfo,
		MetaTitle:        input.MetaTitle,
		MetaDescription:  input.MetaDescription,
		InStock:          true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}

	if err := s.productRepo.CreateWithAssets(product, input.RingTypeIDs, input.GemstoneIDs, input.MetalIDs); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
		"sku":        product.SKU,
	})

	return s.productRepo.FindByID(product.ID)
}

func (s *productAdminService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.validateInput(input); err != nil {
		return nil, err
	}

	// renaming regenerates the slug; the SKU stays stable for life
	if input.Name != product.Name {
		slug, err := uniqueSlug(input.Name, s.productRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}

	product.Name = input.Name
	product.Description = input.Description
	product.ShortDescription = input.ShortDescription
	product.BasePrice = input.BasePrice
	product.SalePrice = input.SalePrice
	product.CategoryID = input.CategoryID
	product.CollectionID = input.CollectionID
	product.Weight = input.Weight
	product.Dimensions = input.Dimensions
	product.CareInstructions = input.CareInstructions
	product.WarrantyInfo = input.WarrantyInfo
	product.MetaTitle = input.MetaTitle
	product.MetaDescription = input.MetaDescription
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}

	if err := s.productRepo.UpdateWithAssets(product, input.RingTypeIDs, input.GemstoneIDs, input.MetalIDs); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(product.ID)
}

func (s *productAdminService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})
	return s.productRepo.Delete(id)
}

func (s *productAdminService) ToggleActive(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.productRepo.UpdateFields(id, map[string]interface{}{
		"is_active": !product.IsActive,
	}); err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive
	return product, nil
}

func (s *productAdminService) ToggleFeatured(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.productRepo.UpdateFields(id, map[string]interface{}{
		"is_featured": !product.IsFeatured,
	}); err != nil {
		return nil, err
	}
	product.IsFeatured = !product.IsFeatured
	return product, nil
}

func (s *productAdminService) GetProductOptions() (*ProductOptions, error) {
	options := &ProductOptions{}
	var err error

	if options.Categories, err = s.categoryRepo.FindAll(false); err != nil {
		return nil, err
	}
	if options.Collections, err = s.collectionRepo.FindAll(false); err != nil {
		return nil, err
	}
	if options.RingTypes, _, err = s.ringTypeRepo.FindAll(repository.TaxonomyListOptions{}); err != nil {
		return nil, err
	}
	if options.Gemstones, _, err = s.gemstoneRepo.FindAll(repository.TaxonomyListOptions{}); err != nil {
		return nil, err
	}
	if options.StoneTypes, _, err = s.stoneTypeRepo.FindAll(repository.TaxonomyListOptions{}); err != nil {
		return nil, err
	}
	if options.Metals, _, err = s.metalRepo.FindAll(repository.TaxonomyListOptions{}); err != nil {
		return nil, err
	}

	return options, nil
}

// BulkAction applies one action to many products, counting per-item outcomes
// instead of failing the whole batch on the first bad ID.
func (s *productAdminService) BulkAction(action string, ids []uint, params BulkActionParams) (*BulkResult, error) {
	var fields map[string]interface{}

	switch action {
	case "activate":
		fields = map[string]interface{}{"is_active": true}
	case "deactivate":
		fields = map[string]interface{}{"is_active": false}
	case "feature":
		fields = map[string]interface{}{"is_featured": true}
	case "unfeature":
		fields = map[string]interface{}{"is_featured": false}
	case "set_category":
		if params.CategoryID == nil {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.categoryRepo.FindByID(*params.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		fields = map[string]interface{}{"category_id": *params.CategoryID}
	case "set_collection":
		if params.CollectionID != nil {
			if _, err := s.collectionRepo.FindByID(*params.CollectionID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrCollectionNotFound
				}
				return nil, err
			}
		}
		// nil collection detaches the products
		fields = map[string]interface{}{"collection_id": params.CollectionID}
	default:
		return nil, ErrUnknownBulkAction
	}

	logger.Info("Applying bulk product action", map[string]interface{}{
		"action": action,
		"count":  len(ids),
	})

	existing, err := s.existingProductIDs(ids)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	for _, id := range ids {
		if !existing[id] {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		if err := s.productRepo.UpdateFields(id, fields); err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

// existingProductIDs resolves a batch of IDs in one query
func (s *productAdminService) existingProductIDs(ids []uint) (map[uint]bool, error) {
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	existing := make(map[uint]bool, len(products))
	for _, p := range products {
		existing[p.ID] = true
	}
	return existing, nil
}

func (s *productAdminService) BulkDelete(ids []uint) (*BulkResult, error) {
	logger.Info("Bulk deleting products", map[string]interface{}{
		"count": len(ids),
	})

	existing, err := s.existingProductIDs(ids)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	for _, id := range ids {
		if !existing[id] {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		if err := s.productRepo.Delete(id); err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

var exportHeaders = []string{
	"ID", "SKU", "Name", "Slug", "Category", "Collection",
	"Base Price", "Sale Price", "Currency", "Stock", "Active", "Featured", "Created",
}

// ExportProducts builds an Excel workbook with one row per product
func (s *productAdminService) ExportProducts() (*excelize.File, error) {
	filter := repository.ProductFilter{
		SortBy: repository.ProductSortCreatedAt,
	}
	products, _, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Products"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, p := range products {
		row := i + 2
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		collectionName := ""
		if p.Collection != nil {
			collectionName = p.Collection.Name
		}
		salePrice := ""
		if p.SalePrice != nil {
			salePrice = p.SalePrice.StringFixed(2)
		}

		values := []interface{}{
			p.ID, p.SKU, p.Name, p.Slug, categoryName, collectionName,
			p.BasePrice.StringFixed(2), salePrice, p.Currency,
			p.StockQuantity, p.IsActive, p.IsFeatured,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Product export generated", map[string]interface{}{
		"rows": len(products),
	})
	return f, nil
}

func (s *productAdminService) AddImage(productID uint, imageURL, altText, title string, isPrimary bool) (*model.ProductImage, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	maxSort, err := s.productRepo.MaxImageSortOrder(productID)
	if err != nil {
		return nil, err
	}

	image := &model.ProductImage{
		ProductID: productID,
		ImageURL:  imageURL,
		AltText:   altText,
		Title:     title,
		SortOrder: maxSort + 1,
	}
	// the first image is always primary
	if len(product.Images) == 0 {
		image.IsPrimary = true
	}

	if err := s.productRepo.CreateImage(image); err != nil {
		return nil, err
	}

	if isPrimary && !image.IsPrimary {
		if err := s.productRepo.SetPrimaryImage(productID, image.ID); err != nil {
			return nil, err
		}
		image.IsPrimary = true
	}

	return image, nil
}

func (s *productAdminService) AddVideo(productID uint, videoURL, title string) (*model.ProductVideo, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	video := &model.ProductVideo{
		ProductID: productID,
		VideoURL:  videoURL,
		Title:     title,
	}
	if err := s.productRepo.CreateVideo(video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *productAdminService) SetPrimaryImage(productID, imageID uint) error {
	image, err := s.productRepo.FindImageByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductImageNotFound
		}
		return err
	}
	if image.ProductID != productID {
		return ErrProductImageNotFound
	}
	return s.productRepo.SetPrimaryImage(productID, imageID)
}

func (s *productAdminService) DeleteImage(productID, imageID uint) error {
	image, err := s.productRepo.FindImageByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductImageNotFound
		}
		return err
	}
	if image.ProductID != productID {
		return ErrProductImageNotFound
	}
	return s.productRepo.DeleteImage(imageID)
}

func (s *productAdminService) DeleteVideo(productID, videoID uint) error {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	for _, video := range product.Videos {
		if video.ID == videoID {
			return s.productRepo.DeleteVideo(videoID)
		}
	}
	return fmt.Errorf("%w: id %d", ErrProductVideoNotFound, videoID)
}
