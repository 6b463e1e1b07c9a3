package repository

import (
	"strings"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortName      ProductSort = "name"
	ProductSortFeatured  ProductSort = "featured"
	ProductSortOrder     ProductSort = "sort_order"
	ProductSortCreatedAt ProductSort = "created_at"
)

type ProductFilter struct {
	CategorySlug   string
	CategoryID     *uint
	CollectionSlug string
	CollectionID   *uint
	PriceMin       *decimal.Decimal
	PriceMax       *decimal.Decimal
	Metal          string
	Gemstone       string
	Featured       *bool
	InStock        *bool
	IsActive       *bool
	Search         string
	SortBy         ProductSort
	SortAscending  bool
	Limit          int
	Offset         int
}

type ProductRepository interface {
	FindWithFilter(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uint) (*model.Product, error)
	FindActiveBySlug(slug string) (*model.Product, error)
	FindByIDs(ids []uint) ([]model.Product, error)
	NewestInCategory(categoryID uint, limit int, excludeIDs []uint) ([]model.Product, error)
	Newest(limit int, excludeIDs []uint) ([]model.Product, error)
	Recent(limit int) ([]model.Product, error)
	ExistsBySlug(slug string) (bool, error)
	ExistsBySKU(sku string) (bool, error)
	CreateWithAssets(product *model.Product, ringTypeIDs, gemstoneIDs, metalIDs []uint) error
	UpdateWithAssets(product *model.Product, ringTypeIDs, gemstoneIDs, metalIDs []uint) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	Count() (int64, error)
	CountActive() (int64, error)

	CreateImage(image *model.ProductImage) error
	CreateVideo(video *model.ProductVideo) error
	FindImageByID(id uint) (*model.ProductImage, error)
	SetPrimaryImage(productID, imageID uint) error
	DeleteImage(id uint) error
	DeleteVideo(id uint) error
	MaxImageSortOrder(productID uint) (int, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Collection").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC").Order("sort_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("id ASC")
		})
}

func (r *productRepository) detailQuery() *gorm.DB {
	return r.baseQuery().
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("RingTypes").
		Preload("Gemstones").
		Preload("Metals")
}

// taxonomySubquery selects product IDs linked to a taxonomy row matched by
// slug or name. Matching is case-insensitive so "Gold" and "gold" both work.
func (r *productRepository) taxonomySubquery(joinTable, fkColumn, table, term string) *gorm.DB {
	like := "%" + strings.ToLower(term) + "%"
	return r.db.Table(joinTable).
		Select(joinTable+".product_id").
		Joins("JOIN "+table+" ON "+table+".id = "+joinTable+"."+fkColumn).
		Where(table+".slug = ? OR LOWER("+table+".name) LIKE ?", strings.ToLower(term), like)
}

func (r *productRepository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.CategorySlug != "" {
		query = query.Where("products.category_id IN (?)",
			r.db.Model(&model.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.CollectionSlug != "" {
		query = query.Where("products.collection_id IN (?)",
			r.db.Model(&model.Collection{}).Select("id").Where("slug = ?", filter.CollectionSlug))
	}
	if filter.CollectionID != nil {
		query = query.Where("products.collection_id = ?", *filter.CollectionID)
	}
	if filter.PriceMin != nil {
		query = query.Where("products.base_price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("products.base_price <= ?", *filter.PriceMax)
	}
	if filter.Metal != "" {
		query = query.Where("products.id IN (?)",
			r.taxonomySubquery("product_metals", "metal_id", "metals", filter.Metal))
	}
	if filter.Gemstone != "" {
		query = query.Where("products.id IN (?)",
			r.taxonomySubquery("product_gemstones", "gemstone_id", "gemstones", filter.Gemstone))
	}
	if filter.Featured != nil {
		query = query.Where("products.is_featured = ?", *filter.Featured)
	}
	if filter.InStock != nil {
		query = query.Where("products.in_stock = ?", *filter.InStock)
	}
	if filter.IsActive != nil {
		query = query.Where("products.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.sku) LIKE ?",
			like, like, like,
		)
	}
	return query
}

func (r *productRepository) applySort(query *gorm.DB, sortBy ProductSort, ascending bool) *gorm.DB {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	switch sortBy {
	case ProductSortPrice:
		query = query.Order("products.base_price " + direction)
	case ProductSortName:
		query = query.Order("products.name " + direction)
	case ProductSortFeatured:
		query = query.Order("products.is_featured DESC").Order("products.created_at DESC")
	case ProductSortOrder:
		query = query.Order("products.sort_order " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		// unknown sort keys fall back to newest first
		query = query.Order("products.created_at " + direction)
	}
	return query
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category":   filter.CategorySlug,
		"collection": filter.CollectionSlug,
		"metal":      filter.Metal,
		"gemstone":   filter.Gemstone,
		"search":     filter.Search,
		"sort_by":    filter.SortBy,
		"ascending":  filter.SortAscending,
		"limit":      filter.Limit,
		"offset":     filter.Offset,
	})

	countQuery := r.applyFilter(r.db.Model(&model.Product{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, nil)
		return nil, 0, err
	}

	query := r.applyFilter(r.baseQuery(), filter)
	query = r.applySort(query, filter.SortBy, filter.SortAscending)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.detailQuery().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindActiveBySlug(slug string) (*model.Product, error) {
	var product model.Product
	err := r.detailQuery().
		Where("products.slug = ? AND products.is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ids []uint) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) NewestInCategory(categoryID uint, limit int, excludeIDs []uint) ([]model.Product, error) {
	query := r.baseQuery().
		Where("products.category_id = ? AND products.is_active = ?", categoryID, true).
		Order("products.created_at DESC").
		Limit(limit)
	if len(excludeIDs) > 0 {
		query = query.Where("products.id NOT IN ?", excludeIDs)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Newest(limit int, excludeIDs []uint) ([]model.Product, error) {
	query := r.baseQuery().
		Where("products.is_active = ?", true).
		Order("products.created_at DESC").
		Limit(limit)
	if len(excludeIDs) > 0 {
		query = query.Where("products.id NOT IN ?", excludeIDs)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Recent(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.baseQuery().
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *productRepository) ExistsBySKU(sku string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

// CreateWithAssets creates the product, its media and variants, and its
// taxonomy links inside a single transaction. Any failure rolls back the lot.
func (r *productRepository) CreateWithAssets(product *model.Product, ringTypeIDs, gemstoneIDs, metalIDs []uint) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"sku":         product.SKU,
		"category_id": product.CategoryID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return replaceTaxonomyLinks(tx, product, ringTypeIDs, gemstoneIDs, metalIDs)
	})
	if err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"slug": product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// UpdateWithAssets saves the product's own columns and replaces its taxonomy
// links in one transaction. Media and variants have their own endpoints.
func (r *productRepository) UpdateWithAssets(product *model.Product, ringTypeIDs, gemstoneIDs, metalIDs []uint) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}
		return replaceTaxonomyLinks(tx, product, ringTypeIDs, gemstoneIDs, metalIDs)
	})
	if err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func replaceTaxonomyLinks(tx *gorm.DB, product *model.Product, ringTypeIDs, gemstoneIDs, metalIDs []uint) error {
	if ringTypeIDs != nil {
		ringTypes := make([]model.RingType, len(ringTypeIDs))
		for i, id := range ringTypeIDs {
			ringTypes[i] = model.RingType{ID: id}
		}
		if err := tx.Model(product).Association("RingTypes").Replace(ringTypes); err != nil {
			return err
		}
	}
	if gemstoneIDs != nil {
		gemstones := make([]model.Gemstone, len(gemstoneIDs))
		for i, id := range gemstoneIDs {
			gemstones[i] = model.Gemstone{ID: id}
		}
		if err := tx.Model(product).Association("Gemstones").Replace(gemstones); err != nil {
			return err
		}
	}
	if metalIDs != nil {
		metals := make([]model.Metal, len(metalIDs))
		for i, id := range metalIDs {
			metals[i] = model.Metal{ID: id}
		}
		if err := tx.Model(product).Association("Metals").Replace(metals); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update product fields", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *productRepository) CreateImage(image *model.ProductImage) error {
	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create product image", err, map[string]interface{}{
			"product_id": image.ProductID,
		})
		return err
	}
	return nil
}

func (r *productRepository) CreateVideo(video *model.ProductVideo) error {
	if err := r.db.Create(video).Error; err != nil {
		logger.Error("Failed to create product video", err, map[string]interface{}{
			"product_id": video.ProductID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindImageByID(id uint) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// SetPrimaryImage marks one image primary and clears the flag on its siblings
func (r *productRepository) SetPrimaryImage(productID, imageID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProductImage{}).
			Where("product_id = ?", productID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.ProductImage{}).
			Where("id = ? AND product_id = ?", imageID, productID).
			Update("is_primary", true).Error
	})
}

func (r *productRepository) DeleteImage(id uint) error {
	return r.db.Delete(&model.ProductImage{}, id).Error
}

func (r *productRepository) DeleteVideo(id uint) error {
	return r.db.Delete(&model.ProductVideo{}, id).Error
}

func (r *productRepository) MaxImageSortOrder(productID uint) (int, error) {
	var max *int
	err := r.db.Model(&model.ProductImage{}).
		Where("product_id = ?", productID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
