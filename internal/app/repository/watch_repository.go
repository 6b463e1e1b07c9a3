package repository

import (
	"errors"
	"strings"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchFilter struct {
	BrandSlug     string
	BrandID       *uint
	CollectionID  *uint
	Gender        string
	WatchType     string
	Style         string
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	Featured      *bool
	IsActive      *bool
	Search        string
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type WatchBrandRepository interface {
	Create(brand *model.WatchBrand) error
	FindAll(activeOnly bool) ([]model.WatchBrand, error)
	FindByID(id uint) (*model.WatchBrand, error)
	FindBySlug(slug string) (*model.WatchBrand, error)
	ExistsBySlug(slug string) (bool, error)
	Update(brand *model.WatchBrand) error
	Delete(id uint) error
	CountWatches(brandID uint) (int64, error)
}

type WatchCollectionRepository interface {
	Create(collection *model.WatchCollection) error
	FindByBrand(brandID uint, activeOnly bool) ([]model.WatchCollection, error)
	FindByID(id uint) (*model.WatchCollection, error)
	FindBySlug(brandSlug, slug string) (*model.WatchCollection, error)
	ExistsBySlugForBrand(brandID uint, slug string) (bool, error)
	Update(collection *model.WatchCollection) error
	Delete(id uint) error
	WatchCounts(brandID uint) (map[uint]int64, error)
}

type WatchRepository interface {
	FindWithFilter(filter WatchFilter) ([]model.Watch, int64, error)
	FindByID(id uint) (*model.Watch, error)
	FindActiveBySlug(slug string) (*model.Watch, error)
	NewestByBrand(brandID uint, limit int, excludeIDs []uint) ([]model.Watch, error)
	Newest(limit int, excludeIDs []uint) ([]model.Watch, error)
	ExistsBySlug(slug string) (bool, error)
	ExistsBySKU(sku string) (bool, error)
	Create(watch *model.Watch) error
	Update(watch *model.Watch) error
	Delete(id uint) error
	Count() (int64, error)

	UpsertSpecification(spec *model.WatchSpecification) error
	CreateImage(image *model.WatchImage) error
	CreatePrimaryImage(image *model.WatchImage) error
	FindImageByID(id uint) (*model.WatchImage, error)
	DeleteImage(id uint) error
}

// ==================== Brands ====================

type watchBrandRepository struct {
	db *gorm.DB
}

func NewWatchBrandRepository(db *gorm.DB) WatchBrandRepository {
	return &watchBrandRepository{db: db}
}

func (r *watchBrandRepository) Create(brand *model.WatchBrand) error {
	logger.Debug("Creating watch brand in database", map[string]interface{}{
		"name": brand.Name,
		"slug": brand.Slug,
	})

	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create watch brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *watchBrandRepository) FindAll(activeOnly bool) ([]model.WatchBrand, error) {
	query := r.db.Model(&model.WatchBrand{}).
		Order("sort_order ASC").
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var brands []model.WatchBrand
	if err := query.Find(&brands).Error; err != nil {
		logger.Error("Failed to find watch brands", err, nil)
		return nil, err
	}
	return brands, nil
}

func (r *watchBrandRepository) FindByID(id uint) (*model.WatchBrand, error) {
	var brand model.WatchBrand
	if err := r.db.First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *watchBrandRepository) FindBySlug(slug string) (*model.WatchBrand, error) {
	var brand model.WatchBrand
	if err := r.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *watchBrandRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WatchBrand{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *watchBrandRepository) Update(brand *model.WatchBrand) error {
	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update watch brand in database", err, map[string]interface{}{
			"brand_id": brand.ID,
		})
		return err
	}
	return nil
}

func (r *watchBrandRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.WatchBrand{}, id).Error; err != nil {
		logger.Error("Failed to delete watch brand from database", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}
	return nil
}

func (r *watchBrandRepository) CountWatches(brandID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Watch{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}

// ==================== Brand collections ====================

type watchCollectionRepository struct {
	db *gorm.DB
}

func NewWatchCollectionRepository(db *gorm.DB) WatchCollectionRepository {
	return &watchCollectionRepository{db: db}
}

func (r *watchCollectionRepository) Create(collection *model.WatchCollection) error {
	if err := r.db.Create(collection).Error; err != nil {
		logger.Error("Failed to create watch collection in database", err, map[string]interface{}{
			"name":     collection.Name,
			"brand_id": collection.BrandID,
		})
		return err
	}
	return nil
}

func (r *watchCollectionRepository) FindByBrand(brandID uint, activeOnly bool) ([]model.WatchCollection, error) {
	query := r.db.Where("brand_id = ?", brandID).
		Order("is_featured DESC").
		Order("sort_order ASC").
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var collections []model.WatchCollection
	if err := query.Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *watchCollectionRepository) FindByID(id uint) (*model.WatchCollection, error) {
	var collection model.WatchCollection
	if err := r.db.Preload("Brand").First(&collection, id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *watchCollectionRepository) FindBySlug(brandSlug, slug string) (*model.WatchCollection, error) {
	var collection model.WatchCollection
	err := r.db.
		Joins("JOIN watch_brands ON watch_brands.id = watch_collections.brand_id").
		Where("watch_brands.slug = ? AND watch_collections.slug = ?", brandSlug, slug).
		Preload("Brand").
		First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *watchCollectionRepository) ExistsBySlugForBrand(brandID uint, slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WatchCollection{}).
		Where("brand_id = ? AND slug = ?", brandID, slug).
		Count(&count).Error
	return count > 0, err
}

func (r *watchCollectionRepository) Update(collection *model.WatchCollection) error {
	return r.db.Save(collection).Error
}

func (r *watchCollectionRepository) Delete(id uint) error {
	return r.db.Delete(&model.WatchCollection{}, id).Error
}

// WatchCounts returns active watch counts keyed by collection ID for a brand
func (r *watchCollectionRepository) WatchCounts(brandID uint) (map[uint]int64, error) {
	type row struct {
		CollectionID uint
		Count        int64
	}

	var rows []row
	err := r.db.Model(&model.Watch{}).
		Select("collection_id, COUNT(*) AS count").
		Where("brand_id = ? AND collection_id IS NOT NULL AND is_active = ?", brandID, true).
		Group("collection_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CollectionID] = r.Count
	}
	return counts, nil
}

// ==================== Watches ====================

type watchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

func (r *watchRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Watch{}).
		Preload("Brand").
		Preload("Collection").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC").Order("sort_order ASC")
		})
}

func (r *watchRepository) detailQuery() *gorm.DB {
	return r.baseQuery().
		Preload("Specification").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("id ASC")
		})
}

func (r *watchRepository) applyFilter(query *gorm.DB, filter WatchFilter) *gorm.DB {
	if filter.BrandSlug != "" {
		query = query.Where("watches.brand_id IN (?)",
			r.db.Model(&model.WatchBrand{}).Select("id").Where("slug = ?", filter.BrandSlug))
	}
	if filter.BrandID != nil {
		query = query.Where("watches.brand_id = ?", *filter.BrandID)
	}
	if filter.CollectionID != nil {
		query = query.Where("watches.collection_id = ?", *filter.CollectionID)
	}
	if filter.Gender != "" {
		query = query.Where("watches.gender = ?", filter.Gender)
	}
	if filter.WatchType != "" {
		query = query.Where("watches.watch_type = ?", filter.WatchType)
	}
	if filter.Style != "" {
		query = query.Where("watches.style = ?", filter.Style)
	}
	if filter.PriceMin != nil {
		query = query.Where("watches.base_price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("watches.base_price <= ?", *filter.PriceMax)
	}
	if filter.Featured != nil {
		query = query.Where("watches.is_featured = ?", *filter.Featured)
	}
	if filter.IsActive != nil {
		query = query.Where("watches.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(watches.name) LIKE ? OR LOWER(watches.model_number) LIKE ? OR LOWER(watches.sku) LIKE ?",
			like, like, like,
		)
	}
	return query
}

func (r *watchRepository) FindWithFilter(filter WatchFilter) ([]model.Watch, int64, error) {
	logger.Debug("Finding watches with filter", map[string]interface{}{
		"brand":     filter.BrandSlug,
		"gender":    filter.Gender,
		"type":      filter.WatchType,
		"style":     filter.Style,
		"search":    filter.Search,
		"sort_by":   filter.SortBy,
		"ascending": filter.SortAscending,
	})

	countQuery := r.applyFilter(r.db.Model(&model.Watch{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		logger.Error("Failed to count watches with filter", err, nil)
		return nil, 0, err
	}

	query := r.applyFilter(r.baseQuery(), filter)

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("watches.base_price " + direction)
	case ProductSortName:
		query = query.Order("watches.name " + direction)
	case ProductSortFeatured:
		query = query.Order("watches.is_featured DESC").Order("watches.created_at DESC")
	default:
		query = query.Order("watches.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var watches []model.Watch
	if err := query.Find(&watches).Error; err != nil {
		logger.Error("Failed to find watches with filter", err, nil)
		return nil, 0, err
	}
	return watches, total, nil
}

func (r *watchRepository) FindByID(id uint) (*model.Watch, error) {
	var watch model.Watch
	if err := r.detailQuery().First(&watch, id).Error; err != nil {
		return nil, err
	}
	return &watch, nil
}

func (r *watchRepository) FindActiveBySlug(slug string) (*model.Watch, error) {
	var watch model.Watch
	err := r.detailQuery().
		Where("watches.slug = ? AND watches.is_active = ?", slug, true).
		First(&watch).Error
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

func (r *watchRepository) NewestByBrand(brandID uint, limit int, excludeIDs []uint) ([]model.Watch, error) {
	query := r.baseQuery().
		Where("watches.brand_id = ? AND watches.is_active = ?", brandID, true).
		Order("watches.created_at DESC").
		Limit(limit)
	if len(excludeIDs) > 0 {
		query = query.Where("watches.id NOT IN ?", excludeIDs)
	}

	var watches []model.Watch
	if err := query.Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

func (r *watchRepository) Newest(limit int, excludeIDs []uint) ([]model.Watch, error) {
	query := r.baseQuery().
		Where("watches.is_active = ?", true).
		Order("watches.created_at DESC").
		Limit(limit)
	if len(excludeIDs) > 0 {
		query = query.Where("watches.id NOT IN ?", excludeIDs)
	}

	var watches []model.Watch
	if err := query.Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

func (r *watchRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Watch{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *watchRepository) ExistsBySKU(sku string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Watch{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

func (r *watchRepository) Create(watch *model.Watch) error {
	logger.Debug("Creating watch in database", map[string]interface{}{
		"name":     watch.Name,
		"slug":     watch.Slug,
		"brand_id": watch.BrandID,
	})

	if err := r.db.Create(watch).Error; err != nil {
		logger.Error("Failed to create watch in database", err, map[string]interface{}{
			"name": watch.Name,
		})
		return err
	}
	return nil
}

func (r *watchRepository) Update(watch *model.Watch) error {
	if err := r.db.Omit(clause.Associations).Save(watch).Error; err != nil {
		logger.Error("Failed to update watch in database", err, map[string]interface{}{
			"watch_id": watch.ID,
		})
		return err
	}
	return nil
}

func (r *watchRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Watch{}, id).Error; err != nil {
		logger.Error("Failed to delete watch from database", err, map[string]interface{}{
			"watch_id": id,
		})
		return err
	}
	return nil
}

func (r *watchRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Watch{}).Count(&count).Error
	return count, err
}

// UpsertSpecification creates or replaces the 1:1 spec sheet for a watch
func (r *watchRepository) UpsertSpecification(spec *model.WatchSpecification) error {
	var existing model.WatchSpecification
	err := r.db.Where("watch_id = ?", spec.WatchID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(spec).Error
	}
	if err != nil {
		return err
	}

	spec.ID = existing.ID
	spec.CreatedAt = existing.CreatedAt
	return r.db.Save(spec).Error
}

func (r *watchRepository) CreateImage(image *model.WatchImage) error {
	return r.db.Create(image).Error
}

// CreatePrimaryImage clears the primary flag on the watch's other images and
// inserts the new one as primary in a single transaction
func (r *watchRepository) CreatePrimaryImage(image *model.WatchImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.WatchImage{}).
			Where("watch_id = ?", image.WatchID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Create(image).Error
	})
}

func (r *watchRepository) FindImageByID(id uint) (*model.WatchImage, error) {
	var image model.WatchImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *watchRepository) DeleteImage(id uint) error {
	return r.db.Delete(&model.WatchImage{}, id).Error
}
