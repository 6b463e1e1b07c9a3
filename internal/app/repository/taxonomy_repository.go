package repository

import (
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

// The four taxonomy tables (ring types, gemstones, stone types, metals) share
// one access pattern, so each repository is a thin wrapper over taxonomyStore.

type TaxonomyListOptions struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

type taxonomyStore struct {
	db *gorm.DB
}

func (s *taxonomyStore) list(dest interface{}, m interface{}, opts TaxonomyListOptions) (int64, error) {
	countQuery := s.db.Model(m)
	if opts.ActiveOnly {
		countQuery = countQuery.Where("is_active = ?", true)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return 0, err
	}

	query := s.db.Model(m).Order("sort_order ASC").Order("name ASC")
	if opts.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	if err := query.Find(dest).Error; err != nil {
		logger.Error("Failed to list taxonomy records", err, nil)
		return 0, err
	}
	return total, nil
}

func (s *taxonomyStore) existsBySlug(m interface{}, slug string) (bool, error) {
	var count int64
	err := s.db.Model(m).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *taxonomyStore) countLinkedProducts(joinTable, fkColumn string, id uint) (int64, error) {
	var count int64
	err := s.db.Table(joinTable).Where(fkColumn+" = ?", id).Count(&count).Error
	return count, err
}

// ==================== Ring types ====================

type RingTypeRepository interface {
	Create(ringType *model.RingType) error
	FindAll(opts TaxonomyListOptions) ([]model.RingType, int64, error)
	FindByID(id uint) (*model.RingType, error)
	ExistsBySlug(slug string) (bool, error)
	Update(ringType *model.RingType) error
	Delete(id uint) error
	CountProducts(id uint) (int64, error)
}

type ringTypeRepository struct {
	taxonomyStore
}

func NewRingTypeRepository(db *gorm.DB) RingTypeRepository {
	return &ringTypeRepository{taxonomyStore{db: db}}
}

func (r *ringTypeRepository) Create(ringType *model.RingType) error {
	return r.db.Create(ringType).Error
}

func (r *ringTypeRepository) FindAll(opts TaxonomyListOptions) ([]model.RingType, int64, error) {
	var ringTypes []model.RingType
	total, err := r.list(&ringTypes, &model.RingType{}, opts)
	return ringTypes, total, err
}

func (r *ringTypeRepository) FindByID(id uint) (*model.RingType, error) {
	var ringType model.RingType
	if err := r.db.First(&ringType, id).Error; err != nil {
		return nil, err
	}
	return &ringType, nil
}

func (r *ringTypeRepository) ExistsBySlug(slug string) (bool, error) {
	return r.existsBySlug(&model.RingType{}, slug)
}

func (r *ringTypeRepository) Update(ringType *model.RingType) error {
	return r.db.Save(ringType).Error
}

func (r *ringTypeRepository) Delete(id uint) error {
	return r.db.Delete(&model.RingType{}, id).Error
}

func (r *ringTypeRepository) CountProducts(id uint) (int64, error) {
	return r.countLinkedProducts("product_ring_types", "ring_type_id", id)
}

// ==================== Gemstones ====================

type GemstoneRepository interface {
	Create(gemstone *model.Gemstone) error
	FindAll(opts TaxonomyListOptions) ([]model.Gemstone, int64, error)
	FindByID(id uint) (*model.Gemstone, error)
	ExistsBySlug(slug string) (bool, error)
	Update(gemstone *model.Gemstone) error
	Delete(id uint) error
	CountProducts(id uint) (int64, error)
}

type gemstoneRepository struct {
	taxonomyStore
}

func NewGemstoneRepository(db *gorm.DB) GemstoneRepository {
	return &gemstoneRepository{taxonomyStore{db: db}}
}

func (r *gemstoneRepository) Create(gemstone *model.Gemstone) error {
	return r.db.Create(gemstone).Error
}

func (r *gemstoneRepository) FindAll(opts TaxonomyListOptions) ([]model.Gemstone, int64, error) {
	var gemstones []model.Gemstone
	total, err := r.list(&gemstones, &model.Gemstone{}, opts)
	return gemstones, total, err
}

func (r *gemstoneRepository) FindByID(id uint) (*model.Gemstone, error) {
	var gemstone model.Gemstone
	if err := r.db.First(&gemstone, id).Error; err != nil {
		return nil, err
	}
	return &gemstone, nil
}

func (r *gemstoneRepository) ExistsBySlug(slug string) (bool, error) {
	return r.existsBySlug(&model.Gemstone{}, slug)
}

func (r *gemstoneRepository) Update(gemstone *model.Gemstone) error {
	return r.db.Save(gemstone).Error
}

func (r *gemstoneRepository) Delete(id uint) error {
	return r.db.Delete(&model.Gemstone{}, id).Error
}

func (r *gemstoneRepository) CountProducts(id uint) (int64, error) {
	return r.countLinkedProducts("product_gemstones", "gemstone_id", id)
}

// ==================== Stone types ====================

type StoneTypeRepository interface {
	Create(stoneType *model.StoneType) error
	FindAll(opts TaxonomyListOptions) ([]model.StoneType, int64, error)
	FindByID(id uint) (*model.StoneType, error)
	ExistsBySlug(slug string) (bool, error)
	Update(stoneType *model.StoneType) error
	Delete(id uint) error
}

type stoneTypeRepository struct {
	taxonomyStore
}

func NewStoneTypeRepository(db *gorm.DB) StoneTypeRepository {
	return &stoneTypeRepository{taxonomyStore{db: db}}
}

func (r *stoneTypeRepository) Create(stoneType *model.StoneType) error {
	return r.db.Create(stoneType).Error
}

func (r *stoneTypeRepository) FindAll(opts TaxonomyListOptions) ([]model.StoneType, int64, error) {
	var stoneTypes []model.StoneType
	total, err := r.list(&stoneTypes, &model.StoneType{}, opts)
	return stoneTypes, total, err
}

func (r *stoneTypeRepository) FindByID(id uint) (*model.StoneType, error) {
	var stoneType model.StoneType
	if err := r.db.First(&stoneType, id).Error; err != nil {
		return nil, err
	}
	return &stoneType, nil
}

func (r *stoneTypeRepository) ExistsBySlug(slug string) (bool, error) {
	return r.existsBySlug(&model.StoneType{}, slug)
}

func (r *stoneTypeRepository) Update(stoneType *model.StoneType) error {
	return r.db.Save(stoneType).Error
}

func (r *stoneTypeRepository) Delete(id uint) error {
	return r.db.Delete(&model.StoneType{}, id).Error
}

// ==================== Metals ====================

type MetalRepository interface {
	Create(metal *model.Metal) error
	FindAll(opts TaxonomyListOptions) ([]model.Metal, int64, error)
	FindByID(id uint) (*model.Metal, error)
	ExistsBySlug(slug string) (bool, error)
	Update(metal *model.Metal) error
	Delete(id uint) error
	CountProducts(id uint) (int64, error)
}

type metalRepository struct {
	taxonomyStore
}

func NewMetalRepository(db *gorm.DB) MetalRepository {
	return &metalRepository{taxonomyStore{db: db}}
}

func (r *metalRepository) Create(metal *model.Metal) error {
	return r.db.Create(metal).Error
}

func (r *metalRepository) FindAll(opts TaxonomyListOptions) ([]model.Metal, int64, error) {
	var metals []model.Metal
	total, err := r.list(&metals, &model.Metal{}, opts)
	return metals, total, err
}

func (r *metalRepository) FindByID(id uint) (*model.Metal, error) {
	var metal model.Metal
	if err := r.db.First(&metal, id).Error; err != nil {
		return nil, err
	}
	return &metal, nil
}

func (r *metalRepository) ExistsBySlug(slug string) (bool, error) {
	return r.existsBySlug(&model.Metal{}, slug)
}

func (r *metalRepository) Update(metal *model.Metal) error {
	return r.db.Save(metal).Error
}

func (r *metalRepository) Delete(id uint) error {
	return r.db.Delete(&model.Metal{}, id).Error
}

func (r *metalRepository) CountProducts(id uint) (int64, error) {
	return r.countLinkedProducts("product_metals", "metal_id", id)
}

// ==================== Product sizes ====================

type ProductSizeRepository interface {
	Create(size *model.ProductSize) error
	FindByCategory(categoryID uint, activeOnly bool) ([]model.ProductSize, error)
	FindByID(id uint) (*model.ProductSize, error)
	Update(size *model.ProductSize) error
	Delete(id uint) error
}

type productSizeRepository struct {
	db *gorm.DB
}

func NewProductSizeRepository(db *gorm.DB) ProductSizeRepository {
	return &productSizeRepository{db: db}
}

func (r *productSizeRepository) Create(size *model.ProductSize) error {
	return r.db.Create(size).Error
}

func (r *productSizeRepository) FindByCategory(categoryID uint, activeOnly bool) ([]model.ProductSize, error) {
	query := r.db.Where("category_id = ?", categoryID).
		Order("sort_order ASC").
		Order("size_name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var sizes []model.ProductSize
	if err := query.Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *productSizeRepository) FindByID(id uint) (*model.ProductSize, error) {
	var size model.ProductSize
	if err := r.db.First(&size, id).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

func (r *productSizeRepository) Update(size *model.ProductSize) error {
	return r.db.Save(size).Error
}

func (r *productSizeRepository) Delete(id uint) error {
	return r.db.Delete(&model.ProductSize{}, id).Error
}
