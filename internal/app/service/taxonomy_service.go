package service

import (
	"errors"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTaxonomyNotFound    = errors.New("taxonomy record not found")
	ErrTaxonomyInUse       = errors.New("taxonomy record has linked products")
	ErrCollectionInUse     = errors.New("collection has products")
	ErrProductSizeNotFound = errors.New("product size not found")
)

type TaxonomyInput struct {
	Name        string
	Description string
	ImageURL    string
	IsActive    *bool
	SortOrder   *int
}

type GemstoneInput struct {
	TaxonomyInput
	Color         string
	Hardness      string
	PricePerCarat *decimal.Decimal
}

type MetalInput struct {
	TaxonomyInput
	ColorCode       string
	PriceMultiplier *decimal.Decimal
}

type CollectionInput struct {
	TaxonomyInput
	IsFeatured *bool
}

type ProductSizeInput struct {
	CategoryID uint
	SizeName   string
	SizeValue  string
	IsActive   *bool
	SortOrder  *int
}

// TaxonomyService manages the attribute tables products link to: ring types,
// gemstones, stone types, metals, collections, and category-scoped sizes.
type TaxonomyService interface {
	ListRingTypes(opts TaxonomyListOptions) ([]model.RingType, int64, error)
	CreateRingType(input TaxonomyInput) (*model.RingType, error)
	UpdateRingType(id uint, input TaxonomyInput) (*model.RingType, error)
	DeleteRingType(id uint) error

	ListGemstones(opts TaxonomyListOptions) ([]model.Gemstone, int64, error)
	CreateGemstone(input GemstoneInput) (*model.Gemstone, error)
	UpdateGemstone(id uint, input GemstoneInput) (*model.Gemstone, error)
	DeleteGemstone(id uint) error

	ListStoneTypes(opts TaxonomyListOptions) ([]model.StoneType, int64, error)
	CreateStoneType(input TaxonomyInput) (*model.StoneType, error)
	UpdateStoneType(id uint, input TaxonomyInput) (*model.StoneType, error)
	DeleteStoneType(id uint) error

	ListMetals(opts TaxonomyListOptions) ([]model.Metal, int64, error)
	CreateMetal(input MetalInput) (*model.Metal, error)
	UpdateMetal(id uint, input MetalInput) (*model.Metal, error)
	DeleteMetal(id uint) error

	ListCollections() ([]model.Collection, error)
	GetCollection(id uint) (*model.Collection, error)
	CreateCollection(input CollectionInput) (*model.Collection, error)
	UpdateCollection(id uint, input CollectionInput) (*model.Collection, error)
	DeleteCollection(id uint) error

	ListSizesByCategory(categoryID uint) ([]model.ProductSize, error)
	CreateSize(input ProductSizeInput) (*model.ProductSize, error)
	UpdateSize(id uint, input ProductSizeInput) (*model.ProductSize, error)
	DeleteSize(id uint) error
}

type taxonomyService struct {
	ringTypeRepo   repository.RingTypeRepository
	gemstoneRepo   repository.GemstoneRepository
	stoneTypeRepo  repository.StoneTypeRepository
	metalRepo      repository.MetalRepository
	collectionRepo repository.CollectionRepository
	sizeRepo       repository.ProductSizeRepository
	categoryRepo   repository.CategoryRepository
}

func NewTaxonomyService(
	ringTypeRepo repository.RingTypeRepository,
	gemstoneRepo repository.GemstoneRepository,
	stoneTypeRepo repository.StoneTypeRepository,
	metalRepo repository.MetalRepository,
	collectionRepo repository.CollectionRepository,
	sizeRepo repository.ProductSizeRepository,
	categoryRepo repository.CategoryRepository,
) TaxonomyService {
	return &taxonomyService{
		ringTypeRepo:   ringTypeRepo,
		gemstoneRepo:   gemstoneRepo,
		stoneTypeRepo:  stoneTypeRepo,
		metalRepo:      metalRepo,
		collectionRepo: collectionRepo,
		sizeRepo:       sizeRepo,
		categoryRepo:   categoryRepo,
	}
}

func mapTaxonomyErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaxonomyNotFound
	}
	return err
}

// ==================== Ring types ====================

func (s *taxonomyService) ListRingTypes(opts TaxonomyListOptions) ([]model.RingType, int64, error) {
	return s.ringTypeRepo.FindAll(opts)
}

func (s *taxonomyService) CreateRingType(input TaxonomyInput) (*model.RingType, error) {
	slug, err := uniqueSlug(input.Name, s.ringTypeRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	ringType := &model.RingType{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		ringType.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		ringType.SortOrder = *input.SortOrder
	}

	if err := s.ringTypeRepo.Create(ringType); err != nil {
		return nil, err
	}

	logger.Info("Ring type created", map[string]interface{}{
		"ring_type_id": ringType.ID,
		"slug":         ringType.Slug,
	})
	InvalidateNavigationCache()
	return ringType, nil
}

func (s *taxonomyService) UpdateRingType(id uint, input TaxonomyInput) (*model.RingType, error) {
	ringType, err := s.ringTypeRepo.FindByID(id)
	if err != nil {
		return nil, mapTaxonomyErr(err)
	}

	if input.Name != ringType.Name {
		slug, err := uniqueSlug(input.Name, s.ringTypeRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		ringType.Slug = slug
	}
	ringType.Name = input.Name
	ringType.Description = input.Description
	ringType.ImageURL = input.ImageURL
	if input.IsActive != nil {
		ringType.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		ringType.SortOrder = *input.SortOrder
	}

	if err := s.ringTypeRepo.Update(ringType); err != nil {
		return nil, err
	}
	InvalidateNavigationCache()
	return ringType, nil
}

func (s *taxonomyService) DeleteRingType(id uint) error {
	if _, err := s.ringTypeRepo.FindByID(id); err != nil {
		return mapTaxonomyErr(err)
	}

	linked, err := s.ringTypeRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return ErrTaxonomyInUse
	}

	if err := s.ringTypeRepo.Delete(id); err != nil {
		return err
	}
	InvalidateNavigationCache()
	return nil
}

// ==================== Gemstones ====================

func (s *taxonomyService) ListGemstones(opts TaxonomyListOptions) ([]model.Gemstone, int64, error) {
	return s.gemstoneRepo.FindAll(opts)
}

func (s *taxonomyService) CreateGemstone(input GemstoneInput) (*model.Gemstone, error) {
	slug, err := uniqueSlug(input.Name, s.gemstoneRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	gemstone := &model.Gemstone{
		Name:          input.Name,
		Slug:          slug,
		Description:   input.Description,
		Color:         input.Color,
		Hardness:      input.Hardness,
		PricePerCarat: input.PricePerCarat,
		ImageURL:      input.ImageURL,
		IsActive:      true,
	}
	if input.IsActive != nil {
		gemstone.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		gemstone.SortOrder = *input.SortOrder
	}

	if err := s.gemstoneRepo.Create(gemstone); err != nil {
		return nil, err
	}

	logger.Info("Gemstone created", map[string]interface{}{
		"gemstone_id": gemstone.ID,
		"slug":        gemstone.Slug,
	})
	InvalidateNavigationCache()
	return gemstone, nil
}

func (s *taxonomyService) UpdateGemstone(id uint, input GemstoneInput) (*model.Gemstone, error) {
	gemstone, err := s.gemstoneRepo.FindByID(id)
	if err != nil {
		return nil, mapTaxonomyErr(err)
	}

	if input.Name != gemstone.Name {
		slug, err := uniqueSlug(input.Name, s.gemstoneRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		gemstone.Slug = slug
	}
	gemstone.Name = input.Name
	gemstone.Description = input.Description
	gemstone.Color = input.Color
	gemstone.Hardness = input.Hardness
	gemstone.PricePerCarat = input.PricePerCarat
	gemstone.ImageURL = input.ImageURL
	if input.IsActive != nil {
		gemstone.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		gemstone.SortOrder = *input.SortOrder
	}

	if err := s.gemstoneRepo.Update(gemstone); err != nil {
		return nil, err
	}
	InvalidateNavigationCache()
	return gemstone, nil
}

func (s *taxonomyService) DeleteGemstone(id uint) error {
	if _, err := s.gemstoneRepo.FindByID(id); err != nil {
		return mapTaxonomyErr(err)
	}

	linked, err := s.gemstoneRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return ErrTaxonomyInUse
	}

	if err := s.gemstoneRepo.Delete(id); err != nil {
		return err
	}
	InvalidateNavigationCache()
	return nil
}

// ==================== Stone types ====================

func (s *taxonomyService) ListStoneTypes(opts TaxonomyListOptions) ([]model.StoneType, int64, error) {
	return s.stoneTypeRepo.FindAll(opts)
}

func (s *taxonomyService) CreateStoneType(input TaxonomyInput) (*model.StoneType, error) {
	slug, err := uniqueSlug(input.Name, s.stoneTypeRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	stoneType := &model.StoneType{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		stoneType.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		stoneType.SortOrder = *input.SortOrder
	}

	if err := s.stoneTypeRepo.Create(stoneType); err != nil {
		return nil, err
	}
	return stoneType, nil
}

func (s *taxonomyService) UpdateStoneType(id uint, input TaxonomyInput) (*model.StoneType, error) {
	stoneType, err := s.stoneTypeRepo.FindByID(id)
	if err != nil {
		return nil, mapTaxonomyErr(err)
	}

	if input.Name != stoneType.Name {
		slug, err := uniqueSlug(input.Name, s.stoneTypeRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		stoneType.Slug = slug
	}
	stoneType.Name = input.Name
	stoneType.Description = input.Description
	stoneType.ImageURL = input.ImageURL
	if input.IsActive != nil {
		stoneType.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		stoneType.SortOrder = *input.SortOrder
	}

	if err := s.stoneTypeRepo.Update(stoneType); err != nil {
		return nil, err
	}
	return stoneType, nil
}

func (s *taxonomyService) DeleteStoneType(id uint) error {
	if _, err := s.stoneTypeRepo.FindByID(id); err != nil {
		return mapTaxonomyErr(err)
	}
	return s.stoneTypeRepo.Delete(id)
}

// ==================== Metals ====================

func (s *taxonomyService) ListMetals(opts TaxonomyListOptions) ([]model.Metal, int64, error) {
	return s.metalRepo.FindAll(opts)
}

func (s *taxonomyService) CreateMetal(input MetalInput) (*model.Metal, error) {
	slug, err := uniqueSlug(input.Name, s.metalRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	metal := &model.Metal{
		Name:            input.Name,
		Slug:            slug,
		Description:     input.Description,
		ColorCode:       input.ColorCode,
		PriceMultiplier: decimal.NewFromInt(1),
		ImageURL:        input.ImageURL,
		IsActive:        true,
	}
	if input.PriceMultiplier != nil {
		metal.PriceMultiplier = *input.PriceMultiplier
	}
	if input.IsActive != nil {
		metal.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		metal.SortOrder = *input.SortOrder
	}

	if err := s.metalRepo.Create(metal); err != nil {
		return nil, err
	}

	logger.Info("Metal created", map[string]interface{}{
		"metal_id": metal.ID,
		"slug":     metal.Slug,
	})
	InvalidateNavigationCache()
	return metal, nil
}

func (s *taxonomyService) UpdateMetal(id uint, input MetalInput) (*model.Metal, error) {
	metal, err := s.metalRepo.FindByID(id)
	if err != nil {
		return nil, mapTaxonomyErr(err)
	}

	if input.Name != metal.Name {
		slug, err := uniqueSlug(input.Name, s.metalRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		metal.Slug = slug
	}
	metal.Name = input.Name
	metal.Description = input.Description
	metal.ColorCode = input.ColorCode
	metal.ImageURL = input.ImageURL
	if input.PriceMultiplier != nil {
		metal.PriceMultiplier = *input.PriceMultiplier
	}
	if input.IsActive != nil {
		metal.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		metal.SortOrder = *input.SortOrder
	}

	if err := s.metalRepo.Update(metal); err != nil {
		return nil, err
	}
	InvalidateNavigationCache()
	return metal, nil
}

func (s *taxonomyService) DeleteMetal(id uint) error {
	if _, err := s.metalRepo.FindByID(id); err != nil {
		return mapTaxonomyErr(err)
	}

	linked, err := s.metalRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return ErrTaxonomyInUse
	}

	if err := s.metalRepo.Delete(id); err != nil {
		return err
	}
	InvalidateNavigationCache()
	return nil
}

// ==================== Collections ====================

func (s *taxonomyService) ListCollections() ([]model.Collection, error) {
	return s.collectionRepo.FindAll(false)
}

func (s *taxonomyService) GetCollection(id uint) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return collection, nil
}

func (s *taxonomyService) CreateCollection(input CollectionInput) (*model.Collection, error) {
	slug, err := uniqueSlug(input.Name, s.collectionRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	collection := &model.Collection{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		collection.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		collection.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		collection.SortOrder = *input.SortOrder
	}

	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}

	logger.Info("Collection created", map[string]interface{}{
		"collection_id": collection.ID,
		"slug":          collection.Slug,
	})
	InvalidateNavigationCache()
	return collection, nil
}

func (s *taxonomyService) UpdateCollection(id uint, input CollectionInput) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	if input.Name != collection.Name {
		slug, err := uniqueSlug(input.Name, s.collectionRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		collection.Slug = slug
	}
	collection.Name = input.Name
	collection.Description = input.Description
	collection.ImageURL = input.ImageURL
	if input.IsActive != nil {
		collection.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		collection.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		collection.SortOrder = *input.SortOrder
	}

	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, err
	}
	InvalidateNavigationCache()
	return collection, nil
}

func (s *taxonomyService) DeleteCollection(id uint) error {
	if _, err := s.collectionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectionNotFound
		}
		return err
	}

	linked, err := s.collectionRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return ErrCollectionInUse
	}

	if err := s.collectionRepo.Delete(id); err != nil {
		return err
	}
	InvalidateNavigationCache()
	return nil
}

// ==================== Product sizes ====================

func (s *taxonomyService) ListSizesByCategory(categoryID uint) ([]model.ProductSize, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.sizeRepo.FindByCategory(categoryID, false)
}

func (s *taxonomyService) CreateSize(input ProductSizeInput) (*model.ProductSize, error) {
	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	size := &model.ProductSize{
		CategoryID: input.CategoryID,
		SizeName:   input.SizeName,
		SizeValue:  input.SizeValue,
		IsActive:   true,
	}
	if input.IsActive != nil {
		size.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		size.SortOrder = *input.SortOrder
	}

	if err := s.sizeRepo.Create(size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *taxonomyService) UpdateSize(id uint, input ProductSizeInput) (*model.ProductSize, error) {
	size, err := s.sizeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductSizeNotFound
		}
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != size.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		size.CategoryID = input.CategoryID
	}

	size.SizeName = input.SizeName
	size.SizeValue = input.SizeValue
	if input.IsActive != nil {
		size.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		size.SortOrder = *input.SortOrder
	}

	if err := s.sizeRepo.Update(size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *taxonomyService) DeleteSize(id uint) error {
	if _, err := s.sizeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductSizeNotFound
		}
		return err
	}
	return s.sizeRepo.Delete(id)
}
