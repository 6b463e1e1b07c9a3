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
	ErrWatchNotFound           = errors.New("watch not found")
	ErrWatchBrandNotFound      = errors.New("watch brand not found")
	ErrWatchBrandInUse         = errors.New("watch brand has watches")
	ErrWatchCollectionNotFound = errors.New("watch collection not found")
	ErrWatchImageNotFound      = errors.New("watch image not found")
)

type WatchBrandInput struct {
	Name          string
	Description   string
	LogoURL       string
	FoundedYear   *int
	CountryOrigin string
	WebsiteURL    string
	IsActive      *bool
	SortOrder     *int
}

type WatchCollectionInput struct {
	Name           string
	Description    string
	ImageURL       string
	TargetAudience model.WatchGender
	IsActive       *bool
	IsFeatured     *bool
	SortOrder      *int
}

type WatchInput struct {
	BrandID         uint
	CollectionID    *uint
	Name            string
	ModelNumber     string
	Description     string
	BasePrice       decimal.Decimal
	SalePrice       *decimal.Decimal
	Gender          model.WatchGender
	WatchType       model.WatchType
	Style           model.WatchStyle
	WarrantyYears   *int
	Availability    model.WatchAvailability
	StockQuantity   *int
	IsActive        *bool
	IsFeatured      *bool
	MetaTitle       string
	MetaDescription string
	SortOrder       *int
}

type WatchSpecificationInput struct {
	Movement        string
	CaseMaterial    string
	CaseDiameter    string
	CaseThickness   string
	DialColor       string
	CrystalMaterial string
	StrapMaterial   string
	StrapColor      string
	WaterResistance string
	PowerReserve    string
	Functions       string
}

type WatchListOptions struct {
	Brand     string
	BrandID   *uint
	Gender    string
	WatchType string
	Style     string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	Featured  *bool
	IsActive  *bool
	Search    string
	Sort      string
	Order     string
	Page      int
	PerPage   int
}

type WatchList struct {
	Watches    []model.Watch
	Pagination Pagination
}

type WatchDetail struct {
	Watch           *model.Watch
	Recommendations []model.Watch
}

// FeaturedCollection is a brand paired with its showcased collection
type FeaturedCollection struct {
	Brand      model.WatchBrand       `json:"brand"`
	Collection *model.WatchCollection `json:"collection,omitempty"`
}

type WatchCollectionDetail struct {
	Collection *model.WatchCollection
	Watches    []model.Watch
}

type WatchService interface {
	ListBrands(activeOnly bool) ([]model.WatchBrand, error)
	GetBrand(id uint) (*model.WatchBrand, error)
	GetBrandBySlug(slug string) (*model.WatchBrand, error)
	CreateBrand(input WatchBrandInput) (*model.WatchBrand, error)
	UpdateBrand(id uint, input WatchBrandInput) (*model.WatchBrand, error)
	DeleteBrand(id uint) error

	ListCollectionsByBrand(brandSlug string, activeOnly bool) ([]model.WatchCollection, error)
	GetCollectionBySlug(brandSlug, collectionSlug string) (*WatchCollectionDetail, error)
	FeaturedCollections() ([]FeaturedCollection, error)
	CreateCollection(brandID uint, input WatchCollectionInput) (*model.WatchCollection, error)
	UpdateCollection(id uint, input WatchCollectionInput) (*model.WatchCollection, error)
	DeleteCollection(id uint) error

	ListWatches(opts WatchListOptions) (*WatchList, error)
	GetWatch(id uint) (*model.Watch, error)
	GetWatchBySlug(slug string) (*WatchDetail, error)
	CreateWatch(input WatchInput) (*model.Watch, error)
	UpdateWatch(id uint, input WatchInput) (*model.Watch, error)
	DeleteWatch(id uint) error
	UpsertSpecification(watchID uint, input WatchSpecificationInput) (*model.WatchSpecification, error)

	AddImage(watchID uint, imageURL, altText string, imageType model.WatchImageType, isPrimary bool) (*model.WatchImage, error)
	DeleteImage(watchID, imageID uint) error
}

type watchService struct {
	brandRepo      repository.WatchBrandRepository
	collectionRepo repository.WatchCollectionRepository
	watchRepo      repository.WatchRepository
}

func NewWatchService(
	brandRepo repository.WatchBrandRepository,
	collectionRepo repository.WatchCollectionRepository,
	watchRepo repository.WatchRepository,
) WatchService {
	return &watchService{
		brandRepo:      brandRepo,
		collectionRepo: collectionRepo,
		watchRepo:      watchRepo,
	}
}

// ==================== Brands ====================

func (s *watchService) ListBrands(activeOnly bool) ([]model.WatchBrand, error) {
	return s.brandRepo.FindAll(activeOnly)
}

func (s *watchService) GetBrand(id uint) (*model.WatchBrand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchBrandNotFound
		}
		return nil, err
	}
	return brand, nil
}

func (s *watchService) GetBrandBySlug(slug string) (*model.WatchBrand, error) {
	brand, err := s.brandRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchBrandNotFound
		}
		return nil, err
	}
	return brand, nil
}

func (s *watchService) CreateBrand(input WatchBrandInput) (*model.WatchBrand, error) {
	slug, err := uniqueSlug(input.Name, s.brandRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	brand := &model.WatchBrand{
		Name:          input.Name,
		Slug:          slug,
		Description:   input.Description,
		LogoURL:       input.LogoURL,
		FoundedYear:   input.FoundedYear,
		CountryOrigin: input.CountryOrigin,
		WebsiteURL:    input.WebsiteURL,
		IsActive:      true,
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		brand.SortOrder = *input.SortOrder
	}

	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}

	logger.Info("Watch brand created", map[string]interface{}{
		"brand_id": brand.ID,
		"slug":     brand.Slug,
	})
	return brand, nil
}

func (s *watchService) UpdateBrand(id uint, input WatchBrandInput) (*model.WatchBrand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchBrandNotFound
		}
		return nil, err
	}

	if input.Name != brand.Name {
		slug, err := uniqueSlug(input.Name, s.brandRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		brand.Slug = slug
	}
	brand.Name = input.Name
	brand.Description = input.Description
	brand.LogoURL = input.LogoURL
	brand.FoundedYear = input.FoundedYear
	brand.CountryOrigin = input.CountryOrigin
	brand.WebsiteURL = input.WebsiteURL
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		brand.SortOrder = *input.SortOrder
	}

	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *watchService) DeleteBrand(id uint) error {
	if _, err := s.brandRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWatchBrandNotFound
		}
		return err
	}

	watches, err := s.brandRepo.CountWatches(id)
	if err != nil {
		return err
	}
	if watches > 0 {
		return ErrWatchBrandInUse
	}

	logger.Info("Deleting watch brand", map[string]interface{}{
		"brand_id": id,
	})
	return s.brandRepo.Delete(id)
}

// ==================== Brand collections ====================

func (s *watchService) ListCollectionsByBrand(brandSlug string, activeOnly bool) ([]model.WatchCollection, error) {
	brand, err := s.brandRepo.FindBySlug(brandSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchBrandNotFound
		}
		return nil, err
	}

	collections, err := s.collectionRepo.FindByBrand(brand.ID, activeOnly)
	if err != nil {
		return nil, err
	}

	counts, err := s.collectionRepo.WatchCounts(brand.ID)
	if err != nil {
		return nil, err
	}
	for i := range collections {
		collections[i].WatchCount = counts[collections[i].ID]
	}

	return collections, nil
}

// GetCollectionBySlug resolves a collection within a brand and loads its
// active watches. Collection slugs are only unique per brand.
func (s *watchService) GetCollectionBySlug(brandSlug, collectionSlug string) (*WatchCollectionDetail, error) {
	collection, err := s.collectionRepo.FindBySlug(brandSlug, collectionSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchCollectionNotFound
		}
		return nil, err
	}

	active := true
	watches, _, err := s.watchRepo.FindWithFilter(repository.WatchFilter{
		CollectionID:  &collection.ID,
		IsActive:      &active,
		SortBy:        repository.ProductSortCreatedAt,
		SortAscending: false,
	})
	if err != nil {
		return nil, err
	}

	return &WatchCollectionDetail{
		Collection: collection,
		Watches:    watches,
	}, nil
}

// FeaturedCollections pairs each active brand with its featured collection,
// falling back to the brand's first collection when none is flagged.
func (s *watchService) FeaturedCollections() ([]FeaturedCollection, error) {
	brands, err := s.brandRepo.FindAll(true)
	if err != nil {
		return nil, err
	}

	featured := make([]FeaturedCollection, 0, len(brands))
	for _, brand := range brands {
		entry := FeaturedCollection{Brand: brand}

		// FindByBrand orders featured first, so the head is the showcase pick
		collections, err := s.collectionRepo.FindByBrand(brand.ID, true)
		if err != nil {
			return nil, err
		}
		if len(collections) > 0 {
			counts, err := s.collectionRepo.WatchCounts(brand.ID)
			if err != nil {
				return nil, err
			}
			collections[0].WatchCount = counts[collections[0].ID]
			entry.Collection = &collections[0]
		}

		featured = append(featured, entry)
	}
	return featured, nil
}

func (s *watchService) CreateCollection(brandID uint, input WatchCollectionInput) (*model.WatchCollection, error) {
	if _, err := s.brandRepo.FindByID(brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchBrandNotFound
		}
		return nil, err
	}

	// collection slugs only need to be unique within their brand
	slug, err := uniqueSlug(input.Name, func(slug string) (bool, error) {
		return s.collectionRepo.ExistsBySlugForBrand(brandID, slug)
	})
	if err != nil {
		return nil, err
	}

	collection := &model.WatchCollection{
		BrandID:        brandID,
		Name:           input.Name,
		Slug:           slug,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		TargetAudience: input.TargetAudience,
		IsActive:       true,
	}
	if collection.TargetAudience == "" {
		collection.TargetAudience = model.WatchGenderUnisex
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
	return collection, nil
}

func (s *watchService) UpdateCollection(id uint, input WatchCollectionInput) (*model.WatchCollection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchCollectionNotFound
		}
		return nil, err
	}

	if input.Name != collection.Name {
		slug, err := uniqueSlug(input.Name, func(slug string) (bool, error) {
			return s.collectionRepo.ExistsBySlugForBrand(collection.BrandID, slug)
		})
		if err != nil {
			return nil, err
		}
		collection.Slug = slug
	}
	collection.Name = input.Name
	collection.Description = input.Description
	collection.ImageURL = input.ImageURL
	if input.TargetAudience != "" {
		collection.TargetAudience = input.TargetAudience
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

	collection.Brand = nil
	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *watchService) DeleteCollection(id uint) error {
	if _, err := s.collectionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWatchCollectionNotFound
		}
		return err
	}
	return s.collectionRepo.Delete(id)
}

// ==================== Watches ====================

func (s *watchService) ListWatches(opts WatchListOptions) (*WatchList, error) {
	page, perPage := normalizePaging(opts.Page, opts.PerPage)

	filter := repository.WatchFilter{
		BrandSlug:     opts.Brand,
		BrandID:       opts.BrandID,
		Gender:        opts.Gender,
		WatchType:     opts.WatchType,
		Style:         opts.Style,
		PriceMin:      opts.PriceMin,
		PriceMax:      opts.PriceMax,
		Featured:      opts.Featured,
		IsActive:      opts.IsActive,
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

	watches, total, err := s.watchRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	return &WatchList{
		Watches:    watches,
		Pagination: NewPagination(page, perPage, total),
	}, nil
}

func (s *watchService) GetWatch(id uint) (*model.Watch, error) {
	watch, err := s.watchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, err
	}
	return watch, nil
}

func (s *watchService) GetWatchBySlug(slug string) (*WatchDetail, error) {
	watch, err := s.watchRepo.FindActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, err
	}

	detail := &WatchDetail{Watch: watch}

	recommendations, err := s.recommendationsFor(watch)
	if err != nil {
		logger.Warn("Failed to load watch recommendations", map[string]interface{}{
			"watch_id": watch.ID,
			"error":    err.Error(),
		})
	} else {
		detail.Recommendations = recommendations
	}

	return detail, nil
}

// recommendationsFor favours the same brand and pads with the newest watches
func (s *watchService) recommendationsFor(watch *model.Watch) ([]model.Watch, error) {
	seen := map[uint]bool{watch.ID: true}
	exclude := []uint{watch.ID}

	recommendations, err := s.watchRepo.NewestByBrand(watch.BrandID, recommendationCount, exclude)
	if err != nil {
		return nil, err
	}
	for _, w := range recommendations {
		seen[w.ID] = true
		exclude = append(exclude, w.ID)
	}

	if len(recommendations) < recommendationCount {
		fill, err := s.watchRepo.Newest(recommendationCount-len(recommendations), exclude)
		if err != nil {
			return nil, err
		}
		for _, w := range fill {
			if !seen[w.ID] {
				seen[w.ID] = true
				recommendations = append(recommendations, w)
			}
		}
	}

	return recommendations, nil
}

func (s *watchService) validateWatchInput(input WatchInput) (*model.WatchBrand, error) {
	if input.BasePrice.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if input.SalePrice != nil && input.SalePrice.GreaterThanOrEqual(input.BasePrice) {
		return nil, ErrInvalidPrice
	}

	brand, err := s.brandRepo.FindByID(input.BrandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchBrandNotFound
		}
		return nil, err
	}

	if input.CollectionID != nil {
		collection, err := s.collectionRepo.FindByID(*input.CollectionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWatchCollectionNotFound
			}
			return nil, err
		}
		if collection.BrandID != input.BrandID {
			return nil, ErrWatchCollectionNotFound
		}
	}

	return brand, nil
}

func (s *watchService) CreateWatch(input WatchInput) (*model.Watch, error) {
	brand, err := s.validateWatchInput(input)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(brand.Name+" "+input.Name, s.watchRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}
	sku, err := uniqueSKU(input.Name, brand.Slug, s.watchRepo.ExistsBySKU)
	if err != nil {
		return nil, err
	}

	watch := &model.Watch{
		BrandID:         input.BrandID,
		CollectionID:    input.CollectionID,
		Name:            input.Name,
		Slug:            slug,
		SKU:             sku,
		ModelNumber:     input.ModelNumber,
		Description:     input.Description,
		BasePrice:       input.BasePrice,
		SalePrice:       input.SalePrice,
		Gender:          input.Gender,
		WatchType:       input.WatchType,
		Style:           input.Style,
		WarrantyYears:   2,
		Availability:    input.Availability,
		IsActive:        true,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
	}
	if watch.Gender == "" {
		watch.Gender = model.WatchGenderUnisex
	}
	if watch.WatchType == "" {
		watch.WatchType = model.WatchTypeAnalog
	}
	if watch.Availability == "" {
		watch.Availability = model.WatchInStock
	}
	if input.WarrantyYears != nil {
		watch.WarrantyYears = *input.WarrantyYears
	}
	if input.StockQuantity != nil {
		watch.StockQuantity = *input.StockQuantity
	}
	if input.IsActive != nil {
		watch.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		watch.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		watch.SortOrder = *input.SortOrder
	}

	if err := s.watchRepo.Create(watch); err != nil {
		return nil, err
	}

	logger.Info("Watch created", map[string]interface{}{
		"watch_id": watch.ID,
		"slug":     watch.Slug,
		"sku":      watch.SKU,
	})
	return s.watchRepo.FindByID(watch.ID)
}

func (s *watchService) UpdateWatch(id uint, input WatchInput) (*model.Watch, error) {
	watch, err := s.watchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, err
	}

	brand, err := s.validateWatchInput(input)
	if err != nil {
		return nil, err
	}

	if input.Name != watch.Name || input.BrandID != watch.BrandID {
		slug, err := uniqueSlug(brand.Name+" "+input.Name, s.watchRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		watch.Slug = slug
	}

	watch.BrandID = input.BrandID
	watch.CollectionID = input.CollectionID
	watch.Name = input.Name
	watch.ModelNumber = input.ModelNumber
	watch.Description = input.Description
	watch.BasePrice = input.BasePrice
	watch.SalePrice = input.SalePrice
	watch.MetaTitle = input.MetaTitle
	watch.MetaDescription = input.MetaDescription
	if input.Gender != "" {
		watch.Gender = input.Gender
	}
	if input.WatchType != "" {
		watch.WatchType = input.WatchType
	}
	if input.Style != "" {
		watch.Style = input.Style
	}
	if input.Availability != "" {
		watch.Availability = input.Availability
	}
	if input.WarrantyYears != nil {
		watch.WarrantyYears = *input.WarrantyYears
	}
	if input.StockQuantity != nil {
		watch.StockQuantity = *input.StockQuantity
	}
	if input.IsActive != nil {
		watch.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		watch.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		watch.SortOrder = *input.SortOrder
	}

	if err := s.watchRepo.Update(watch); err != nil {
		return nil, err
	}
	return s.watchRepo.FindByID(watch.ID)
}

func (s *watchService) DeleteWatch(id uint) error {
	if _, err := s.watchRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWatchNotFound
		}
		return err
	}

	logger.Info("Deleting watch", map[string]interface{}{
		"watch_id": id,
	})
	return s.watchRepo.Delete(id)
}

func (s *watchService) UpsertSpecification(watchID uint, input WatchSpecificationInput) (*model.WatchSpecification, error) {
	if _, err := s.watchRepo.FindByID(watchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, err
	}

	spec := &model.WatchSpecification{
		WatchID:         watchID,
		Movement:        input.Movement,
		CaseMaterial:    input.CaseMaterial,
		CaseDiameter:    input.CaseDiameter,
		CaseThickness:   input.CaseThickness,
		DialColor:       input.DialColor,
		CrystalMaterial: input.CrystalMaterial,
		StrapMaterial:   input.StrapMaterial,
		StrapColor:      input.StrapColor,
		WaterResistance: input.WaterResistance,
		PowerReserve:    input.PowerReserve,
		Functions:       input.Functions,
	}
	if err := s.watchRepo.UpsertSpecification(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *watchService) AddImage(watchID uint, imageURL, altText string, imageType model.WatchImageType, isPrimary bool) (*model.WatchImage, error) {
	watch, err := s.watchRepo.FindByID(watchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, err
	}

	image := &model.WatchImage{
		WatchID:   watchID,
		ImageURL:  imageURL,
		ImageType: imageType,
		AltText:   altText,
		IsPrimary: isPrimary || len(watch.Images) == 0,
		SortOrder: len(watch.Images),
	}
	if image.ImageType == "" {
		image.ImageType = model.WatchImageProduct
	}

	// a new primary demotes the current one
	if image.IsPrimary {
		if err := s.watchRepo.CreatePrimaryImage(image); err != nil {
			return nil, err
		}
		return image, nil
	}

	if err := s.watchRepo.CreateImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *watchService) DeleteImage(watchID, imageID uint) error {
	image, err := s.watchRepo.FindImageByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWatchImageNotFound
		}
		return err
	}
	if image.WatchID != watchID {
		return ErrWatchImageNotFound
	}
	return s.watchRepo.DeleteImage(imageID)
}
