package service

import (
	"context"
	"errors"
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/cache"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

const (
	defaultPerPage      = 12
	maxPerPage          = 100
	recommendationCount = 6

	navigationCacheKey = "catalog:navigation"
	navigationCacheTTL = 10 * time.Minute
)

// productSorts whitelists the sort keys accepted from the query string.
// Unknown keys fall back to created_at.
var productSorts = map[string]repository.ProductSort{
	"price":      repository.ProductSortPrice,
	"name":       repository.ProductSortName,
	"featured":   repository.ProductSortFeatured,
	"sort_order": repository.ProductSortOrder,
	"created_at": repository.ProductSortCreatedAt,
}

type ProductListOptions struct {
	Category   string
	Collection string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Metal      string
	Gemstone   string
	Featured   *bool
	InStock    *bool
	Search     string
	Sort       string
	Order      string
	Page       int
	PerPage    int
}

type ProductList struct {
	Products   []model.Product
	Pagination Pagination
}

type Breadcrumb struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductDetail struct {
	Product         *model.Product
	Breadcrumbs     []Breadcrumb
	Sizes           []model.ProductSize
	Recommendations []model.Product
}

// Navigation is the storefront menu/filter metadata block
type Navigation struct {
	RingTypes   []model.RingType   `json:"ring_types"`
	Gemstones   []model.Gemstone   `json:"gemstones"`
	Metals      []model.Metal      `json:"metals"`
	Collections []model.Collection `json:"collections"`
}

type CatalogService interface {
	ListProducts(opts ProductListOptions) (*ProductList, error)
	ListByCategory(categorySlug string, opts ProductListOptions) (*ProductList, error)
	GetProductBySlug(slug string) (*ProductDetail, error)
	GetCategoryTree() ([]model.Category, error)
	GetNavigation() (*Navigation, error)
}

type catalogService struct {
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	collectionRepo  repository.CollectionRepository
	ringTypeRepo    repository.RingTypeRepository
	gemstoneRepo    repository.GemstoneRepository
	metalRepo       repository.MetalRepository
	productSizeRepo repository.ProductSizeRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	collectionRepo repository.CollectionRepository,
	ringTypeRepo repository.RingTypeRepository,
	gemstoneRepo repository.GemstoneRepository,
	metalRepo repository.MetalRepository,
	productSizeRepo repository.ProductSizeRepository,
) CatalogService {
	return &catalogService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		collectionRepo:  collectionRepo,
		ringTypeRepo:    ringTypeRepo,
		gemstoneRepo:    gemstoneRepo,
		metalRepo:       metalRepo,
		productSizeRepo: productSizeRepo,
	}
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func (s *catalogService) ListProducts(opts ProductListOptions) (*ProductList, error) {
	logger.Debug("Listing storefront products", map[string]interface{}{
		"category":   opts.Category,
		"collection": opts.Collection,
		"metal":      opts.Metal,
		"gemstone":   opts.Gemstone,
		"search":     opts.Search,
		"sort":       opts.Sort,
		"order":      opts.Order,
		"page":       opts.Page,
	})

	page, perPage := normalizePaging(opts.Page, opts.PerPage)
	active := true

	filter := repository.ProductFilter{
		CategorySlug:   opts.Category,
		CollectionSlug: opts.Collection,
		PriceMin:       opts.PriceMin,
		PriceMax:       opts.PriceMax,
		Metal:          opts.Metal,
		Gemstone:       opts.Gemstone,
		Featured:       opts.Featured,
		InStock:        opts.InStock,
		IsActive:       &active,
		Search:         opts.Search,
		SortAscending:  opts.Order == "asc",
		Limit:          perPage,
		Offset:         (page - 1) * perPage,
	}

	if sortBy, ok := productSorts[opts.Sort]; ok {
		filter.SortBy = sortBy
	} else {
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list storefront products", err)
		return nil, err
	}

	return &ProductList{
		Products:   products,
		Pagination: NewPagination(page, perPage, total),
	}, nil
}

func (s *catalogService) ListByCategory(categorySlug string, opts ProductListOptions) (*ProductList, error) {
	if _, err := s.categoryRepo.FindBySlug(categorySlug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	opts.Category = categorySlug
	return s.ListProducts(opts)
}

func (s *catalogService) GetProductBySlug(slug string) (*ProductDetail, error) {
	logger.Debug("Fetching product detail", map[string]interface{}{
		"slug": slug,
	})

	product, err := s.productRepo.FindActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product detail", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	detail := &ProductDetail{Product: product}

	detail.Breadcrumbs = s.buildBreadcrumbs(product)

	if sizes, err := s.productSizeRepo.FindByCategory(product.CategoryID, true); err == nil {
		detail.Sizes = sizes
	} else {
		logger.Warn("Failed to load category sizes", map[string]interface{}{
			"category_id": product.CategoryID,
			"error":       err.Error(),
		})
	}

	recommendations, err := s.recommendationsFor(product)
	if err != nil {
		logger.Warn("Failed to load recommendations", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	} else {
		detail.Recommendations = recommendations
	}

	return detail, nil
}

func (s *catalogService) buildBreadcrumbs(product *model.Product) []Breadcrumb {
	var crumbs []Breadcrumb
	if product.Category == nil {
		return crumbs
	}

	// walk up the category tree, then reverse
	var chain []model.Category
	current := *product.Category
	chain = append(chain, current)
	for current.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(*current.ParentID)
		if err != nil {
			break
		}
		chain = append(chain, *parent)
		current = *parent
	}

	for i := len(chain) - 1; i >= 0; i-- {
		crumbs = append(crumbs, Breadcrumb{Name: chain[i].Name, Slug: chain[i].Slug})
	}
	return crumbs
}

// recommendationsFor picks products from the same category newest-first and
// pads with the newest products overall, never repeating an ID.
func (s *catalogService) recommendationsFor(product *model.Product) ([]model.Product, error) {
	seen := map[uint]bool{product.ID: true}
	exclude := []uint{product.ID}

	recommendations, err := s.productRepo.NewestInCategory(product.CategoryID, recommendationCount, exclude)
	if err != nil {
		return nil, err
	}
	for _, p := range recommendations {
		seen[p.ID] = true
		exclude = append(exclude, p.ID)
	}

	if len(recommendations) < recommendationCount {
		fill, err := s.productRepo.Newest(recommendationCount-len(recommendations), exclude)
		if err != nil {
			return nil, err
		}
		for _, p := range fill {
			if !seen[p.ID] {
				seen[p.ID] = true
				recommendations = append(recommendations, p)
			}
		}
	}

	return recommendations, nil
}

func (s *catalogService) GetCategoryTree() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindRootsWithChildren(true)
	if err != nil {
		logger.Error("Failed to fetch category tree", err)
		return nil, err
	}

	counts, err := s.categoryRepo.ProductCountsByCategory()
	if err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].ProductCount = counts[categories[i].ID]
		for j := range categories[i].Children {
			categories[i].Children[j].ProductCount = counts[categories[i].Children[j].ID]
		}
	}

	return categories, nil
}

func (s *catalogService) GetNavigation() (*Navigation, error) {
	ctx := context.Background()

	var cached Navigation
	if err := cache.GetJSON(ctx, navigationCacheKey, &cached); err == nil {
		logger.Debug("Navigation served from cache", nil)
		return &cached, nil
	}

	nav := &Navigation{}
	activeOnly := TaxonomyListOptions{ActiveOnly: true}

	ringTypes, _, err := s.ringTypeRepo.FindAll(repository.TaxonomyListOptions(activeOnly))
	if err != nil {
		return nil, err
	}
	nav.RingTypes = ringTypes

	gemstones, _, err := s.gemstoneRepo.FindAll(repository.TaxonomyListOptions(activeOnly))
	if err != nil {
		return nil, err
	}
	nav.Gemstones = gemstones

	metals, _, err := s.metalRepo.FindAll(repository.TaxonomyListOptions(activeOnly))
	if err != nil {
		return nil, err
	}
	nav.Metals = metals

	collections, err := s.collectionRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	nav.Collections = collections

	if err := cache.SetJSON(ctx, navigationCacheKey, nav, navigationCacheTTL); err != nil {
		logger.Warn("Failed to cache navigation", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return nav, nil
}

// InvalidateNavigationCache drops the cached navigation block.
// Taxonomy writes call this so menus never serve stale entries.
func InvalidateNavigationCache() {
	if err := cache.Delete(context.Background(), navigationCacheKey); err != nil {
		logger.Warn("Failed to invalidate navigation cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// TaxonomyListOptions mirrors the repository options for use by callers
type TaxonomyListOptions = repository.TaxonomyListOptions
