package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
)

func setupCatalogTest(t *testing.T) (CatalogService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewCatalogService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
		repository.NewCollectionRepository(testDB),
		repository.NewRingTypeRepository(testDB),
		repository.NewGemstoneRepository(testDB),
		repository.NewMetalRepository(testDB),
		repository.NewProductSizeRepository(testDB),
	)
	return svc, testDB
}

func seedCatalogProduct(t *testing.T, testDB *gorm.DB, name, slug, sku string, categoryID uint, price string, active bool) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       name,
		Slug:       slug,
		SKU:        sku,
		BasePrice:  decimal.RequireFromString(price),
		CategoryID: categoryID,
		IsActive:   active,
		InStock:    true,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestCatalogService_ListProducts_HidesInactive(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	seedCatalogProduct(t, testDB, "Visible Ring", "visible-ring", "RIN-VIS-000001", category.ID, "100.00", true)
	seedCatalogProduct(t, testDB, "Hidden Ring", "hidden-ring", "RIN-HID-000002", category.ID, "100.00", false)

	result, err := svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "visible-ring", result.Products[0].Slug)
	assert.Equal(t, int64(1), result.Pagination.TotalItems)
}

func TestCatalogService_ListProducts_PriceSortAscending(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	seedCatalogProduct(t, testDB, "Pricey", "pricey", "RIN-PRI-000001", category.ID, "900.00", true)
	seedCatalogProduct(t, testDB, "Cheap", "cheap", "RIN-CHE-000002", category.ID, "100.00", true)
	seedCatalogProduct(t, testDB, "Middle", "middle", "RIN-MID-000003", category.ID, "500.00", true)

	result, err := svc.ListProducts(ProductListOptions{Sort: "price", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, result.Products, 3)
	assert.Equal(t, "cheap", result.Products[0].Slug)
	assert.Equal(t, "middle", result.Products[1].Slug)
	assert.Equal(t, "pricey", result.Products[2].Slug)
}

func TestCatalogService_ListProducts_PriceRange(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	seedCatalogProduct(t, testDB, "Low", "low", "RIN-LOW-000001", category.ID, "80.00", true)
	seedCatalogProduct(t, testDB, "Mid", "mid", "RIN-MID-000002", category.ID, "400.00", true)
	seedCatalogProduct(t, testDB, "High", "high", "RIN-HIG-000003", category.ID, "2000.00", true)

	min := decimal.RequireFromString("100.00")
	max := decimal.RequireFromString("1000.00")
	result, err := svc.ListProducts(ProductListOptions{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "mid", result.Products[0].Slug)
}

func TestCatalogService_ListProducts_Pagination(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	for i := 0; i < 5; i++ {
		slug := string(rune('a' + i))
		seedCatalogProduct(t, testDB, "Ring "+slug, "ring-"+slug, "RIN-"+slug+"-00000"+slug, category.ID, "100.00", true)
	}

	first, err := svc.ListProducts(ProductListOptions{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, first.Products, 2)
	assert.Equal(t, int64(5), first.Pagination.TotalItems)
	assert.Equal(t, 3, first.Pagination.TotalPages)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)

	last, err := svc.ListProducts(ProductListOptions{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, last.Products, 1)
	assert.False(t, last.Pagination.HasNext)
	assert.True(t, last.Pagination.HasPrev)
}

func TestCatalogService_ListByCategory(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	rings := seedTestCategory(t, testDB, "Rings", "rings")
	necklaces := seedTestCategory(t, testDB, "Necklaces", "necklaces")
	seedCatalogProduct(t, testDB, "Band", "band", "RIN-BAN-000001", rings.ID, "100.00", true)
	seedCatalogProduct(t, testDB, "Chain", "chain", "NEC-CHA-000002", necklaces.ID, "100.00", true)

	result, err := svc.ListByCategory("rings", ProductListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "band", result.Products[0].Slug)

	_, err = svc.ListByCategory("no-such-category", ProductListOptions{})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_GetProductBySlug(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	parent := seedTestCategory(t, testDB, "Jewellery", "jewellery")
	child := &model.Category{Name: "Rings", Slug: "rings", ParentID: &parent.ID, Level: 1, IsActive: true}
	require.NoError(t, testDB.Create(child).Error)

	product := seedCatalogProduct(t, testDB, "Detailed Ring", "detailed-ring", "RIN-DET-000001", child.ID, "100.00", true)
	require.NoError(t, testDB.Create(&model.ProductSize{CategoryID: child.ID, SizeName: "M", IsActive: true}).Error)

	detail, err := svc.GetProductBySlug("detailed-ring")
	require.NoError(t, err)
	assert.Equal(t, product.ID, detail.Product.ID)
	require.Len(t, detail.Breadcrumbs, 2)
	assert.Equal(t, "jewellery", detail.Breadcrumbs[0].Slug)
	assert.Equal(t, "rings", detail.Breadcrumbs[1].Slug)
	require.Len(t, detail.Sizes, 1)
	assert.Equal(t, "M", detail.Sizes[0].SizeName)

	_, err = svc.GetProductBySlug("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_GetProductBySlug_Recommendations(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	rings := seedTestCategory(t, testDB, "Rings", "rings")
	necklaces := seedTestCategory(t, testDB, "Necklaces", "necklaces")

	target := seedCatalogProduct(t, testDB, "Target", "target", "RIN-TAR-000000", rings.ID, "100.00", true)
	sibling := seedCatalogProduct(t, testDB, "Sibling", "sibling", "RIN-SIB-000001", rings.ID, "100.00", true)
	seedCatalogProduct(t, testDB, "Filler", "filler", "NEC-FIL-000002", necklaces.ID, "100.00", true)

	detail, err := svc.GetProductBySlug("target")
	require.NoError(t, err)

	ids := map[uint]bool{}
	for _, rec := range detail.Recommendations {
		assert.NotEqual(t, target.ID, rec.ID, "a product never recommends itself")
		assert.False(t, ids[rec.ID], "recommendations must not repeat")
		ids[rec.ID] = true
	}
	// Same-category items come first, padded from the rest of the catalog
	require.NotEmpty(t, detail.Recommendations)
	assert.Equal(t, sibling.ID, detail.Recommendations[0].ID)
	assert.Len(t, detail.Recommendations, 2)
}

func TestCatalogService_GetNavigation(t *testing.T) {
	svc, testDB := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, testDB.Create(&model.RingType{Name: "Solitaire", Slug: "solitaire", IsActive: true}).Error)
	require.NoError(t, testDB.Create(&model.RingType{Name: "Retired", Slug: "retired", IsActive: false}).Error)
	require.NoError(t, testDB.Create(&model.Metal{Name: "Platinum", Slug: "platinum", PriceMultiplier: decimal.NewFromInt(1), IsActive: true}).Error)

	navigation, err := svc.GetNavigation()
	require.NoError(t, err)
	require.Len(t, navigation.RingTypes, 1)
	assert.Equal(t, "solitaire", navigation.RingTypes[0].Slug)
	require.Len(t, navigation.Metals, 1)
	assert.Empty(t, navigation.Gemstones)
}
