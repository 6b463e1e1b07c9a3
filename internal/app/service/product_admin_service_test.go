package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
)

func setupProductAdminTest(t *testing.T) (ProductAdminService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewProductAdminService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
		repository.NewCollectionRepository(testDB),
		repository.NewRingTypeRepository(testDB),
		repository.NewGemstoneRepository(testDB),
		repository.NewStoneTypeRepository(testDB),
		repository.NewMetalRepository(testDB),
	)
	return svc, testDB
}

func seedTestCategory(t *testing.T, testDB *gorm.DB, name, slug string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Slug: slug, IsActive: true}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func ringInput(name string, categoryID uint, price string) ProductInput {
	return ProductInput{
		Name:       name,
		BasePrice:  decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
}

func TestProductAdminService_CreateProduct(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")

	product, err := svc.CreateProduct(ringInput("Solitaire Diamond Ring", category.ID, "1250.00"))
	require.NoError(t, err)

	assert.Equal(t, "solitaire-diamond-ring", product.Slug)
	assert.True(t, strings.HasPrefix(product.SKU, "RIN-SOLIT-"), "unexpected SKU %q", product.SKU)
	assert.True(t, product.IsActive)
	assert.True(t, product.BasePrice.Equal(decimal.RequireFromString("1250.00")))
}

func TestProductAdminService_ListProducts_SummaryShape(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product, err := svc.CreateProduct(ringInput("Summary Ring", category.ID, "400.00"))
	require.NoError(t, err)

	_, err = svc.AddImage(product.ID, "/uploads/products/hero.jpg", "hero", "", true)
	require.NoError(t, err)

	variants := []model.ProductVariant{
		{ProductID: product.ID, VariantName: "Gold", SKU: "SUM-G-1", StockQuantity: 3, IsActive: true},
		{ProductID: product.ID, VariantName: "Platinum", SKU: "SUM-P-1", StockQuantity: 2, IsActive: true},
	}
	require.NoError(t, testDB.Create(&variants).Error)
	require.NoError(t, testDB.Model(product).Update("stock_quantity", 5).Error)

	result, err := svc.ListProducts(AdminProductListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)

	// rows are condensed: primary image, variant count, aggregate stock
	row := result.Products[0]
	assert.Equal(t, product.ID, row.ID)
	assert.Equal(t, "Rings", row.Category)
	assert.Equal(t, "/uploads/products/hero.jpg", row.PrimaryImage)
	assert.Equal(t, 2, row.VariantCount)
	assert.Equal(t, 10, row.TotalStock)
}

func TestProductAdminService_CreateProduct_SlugCollision(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")

	first, err := svc.CreateProduct(ringInput("Halo Ring", category.ID, "900.00"))
	require.NoError(t, err)
	second, err := svc.CreateProduct(ringInput("Halo Ring", category.ID, "950.00"))
	require.NoError(t, err)
	third, err := svc.CreateProduct(ringInput("Halo Ring", category.ID, "980.00"))
	require.NoError(t, err)

	assert.Equal(t, "halo-ring", first.Slug)
	assert.Equal(t, "halo-ring-1", second.Slug)
	assert.Equal(t, "halo-ring-2", third.Slug)
	assert.NotEqual(t, first.SKU, second.SKU)
}

func TestProductAdminService_CreateProduct_Validation(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")

	tests := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{
			name:    "zero base price",
			input:   ringInput("Ring", category.ID, "0"),
			wantErr: ErrInvalidPrice,
		},
		{
			name: "sale price above base price",
			input: func() ProductInput {
				in := ringInput("Ring", category.ID, "100.00")
				sale := decimal.RequireFromString("150.00")
				in.SalePrice = &sale
				return in
			}(),
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "unknown category",
			input:   ringInput("Ring", 9999, "100.00"),
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductAdminService_UpdateProduct_SlugAndSKU(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product, err := svc.CreateProduct(ringInput("Eternity Band", category.ID, "750.00"))
	require.NoError(t, err)
	originalSKU := product.SKU

	// Same name keeps the slug
	updated, err := svc.UpdateProduct(product.ID, ringInput("Eternity Band", category.ID, "800.00"))
	require.NoError(t, err)
	assert.Equal(t, "eternity-band", updated.Slug)

	// A rename regenerates the slug, the SKU stays stable for life
	updated, err = svc.UpdateProduct(product.ID, ringInput("Infinity Band", category.ID, "800.00"))
	require.NoError(t, err)
	assert.Equal(t, "infinity-band", updated.Slug)
	assert.Equal(t, originalSKU, updated.SKU)
}

func TestProductAdminService_TaxonomyLinks(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	metal := &model.Metal{Name: "Yellow Gold", Slug: "yellow-gold", PriceMultiplier: decimal.NewFromInt(1), IsActive: true}
	require.NoError(t, testDB.Create(metal).Error)

	input := ringInput("Gold Signet", category.ID, "450.00")
	input.MetalIDs = []uint{metal.ID}
	product, err := svc.CreateProduct(input)
	require.NoError(t, err)

	loaded, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Metals, 1)
	assert.Equal(t, "yellow-gold", loaded.Metals[0].Slug)

	// nil slice leaves the links untouched
	_, err = svc.UpdateProduct(product.ID, ringInput("Gold Signet", category.ID, "460.00"))
	require.NoError(t, err)
	loaded, err = svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Metals, 1)

	// an empty slice clears them
	cleared := ringInput("Gold Signet", category.ID, "460.00")
	cleared.MetalIDs = []uint{}
	_, err = svc.UpdateProduct(product.ID, cleared)
	require.NoError(t, err)
	loaded, err = svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Metals, 0)
}

func TestProductAdminService_Toggles(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product, err := svc.CreateProduct(ringInput("Toggle Ring", category.ID, "300.00"))
	require.NoError(t, err)
	require.True(t, product.IsActive)

	toggled, err := svc.ToggleActive(product.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	// Toggling twice restores the original state
	toggled, err = svc.ToggleActive(product.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	toggled, err = svc.ToggleFeatured(product.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFeatured)
}

func TestProductAdminService_BulkAction(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	first, err := svc.CreateProduct(ringInput("Bulk One", category.ID, "100.00"))
	require.NoError(t, err)
	second, err := svc.CreateProduct(ringInput("Bulk Two", category.ID, "110.00"))
	require.NoError(t, err)

	result, err := svc.BulkAction("deactivate", []uint{first.ID, second.ID, 9999}, BulkActionParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, []uint{9999}, result.FailedIDs)

	loaded, err := svc.GetProduct(first.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsActive)

	_, err = svc.BulkAction("explode", []uint{first.ID}, BulkActionParams{})
	assert.ErrorIs(t, err, ErrUnknownBulkAction)
}

func TestProductAdminService_BulkDelete(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product, err := svc.CreateProduct(ringInput("Doomed Ring", category.ID, "100.00"))
	require.NoError(t, err)

	result, err := svc.BulkDelete([]uint{product.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, []uint{9999}, result.FailedIDs)

	_, err = svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductAdminService_Media(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product, err := svc.CreateProduct(ringInput("Pictured Ring", category.ID, "100.00"))
	require.NoError(t, err)

	// The first image is always primary
	first, err := svc.AddImage(product.ID, "/uploads/products/a.jpg", "front", "", false)
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)

	second, err := svc.AddImage(product.ID, "/uploads/products/b.jpg", "side", "", false)
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)
	assert.Greater(t, second.SortOrder, first.SortOrder)

	// Promoting the second demotes the first
	require.NoError(t, svc.SetPrimaryImage(product.ID, second.ID))
	loaded, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	for _, img := range loaded.Images {
		assert.Equal(t, img.ID == second.ID, img.IsPrimary)
	}

	// Media ownership is checked against the product
	err = svc.DeleteImage(9999, first.ID)
	assert.Error(t, err)

	require.NoError(t, svc.DeleteImage(product.ID, first.ID))

	_, err = svc.AddVideo(product.ID, "/uploads/videos/spin.mp4", "360 view")
	require.NoError(t, err)
	err = svc.DeleteVideo(product.ID, 9999)
	assert.ErrorIs(t, err, ErrProductVideoNotFound)
}

func TestProductAdminService_ExportProducts(t *testing.T) {
	svc, testDB := setupProductAdminTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	_, err := svc.CreateProduct(ringInput("Exported Ring", category.ID, "640.00"))
	require.NoError(t, err)

	file, err := svc.ExportProducts()
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one product
	assert.Contains(t, rows[1], "Exported Ring")
	assert.Contains(t, rows[1], "640.00")
}
