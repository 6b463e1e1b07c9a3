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

func setupTaxonomyTest(t *testing.T) (TaxonomyService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewTaxonomyService(
		repository.NewRingTypeRepository(testDB),
		repository.NewGemstoneRepository(testDB),
		repository.NewStoneTypeRepository(testDB),
		repository.NewMetalRepository(testDB),
		repository.NewCollectionRepository(testDB),
		repository.NewProductSizeRepository(testDB),
		repository.NewCategoryRepository(testDB),
	)
	return svc, testDB
}

func TestTaxonomyService_RingTypeCRUD(t *testing.T) {
	svc, testDB := setupTaxonomyTest(t)
	defer db.CleanupTestDB(testDB)

	ringType, err := svc.CreateRingType(TaxonomyInput{Name: "Solitaire"})
	require.NoError(t, err)
	assert.Equal(t, "solitaire", ringType.Slug)
	assert.True(t, ringType.IsActive)

	// Slug probing on name collision
	duplicate, err := svc.CreateRingType(TaxonomyInput{Name: "Solitaire"})
	require.NoError(t, err)
	assert.Equal(t, "solitaire-1", duplicate.Slug)

	inactive := false
	updated, err := svc.UpdateRingType(ringType.ID, TaxonomyInput{Name: "Solitaire", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	list, total, err := svc.ListRingTypes(TaxonomyListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	activeOnly, total, err := svc.ListRingTypes(TaxonomyListOptions{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, "solitaire-1", activeOnly[0].Slug)

	require.NoError(t, svc.DeleteRingType(duplicate.ID))
	_, err = svc.UpdateRingType(9999, TaxonomyInput{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrTaxonomyNotFound)
}

func TestTaxonomyService_DeleteBlockedWhenLinked(t *testing.T) {
	svc, testDB := setupTaxonomyTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	ringType, err := svc.CreateRingType(TaxonomyInput{Name: "Halo"})
	require.NoError(t, err)

	product := &model.Product{
		Name:       "Halo Ring",
		Slug:       "halo-ring",
		SKU:        "RIN-HAL-000001",
		BasePrice:  decimal.RequireFromString("100.00"),
		CategoryID: category.ID,
		IsActive:   true,
		RingTypes:  []model.RingType{{ID: ringType.ID}},
	}
	require.NoError(t, testDB.Create(product).Error)

	err = svc.DeleteRingType(ringType.ID)
	assert.ErrorIs(t, err, ErrTaxonomyInUse)

	// Unlinking the product frees the record
	require.NoError(t, testDB.Model(product).Association("RingTypes").Clear())
	require.NoError(t, svc.DeleteRingType(ringType.ID))
}

func TestTaxonomyService_MetalDefaults(t *testing.T) {
	svc, testDB := setupTaxonomyTest(t)
	defer db.CleanupTestDB(testDB)

	metal, err := svc.CreateMetal(MetalInput{
		TaxonomyInput: TaxonomyInput{Name: "Rose Gold"},
		ColorCode:     "#B76E79",
	})
	require.NoError(t, err)
	assert.Equal(t, "rose-gold", metal.Slug)
	assert.True(t, metal.PriceMultiplier.Equal(decimal.NewFromInt(1)))

	multiplier := decimal.RequireFromString("1.35")
	updated, err := svc.UpdateMetal(metal.ID, MetalInput{
		TaxonomyInput:   TaxonomyInput{Name: "Rose Gold"},
		ColorCode:       "#B76E79",
		PriceMultiplier: &multiplier,
	})
	require.NoError(t, err)
	assert.True(t, updated.PriceMultiplier.Equal(multiplier))
}

func TestTaxonomyService_GemstoneFields(t *testing.T) {
	svc, testDB := setupTaxonomyTest(t)
	defer db.CleanupTestDB(testDB)

	perCarat := decimal.RequireFromString("5200.00")
	gemstone, err := svc.CreateGemstone(GemstoneInput{
		TaxonomyInput: TaxonomyInput{Name: "Sapphire"},
		Color:         "blue",
		Hardness:      "9",
		PricePerCarat: &perCarat,
	})
	require.NoError(t, err)
	assert.Equal(t, "sapphire", gemstone.Slug)
	assert.Equal(t, "blue", gemstone.Color)
	require.NotNil(t, gemstone.PricePerCarat)
	assert.True(t, gemstone.PricePerCarat.Equal(perCarat))
}

func TestTaxonomyService_CollectionLifecycle(t *testing.T) {
	svc, testDB := setupTaxonomyTest(t)
	defer db.CleanupTestDB(testDB)

	featured := true
	collection, err := svc.CreateCollection(CollectionInput{
		TaxonomyInput: TaxonomyInput{Name: "Heritage"},
		IsFeatured:    &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, "heritage", collection.Slug)
	assert.True(t, collection.IsFeatured)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product := &model.Product{
		Name:         "Heritage Ring",
		Slug:         "heritage-ring",
		SKU:          "RIN-HER-000001",
		BasePrice:    decimal.RequireFromString("100.00"),
		CategoryID:   category.ID,
		CollectionID: &collection.ID,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(product).Error)

	err = svc.DeleteCollection(collection.ID)
	assert.ErrorIs(t, err, ErrCollectionInUse)

	require.NoError(t, testDB.Model(product).Update("collection_id", nil).Error)
	require.NoError(t, svc.DeleteCollection(collection.ID))
}

func TestTaxonomyService_Sizes(t *testing.T) {
	svc, testDB := setupTaxonomyTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")

	size, err := svc.CreateSize(ProductSizeInput{CategoryID: category.ID, SizeName: "K", SizeValue: "50.0"})
	require.NoError(t, err)
	assert.Equal(t, "K", size.SizeName)

	_, err = svc.CreateSize(ProductSizeInput{CategoryID: 9999, SizeName: "L"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	sizes, err := svc.ListSizesByCategory(category.ID)
	require.NoError(t, err)
	assert.Len(t, sizes, 1)

	updated, err := svc.UpdateSize(size.ID, ProductSizeInput{CategoryID: category.ID, SizeName: "K", SizeValue: "50.5"})
	require.NoError(t, err)
	assert.Equal(t, "50.5", updated.SizeValue)

	require.NoError(t, svc.DeleteSize(size.ID))
	err = svc.DeleteSize(size.ID)
	assert.ErrorIs(t, err, ErrProductSizeNotFound)
}
