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

func setupWatchTest(t *testing.T) (WatchService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewWatchService(
		repository.NewWatchBrandRepository(testDB),
		repository.NewWatchCollectionRepository(testDB),
		repository.NewWatchRepository(testDB),
	)
	return svc, testDB
}

func watchInput(brandID uint, name, price string) WatchInput {
	return WatchInput{
		BrandID:   brandID,
		Name:      name,
		BasePrice: decimal.RequireFromString(price),
	}
}

func TestWatchService_BrandLifecycle(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian & Co"})
	require.NoError(t, err)
	assert.Equal(t, "meridian-co", brand.Slug)
	assert.True(t, brand.IsActive)

	watch, err := svc.CreateWatch(watchInput(brand.ID, "Navigator", "2400.00"))
	require.NoError(t, err)

	// Brands with watches cannot be removed
	err = svc.DeleteBrand(brand.ID)
	assert.ErrorIs(t, err, ErrWatchBrandInUse)

	require.NoError(t, svc.DeleteWatch(watch.ID))
	require.NoError(t, svc.DeleteBrand(brand.ID))
}

func TestWatchService_GetBrandBySlug(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	created, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian & Co"})
	require.NoError(t, err)

	brand, err := svc.GetBrandBySlug("meridian-co")
	require.NoError(t, err)
	assert.Equal(t, created.ID, brand.ID)

	_, err = svc.GetBrandBySlug("missing")
	assert.ErrorIs(t, err, ErrWatchBrandNotFound)
}

func TestWatchService_CreateWatch_Defaults(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)

	watch, err := svc.CreateWatch(watchInput(brand.ID, "Navigator GMT", "3100.00"))
	require.NoError(t, err)

	// Slugs carry the brand so two brands can share a model name
	assert.Equal(t, "meridian-navigator-gmt", watch.Slug)
	assert.Equal(t, model.WatchGenderUnisex, watch.Gender)
	assert.Equal(t, model.WatchTypeAnalog, watch.WatchType)
	assert.Equal(t, model.WatchInStock, watch.Availability)
	assert.Equal(t, 2, watch.WarrantyYears)
	assert.True(t, strings.HasPrefix(watch.SKU, "MER-"), "unexpected SKU %q", watch.SKU)
}

func TestWatchService_CreateWatch_CollectionMustMatchBrand(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	other, err := svc.CreateBrand(WatchBrandInput{Name: "Atlas"})
	require.NoError(t, err)

	collection, err := svc.CreateCollection(other.ID, WatchCollectionInput{Name: "Expedition"})
	require.NoError(t, err)

	input := watchInput(brand.ID, "Navigator", "1000.00")
	input.CollectionID = &collection.ID
	_, err = svc.CreateWatch(input)
	assert.ErrorIs(t, err, ErrWatchCollectionNotFound)
}

func TestWatchService_CollectionSlugScopedToBrand(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	meridian, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	atlas, err := svc.CreateBrand(WatchBrandInput{Name: "Atlas"})
	require.NoError(t, err)

	first, err := svc.CreateCollection(meridian.ID, WatchCollectionInput{Name: "Heritage"})
	require.NoError(t, err)
	second, err := svc.CreateCollection(atlas.ID, WatchCollectionInput{Name: "Heritage"})
	require.NoError(t, err)

	// Two brands can both have a "heritage" collection
	assert.Equal(t, "heritage", first.Slug)
	assert.Equal(t, "heritage", second.Slug)

	// Within one brand the slug probes
	third, err := svc.CreateCollection(meridian.ID, WatchCollectionInput{Name: "Heritage"})
	require.NoError(t, err)
	assert.Equal(t, "heritage-1", third.Slug)
}

func TestWatchService_GetCollectionBySlug(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	collection, err := svc.CreateCollection(brand.ID, WatchCollectionInput{Name: "Heritage"})
	require.NoError(t, err)

	input := watchInput(brand.ID, "Navigator", "1000.00")
	input.CollectionID = &collection.ID
	member, err := svc.CreateWatch(input)
	require.NoError(t, err)

	inactive := false
	hidden := watchInput(brand.ID, "Prototype", "5000.00")
	hidden.CollectionID = &collection.ID
	hidden.IsActive = &inactive
	_, err = svc.CreateWatch(hidden)
	require.NoError(t, err)

	// outside the collection, must not appear
	_, err = svc.CreateWatch(watchInput(brand.ID, "Pilot", "1200.00"))
	require.NoError(t, err)

	detail, err := svc.GetCollectionBySlug(brand.Slug, collection.Slug)
	require.NoError(t, err)
	assert.Equal(t, collection.ID, detail.Collection.ID)
	require.Len(t, detail.Watches, 1)
	assert.Equal(t, member.ID, detail.Watches[0].ID)

	// the slug only resolves under its own brand
	_, err = svc.GetCollectionBySlug("atlas", collection.Slug)
	assert.ErrorIs(t, err, ErrWatchCollectionNotFound)
}

func TestWatchService_GetWatchBySlug_Recommendations(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	meridian, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	atlas, err := svc.CreateBrand(WatchBrandInput{Name: "Atlas"})
	require.NoError(t, err)

	target, err := svc.CreateWatch(watchInput(meridian.ID, "Navigator", "1000.00"))
	require.NoError(t, err)
	sibling, err := svc.CreateWatch(watchInput(meridian.ID, "Pilot", "1200.00"))
	require.NoError(t, err)
	_, err = svc.CreateWatch(watchInput(atlas.ID, "Explorer", "900.00"))
	require.NoError(t, err)

	detail, err := svc.GetWatchBySlug(target.Slug)
	require.NoError(t, err)
	require.NotEmpty(t, detail.Recommendations)

	// Same-brand watches lead, padded with the newest overall
	assert.Equal(t, sibling.ID, detail.Recommendations[0].ID)
	assert.Len(t, detail.Recommendations, 2)
	for _, rec := range detail.Recommendations {
		assert.NotEqual(t, target.ID, rec.ID)
	}

	_, err = svc.GetWatchBySlug("missing")
	assert.ErrorIs(t, err, ErrWatchNotFound)
}

func TestWatchService_FeaturedCollections(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)

	_, err = svc.CreateCollection(brand.ID, WatchCollectionInput{Name: "Everyday"})
	require.NoError(t, err)
	featured := true
	showcase, err := svc.CreateCollection(brand.ID, WatchCollectionInput{Name: "Showcase", IsFeatured: &featured})
	require.NoError(t, err)

	result, err := svc.FeaturedCollections()
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, brand.ID, result[0].Brand.ID)
	require.NotNil(t, result[0].Collection)
	assert.Equal(t, showcase.ID, result[0].Collection.ID)
}

func TestWatchService_UpsertSpecification(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	watch, err := svc.CreateWatch(watchInput(brand.ID, "Navigator", "1000.00"))
	require.NoError(t, err)

	spec, err := svc.UpsertSpecification(watch.ID, WatchSpecificationInput{
		Movement:     "automatic",
		CaseMaterial: "stainless steel",
	})
	require.NoError(t, err)
	assert.Equal(t, "automatic", spec.Movement)

	// A second upsert replaces, it does not duplicate
	updated, err := svc.UpsertSpecification(watch.ID, WatchSpecificationInput{
		Movement:     "quartz",
		CaseMaterial: "titanium",
	})
	require.NoError(t, err)
	assert.Equal(t, "quartz", updated.Movement)

	var count int64
	require.NoError(t, testDB.Model(&model.WatchSpecification{}).Where("watch_id = ?", watch.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWatchService_Images(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	watch, err := svc.CreateWatch(watchInput(brand.ID, "Navigator", "1000.00"))
	require.NoError(t, err)

	first, err := svc.AddImage(watch.ID, "/uploads/watches/a.jpg", "dial", model.WatchImageProduct, false)
	require.NoError(t, err)
	assert.True(t, first.IsPrimary, "the first image is always primary")

	second, err := svc.AddImage(watch.ID, "/uploads/watches/b.jpg", "case", model.WatchImageDetail, false)
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)

	// Ownership is verified before deletion
	err = svc.DeleteImage(watch.ID, 9999)
	assert.ErrorIs(t, err, ErrWatchImageNotFound)
	require.NoError(t, svc.DeleteImage(watch.ID, second.ID))
}

func TestWatchService_AddImage_NewPrimaryDemotesCurrent(t *testing.T) {
	svc, testDB := setupWatchTest(t)
	defer db.CleanupTestDB(testDB)

	brand, err := svc.CreateBrand(WatchBrandInput{Name: "Meridian"})
	require.NoError(t, err)
	watch, err := svc.CreateWatch(watchInput(brand.ID, "Navigator", "1000.00"))
	require.NoError(t, err)

	first, err := svc.AddImage(watch.ID, "/uploads/watches/a.jpg", "dial", model.WatchImageProduct, true)
	require.NoError(t, err)
	require.True(t, first.IsPrimary)

	second, err := svc.AddImage(watch.ID, "/uploads/watches/b.jpg", "case", model.WatchImageProduct, true)
	require.NoError(t, err)
	assert.True(t, second.IsPrimary)

	// exactly one primary per watch, and it is the newest one
	var primaries []model.WatchImage
	require.NoError(t, testDB.
		Where("watch_id = ? AND is_primary = ?", watch.ID, true).
		Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, second.ID, primaries[0].ID)
}
