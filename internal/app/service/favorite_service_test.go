package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
)

func setupFavoriteTest(t *testing.T) (FavoriteService, *gorm.DB, *model.Product) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewFavoriteService(
		repository.NewFavoriteRepository(testDB),
		repository.NewProductRepository(testDB),
	)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	product := seedCatalogProduct(t, testDB, "Saved Ring", "saved-ring", "RIN-SAV-000001", category.ID, "100.00", true)
	return svc, testDB, product
}

func seedFavoriteUser(t *testing.T, testDB *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{Email: "fav@example.com", PasswordHash: "x", FirstName: "Fay", LastName: "Vor"}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func TestFavoriteService_AddAndRemove(t *testing.T) {
	svc, testDB, product := setupFavoriteTest(t)
	defer db.CleanupTestDB(testDB)
	user := seedFavoriteUser(t, testDB)

	favorite, err := svc.AddFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, favorite.ProductID)

	// Saving twice is a conflict, not a duplicate row
	_, err = svc.AddFavorite(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrFavoriteAlreadyExists)

	_, err = svc.AddFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	favorites, err := svc.ListFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].Product)
	assert.Equal(t, "saved-ring", favorites[0].Product.Slug)

	require.NoError(t, svc.RemoveFavorite(user.ID, product.ID))
	err = svc.RemoveFavorite(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteService_Toggle(t *testing.T) {
	svc, testDB, product := setupFavoriteTest(t)
	defer db.CleanupTestDB(testDB)
	user := seedFavoriteUser(t, testDB)

	saved, err := svc.ToggleFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	isFavorite, err := svc.IsFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, isFavorite)

	saved, err = svc.ToggleFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	isFavorite, err = svc.IsFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, isFavorite)
}
