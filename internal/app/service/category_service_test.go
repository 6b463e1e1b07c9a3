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

func setupCategoryTest(t *testing.T) (CategoryService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewCategoryService(repository.NewCategoryRepository(testDB)), testDB
}

func TestCategoryService_CreateCategory_Levels(t *testing.T) {
	svc, testDB := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root, err := svc.CreateCategory(CategoryInput{Name: "Jewellery"})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLevelMain, root.Level)
	assert.Equal(t, "jewellery", root.Slug)

	group, err := svc.CreateCategory(CategoryInput{Name: "Rings", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLevelGroup, group.Level)

	item, err := svc.CreateCategory(CategoryInput{Name: "Engagement", ParentID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLevelItem, item.Level)

	// The tree stops at the item tier
	_, err = svc.CreateCategory(CategoryInput{Name: "Too Deep", ParentID: &item.ID})
	assert.ErrorIs(t, err, ErrInvalidParentCategory)
}

func TestCategoryService_CreateCategory_UnknownParent(t *testing.T) {
	svc, testDB := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	missing := uint(9999)
	_, err := svc.CreateCategory(CategoryInput{Name: "Orphan", ParentID: &missing})
	assert.ErrorIs(t, err, ErrInvalidParentCategory)
}

func TestCategoryService_UpdateCategory_RejectsCycles(t *testing.T) {
	svc, testDB := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root, err := svc.CreateCategory(CategoryInput{Name: "Jewellery"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(CategoryInput{Name: "Rings", ParentID: &root.ID})
	require.NoError(t, err)

	// A category cannot be its own parent
	_, err = svc.UpdateCategory(root.ID, CategoryInput{Name: "Jewellery", ParentID: &root.ID})
	assert.ErrorIs(t, err, ErrInvalidParentCategory)

	// Nor can it be reparented under its own descendant
	_, err = svc.UpdateCategory(root.ID, CategoryInput{Name: "Jewellery", ParentID: &child.ID})
	assert.ErrorIs(t, err, ErrInvalidParentCategory)
}

func TestCategoryService_UpdateCategory_Reparent(t *testing.T) {
	svc, testDB := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	first, err := svc.CreateCategory(CategoryInput{Name: "Jewellery"})
	require.NoError(t, err)
	second, err := svc.CreateCategory(CategoryInput{Name: "Watches"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(CategoryInput{Name: "Rings", ParentID: &first.ID})
	require.NoError(t, err)

	moved, err := svc.UpdateCategory(child.ID, CategoryInput{Name: "Rings", ParentID: &second.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, second.ID, *moved.ParentID)
	assert.Equal(t, model.CategoryLevelGroup, moved.Level)
}

func TestCategoryService_DeleteCategory_Guards(t *testing.T) {
	svc, testDB := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root, err := svc.CreateCategory(CategoryInput{Name: "Jewellery"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(CategoryInput{Name: "Rings", ParentID: &root.ID})
	require.NoError(t, err)

	// Parents with children cannot be removed
	err = svc.DeleteCategory(root.ID)
	assert.ErrorIs(t, err, ErrCategoryHasChildren)

	// Categories with products cannot be removed
	product := &model.Product{
		Name:       "Blocking Ring",
		Slug:       "blocking-ring",
		SKU:        "RIN-BLO-000001",
		BasePrice:  decimal.RequireFromString("100.00"),
		CategoryID: child.ID,
		IsActive:   true,
	}
	require.NoError(t, testDB.Create(product).Error)
	err = svc.DeleteCategory(child.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// Empty leaves go quietly
	require.NoError(t, testDB.Delete(product).Error)
	require.NoError(t, svc.DeleteCategory(child.ID))
	require.NoError(t, svc.DeleteCategory(root.ID))

	err = svc.DeleteCategory(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
