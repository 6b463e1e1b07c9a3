package repository

import (
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(activeOnly bool) ([]model.Category, error)
	FindRootsWithChildren(activeOnly bool) ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	FindChildren(parentID uint) ([]model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
	CountProducts(categoryID uint) (int64, error)
	CountChildren(categoryID uint) (int64, error)
	ProductCountsByCategory() (map[uint]int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name":      category.Name,
		"slug":      category.Slug,
		"parent_id": category.ParentID,
		"level":     category.Level,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
			"slug": category.Slug,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindAll(activeOnly bool) ([]model.Category, error) {
	query := r.db.Model(&model.Category{}).
		Order("level ASC").
		Order("sort_order ASC").
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []model.Category
	if err := query.Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindRootsWithChildren(activeOnly bool) ([]model.Category, error) {
	query := r.db.Model(&model.Category{}).
		Where("parent_id IS NULL").
		Order("sort_order ASC").
		Order("name ASC")

	childPreload := func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Order("name ASC")
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
		childPreload = func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC").Order("name ASC")
		}
	}

	var categories []model.Category
	err := query.
		Preload("Children", childPreload).
		Preload("Children.Children", childPreload).
		Find(&categories).Error
	if err != nil {
		logger.Error("Failed to find root categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Parent").Preload("Children").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).Preload("Children").First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindChildren(parentID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("parent_id = ?", parentID).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	if err := r.db.Delete(&model.Category{}, id).Error; err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) CountProducts(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *categoryRepository) CountChildren(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Category{}).
		Where("parent_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// ProductCountsByCategory returns active product counts keyed by category ID
func (r *categoryRepository) ProductCountsByCategory() (map[uint]int64, error) {
	type row struct {
		CategoryID uint
		Count      int64
	}

	var rows []row
	err := r.db.Model(&model.Product{}).
		Select("category_id, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count products by category", err, nil)
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}
