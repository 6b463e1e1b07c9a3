package repository

import (
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

type CollectionRepository interface {
	Create(collection *model.Collection) error
	FindAll(activeOnly bool) ([]model.Collection, error)
	FindByID(id uint) (*model.Collection, error)
	FindBySlug(slug string) (*model.Collection, error)
	ExistsBySlug(slug string) (bool, error)
	Update(collection *model.Collection) error
	Delete(id uint) error
	CountProducts(collectionID uint) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(collection *model.Collection) error {
	logger.Debug("Creating collection in database", map[string]interface{}{
		"name": collection.Name,
		"slug": collection.Slug,
	})

	if err := r.db.Create(collection).Error; err != nil {
		logger.Error("Failed to create collection in database", err, map[string]interface{}{
			"name": collection.Name,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) FindAll(activeOnly bool) ([]model.Collection, error) {
	query := r.db.Model(&model.Collection{}).
		Order("sort_order ASC").
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var collections []model.Collection
	if err := query.Find(&collections).Error; err != nil {
		logger.Error("Failed to find collections", err, nil)
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) FindByID(id uint) (*model.Collection, error) {
	var collection model.Collection
	if err := r.db.First(&collection, id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) FindBySlug(slug string) (*model.Collection, error) {
	var collection model.Collection
	if err := r.db.Where("slug = ?", slug).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Collection{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *collectionRepository) Update(collection *model.Collection) error {
	if err := r.db.Save(collection).Error; err != nil {
		logger.Error("Failed to update collection in database", err, map[string]interface{}{
			"collection_id": collection.ID,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Collection{}, id).Error; err != nil {
		logger.Error("Failed to delete collection from database", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) CountProducts(collectionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}
