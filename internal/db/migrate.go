package db

import (
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Category{},
		&model.Collection{},
		&model.RingType{},
		&model.Gemstone{},
		&model.StoneType{},
		&model.Metal{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductVideo{},
		&model.ProductVariant{},
		&model.ProductSize{},
		&model.WatchBrand{},
		&model.WatchCollection{},
		&model.Watch{},
		&model.WatchImage{},
		&model.WatchSpecification{},
		&model.WatchVariant{},
		&model.AdminUser{},
		&model.AdminSession{},
		&model.User{},
		&model.RefreshToken{},
		&model.Favorite{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedMetals(); err != nil {
		logger.Error("Failed to seed metals", err)
		return err
	}

	if err := seedRingTypes(); err != nil {
		logger.Error("Failed to seed ring types", err)
		return err
	}

	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedMetals creates the baseline metal taxonomy used by storefront filters
func seedMetals() error {
	var count int64
	if err := DB.Model(&model.Metal{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Metals already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	metals := []model.Metal{
		{Name: "Yellow Gold", ColorCode: "#D4AF37", SortOrder: 1},
		{Name: "White Gold", ColorCode: "#E8E8E8", SortOrder: 2},
		{Name: "Rose Gold", ColorCode: "#B76E79", SortOrder: 3},
		{Name: "Platinum", ColorCode: "#E5E4E2", SortOrder: 4},
		{Name: "Silver", ColorCode: "#C0C0C0", SortOrder: 5},
	}

	for i := range metals {
		metals[i].Slug = util.GenerateSlug(metals[i].Name)
		metals[i].IsActive = true
		if err := DB.Create(&metals[i]).Error; err != nil {
			logger.Error("Failed to create metal", err, map[string]interface{}{
				"metal": metals[i].Name,
			})
			return err
		}
	}

	logger.Info("Metals seeded successfully", map[string]interface{}{
		"total_metals": len(metals),
	})
	return nil
}

// seedCategories creates the baseline category tree: one main category per
// department with its common groups underneath
func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	tree := []struct {
		name     string
		children []string
	}{
		{name: "Jewellery", children: []string{"Rings", "Necklaces", "Earrings", "Bracelets"}},
		{name: "Engagement", children: []string{"Engagement Rings", "Wedding Bands"}},
	}

	for i, root := range tree {
		parent := model.Category{
			Name:         root.name,
			Slug:         util.GenerateSlug(root.name),
			Level:        model.CategoryLevelMain,
			CategoryType: model.CategoryTypeMain,
			IsActive:     true,
			SortOrder:    i + 1,
		}
		if err := DB.Create(&parent).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": parent.Name,
			})
			return err
		}

		for j, childName := range root.children {
			child := model.Category{
				Name:         childName,
				Slug:         util.GenerateSlug(childName),
				ParentID:     &parent.ID,
				Level:        model.CategoryLevelGroup,
				CategoryType: model.CategoryTypeSubType,
				IsActive:     true,
				SortOrder:    j + 1,
			}
			if err := DB.Create(&child).Error; err != nil {
				logger.Error("Failed to create category", err, map[string]interface{}{
					"category": child.Name,
				})
				return err
			}
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_roots": len(tree),
	})
	return nil
}

// seedRingTypes creates the baseline ring style taxonomy
func seedRingTypes() error {
	var count int64
	if err := DB.Model(&model.RingType{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Ring types already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	ringTypes := []model.RingType{
		{Name: "Solitaire", SortOrder: 1},
		{Name: "Halo", SortOrder: 2},
		{Name: "Trilogy", SortOrder: 3},
		{Name: "Eternity", SortOrder: 4},
		{Name: "Signet", SortOrder: 5},
		{Name: "Cluster", SortOrder: 6},
	}

	for i := range ringTypes {
		ringTypes[i].Slug = util.GenerateSlug(ringTypes[i].Name)
		ringTypes[i].IsActive = true
		if err := DB.Create(&ringTypes[i]).Error; err != nil {
			logger.Error("Failed to create ring type", err, map[string]interface{}{
				"ring_type": ringTypes[i].Name,
			})
			return err
		}
	}

	logger.Info("Ring types seeded successfully", map[string]interface{}{
		"total_ring_types": len(ringTypes),
	})
	return nil
}
