package service

import (
	"errors"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidParentCategory = errors.New("invalid parent category")
	ErrCategoryHasChildren   = errors.New("category has children")
	ErrCategoryInUse         = errors.New("category has products")
)

const maxCategoryLevel = model.CategoryLevelItem

type CategoryInput struct {
	Name            string
	Description     string
	ImageURL        string
	ParentID        *uint
	CategoryType    model.CategoryType
	IsActive        *bool
	SortOrder       *int
	MetaTitle       string
	MetaDescription string
}

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindRootsWithChildren(false)
	if err != nil {
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

func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category.ProductCount, _ = s.categoryRepo.CountProducts(id)
	return category, nil
}

// resolveLevel derives the level from the parent: roots sit at level 0 and
// every child is exactly one level below its parent, capped at the item tier.
func (s *categoryService) resolveLevel(parentID *uint) (int, error) {
	if parentID == nil {
		return model.CategoryLevelMain, nil
	}

	parent, err := s.categoryRepo.FindByID(*parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidParentCategory
		}
		return 0, err
	}
	if parent.Level >= maxCategoryLevel {
		return 0, ErrInvalidParentCategory
	}
	return parent.Level + 1, nil
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name":      input.Name,
		"parent_id": input.ParentID,
	})

	level, err := s.resolveLevel(input.ParentID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(input.Name, func(slug string) (bool, error) {
		_, err := s.categoryRepo.FindBySlug(slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:            input.Name,
		Slug:            slug,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		ParentID:        input.ParentID,
		Level:           level,
		CategoryType:    input.CategoryType,
		IsActive:        true,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
	}
	if category.CategoryType == "" {
		category.CategoryType = model.CategoryTypeMain
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.ParentID != nil {
		// a category can never be its own ancestor
		if *input.ParentID == id {
			return nil, ErrInvalidParentCategory
		}
		if err := s.checkNotDescendant(id, *input.ParentID); err != nil {
			return nil, err
		}
	}

	if !sameParent(category.ParentID, input.ParentID) {
		level, err := s.resolveLevel(input.ParentID)
		if err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
		category.Level = level
	}

	if input.Name != category.Name {
		slug, err := uniqueSlug(input.Name, func(slug string) (bool, error) {
			existing, err := s.categoryRepo.FindBySlug(slug)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return existing.ID != id, nil
		})
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	category.Name = input.Name
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.MetaTitle = input.MetaTitle
	category.MetaDescription = input.MetaDescription
	if input.CategoryType != "" {
		category.CategoryType = input.CategoryType
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	// Save would also write the preloaded associations
	category.Parent = nil
	category.Children = nil

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// checkNotDescendant rejects reparenting a category under its own subtree
func (s *categoryService) checkNotDescendant(categoryID, newParentID uint) error {
	current := newParentID
	for {
		parent, err := s.categoryRepo.FindByID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidParentCategory
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == categoryID {
			return ErrInvalidParentCategory
		}
		current = *parent.ParentID
	}
}

func sameParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	children, err := s.categoryRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}

	products, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if products > 0 {
		return ErrCategoryInUse
	}

	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})
	return s.categoryRepo.Delete(id)
}
