package service

import (
	"errors"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound      = errors.New("favorite not found")
	ErrFavoriteAlreadyExists = errors.New("favorite already exists")
)

type FavoriteService interface {
	ListFavorites(userID uint) ([]model.Favorite, error)
	AddFavorite(userID, productID uint) (*model.Favorite, error)
	RemoveFavorite(userID, productID uint) error
	IsFavorite(userID, productID uint) (bool, error)
	ToggleFavorite(userID, productID uint) (bool, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (s *favoriteService) ListFavorites(userID uint) ([]model.Favorite, error) {
	return s.favoriteRepo.FindByUser(userID)
}

func (s *favoriteService) AddFavorite(userID, productID uint) (*model.Favorite, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFavoriteAlreadyExists
	}

	favorite := &model.Favorite{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}

	logger.Debug("Favorite added", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return favorite, nil
}

func (s *favoriteService) RemoveFavorite(userID, productID uint) error {
	exists, err := s.favoriteRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFavoriteNotFound
	}
	return s.favoriteRepo.Delete(userID, productID)
}

func (s *favoriteService) IsFavorite(userID, productID uint) (bool, error) {
	return s.favoriteRepo.Exists(userID, productID)
}

// ToggleFavorite flips the favorite state and reports the new one
func (s *favoriteService) ToggleFavorite(userID, productID uint) (bool, error) {
	exists, err := s.favoriteRepo.Exists(userID, productID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.favoriteRepo.Delete(userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := s.AddFavorite(userID, productID); err != nil {
		return false, err
	}
	return true, nil
}
