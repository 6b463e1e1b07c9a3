package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// ListFavorites returns the customer's saved products
// GET /api/v1/favorites
func (ctrl *FavoriteController) ListFavorites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	favorites, err := ctrl.favoriteService.ListFavorites(userID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list favorites", err, nil)
		apperrors.InternalError(c, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// AddFavorite saves a product for the customer
// POST /api/v1/favorites/:productId
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	favorite, err := ctrl.favoriteService.AddFavorite(userID, productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrFavoriteAlreadyExists):
			apperrors.Conflict(c, apperrors.FavoriteAlreadyExists, "Product is already in your favorites")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to add favorite", err, nil)
			apperrors.InternalError(c, "Failed to add favorite")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"favorite": favorite,
	})
}

// RemoveFavorite deletes a saved product
// DELETE /api/v1/favorites/:productId
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := ctrl.favoriteService.RemoveFavorite(userID, productID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			apperrors.NotFound(c, apperrors.FavoriteNotFound, "Favorite not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to remove favorite", err, nil)
		apperrors.InternalError(c, "Failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite removed",
	})
}

// CheckFavorite reports whether a product is saved. The route is open to
// guests, who never have anything saved.
// GET /api/v1/favorites/:productId
func (ctrl *FavoriteController) CheckFavorite(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	userID, authenticated := middleware.GetUserID(c)
	if !authenticated {
		c.JSON(http.StatusOK, gin.H{
			"is_favorite": false,
		})
		return
	}

	isFavorite, err := ctrl.favoriteService.IsFavorite(userID, productID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to check favorite", err, nil)
		apperrors.InternalError(c, "Failed to check favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_favorite": isFavorite,
	})
}

// ToggleFavorite flips the saved state and returns the new one
// POST /api/v1/favorites/:productId/toggle
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	isFavorite, err := ctrl.favoriteService.ToggleFavorite(userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to toggle favorite", err, nil)
		apperrors.InternalError(c, "Failed to toggle favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_favorite": isFavorite,
	})
}
