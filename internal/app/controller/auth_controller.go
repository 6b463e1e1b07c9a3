package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// AuthController handles storefront customer accounts
type AuthController struct {
	authService service.UserAuthService
}

func NewAuthController(authService service.UserAuthService) *AuthController {
	return &AuthController{authService: authService}
}

type SignupRequest struct {
	Email                string `json:"email" binding:"required"`
	Password             string `json:"password" binding:"required"`
	FirstName            string `json:"first_name" binding:"required"`
	LastName             string `json:"last_name" binding:"required"`
	Phone                string `json:"phone"`
	NewsletterSubscribed bool   `json:"newsletter_subscribed"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName            string `json:"first_name" binding:"required"`
	LastName             string `json:"last_name" binding:"required"`
	Phone                string `json:"phone"`
	NewsletterSubscribed *bool  `json:"newsletter_subscribed"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// Signup registers a new customer and signs them in
// POST /api/v1/auth/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.authService.Signup(service.SignupInput{
		Email:                req.Email,
		Password:             req.Password,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Phone:                req.Phone,
		NewsletterSubscribed: req.NewsletterSubscribed,
	}, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Please enter a valid email address")
		case errors.Is(err, service.ErrPasswordTooShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Password must be at least 8 characters")
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "An account with this email already exists")
		default:
			log.Error("Signup failed", err, nil)
			apperrors.InternalError(c, "Failed to create account")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   result.User,
		"tokens": result.Tokens,
	})
}

// Login authenticates a customer and issues a token pair
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.authService.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Incorrect email or password")
			return
		}
		log.Error("Login failed", err, nil)
		apperrors.InternalError(c, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   result.User,
		"tokens": result.Tokens,
	})
}

// Refresh rotates a refresh token for a new pair
// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	tokens, err := ctrl.authService.Refresh(req.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "Please sign in again")
			return
		}
		log.Error("Token refresh failed", err, nil)
		apperrors.InternalError(c, "Failed to refresh session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokens,
	})
}

// Logout revokes the presented refresh token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.authService.Logout(req.RefreshToken); err != nil {
		middleware.GetLoggerFromContext(c).Error("Logout failed", err, nil)
		apperrors.InternalError(c, "Failed to sign out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out",
	})
}

// GetProfile returns the signed-in customer's account
// GET /api/v1/auth/me
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := ctrl.authService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Account not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to fetch profile", err, nil)
		apperrors.InternalError(c, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateProfile updates the signed-in customer's details
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.FirstName, req.LastName, req.Phone, req.NewsletterSubscribed)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Account not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to update profile", err, nil)
		apperrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// ChangePassword rotates the customer's password
// PUT /api/v1/auth/password
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Current password is incorrect")
		case errors.Is(err, service.ErrPasswordTooShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Password must be at least 8 characters")
		default:
			middleware.GetLoggerFromContext(c).Error("Password change failed", err, nil)
			apperrors.InternalError(c, "Failed to change password")
		}
		return
	}

	if email, ok := middleware.GetUserEmail(c); ok {
		middleware.GetLoggerFromContext(c).Info("Password changed", map[string]interface{}{
			"email": email,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated. Other devices have been signed out",
	})
}
