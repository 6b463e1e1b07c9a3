package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

// AdminAuthController handles back-office sign-in and the dashboard
type AdminAuthController struct {
	authService service.AdminAuthService
}

func NewAdminAuthController(authService service.AdminAuthService) *AdminAuthController {
	return &AdminAuthController{authService: authService}
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminUpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

type AdminChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Login signs an admin in and opens a session
// POST /api/v1/admin/auth/login
func (ctrl *AdminAuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.authService.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Incorrect email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthAccountDisabled, "This account has been disabled")
		default:
			log.Error("Admin login failed", err, nil)
			apperrors.InternalError(c, "Failed to sign in")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"admin": result.Admin,
	})
}

// Logout closes the admin's session
// POST /api/v1/admin/auth/logout
func (ctrl *AdminAuthController) Logout(c *gin.Context) {
	token, _ := middleware.GetAdminToken(c)

	if err := ctrl.authService.Logout(token); err != nil {
		middleware.GetLoggerFromContext(c).Error("Admin logout failed", err, nil)
		apperrors.InternalError(c, "Failed to sign out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out",
	})
}

// GetProfile returns the signed-in admin
// GET /api/v1/admin/auth/me
func (ctrl *AdminAuthController) GetProfile(c *gin.Context) {
	admin, _ := middleware.GetAdmin(c)

	profile, err := ctrl.authService.GetProfile(admin.ID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch admin profile", err, nil)
		apperrors.InternalError(c, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": profile,
	})
}

// UpdateProfile updates the signed-in admin's details
// PUT /api/v1/admin/auth/me
func (ctrl *AdminAuthController) UpdateProfile(c *gin.Context) {
	admin, _ := middleware.GetAdmin(c)

	var req AdminUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	updated, err := ctrl.authService.UpdateProfile(admin.ID, req.FirstName, req.LastName, req.AvatarURL)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to update admin profile", err, nil)
		apperrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": updated,
	})
}

// ChangePassword rotates the admin's password and drops other sessions
// PUT /api/v1/admin/auth/password
func (ctrl *AdminAuthController) ChangePassword(c *gin.Context) {
	admin, _ := middleware.GetAdmin(c)
	token, _ := middleware.GetAdminToken(c)

	var req AdminChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.authService.ChangePassword(admin.ID, token, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Current password is incorrect")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Admin password change failed", err, nil)
		apperrors.InternalError(c, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated. Other sessions have been signed out",
	})
}

// GetDashboard returns the back-office landing page stats
// GET /api/v1/admin/dashboard
func (ctrl *AdminAuthController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.authService.GetDashboardStats()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch dashboard stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch dashboard")
		return
	}

	c.JSON(http.StatusOK, stats)
}
