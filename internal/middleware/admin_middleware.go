package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	"github.com/aurelle-jewellery/aurelle-backend/internal/errors"
)

// Context keys for the authenticated back-office admin
const (
	AdminKey      = "admin_user"
	AdminTokenKey = "admin_token"
)

type AdminMiddleware struct {
	authService service.AdminAuthService
}

func NewAdminMiddleware(authService service.AdminAuthService) *AdminMiddleware {
	return &AdminMiddleware{authService: authService}
}

// Authenticate requires a valid admin token backed by an active session.
// Any failure along the way denies access.
func (m *AdminMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := bearerToken(c)
		if !ok {
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		admin, err := m.authService.Authenticate(token)
		if err != nil {
			log.Warn("Admin authentication failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			switch err {
			case service.ErrAccountDisabled:
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthAccountDisabled, "This account has been disabled")
			case service.ErrSessionInvalid:
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionExpired, "Your session has expired. Please sign in again")
			default:
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(AdminKey, admin)
		c.Set(AdminTokenKey, token)

		log.Debug("Admin authenticated", map[string]interface{}{
			"admin_user_id": admin.ID,
			"role":          admin.Role,
		})
		c.Next()
	}
}

// RequireRole allow-lists the admin roles that may reach a route group
func (m *AdminMiddleware) RequireRole(roles ...model.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := GetAdmin(c)
		if !ok {
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "Role information not found")
			c.Abort()
			return
		}

		for _, role := range roles {
			if admin.Role == role {
				c.Next()
				return
			}
		}

		GetLoggerFromContext(c).Warn("Insufficient admin permissions", map[string]interface{}{
			"admin_user_id": admin.ID,
			"role":          admin.Role,
			"path":          c.Request.URL.Path,
		})
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "You do not have permission to perform this action")
		c.Abort()
	}
}

// GetAdmin extracts the authenticated admin from context
func GetAdmin(c *gin.Context) (*model.AdminUser, bool) {
	value, exists := c.Get(AdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*model.AdminUser)
	return admin, ok
}

// GetAdminToken extracts the raw admin token from context
func GetAdminToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(AdminTokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
