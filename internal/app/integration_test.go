package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/controller"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	tokenRepo := repository.NewRefreshTokenRepository(testDB)
	adminRepo := repository.NewAdminUserRepository(testDB)
	sessionRepo := repository.NewAdminSessionRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	collectionRepo := repository.NewCollectionRepository(testDB)
	ringTypeRepo := repository.NewRingTypeRepository(testDB)
	gemstoneRepo := repository.NewGemstoneRepository(testDB)
	stoneTypeRepo := repository.NewStoneTypeRepository(testDB)
	metalRepo := repository.NewMetalRepository(testDB)
	sizeRepo := repository.NewProductSizeRepository(testDB)
	favoriteRepo := repository.NewFavoriteRepository(testDB)
	watchRepo := repository.NewWatchRepository(testDB)

	catalogService := service.NewCatalogService(
		productRepo, categoryRepo, collectionRepo,
		ringTypeRepo, gemstoneRepo, metalRepo, sizeRepo,
	)
	userAuthService := service.NewUserAuthService(
		userRepo, tokenRepo, "test-secret", 15*time.Minute, 7*24*time.Hour,
	)
	adminAuthService := service.NewAdminAuthService(
		adminRepo, sessionRepo, productRepo, watchRepo, userRepo,
		"test-secret", 24*time.Hour,
	)
	productAdminService := service.NewProductAdminService(
		productRepo, categoryRepo, collectionRepo,
		ringTypeRepo, gemstoneRepo, stoneTypeRepo, metalRepo,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)

	catalogController := controller.NewCatalogController(catalogService)
	authController := controller.NewAuthController(userAuthService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	adminAuthController := controller.NewAdminAuthController(adminAuthService)
	adminProductController := controller.NewAdminProductController(productAdminService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")
	adminMiddleware := middleware.NewAdminMiddleware(adminAuthService)

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.GET("/me", authMiddleware.Authenticate(), authController.GetProfile)
	}

	router.GET("/api/v1/products", catalogController.ListProducts)
	router.GET("/api/v1/products/:slug", catalogController.GetProduct)

	favorites := router.Group("/api/v1/favorites")
	favorites.Use(authMiddleware.Authenticate())
	{
		favorites.GET("", favoriteController.ListFavorites)
		favorites.POST("/:productId/toggle", favoriteController.ToggleFavorite)
	}

	admin := router.Group("/api/v1/admin")
	{
		admin.POST("/auth/login", adminAuthController.Login)

		secured := admin.Group("")
		secured.Use(adminMiddleware.Authenticate())
		{
			secured.POST("/auth/logout", adminAuthController.Logout)
			secured.POST("/products", adminProductController.CreateProduct)
			secured.DELETE("/products/:id",
				adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
				adminProductController.DeleteProduct,
			)
		}
	}

	return &TestServer{Router: router, DB: testDB}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (ts *TestServer) seedCategory(t *testing.T) *model.Category {
	t.Helper()
	category := &model.Category{
		Name:         "Rings",
		Slug:         "rings",
		CategoryType: model.CategoryTypeMain,
		IsActive:     true,
	}
	require.NoError(t, ts.DB.Create(category).Error)
	return category
}

func (ts *TestServer) seedAdmin(t *testing.T, role model.AdminRole) *model.AdminUser {
	t.Helper()
	hash, err := util.HashPassword("admin-password")
	require.NoError(t, err)
	admin := &model.AdminUser{
		Email:        fmt.Sprintf("%s@aurelle.test", role),
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "Admin",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, ts.DB.Create(admin).Error)
	return admin
}

func (ts *TestServer) adminLogin(t *testing.T, email string) string {
	t.Helper()
	w := ts.request(t, http.MethodPost, "/api/v1/admin/auth/login", "", map[string]string{
		"email":    email,
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, ok := decodeBody(t, w)["token"].(string)
	require.True(t, ok)
	return token
}

func TestStorefrontCustomerJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	category := ts.seedCategory(t)
	ts.seedAdmin(t, model.AdminRoleSuperAdmin)
	adminToken := ts.adminLogin(t, "super_admin@aurelle.test")

	// Admin publishes a product
	w := ts.request(t, http.MethodPost, "/api/v1/admin/products", adminToken, map[string]interface{}{
		"name":        "Solitaire Diamond Ring",
		"description": "A classic solitaire",
		"base_price":  "1250.00",
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	product := decodeBody(t, w)["product"].(map[string]interface{})
	slug := product["slug"].(string)
	productID := uint(product["id"].(float64))
	assert.Equal(t, "solitaire-diamond-ring", slug)
	assert.NotEmpty(t, product["sku"])

	// Customer signs up
	w = ts.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":      "customer@example.com",
		"password":   "password123",
		"first_name": "Amira",
		"last_name":  "Khan",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tokens := decodeBody(t, w)["tokens"].(map[string]interface{})
	accessToken := tokens["access_token"].(string)
	require.NotEmpty(t, accessToken)

	// Customer browses the catalog
	w = ts.request(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listBody := decodeBody(t, w)
	assert.Len(t, listBody["products"], 1)

	// Product detail page
	w = ts.request(t, http.MethodGet, "/api/v1/products/"+slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Customer saves the ring
	togglePath := fmt.Sprintf("/api/v1/favorites/%d/toggle", productID)
	w = ts.request(t, http.MethodPost, togglePath, accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_favorite"])

	w = ts.request(t, http.MethodGet, "/api/v1/favorites", accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	// Toggling again removes it
	w = ts.request(t, http.MethodPost, togglePath, accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["is_favorite"])
}

func TestRefreshTokenRotation(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	w := ts.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":      "rotate@example.com",
		"password":   "password123",
		"first_name": "Rosa",
		"last_name":  "Lee",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	refreshToken := decodeBody(t, w)["tokens"].(map[string]interface{})["refresh_token"].(string)

	// First refresh succeeds and issues a new pair
	w = ts.request(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	newRefresh := decodeBody(t, w)["tokens"].(map[string]interface{})["refresh_token"].(string)
	assert.NotEqual(t, refreshToken, newRefresh)

	// Replaying the old token fails
	w = ts.request(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The rotated token still works
	w = ts.request(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": newRefresh,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminSessionLifecycle(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	category := ts.seedCategory(t)
	ts.seedAdmin(t, model.AdminRoleSuperAdmin)
	token := ts.adminLogin(t, "super_admin@aurelle.test")

	// Authenticated call works
	w := ts.request(t, http.MethodPost, "/api/v1/admin/products", token, map[string]interface{}{
		"name":        "Gold Band",
		"base_price":  "340.00",
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Logout deactivates the session
	w = ts.request(t, http.MethodPost, "/api/v1/admin/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The JWT is still valid but the session row is gone, so access is denied
	w = ts.request(t, http.MethodPost, "/api/v1/admin/products", token, map[string]interface{}{
		"name":        "Silver Band",
		"base_price":  "120.00",
		"category_id": category.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoleGate(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	category := ts.seedCategory(t)
	ts.seedAdmin(t, model.AdminRoleEditor)
	token := ts.adminLogin(t, "editor@aurelle.test")

	// Editors can create
	w := ts.request(t, http.MethodPost, "/api/v1/admin/products", token, map[string]interface{}{
		"name":        "Pearl Pendant",
		"base_price":  "210.00",
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := uint(decodeBody(t, w)["product"].(map[string]interface{})["id"].(float64))

	// But not delete
	w = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/products/%d", productID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
