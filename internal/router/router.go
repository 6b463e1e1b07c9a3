package router

import (
	"github.com/gin-gonic/gin"

	"github.com/aurelle-jewellery/aurelle-backend/config"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/controller"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
)

type Router struct {
	catalogController      *controller.CatalogController
	authController         *controller.AuthController
	favoriteController     *controller.FavoriteController
	watchController        *controller.WatchController
	adminAuthController    *controller.AdminAuthController
	adminProductController *controller.AdminProductController
	categoryController     *controller.CategoryController
	taxonomyController     *controller.TaxonomyController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	adminMiddleware        *middleware.AdminMiddleware
	config                 *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	authController *controller.AuthController,
	favoriteController *controller.FavoriteController,
	watchController *controller.WatchController,
	adminAuthController *controller.AdminAuthController,
	adminProductController *controller.AdminProductController,
	categoryController *controller.CategoryController,
	taxonomyController *controller.TaxonomyController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:      catalogController,
		authController:         authController,
		favoriteController:     favoriteController,
		watchController:        watchController,
		adminAuthController:    adminAuthController,
		adminProductController: adminProductController,
		categoryController:     categoryController,
		taxonomyController:     taxonomyController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		adminMiddleware:        adminMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "AURELLE API is running",
		})
	})

	// Serve locally stored uploads
	router.Static("/uploads", r.config.Upload.Dir)

	v1 := router.Group("/api/v1")
	{
		// ==================== Storefront ====================

		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authController.Signup)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
			auth.PUT("/password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		v1.GET("/products", r.catalogController.ListProducts)
		v1.GET("/products/:slug", r.catalogController.GetProduct)
		v1.GET("/categories", r.catalogController.GetCategoryTree)
		v1.GET("/categories/:slug/products", r.catalogController.ListProductsByCategory)
		v1.GET("/navigation", r.catalogController.GetNavigation)

		filters := v1.Group("/filters")
		{
			filters.GET("/ring-types", r.taxonomyController.FilterRingTypes)
			filters.GET("/gemstones", r.taxonomyController.FilterGemstones)
			filters.GET("/stone-types", r.taxonomyController.FilterStoneTypes)
			filters.GET("/metals", r.taxonomyController.FilterMetals)
		}

		watches := v1.Group("/watches")
		{
			watches.GET("", r.watchController.ListWatches)
			watches.GET("/brands", r.watchController.ListBrands)
			watches.GET("/brands/:slug", r.watchController.GetBrand)
			watches.GET("/brands/:slug/collections", r.watchController.ListBrandCollections)
			watches.GET("/brands/:slug/collections/:collectionSlug", r.watchController.GetBrandCollection)
			watches.GET("/featured-collections", r.watchController.FeaturedCollections)
			watches.GET("/:slug", r.watchController.GetWatch)
		}

		// the saved-state check also answers for guests
		v1.GET("/favorites/:productId", r.authMiddleware.OptionalAuthenticate(), r.favoriteController.CheckFavorite)

		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoriteController.ListFavorites)
			favorites.POST("/:productId", r.favoriteController.AddFavorite)
			favorites.POST("/:productId/toggle", r.favoriteController.ToggleFavorite)
			favorites.DELETE("/:productId", r.favoriteController.RemoveFavorite)
		}

		// ==================== Back office ====================

		admin := v1.Group("/admin")
		{
			admin.POST("/auth/login", r.adminAuthController.Login)

			secured := admin.Group("")
			secured.Use(r.adminMiddleware.Authenticate())
			{
				secured.POST("/auth/logout", r.adminAuthController.Logout)
				secured.GET("/auth/me", r.adminAuthController.GetProfile)
				secured.PUT("/auth/me", r.adminAuthController.UpdateProfile)
				secured.PUT("/auth/password", r.adminAuthController.ChangePassword)
				secured.GET("/dashboard", r.adminAuthController.GetDashboard)

				products := secured.Group("/products")
				{
					products.GET("", r.adminProductController.ListProducts)
					products.GET("/options", r.adminProductController.GetOptions)
					products.GET("/export", r.adminProductController.ExportProducts)
					products.GET("/:id", r.adminProductController.GetProduct)
					products.POST("", r.adminProductController.CreateProduct)
					products.PUT("/:id", r.adminProductController.UpdateProduct)
					products.PATCH("/:id/toggle-active", r.adminProductController.ToggleActive)
					products.PATCH("/:id/toggle-featured", r.adminProductController.ToggleFeatured)
					products.POST("/bulk", r.adminProductController.BulkAction)
					products.POST("/:id/images", r.adminProductController.AddImage)
					products.PATCH("/:id/images/:imageId/primary", r.adminProductController.SetPrimaryImage)
					products.DELETE("/:id/images/:imageId", r.adminProductController.DeleteImage)
					products.POST("/:id/videos", r.adminProductController.AddVideo)
					products.DELETE("/:id/videos/:videoId", r.adminProductController.DeleteVideo)

					products.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.adminProductController.DeleteProduct,
					)
					products.POST("/bulk-delete",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.adminProductController.BulkDelete,
					)
				}

				categories := secured.Group("/categories")
				{
					categories.GET("", r.categoryController.ListCategories)
					categories.GET("/:id", r.categoryController.GetCategory)
					categories.GET("/:id/sizes", r.taxonomyController.ListSizes)
					categories.POST("", r.categoryController.CreateCategory)
					categories.PUT("/:id", r.categoryController.UpdateCategory)
					categories.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.categoryController.DeleteCategory,
					)
				}

				registerTaxonomy := func(group *gin.RouterGroup, list, create, update, del gin.HandlerFunc) {
					group.GET("", list)
					group.POST("", create)
					group.PUT("/:id", update)
					group.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						del,
					)
				}

				registerTaxonomy(secured.Group("/ring-types"),
					r.taxonomyController.ListRingTypes,
					r.taxonomyController.CreateRingType,
					r.taxonomyController.UpdateRingType,
					r.taxonomyController.DeleteRingType,
				)
				registerTaxonomy(secured.Group("/gemstones"),
					r.taxonomyController.ListGemstones,
					r.taxonomyController.CreateGemstone,
					r.taxonomyController.UpdateGemstone,
					r.taxonomyController.DeleteGemstone,
				)
				registerTaxonomy(secured.Group("/stone-types"),
					r.taxonomyController.ListStoneTypes,
					r.taxonomyController.CreateStoneType,
					r.taxonomyController.UpdateStoneType,
					r.taxonomyController.DeleteStoneType,
				)
				registerTaxonomy(secured.Group("/metals"),
					r.taxonomyController.ListMetals,
					r.taxonomyController.CreateMetal,
					r.taxonomyController.UpdateMetal,
					r.taxonomyController.DeleteMetal,
				)

				collections := secured.Group("/collections")
				{
					collections.GET("", r.taxonomyController.ListCollections)
					collections.GET("/:id", r.taxonomyController.GetCollection)
					collections.POST("", r.taxonomyController.CreateCollection)
					collections.PUT("/:id", r.taxonomyController.UpdateCollection)
					collections.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.taxonomyController.DeleteCollection,
					)
				}

				sizes := secured.Group("/sizes")
				{
					sizes.POST("", r.taxonomyController.CreateSize)
					sizes.PUT("/:id", r.taxonomyController.UpdateSize)
					sizes.DELETE("/:id", r.taxonomyController.DeleteSize)
				}

				watchBrands := secured.Group("/watch-brands")
				{
					watchBrands.GET("", r.watchController.AdminListBrands)
					watchBrands.POST("", r.watchController.CreateBrand)
					watchBrands.PUT("/:id", r.watchController.UpdateBrand)
					watchBrands.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.watchController.DeleteBrand,
					)
				}

				watchCollections := secured.Group("/watch-collections")
				{
					watchCollections.POST("", r.watchController.CreateCollection)
					watchCollections.PUT("/:id", r.watchController.UpdateCollection)
					watchCollections.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.watchController.DeleteCollection,
					)
				}

				adminWatches := secured.Group("/watches")
				{
					adminWatches.GET("", r.watchController.AdminListWatches)
					adminWatches.GET("/:id", r.watchController.AdminGetWatch)
					adminWatches.POST("", r.watchController.CreateWatch)
					adminWatches.PUT("/:id", r.watchController.UpdateWatch)
					adminWatches.PUT("/:id/specification", r.watchController.UpsertSpecification)
					adminWatches.POST("/:id/images", r.watchController.AddImage)
					adminWatches.DELETE("/:id/images/:imageId", r.watchController.DeleteImage)
					adminWatches.DELETE("/:id",
						r.adminMiddleware.RequireRole(model.AdminRoleSuperAdmin, model.AdminRoleAdmin),
						r.watchController.DeleteWatch,
					)
				}

				uploads := secured.Group("/uploads")
				{
					uploads.POST("/:folder", r.uploadController.Upload)
					uploads.POST("/:folder/presign", r.uploadController.Presign)
					uploads.DELETE("", r.uploadController.Delete)
				}
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
