package errors

// Error code constants returned in the response envelope.
// Format: CATEGORY_SPECIFIC_DETAIL. The storefront and back-office
// clients map these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthSessionExpired     = "AUTH_SESSION_EXPIRED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationTooShort      = "VALIDATION_TOO_SHORT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductSlugExists    = "PRODUCT_SLUG_EXISTS"
	ProductSKUExists     = "PRODUCT_SKU_EXISTS"
	ProductInvalidPrice  = "PRODUCT_INVALID_PRICE"
	ProductMediaNotFound = "PRODUCT_MEDIA_NOT_FOUND"

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound      = "CATEGORY_NOT_FOUND"
	CategoryInvalidParent = "CATEGORY_INVALID_PARENT"
	CategoryHasChildren   = "CATEGORY_HAS_CHILDREN"
	CategoryInUse         = "CATEGORY_IN_USE"

	// ==================== Taxonomies (TAXONOMY_) ====================
	TaxonomyNotFound = "TAXONOMY_NOT_FOUND"
	TaxonomyInUse    = "TAXONOMY_IN_USE"

	// ==================== Watches (WATCH_) ====================
	WatchNotFound      = "WATCH_NOT_FOUND"
	WatchBrandNotFound = "WATCH_BRAND_NOT_FOUND"
	WatchBrandInUse    = "WATCH_BRAND_IN_USE"

	// ==================== Favorites (FAVORITE_) ====================
	FavoriteNotFound      = "FAVORITE_NOT_FOUND"
	FavoriteAlreadyExists = "FAVORITE_ALREADY_EXISTS"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
