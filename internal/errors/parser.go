package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and infrastructure errors into a code and a
// message safe to return to clients. The context string describes the
// operation ("create product", "delete category") and steers the wording.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Postgres constraint violations

	// unique_violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// foreign_key_violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// not_null_violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// check_violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "The submitted data is invalid",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    ProductSKUExists,
			Message: "This SKU is already in use",
		}
	}

	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This slug is already in use",
		}
	}

	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	if strings.Contains(errLower, "token_hash") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The session could not be created. Please try again",
		}
	}

	if strings.Contains(errLower, "favorites") || strings.Contains(errLower, "idx_favorites") {
		return ErrorInfo{
			Code:    FavoriteAlreadyExists,
			Message: "This product is already in your favourites",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "A record with these details already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// deleting a row other rows still point at
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "category") {
			return ErrorInfo{
				Code:    CategoryInUse,
				Message: "This category cannot be deleted while products reference it",
			}
		}
		if strings.Contains(context, "brand") {
			return ErrorInfo{
				Code:    WatchBrandInUse,
				Message: "This brand cannot be deleted while watches reference it",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record cannot be deleted while other records reference it",
		}
	}

	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CategoryNotFound,
			Message: "The referenced category does not exist",
		}
	}
	if strings.Contains(errLower, "collection_id") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "The referenced collection does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "The referenced product does not exist",
		}
	}
	if strings.Contains(errLower, "brand_id") {
		return ErrorInfo{
			Code:    WatchBrandNotFound,
			Message: "The referenced brand does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "An email address is required"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "A password is required"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "A name is required"}
	}
	if strings.Contains(errLower, "base_price") {
		return ErrorInfo{Code: ValidationRequired, Message: "A base price is required"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "category") {
		return "Category not found"
	}
	if strings.Contains(contextLower, "collection") {
		return "Collection not found"
	}
	if strings.Contains(contextLower, "watch") {
		return "Watch not found"
	}
	if strings.Contains(contextLower, "brand") {
		return "Brand not found"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "admin") {
		return "Account not found"
	}
	if strings.Contains(contextLower, "favorite") || strings.Contains(contextLower, "favourite") {
		return "Favourite not found"
	}

	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "The record could not be created. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "The record could not be updated. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "The record could not be deleted. Please try again later"
	}

	return "An internal error occurred. Please try again later"
}

// ParseAndRespond parses an error and writes the envelope in one step
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
