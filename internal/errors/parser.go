package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a mapped error code and user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps database-level errors to a code and a message safe to show
// the caller. context names the entity being operated on ("place", "review",
// "user", ...) so not-found messages stay specific.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Unique constraint violation (postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation (postgres 23503)
	if strings.Contains(errStr, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// Check constraint violation (postgres 23514)
	if strings.Contains(errStr, "check constraint") {
		if strings.Contains(errStr, "rating") {
			return ErrorInfo{Code: ReviewInvalidRating, Message: "Rating must be between 1 and 5"}
		}
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Input is not valid"}
	}

	// Connectivity problems
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The service is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred. Please try again later"}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	if strings.Contains(errStr, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email address is already registered"}
	}
	if strings.Contains(errStr, "idx_place_user_review") ||
		(strings.Contains(errStr, "review") && strings.Contains(errStr, "user")) {
		return ErrorInfo{Code: ReviewAlreadyExists, Message: "You have already reviewed this place"}
	}
	if strings.Contains(errStr, "idx_user_place_favorite") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This place is already in your favorites"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	if strings.Contains(errStr, "still referenced") {
		return ErrorInfo{Code: ResourceConflict, Message: "The record is referenced by other data and cannot be deleted"}
	}
	if strings.Contains(errStr, "place_id") {
		return ErrorInfo{Code: PlaceNotFound, Message: "The referenced place does not exist"}
	}
	if strings.Contains(errStr, "user_id") {
		return ErrorInfo{Code: ResourceNotFound, Message: "The referenced user does not exist"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "The referenced record does not exist"}
}

func notFoundMessage(context string) string {
	switch strings.ToLower(context) {
	case "place":
		return "Place not found"
	case "review":
		return "Review not found"
	case "user":
		return "User not found"
	case "favorite":
		return "Favorite not found"
	default:
		return "The requested record was not found"
	}
}
