package apperrors

import (
	"net/http"
)

// Factories for the common domain error shapes. Repository sentinel errors
// (gorm.ErrRecordNotFound and friends) get converted through these before
// reaching the HTTP layer.

// ErrNotFound converts a repository "not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate-create into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation flags an operation the current state does not allow (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus flags an illegal status transition (400).
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInvalidUserType is returned when an operation is not available for the
// caller's account type (client vs freelancer).
var ErrInvalidUserType = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user type for this operation",
	http.StatusBadRequest,
)

// ErrCannotActOnSelf is returned when a user targets themselves
// (self-review, self-hire).
var ErrCannotActOnSelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)
