package services

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")

	// File lifecycle taxonomy. Validation and quota failures are raised
	// before any storage or metadata mutation; upload/delete failures
	// may follow a compensating storage delete.
	ErrValidation    = errors.New("validation failed")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrNotFound      = errors.New("file not found")
	ErrForbidden     = errors.New("file belongs to another user")
	ErrUploadFailed  = errors.New("upload failed")
	ErrDeleteFailed  = errors.New("delete failed")
)
