package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")

	// Ingestion: file is empty after BOM stripping, or no delimiter candidate
	// (including the blind fallback) produced a single valid row.
	ErrEmptyInput  = errors.New("file has no content")
	ErrNoValidRows = errors.New("no valid data found in file")

	// Upload: one batch exhausted all its send attempts. Batches already sent
	// stay committed; the upload is at-least-once, not atomic.
	ErrBatchSendFailed = errors.New("batch send failed after retries")

	// Item lifecycle: only Ready -> SuccessSold | FailedSold is allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)
