package service

import "errors"

// Centralized service layer errors.

// ===== Input Errors =====
var (
	ErrNoUsers    = errors.New("users table has no rows")
	ErrNoProjects = errors.New("projects table has no rows")
)

// ===== Batch Errors =====
var (
	ErrNoDocuments   = errors.New("no documents found")
	ErrPartialBatch  = errors.New("some files could not be processed")
	ErrStoreRequired = errors.New("table store is required")
)
