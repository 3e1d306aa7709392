package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a resource with the same content id is
	// already stored. Duplicate ingestion is a no-op, not a failure.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates a malformed or incomplete raw record.
	// Ingestion skips such records rather than aborting.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no normaliser handles the record's
	// source type.
	ErrUnsupportedType = errors.New("unsupported source type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The advisor is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
