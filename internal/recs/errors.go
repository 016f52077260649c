package recs

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrSearchInFlight = errors.New("search already in flight")
	ErrSchemaMismatch = errors.New("schema mismatch")
)

const (
	ErrorCodeProvider       = "PROVIDER_ERROR"
	ErrorCodeTimeout        = "LLM_TIMEOUT"
	ErrorCodeSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)
