package domain

import "errors"

// Error kinds surfaced to callers. Wrap with fmt.Errorf("%w: ...") and
// check with errors.Is.
var (
	// ErrInvalidSpec marks a malformed dataset or generation spec
	// (negative count, zero batch size, unknown write mode).
	ErrInvalidSpec = errors.New("invalid spec")

	// ErrUnknownEntityType marks a factory lookup for an unregistered
	// entity type.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrGenerationLimitExceeded marks a requested count beyond the
	// configured safety ceiling. Surfaced before any records are produced.
	ErrGenerationLimitExceeded = errors.New("generation limit exceeded")

	// ErrSchemaMismatch marks a batch whose fields disagree with the
	// existing table schema. The batch is rejected, never coerced.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrStorageUnavailable marks a connection or transaction failure
	// that persisted through the loader's retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
