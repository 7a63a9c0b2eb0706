package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrCandidateNotFound indicates that no candidate carries the requested identity tuple.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrSessionNotFound indicates that no explorer session exists with the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDatasetNotLoaded indicates that no candidate snapshot has been loaded yet.
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidView indicates a view name other than table or race.
	ErrInvalidView = errors.New("invalid view")

	// ErrInvalidStateToken indicates a share token that is malformed, forged, or expired.
	ErrInvalidStateToken = errors.New("invalid or expired state token")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidCSVHeaders indicates an import file missing one of the required columns.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")

	// ErrInvalidAmount indicates a currency cell that could not be parsed.
	ErrInvalidAmount = errors.New("invalid currency amount")

	// ErrNoDataSource indicates a reload was requested without a configured CSV path.
	ErrNoDataSource = errors.New("no data source configured")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveCandidates = errors.New("failed to retrieve candidates")
	ErrFailedToImportCandidates   = errors.New("failed to import candidates")
	ErrFailedToReloadDataset      = errors.New("failed to reload dataset")
	ErrFailedToGetVersionInfo     = errors.New("failed to get version information")
	ErrFailedToIssueStateToken    = errors.New("failed to issue state token")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a report row points at a candidate that does not exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
