package store

import "errors"

// Sentinel errors returned by the sync state store. Callers match them with
// [errors.Is].
var (
	// ErrProviderNotFound is returned when a provider lookup matches no row.
	ErrProviderNotFound = errors.New("provider was not found")

	// ErrProviderAlreadyExists is returned when linking an account that is
	// already linked for the same provider type.
	ErrProviderAlreadyExists = errors.New("provider already exists")

	// ErrFileNotFound is returned when a file lookup matches no row.
	ErrFileNotFound = errors.New("file was not found")

	// ErrLocalFileNotFound is returned by the local content storage when a
	// content handle does not exist.
	ErrLocalFileNotFound = errors.New("local file content was not found")
)

// Low-level database errors wrapped by repository methods.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a statement fails to execute.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingLog is returned when a sync log cannot be serialized.
	ErrEncodingLog = errors.New("failed to encode sync log")
)
