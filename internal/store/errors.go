package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering a login that is
	// already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when no user matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultItemNotFound is returned when no item matches (owner_id,
	// item_id).
	ErrVaultItemNotFound = errors.New("vault item was not found")

	// ErrVaultItemAlreadyExists is returned when the owner already has an
	// item with the same id.
	ErrVaultItemAlreadyExists = errors.New("vault item already exists")

	// ErrRekeyIncomplete is returned when a rekey does not cover exactly the
	// owner's current set of items. Nothing is written in that case.
	ErrRekeyIncomplete = errors.New("rekey does not cover every vault item")

	// ErrLocalSessionNotFound is returned by the client session repository
	// when nobody is logged in.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrUnsupportedDSN is returned when a DSN names no known backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
