package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when registration hits the unique
	// username or email constraint.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a lookup by username, email or id
	// matches no user.
	ErrUserNotFound = errors.New("user was not found")

	// ErrPropertyNotFound is returned when no property has the given id.
	ErrPropertyNotFound = errors.New("property was not found")

	// ErrUserDetailsNotFound is returned when a user has no contact card.
	ErrUserDetailsNotFound = errors.New("user details were not found")

	// ErrUnknownReference is returned when a property references a currency
	// or contract type that does not exist.
	ErrUnknownReference = errors.New("unknown currency or contract type")

	// ErrStoreUnavailable wraps transient database failures such as a lost
	// connection.
	ErrStoreUnavailable = errors.New("store is unavailable")

	// ErrPhotoNotStored is returned when the photo backend refuses an upload.
	ErrPhotoNotStored = errors.New("photo was not stored")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
