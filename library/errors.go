package library

import "errors"

// Domain errors returned by the engine and the stores. Callers match them
// with errors.Is; every layer wraps them with the entity id that failed.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrRecordNotFound = errors.New("borrow record not found")

	ErrOutOfStock      = errors.New("book is out of stock")
	ErrAlreadyReturned = errors.New("borrow record already returned")

	ErrHasBorrowHistory = errors.New("book has borrow history")
	ErrHasActiveLoans   = errors.New("member has active loans")
)

// Store-level errors. ErrConflict means the backing store detected a
// concurrent-write conflict and the whole operation can be re-attempted
// from scratch. ErrStoreUnavailable means the store could not be reached;
// the engine never retries it.
var (
	ErrConflict         = errors.New("concurrent write conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsRetryable reports whether err is a transient conflict worth retrying.
// Domain rejections (out of stock, already returned, guard violations)
// are never retryable.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
