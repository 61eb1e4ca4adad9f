package contract

import "errors"

var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateCWID   = errors.New("cwid already registered")
	ErrDuplicateRating = errors.New("rating already exists")
	// ErrMissingReference is a foreign key pointing at a row that no longer exists.
	ErrMissingReference = errors.New("referenced row does not exist")
	// ErrStoreUnavailable marks timeouts and connection failures; callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
