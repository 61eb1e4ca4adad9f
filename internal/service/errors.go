package service

import (
	"errors"

	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/pkg/password"
)

var (
	errNoteNotFound   = apperror.NotFound("note not found")
	errUserNotFound   = apperror.NotFound("user not found")
	errNotNoteOwner   = apperror.Forbidden("you can only modify your own notes")
	errOwnNote        = apperror.Forbidden("you cannot rate your own note").WithReason("own_note")
	errAlreadyRated   = apperror.Conflict("you have already rated this note").WithReason("already_rated")
	errDuplicateEmail = apperror.Conflict("email already registered").WithReason("duplicate_email")
	errDuplicateCWID  = apperror.Conflict("cwid already registered").WithReason("duplicate_cwid")
	errEmptyUpdate    = apperror.Validation("at least one field must be provided")
	errBlankName      = apperror.Validation("name fields must not be blank")
	errBlankField     = apperror.Validation("supplied fields must not be blank")
	errWrongPassword  = apperror.Validation("current password is incorrect").WithReason("wrong_password")
	errPasswordLength = apperror.Validation("password must be at most 72 bytes")
)

// storeError converts repository failures into API errors. Anything it does
// not recognise becomes an internal error.
func storeError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, contract.ErrDuplicateEmail):
		return errDuplicateEmail
	case errors.Is(err, contract.ErrDuplicateCWID):
		return errDuplicateCWID
	case errors.Is(err, contract.ErrDuplicateRating):
		return errAlreadyRated
	// users are never deleted, so a dangling reference is always a note
	case errors.Is(err, contract.ErrMissingReference):
		return errNoteNotFound
	case errors.Is(err, password.ErrTooLong):
		return errPasswordLength
	case errors.Is(err, contract.ErrStoreUnavailable):
		return apperror.Unavailable(err)
	default:
		return apperror.Internal(err)
	}
}
