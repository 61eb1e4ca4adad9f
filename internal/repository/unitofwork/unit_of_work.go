package unitofwork

import (
	"context"
	"errors"

	"studynotes-be/internal/repository/contract"
)

var (
	ErrTxAlreadyStarted = errors.New("transaction already started")
	ErrNoTransaction    = errors.New("no transaction in progress")
)

// UnitOfWork hands out repositories bound to one connection or transaction.
// Rollback after Commit returns ErrNoTransaction, so `defer uow.Rollback()` is safe.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	RatingRepository() contract.RatingRepository
}
