package memory

import (
	"context"

	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/unitofwork"
)

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork tracks transaction state only. Each repository call is atomic
// under the store mutex; there is no multi-statement rollback.
type unitOfWork struct {
	store  *Store
	active bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return unitofwork.ErrTxAlreadyStarted
	}
	u.active = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.active {
		return unitofwork.ErrNoTransaction
	}
	u.active = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.active {
		return unitofwork.ErrNoTransaction
	}
	u.active = false
	return nil
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return NewNoteRepository(u.store)
}

func (u *unitOfWork) RatingRepository() contract.RatingRepository {
	return NewRatingRepository(u.store)
}
