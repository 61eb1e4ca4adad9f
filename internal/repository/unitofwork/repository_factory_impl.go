package unitofwork

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewRepositoryFactory(db *gorm.DB, queryTimeout time.Duration) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// NewUnitOfWork is cheap; one is created per service call.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db, f.queryTimeout)
}
