package contract

import (
	"context"

	"studynotes-be/internal/entity"
)

// UserRepository lookups return (nil, nil) when no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, cwid string, hash string) error
	FindByCWID(ctx context.Context, cwid string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
