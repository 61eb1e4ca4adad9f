package memory

import (
	"context"
	"time"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/contract"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.CWID]; exists {
		return contract.ErrDuplicateCWID
	}
	key := emailKey(user.Email)
	if _, exists := s.emails[key]; exists {
		return contract.ErrDuplicateEmail
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	cp := *user
	s.users[user.CWID] = &cp
	s.emails[key] = user.CWID
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.CWID]
	if !ok {
		return nil
	}

	oldKey, newKey := emailKey(current.Email), emailKey(user.Email)
	if oldKey != newKey {
		if _, taken := s.emails[newKey]; taken {
			return contract.ErrDuplicateEmail
		}
		delete(s.emails, oldKey)
		s.emails[newKey] = user.CWID
	}

	current.FirstName = user.FirstName
	current.LastName = user.LastName
	current.Email = user.Email
	current.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, cwid string, hash string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.users[cwid]; ok {
		current.PasswordHash = hash
		current.UpdatedAt = time.Now()
	}
	return nil
}

func (r *userRepository) FindByCWID(ctx context.Context, cwid string) (*entity.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[cwid]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	cwid, ok := s.emails[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *s.users[cwid]
	return &cp, nil
}
