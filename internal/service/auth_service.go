// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/events"
	"studynotes-be/pkg/password"
	"studynotes-be/pkg/token"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, cwid string) (*dto.MeResponse, error)
	ChangePassword(ctx context.Context, cwid string, req *dto.ChangePasswordRequest) (*dto.UserResponse, error)
	Logout(ctx context.Context, claims *token.Claims) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	hasher     *password.Hasher
	tokens     *token.Service
	denylist   contract.TokenDenylist
	publisher  IPublisherService
	logger     logger.ILogger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the account flows. denylist is nil when token
// revocation is disabled.
func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	hasher *password.Hasher,
	tokens *token.Service,
	denylist contract.TokenDenylist,
	publisher IPublisherService,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		denylist:   denylist,
		publisher:  publisher,
		logger:     log,
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, storeError(err)
	}

	ts := now()
	user := &entity.User{
		CWID:         strings.TrimSpace(req.CWID),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, storeError(err)
	}

	s.publisher.Publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
		"cwid":      user.CWID,
		"email":     user.Email,
		"firstName": user.FirstName,
	}))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		// keep the timing of unknown emails close to wrong passwords
		s.hasher.Verify(req.Password, s.timingHash())
		return nil, apperror.Unauthenticated(apperror.MsgInvalidCredentials)
	}
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, apperror.Unauthenticated(apperror.MsgInvalidCredentials)
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		if hash, err := s.hasher.Hash(req.Password); err == nil {
			if err := uow.UserRepository().UpdatePassword(ctx, user.CWID, hash); err != nil {
				s.logger.Warn("AUTH", "failed to upgrade password hash", map[string]interface{}{
					"cwid":  user.CWID,
					"error": err,
				})
			}
		}
	}

	s.publisher.Publish(ctx, events.New(events.UserLogin, map[string]interface{}{
		"cwid": user.CWID,
	}))

	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, cwid string) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByCWID(ctx, cwid)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	count, err := uow.NoteRepository().CountByAuthor(ctx, cwid)
	if err != nil {
		return nil, storeError(err)
	}

	return &dto.MeResponse{
		UserResponse: toUserResponse(user),
		NotesCount:   count,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, cwid string, req *dto.ChangePasswordRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByCWID(ctx, cwid)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, errUserNotFound
	}
	if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		return nil, errWrongPassword
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, storeError(err)
	}
	if err := uow.UserRepository().UpdatePassword(ctx, cwid, hash); err != nil {
		return nil, storeError(err)
	}

	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) Logout(ctx context.Context, claims *token.Claims) error {
	if s.denylist == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Unavailable(err)
	}
	return nil
}

func (s *authService) issue(user *entity.User) (*dto.AuthResponse, error) {
	issued, err := s.tokens.Issue(token.Subject{
		CWID:      user.CWID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.AuthResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      toUserResponse(user),
	}, nil
}

func (s *authService) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("studynotes-timing-placeholder")
	})
	return s.dummyHash
}
