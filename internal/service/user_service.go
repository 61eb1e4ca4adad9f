// FILE: internal/service/user_service.go
package service

import (
	"context"
	"strings"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetProfile(ctx context.Context, cwid string) (*dto.PublicProfileResponse, error)
	UpdateProfile(ctx context.Context, cwid string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, cwid string) (*dto.PublicProfileResponse, error) {
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

	return &dto.PublicProfileResponse{
		CWID:       user.CWID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		FullName:   user.FullName(),
		NotesCount: count,
		CreatedAt:  user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, cwid string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if req.IsEmpty() {
		return nil, errEmptyUpdate
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByCWID(ctx, cwid)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if user.FirstName == "" || user.LastName == "" {
		return nil, errBlankName
	}
	user.UpdatedAt = now()

	if err := uow.UserRepository().UpdateProfile(ctx, user); err != nil {
		return nil, storeError(err)
	}

	res := toUserResponse(user)
	return &res, nil
}
