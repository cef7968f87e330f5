package services

import (
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(id string) (*dto.UserResponse, error)
	Update(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(userID string) error
	RegisterPushToken(userID, token string) error
	UnregisterPushToken(userID, token string) error
	ListUsers(filter repositories.UserFilter) (*dto.PagedResponse[dto.UserResponse], error)
	SetActive(targetID string, active bool) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

func (s *UserServiceImpl) Update(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

func (s *UserServiceImpl) Deactivate(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	user.IsActive = false
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return s.userRepo.DeleteUserRefreshTokens(userID)
}

func (s *UserServiceImpl) RegisterPushToken(userID, token string) error {
	if err := s.userRepo.AddPushToken(userID, token); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) UnregisterPushToken(userID, token string) error {
	if err := s.userRepo.RemovePushToken(userID, token); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ListUsers is the admin listing with filters.
func (s *UserServiceImpl) ListUsers(filter repositories.UserFilter) (*dto.PagedResponse[dto.UserResponse], error) {
	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *toUserResponse(&users[i]))
	}
	return dto.NewPagedResponse(items, total, filter.Page, filter.PageSize), nil
}

func (s *UserServiceImpl) SetActive(targetID string, active bool) error {
	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.UserType == models.UserTypeAdmin && !active {
		return apperrors.ErrInvalidOperation("users", "Cannot deactivate an admin account")
	}

	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	if !active {
		return s.userRepo.DeleteUserRefreshTokens(targetID)
	}
	return nil
}
