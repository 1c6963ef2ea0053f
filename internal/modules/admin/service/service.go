package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/admin/dto"
	userDto "trackzen.io/backend/internal/modules/user/dto"
	"trackzen.io/backend/internal/modules/user/repository"
	"trackzen.io/backend/pkg/apperror"
)

type AdminService interface {
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*userDto.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]userDto.UserResponse, error)
	UpdateUser(ctx context.Context, actorID, id uuid.UUID, input dto.UpdateUserInput) (*userDto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*userDto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.New(http.StatusConflict, "email already registered", apperror.ErrConflict)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, input.Role)
	if err != nil {
		return nil, fmt.Errorf("role %q: %w", input.Role, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Department:   strings.TrimSpace(input.Department),
		RoleID:       &role.ID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = *role

	resp := userDto.ToUserResponse(user)
	return &resp, nil
}

func (s *adminService) GetAllUsers(ctx context.Context) ([]userDto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]userDto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userDto.ToUserResponse(u))
	}
	return out, nil
}

func (s *adminService) UpdateUser(ctx context.Context, actorID, id uuid.UUID, input dto.UpdateUserInput) (*userDto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	if input.IsActive != nil {
		if actorID == id && !*input.IsActive {
			return nil, fmt.Errorf("cannot deactivate your own account: %w", apperror.ErrInvalidInput)
		}
		user.IsActive = *input.IsActive
	}
	if input.Role != nil && *input.Role != user.Role.Name {
		if actorID == id {
			return nil, fmt.Errorf("cannot change your own role: %w", apperror.ErrInvalidInput)
		}
		role, err := s.userRepo.FindRoleByName(ctx, *input.Role)
		if err != nil {
			return nil, fmt.Errorf("role %q: %w", *input.Role, err)
		}
		user.RoleID = &role.ID
		user.Role = *role
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := userDto.ToUserResponse(user)
	return &resp, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fmt.Errorf("cannot delete your own account: %w", apperror.ErrInvalidInput)
	}
	return s.userRepo.Delete(ctx, id)
}
