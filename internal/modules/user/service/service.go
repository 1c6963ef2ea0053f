package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"trackzen.io/backend/internal/modules/user/dto"
	"trackzen.io/backend/internal/modules/user/repository"
	"trackzen.io/backend/pkg/apperror"
	"trackzen.io/backend/pkg/ratelimit"
	"trackzen.io/backend/pkg/token"
)

var ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type Options struct {
	Secret      string
	TokenTTL    time.Duration
	MaxAttempts int64
	AttemptsTTL time.Duration
	Now         func() time.Time
}

type authService struct {
	repo  repository.UserRepository
	redis *redis.Client
	opts  Options
}

func NewAuthService(repo repository.UserRepository, redisClient *redis.Client, opts Options) AuthService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	return &authService{
		repo:  repo,
		redis: redisClient,
		opts:  opts,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	allowed, err := ratelimit.Hit(ctx, s.redis, email, "login", s.opts.MaxAttempts, s.opts.AttemptsTTL)
	if err != nil {
		log.Printf("⚠️ login rate limit unavailable: %v", err)
	} else if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "too many login attempts, try again later", apperror.ErrRateLimitExceeded)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.New(http.StatusForbidden, "account is deactivated", apperror.ErrForbidden)
	}

	if err := ratelimit.Reset(ctx, s.redis, email, "login"); err != nil {
		log.Printf("⚠️ failed to reset login attempts for %s: %v", email, err)
	}

	signed, expiresAt, err := token.Issue(s.opts.Secret, user.ID, user.Role.Name, s.opts.TokenTTL, s.opts.Now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt.Unix(),
		User:        dto.ToUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}
