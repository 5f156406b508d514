package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/common"
	"pressroom/internal/common/security"
	"pressroom/internal/domain/model"
	"pressroom/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role" validate:"required,oneof=author reader"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.UserView `json:"user"`
	Token string          `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Name:           req.Name,
		Role:           req.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// ErrDuplicateEmail passes through unchanged: a colliding email must
		// stay distinguishable from other validation failures.
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, common.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user.View(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same message for unknown email and wrong password.
			return nil, common.Errorf("invalid credentials: %w", common.ErrUnauthorized)
		}
		return nil, err
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, common.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user.View(), Token: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.UserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}
