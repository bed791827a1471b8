package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"species-catalog/internal/domains/user/model"
	"species-catalog/internal/domains/user/repository"
	"species-catalog/pkg/jwt"
)

// DefaultBcryptCost balances hashing time against brute-force resistance
const DefaultBcryptCost = 12

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

type userService struct {
	repo       repository.Repository
	tokens     *jwt.Manager
	bcryptCost int
}

// NewUserService creates the auth service. bcryptCost <= 0 uses DefaultBcryptCost.
func NewUserService(repo repository.Repository, tokens *jwt.Manager, bcryptCost int) ServiceInterface {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a new account
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  req.DisplayName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return u, nil
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords both map to ErrInvalidCredentials.
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        *u,
	}, nil
}
