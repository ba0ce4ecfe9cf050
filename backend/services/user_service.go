package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cardatelier/cardforge/backend/models"
	dbmodels "github.com/cardatelier/cardforge/cardforge/database/models"
)

// UserService implements account registration and credential checks.
type UserService struct {
	repos *models.Repositories
}

func NewUserService(repos *models.Repositories) *UserService {
	return &UserService{repos: repos}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*dbmodels.User, error) {
	existing, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &dbmodels.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Authenticate verifies a login attempt. The error never distinguishes an
// unknown email from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, req *models.LoginRequest) (*dbmodels.User, error) {
	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID fetches a user's profile.
func (s *UserService) GetByID(ctx context.Context, id string) (*dbmodels.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
