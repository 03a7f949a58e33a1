package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepo is the slice of the user store the service needs.
type UserRepo interface {
	UserGetter
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
}

// UserService handles registration and credential checks.
type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", ErrInvalidInput)
	}

	existing, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: name %q is taken", ErrInvalidInput, name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		PasswordHash: string(hash),
		Status:       "ACTIVE",
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.UserId = id

	return &user, nil
}

// Login verifies the credentials and returns the user.
func (s *UserService) Login(ctx context.Context, name, password string) (*models.User, error) {
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: bad credentials", ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: bad credentials", ErrForbidden)
	}

	return user, nil
}
