package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fathima-sithara/media-vault/internal/apperrors"
	"github.com/fathima-sithara/media-vault/internal/auth"
	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
)

const bcryptCost = 10

type LoginResult struct {
	User  *models.User
	Admin *models.Admin
	Token string
}

// Account returns whichever principal logged in, for the response payload.
func (r *LoginResult) Account() interface{} {
	if r.Admin != nil {
		return r.Admin
	}
	return r.User
}

type AuthService struct {
	users  repository.UserRepository
	admins repository.AdminRepository
	tokens *auth.Manager
}

func NewAuthService(users repository.UserRepository, admins repository.AdminRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, admins: admins, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields must be filled", apperrors.ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user with this email: %s already exists", apperrors.ErrConflict, email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username or email already exists", apperrors.ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

// Login authenticates regular users first, then admin accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields must be filled", apperrors.ErrValidation)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return nil, fmt.Errorf("%w: email or password is incorrect", apperrors.ErrAuth)
		}
		token, err := s.tokens.Generate(u.ID.Hex(), u.Email, u.Username, u.Role)
		if err != nil {
			return nil, err
		}
		return &LoginResult{User: u, Token: token}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	a, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: email or password is incorrect", apperrors.ErrAuth)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: email or password is incorrect", apperrors.ErrAuth)
	}
	token, err := s.tokens.Generate(a.ID.Hex(), a.Email, a.Username, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Admin: a, Token: token}, nil
}

// VerifyToken returns the user id embedded in a valid token.
func (s *AuthService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", apperrors.ErrAuth)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: invalid token", apperrors.ErrAuth)
	}
	return claims.UserID, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old and new passwords are required", apperrors.ErrValidation)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: old password is incorrect", apperrors.ErrAuth)
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: old password is incorrect", apperrors.ErrAuth)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}
