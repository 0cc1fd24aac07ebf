package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"unicode"

	"gotix/internal/auth"
	apperrors "gotix/internal/errors"
	"gotix/internal/models"
	"gotix/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  repository.UserRepository
	issuer *auth.TokenIssuer
}

func NewAuthService(users repository.UserRepository, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// validatePassword enforces the password policy: at least 6 characters with
// one uppercase letter and one digit.
func validatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}
	hasUpper, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return apperrors.Validation("password must contain an uppercase letter and a number")
	}
	return nil
}

func newActivationCode() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Register creates a new member account in the deactivated state
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.Validation("password confirmation does not match")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hash),
		Role:           models.RoleMember,
		ActivationCode: newActivationCode(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials by username or email and issues a bearer token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.users.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return "", apperrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", apperrors.ErrUnauthorized
	}

	return s.issuer.Generate(user.ID, user.Role)
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// Activate flips an account to active given its activation code
func (s *AuthService) Activate(ctx context.Context, code string) (*models.User, error) {
	user, err := s.users.GetByActivationCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.Validation("activation code is invalid")
	}

	if !user.IsActive {
		if err := s.users.Activate(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsActive = true
	}

	return user, nil
}
