package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

// UserDirectory is the slice of the user directory authentication needs.
// FindByUsername returns (nil, nil) when no such user exists.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service authenticates username/password pairs and issues session tokens.
type Service struct {
	users  UserDirectory
	tokens *Tokens
	log    *slog.Logger
}

func NewService(users UserDirectory, tokens *Tokens, log *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, log: log}
}

// ValidateUser checks a username/password pair and returns the matching
// user. The two failure messages differ here but are never surfaced past
// Login's own Unauthorized mapping.
func (s *Service) ValidateUser(ctx context.Context, username, password string) (*models.User, error) {
	s.log.Debug("validating user", "username", username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Debug("user not found", "username", username)
		return nil, apperr.Unauthorized("Username not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Debug("invalid password", "username", username)
		return nil, apperr.Unauthorized("Invalid password")
	}

	return user, nil
}

// Login validates credentials and issues an access/refresh token pair. Any
// failure that is not already Unauthorized is downgraded to a generic
// Unauthorized so internal detail never reaches the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	user, err := s.ValidateUser(ctx, username, password)
	if err != nil {
		if apperr.IsUnauthorized(err) {
			return nil, err
		}
		s.log.Error("login failed", "username", username, "error", err)
		return nil, apperr.Unauthorized("Login failed")
	}

	id := user.ID.Hex()
	access, err := s.tokens.Issue(id, user.Username, AccessTokenTTL)
	if err != nil {
		s.log.Error("login failed", "username", username, "error", err)
		return nil, apperr.Unauthorized("Login failed")
	}
	refresh, err := s.tokens.Issue(id, user.Username, RefreshTokenTTL)
	if err != nil {
		s.log.Error("login failed", "username", username, "error", err)
		return nil, apperr.Unauthorized("Login failed")
	}

	return &models.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: models.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// Refresh verifies a refresh token and reissues an access token bound to the
// same subject. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	access, err := s.tokens.Issue(claims.Subject, claims.Username, AccessTokenTTL)
	if err != nil {
		s.log.Error("refresh failed", "error", err)
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	return &models.RefreshResponse{AccessToken: access}, nil
}
