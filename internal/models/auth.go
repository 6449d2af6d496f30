package models

import "github.com/arjun-dc/blog-platform/backend/internal/apperr"

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if len(r.Username) < 3 {
		return apperr.InvalidInput("Username must be at least 3 characters long")
	}
	if len(r.Password) < 6 {
		return apperr.InvalidInput("Password must be at least 6 characters long")
	}
	return nil
}

// RefreshRequest is the JSON body for POST /auth/refresh-token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return apperr.InvalidInput("refresh_token is required")
	}
	return nil
}

// LoginResponse is the token pair plus a summary of the authenticated user.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserSummary `json:"user"`
}

// RefreshResponse carries the reissued access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
