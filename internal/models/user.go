package models

import (
	"net/mail"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
)

// User is a document in the users collection.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"` // never serialize
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// UserPublic is a user as returned to API callers. The password hash has no
// field here at all, so it cannot leak through serialization.
type UserPublic struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"created_at"`
}

// Public projects the user into its caller-facing shape.
func (u *User) Public() UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// UserSummary is the denormalized owner shape embedded in author-joined
// posts and in the login response.
type UserSummary struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email" bson:"email"`
}

// CreateUserRequest is the JSON body for POST /users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *CreateUserRequest) Validate() error {
	if len(r.Username) < 3 {
		return apperr.InvalidInput("Username must be at least 3 characters long")
	}
	if err := validEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < 6 {
		return apperr.InvalidInput("Password must be at least 6 characters long")
	}
	return nil
}

// UpdateUserRequest is the JSON body for PATCH /users/{id}. Nil fields were
// absent from the request and are left untouched by the merge.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Username != nil && len(*r.Username) < 3 {
		return apperr.InvalidInput("Username must be at least 3 characters long")
	}
	if r.Email != nil {
		if err := validEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Password != nil && len(*r.Password) < 6 {
		return apperr.InvalidInput("Password must be at least 6 characters long")
	}
	return nil
}

func validEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.InvalidInput("Please provide a valid email address")
	}
	return nil
}
