package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
)

// Post is a document in the posts collection. UserID is set once at creation
// and is never updated afterwards.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostWithAuthor is a post enriched at read time with the current state of
// its owning user.
type PostWithAuthor struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	User      UserSummary        `json:"user" bson:"user"`
}

// CreatePostRequest is the JSON body for POST /posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *CreatePostRequest) Validate() error {
	if len(r.Title) < 3 {
		return apperr.InvalidInput("Title must be at least 3 characters long")
	}
	if len(r.Content) < 10 {
		return apperr.InvalidInput("Content must be at least 10 characters long")
	}
	return nil
}

// UpdatePostRequest is the JSON body for PATCH /posts/{id}. Nil fields were
// absent from the request.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r *UpdatePostRequest) Validate() error {
	if r.Title != nil && len(*r.Title) < 3 {
		return apperr.InvalidInput("Title must be at least 3 characters long")
	}
	if r.Content != nil && len(*r.Content) < 10 {
		return apperr.InvalidInput("Content must be at least 10 characters long")
	}
	return nil
}
