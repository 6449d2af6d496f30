package posts

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

// Store is the persistence surface the post catalog needs. Find methods
// return (nil, nil) when no matching post exists.
type Store interface {
	Insert(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	ListWithAuthors(ctx context.Context) ([]models.PostWithAuthor, error)
	FindWithAuthor(ctx context.Context, id string) (*models.PostWithAuthor, error)
}

// UserChecker verifies that the creating user exists before a post is
// persisted under their id.
type UserChecker interface {
	FindOne(ctx context.Context, id string) (*models.UserPublic, error)
}

// Service implements the post catalog: owner-only mutation and author-joined
// reads.
type Service struct {
	store Store
	users UserChecker
	log   *slog.Logger
}

func NewService(store Store, users UserChecker, log *slog.Logger) *Service {
	return &Service{store: store, users: users, log: log}
}

// Create persists a new post owned by userID. A userID that resolves to no
// user is the caller's fault, not a missing resource, so it maps to
// InvalidInput rather than NotFound.
func (s *Service) Create(ctx context.Context, req *models.CreatePostRequest, userID string) (*models.Post, error) {
	if _, err := s.users.FindOne(ctx, userID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.InvalidInput("User not found")
		}
		return nil, s.downgrade(err, apperr.Internal("Error creating post"))
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.InvalidInput("Invalid user ID")
	}

	post, err := s.store.Insert(ctx, &models.Post{
		Title:   req.Title,
		Content: req.Content,
		UserID:  oid,
	})
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error creating post"))
	}
	return post, nil
}

// FindAll returns every post whose owner still exists, author-joined,
// newest first.
func (s *Service) FindAll(ctx context.Context) ([]models.PostWithAuthor, error) {
	posts, err := s.store.ListWithAuthors(ctx)
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error fetching posts"))
	}
	if posts == nil {
		posts = []models.PostWithAuthor{}
	}
	return posts, nil
}

// FindOne returns one author-joined post.
func (s *Service) FindOne(ctx context.Context, id string) (*models.PostWithAuthor, error) {
	post, err := s.store.FindWithAuthor(ctx, id)
	if err != nil {
		return nil, s.downgrade(err, apperr.InvalidInput("Invalid post ID"))
	}
	if post == nil {
		return nil, apperr.NotFound("Post not found")
	}
	return post, nil
}

// Update merges the supplied fields into the post and returns it re-joined
// with its author. Existence is checked before ownership, so an absent post
// is NotFound even for a non-owner.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdatePostRequest, userID string) (*models.PostWithAuthor, error) {
	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.downgrade(err, apperr.InvalidInput("Error updating post"))
	}
	if post == nil {
		return nil, apperr.NotFound("Post not found")
	}

	if post.UserID.Hex() != userID {
		return nil, apperr.Forbidden("You can only update your own posts")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.store.Update(ctx, post); err != nil {
		return nil, s.downgrade(err, apperr.InvalidInput("Error updating post"))
	}

	return s.FindOne(ctx, id)
}

// Remove deletes a post, owner only.
func (s *Service) Remove(ctx context.Context, id string, userID string) error {
	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		return s.downgrade(err, apperr.InvalidInput("Error deleting post"))
	}
	if post == nil {
		return apperr.NotFound("Post not found")
	}

	if post.UserID.Hex() != userID {
		return apperr.Forbidden("You can only delete your own posts")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.downgrade(err, apperr.InvalidInput("Error deleting post"))
	}
	return nil
}

func (s *Service) downgrade(err error, generic *apperr.Error) error {
	if apperr.IsDomain(err) {
		return err
	}
	s.log.Error(generic.Message, "error", err)
	return generic
}
