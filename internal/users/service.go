package users

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

// bcryptCost matches the cost factor the original registrations were hashed
// with, so existing hashes and new ones stay comparable.
const bcryptCost = 10

// Store is the persistence surface the user directory needs. Find methods
// return (nil, nil) when no matching user exists.
type Store interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// PostCounter reports how many posts a user still owns. Deleting a user is
// refused while that count is non-zero so no post is left without an author.
type PostCounter interface {
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Service implements the user directory: CRUD with username/email
// uniqueness, password hashing, and password-free responses.
type Service struct {
	store Store
	posts PostCounter
	log   *slog.Logger
}

func NewService(store Store, posts PostCounter, log *slog.Logger) *Service {
	return &Service{store: store, posts: posts, log: log}
}

// Create registers a new user. Uniqueness is checked username first, then
// email; the store's unique indexes back these checks up under concurrency.
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserPublic, error) {
	existing, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error creating user"))
	}
	if existing != nil {
		return nil, apperr.Conflict("Username already exists")
	}

	existing, err = s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error creating user"))
	}
	if existing != nil {
		return nil, apperr.Conflict("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error creating user"))
	}

	user, err := s.store.Insert(ctx, &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	})
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error creating user"))
	}

	pub := user.Public()
	return &pub, nil
}

// FindAll returns every user, passwords omitted.
func (s *Service) FindAll(ctx context.Context) ([]models.UserPublic, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.downgrade(err, apperr.Internal("Error fetching users"))
	}
	public := make([]models.UserPublic, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}

// FindOne returns one user by id, password omitted.
func (s *Service) FindOne(ctx context.Context, id string) (*models.UserPublic, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.downgrade(err, apperr.InvalidInput("Invalid user ID"))
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	pub := user.Public()
	return &pub, nil
}

// FindByUsername returns the full record including the password hash. It
// exists for the authentication service and is never exposed over HTTP.
func (s *Service) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.FindByUsername(ctx, username)
}

// FindByEmail is symmetric to FindByUsername.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.FindByEmail(ctx, email)
}

// Update merges only the supplied fields into the record. A changed username
// or email is checked for uniqueness against every other user; setting a
// field to its current value never trips the conflict check. A supplied
// password is re-hashed before storage.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.UserPublic, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.downgrade(err, apperr.InvalidInput("Error updating user"))
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	if req.Username != nil && *req.Username != user.Username {
		other, err := s.store.FindByUsername(ctx, *req.Username)
		if err != nil {
			return nil, s.downgrade(err, apperr.InvalidInput("Error updating user"))
		}
		if other != nil {
			return nil, apperr.Conflict("Username already exists")
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		other, err := s.store.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, s.downgrade(err, apperr.InvalidInput("Error updating user"))
		}
		if other != nil {
			return nil, apperr.Conflict("Email already exists")
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, s.downgrade(err, apperr.InvalidInput("Error updating user"))
		}
		user.Password = string(hash)
	}

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return nil, s.downgrade(err, apperr.InvalidInput("Error updating user"))
	}

	pub := updated.Public()
	return &pub, nil
}

// Remove deletes a user. Deletion is refused while the user still owns
// posts, so author-joined reads never silently lose entries.
func (s *Service) Remove(ctx context.Context, id string) error {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return s.downgrade(err, apperr.InvalidInput("Error deleting user"))
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}

	count, err := s.posts.CountByUser(ctx, user.ID)
	if err != nil {
		return s.downgrade(err, apperr.InvalidInput("Error deleting user"))
	}
	if count > 0 {
		return apperr.Conflict("User still has posts")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.downgrade(err, apperr.InvalidInput("Error deleting user"))
	}
	return nil
}

// downgrade re-raises classified domain errors unchanged and replaces
// anything else with the boundary's generic error, logging the original.
func (s *Service) downgrade(err error, generic *apperr.Error) error {
	if apperr.IsDomain(err) {
		return err
	}
	s.log.Error(generic.Message, "error", err)
	return generic
}
