package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

// PostStore handles post CRUD and the author-joined read pipeline in MongoDB.
type PostStore struct {
	col *mongo.Collection
}

func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{col: db.Collection("posts")}
}

func (s *PostStore) Insert(ctx context.Context, post *models.Post) (*models.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("mongo insert post: %w", err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return post, nil
}

// FindByID returns the raw post without author info, for ownership checks.
// (nil, nil) when absent; InvalidInput when the id is malformed.
func (s *PostStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidInput("Invalid post ID")
	}
	var post models.Post
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find post: %w", err)
	}
	return &post, nil
}

func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": post.ID}, post); err != nil {
		return fmt.Errorf("mongo update post: %w", err)
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.InvalidInput("Invalid post ID")
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo delete post: %w", err)
	}
	return nil
}

// CountByUser reports how many posts the user owns.
func (s *PostStore) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("mongo count posts: %w", err)
	}
	return n, nil
}

// authorLookupStages joins each post with the current state of its owner.
// $unwind drops posts whose owner no longer exists (inner-join semantics).
func authorLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: "$author"}},
		{{Key: "$addFields", Value: bson.D{{Key: "user", Value: bson.D{
			{Key: "_id", Value: "$author._id"},
			{Key: "username", Value: "$author.username"},
			{Key: "email", Value: "$author.email"},
		}}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "content", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "user", Value: 1},
		}}},
	}
}

// ListWithAuthors returns every post with a live owner, newest first.
func (s *PostStore) ListWithAuthors(ctx context.Context) ([]models.PostWithAuthor, error) {
	pipeline := append(authorLookupStages(),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}})
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.PostWithAuthor
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("mongo decode posts: %w", err)
	}
	return posts, nil
}

// FindWithAuthor returns one author-joined post, or (nil, nil) when the post
// is absent or its owner no longer exists.
func (s *PostStore) FindWithAuthor(ctx context.Context, id string) (*models.PostWithAuthor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidInput("Invalid post ID")
	}
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
	}, authorLookupStages()...)
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo find post: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.PostWithAuthor
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("mongo decode post: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}
