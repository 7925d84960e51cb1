package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/connector-api/internal/core/domain"
)

const (
	collectionPosts = "posts"
	likeAttempts    = 3
)

// PostRepository stores posts with embedded likes and comments. Membership
// tests live in the update filter so each like/unlike/comment edit is one
// atomic document update.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := p.Clone()
	doc.ID = newID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, storeErr("insert post", err)
	}
	return doc, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr("find post", err)
	}
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	posts := []*domain.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, storeErr("decode posts", err)
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete post", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike pushes userID only when it is absent from likes.user.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) ([]domain.Like, domain.LikeResult, error) {
	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
	update := pushFront("likes", domain.Like{UserID: userID})
	return settleLike(
		func() (*domain.Post, error) { return r.findAndUpdate(ctx, filter, update) },
		func() (*domain.Post, error) { return r.FindByID(ctx, postID) },
		userID, true, domain.LikeAdded, domain.LikeAlreadyPresent,
	)
}

// RemoveLike pulls userID only when it is present in likes.user.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, domain.LikeResult, error) {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	return settleLike(
		func() (*domain.Post, error) { return r.findAndUpdate(ctx, filter, update) },
		func() (*domain.Post, error) { return r.FindByID(ctx, postID) },
		userID, false, domain.LikeRemoved, domain.LikeNotPresent,
	)
}

// settleLike runs a guarded like-set update. On a guard miss the post is
// re-read: if userID's membership already equals wantLiked the outcome is the
// soft one, otherwise a concurrent like/unlike slipped between the two calls
// and the update is tried again.
func settleLike(
	update, reread func() (*domain.Post, error),
	userID string,
	wantLiked bool,
	applied, soft domain.LikeResult,
) ([]domain.Like, domain.LikeResult, error) {
	for attempt := 0; attempt < likeAttempts; attempt++ {
		p, err := update()
		if err == nil {
			return p.Likes, applied, nil
		}
		if !errors.Is(err, domain.ErrPostNotFound) {
			return nil, 0, err
		}

		current, err := reread()
		if err != nil {
			return nil, 0, err
		}
		if current.HasLiked(userID) == wantLiked {
			return current.Likes, soft, nil
		}
	}
	return nil, 0, fmt.Errorf("like set kept changing: %w", domain.ErrStoreUnavailable)
}

func (r *PostRepository) PrependComment(ctx context.Context, postID string, c domain.Comment) ([]domain.Comment, error) {
	c = c.WithID(newID())
	p, err := r.findAndUpdate(ctx, bson.M{"_id": postID}, pushFront("comments", c))
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, bool, error) {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	p, err := r.findAndUpdate(ctx, filter, update)
	if err == nil {
		return p.Comments, true, nil
	}
	if !errors.Is(err, domain.ErrPostNotFound) {
		return nil, false, err
	}

	current, err := r.FindByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	return current.Comments, false, nil
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": authorID})
	if err != nil {
		return 0, storeErr("delete author posts", err)
	}
	return res.DeletedCount, nil
}

func (r *PostRepository) PullActivity(ctx context.Context, authorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"likes.user": authorID},
		bson.M{"comments.user": authorID},
	}}
	update := bson.M{"$pull": bson.M{
		"likes":    bson.M{"user": authorID},
		"comments": bson.M{"user": authorID},
	}}
	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, storeErr("pull author activity", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the lookup indexes used by the feed and the purge.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "likes.user", Value: 1}}},
		{Keys: bson.D{{Key: "comments.user", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PostRepository) findAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	if err := r.col.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr("update post", err)
	}
	return &p, nil
}
