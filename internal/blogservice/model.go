package blogservice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

// collectionName matches the collection the site has always written to.
const collectionName = "portfolio-blogs"

func newPostModel(db *mongo.Database) *PostModel {
	return &PostModel{coll: db.Collection(collectionName)}
}

// ensureIndexes creates the unique slug index. Slug uniqueness is enforced
// here, at the store, not by the callers.
func (m *PostModel) ensureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if post.Date.IsZero() {
		post.Date = now
	}
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := m.coll.InsertOne(ctx, post)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	post.ID = res.InsertedID.(primitive.ObjectID)

	return nil
}

func (m *PostModel) getBySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post

	err := m.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// getAll returns every post sorted by date descending.
func (m *PostModel) getAll(ctx context.Context) ([]Post, error) {
	cursor, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (m *PostModel) updateBySlug(ctx context.Context, slug string, post *Post) error {
	post.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	update := bson.M{"$set": bson.M{
		"title":      post.Title,
		"excerpt":    post.Excerpt,
		"slug":       post.Slug,
		"date":       post.Date,
		"featured":   post.Featured,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	}}

	err := m.coll.FindOneAndUpdate(
		ctx,
		bson.M{"slug": slug},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return ErrRecordNotFound
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) deleteBySlug(ctx context.Context, slug string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}
