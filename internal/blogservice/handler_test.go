package blogservice

import (
	"context"
	"testing"
	"time"

	"github.com/clovermist/folio/internal/common"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestEnvironment(t *testing.T) (*BlogService, *mongo.Database, func() error) {
	db := common.TestDB(t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	s, err := NewBlogService(db, cache)
	assert.NoError(t, err)

	cleanup := func() error {
		_, err := db.Collection(collectionName).DeleteMany(context.Background(), bson.M{})
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return s, db, cleanup
}

func TestCreatePost(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)

	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		req         *CreatePostRequest
		expectedErr error
	}{
		{
			name: "valid post",
			req: &CreatePostRequest{
				Title:   "Test Post",
				Excerpt: "A test post.",
				Slug:    "test-post",
				Date:    date,
			},
			expectedErr: nil,
		},
		{
			name: "empty title",
			req: &CreatePostRequest{
				Title:   "",
				Excerpt: "A test post.",
				Slug:    "test-post",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "empty excerpt",
			req: &CreatePostRequest{
				Title:   "Test Post",
				Excerpt: "",
				Slug:    "test-post",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"excerpt": "must be provided"}},
		},
		{
			name: "invalid slug",
			req: &CreatePostRequest{
				Title:   "Test Post",
				Excerpt: "A test post.",
				Slug:    "Test Post!",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"slug": "must only contain lowercase letters, numbers, and hyphens"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			post, err := s.CreatePost(context.Background(), tc.req)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, post)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.req.Slug, post.Slug)
			assert.False(t, post.CreatedAt.IsZero())
			assert.False(t, post.ID.IsZero())

			// create followed by getBySlug returns the same fields
			got, err := s.GetPostBySlug(context.Background(), tc.req.Slug)
			assert.NoError(t, err)
			assert.Equal(t, tc.req.Title, got.Title)
			assert.Equal(t, tc.req.Excerpt, got.Excerpt)
			assert.WithinDuration(t, tc.req.Date, got.Date, time.Second)

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	req := &CreatePostRequest{Title: "First", Excerpt: "E", Slug: "same-slug"}
	_, err := s.CreatePost(context.Background(), req)
	assert.NoError(t, err)

	dup := &CreatePostRequest{Title: "Second", Excerpt: "E", Slug: "same-slug"}
	_, err = s.CreatePost(context.Background(), dup)
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"slug": "a post with this slug already exists"}}, err)

	// the store still holds exactly one post with that slug
	count, err := db.Collection(collectionName).CountDocuments(context.Background(), bson.M{"slug": "same-slug"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetPosts(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.CreatePost(context.Background(), &CreatePostRequest{Title: "Older", Excerpt: "E", Slug: "older", Date: older})
	assert.NoError(t, err)
	_, err = s.CreatePost(context.Background(), &CreatePostRequest{Title: "Newer", Excerpt: "E", Slug: "newer", Date: newer})
	assert.NoError(t, err)

	posts, err := s.GetPosts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	assert.Equal(t, "older", posts[1].Slug)
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	post, err := s.GetPostBySlug(context.Background(), "does-not-exist")
	assert.Nil(t, post)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdatePost(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	created, err := s.CreatePost(context.Background(), &CreatePostRequest{Title: "Original", Excerpt: "E", Slug: "a-post"})
	assert.NoError(t, err)

	title := "Updated"
	updated, err := s.UpdatePost(context.Background(), "a-post", &UpdatePostRequest{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, "E", updated.Excerpt)
	assert.Equal(t, "a-post", updated.Slug)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	// partial update on a missing slug leaves the collection unchanged
	_, err = s.UpdatePost(context.Background(), "missing", &UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	count, err := db.Collection(collectionName).CountDocuments(context.Background(), bson.M{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// merged document is re-validated
	tooLong := ""
	_, err = s.UpdatePost(context.Background(), "a-post", &UpdatePostRequest{Title: &tooLong})
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"title": "must be provided"}}, err)
}

func TestUpdatePost_SlugCollision(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	_, err := s.CreatePost(context.Background(), &CreatePostRequest{Title: "One", Excerpt: "E", Slug: "post-one"})
	assert.NoError(t, err)
	_, err = s.CreatePost(context.Background(), &CreatePostRequest{Title: "Two", Excerpt: "E", Slug: "post-two"})
	assert.NoError(t, err)

	slug := "post-one"
	_, err = s.UpdatePost(context.Background(), "post-two", &UpdatePostRequest{Slug: &slug})
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"slug": "a post with this slug already exists"}}, err)
}

func TestDeletePost(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	_, err := s.CreatePost(context.Background(), &CreatePostRequest{Title: "Doomed", Excerpt: "E", Slug: "doomed"})
	assert.NoError(t, err)

	err = s.DeletePost(context.Background(), "doomed")
	assert.NoError(t, err)

	_, err = s.GetPostBySlug(context.Background(), "doomed")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.DeletePost(context.Background(), "doomed")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMutationsInvalidateCache(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	_, err := s.CreatePost(context.Background(), &CreatePostRequest{Title: "Cached", Excerpt: "E", Slug: "cached"})
	assert.NoError(t, err)

	// prime the list cache
	posts, err := s.GetPosts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, posts, 1)

	_, err = s.CreatePost(context.Background(), &CreatePostRequest{Title: "Another", Excerpt: "E", Slug: "another"})
	assert.NoError(t, err)

	// the next read must see the new post, not the stale snapshot
	posts, err = s.GetPosts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
}
