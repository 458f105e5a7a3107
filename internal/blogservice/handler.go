package blogservice

import (
	"context"
	"errors"
	"time"

	"github.com/clovermist/folio/internal/common"
	"go.mongodb.org/mongo-driver/mongo"
)

func NewBlogService(db *mongo.Database, c *common.Cache) (*BlogService, error) {
	m := newPostModel(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return &BlogService{m: m, c: c}, nil
}

type CreatePostRequest struct {
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Slug     string    `json:"slug"`
	Date     time.Time `json:"date"`
	Featured bool      `json:"featured"`
	Content  string    `json:"content"`
}

// UpdatePostRequest carries a partial update; nil fields keep their stored
// value.
type UpdatePostRequest struct {
	Title    *string    `json:"title"`
	Excerpt  *string    `json:"excerpt"`
	Slug     *string    `json:"slug"`
	Date     *time.Time `json:"date"`
	Featured *bool      `json:"featured"`
	Content  *string    `json:"content"`
}

// CreatePost validates the fields and inserts a new post. A colliding slug
// comes back as a validation error, not a bare store error.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateExcerpt(v, req.Excerpt)
	validateSlug(v, req.Slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := &Post{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Slug:     req.Slug,
		Date:     req.Date,
		Featured: req.Featured,
		Content:  sanitizeContent(req.Content),
	}

	err := s.m.insert(ctx, post)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSlug):
			v.AddError("slug", "a post with this slug already exists")
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	s.c.Delete(common.CacheKeyPosts())

	return post, nil
}

// GetPosts returns every post, date descending, serving from the cache when
// a fresh snapshot exists.
func (s *BlogService) GetPosts(ctx context.Context) ([]Post, error) {
	if cached, ok := s.c.Get(common.CacheKeyPosts()); ok {
		return cached.([]Post), nil
	}

	posts, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPosts(), posts)

	return posts, nil
}

func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	if cached, ok := s.c.Get(common.CacheKeyPost(slug)); ok {
		return cached.(*Post), nil
	}

	post, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPost(slug), post)

	return post, nil
}

// UpdatePost merges the partial fields into the stored post, re-validates
// the merged document, and persists it. updated_at is refreshed by the
// model.
func (s *BlogService) UpdatePost(ctx context.Context, slug string, req *UpdatePostRequest) (*Post, error) {
	post, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.Date != nil {
		post.Date = *req.Date
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if req.Content != nil {
		post.Content = sanitizeContent(*req.Content)
	}

	v := common.NewValidator()
	validateTitle(v, post.Title)
	validateExcerpt(v, post.Excerpt)
	validateSlug(v, post.Slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBySlug(ctx, slug, post)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSlug):
			v.AddError("slug", "a post with this slug already exists")
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	s.c.Delete(common.CacheKeyPosts())
	s.c.Delete(common.CacheKeyPost(slug))
	if post.Slug != slug {
		s.c.Delete(common.CacheKeyPost(post.Slug))
	}

	return post, nil
}

func (s *BlogService) DeletePost(ctx context.Context, slug string) error {
	err := s.m.deleteBySlug(ctx, slug)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPosts())
	s.c.Delete(common.CacheKeyPost(slug))

	return nil
}
