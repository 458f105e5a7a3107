package webclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clovermist/folio/internal/blogservice"
	"github.com/clovermist/folio/internal/common"
)

// ListPosts returns every server post, date descending. A snapshot younger
// than the cache TTL is served immediately while a background refresh
// replaces it; otherwise the list is fetched synchronously.
func (c *Client) ListPosts(ctx context.Context) ([]blogservice.Post, error) {
	if cached, ok := c.cache.Get(common.CacheKeyPosts()); ok {
		go c.refreshPosts()
		return cached.([]blogservice.Post), nil
	}

	posts, err := c.fetchPosts(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(common.CacheKeyPosts(), posts)

	return posts, nil
}

// refreshPosts re-fetches the post list outside the caller's lifetime so a
// torn-down view never blocks or receives the result.
func (c *Client) refreshPosts() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()

	posts, err := c.fetchPosts(ctx)
	if err != nil {
		c.logger.Info("background post refresh failed", slog.String("error", err.Error()))
		return
	}

	c.cache.Set(common.CacheKeyPosts(), posts)
}

func (c *Client) fetchPosts(ctx context.Context) ([]blogservice.Post, error) {
	envelope, status, err := c.do(ctx, http.MethodGet, "/api/blog", nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, envelope); err != nil {
		return nil, err
	}

	var posts []blogservice.Post
	if err := json.Unmarshal(envelope.Data, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPost returns a single post by slug, served from the cache when a fresh
// snapshot exists.
func (c *Client) GetPost(ctx context.Context, slug string) (*blogservice.Post, error) {
	if cached, ok := c.cache.Get(common.CacheKeyPost(slug)); ok {
		return cached.(*blogservice.Post), nil
	}

	envelope, status, err := c.do(ctx, http.MethodGet, "/api/blog/"+slug, nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, envelope); err != nil {
		return nil, err
	}

	var post blogservice.Post
	if err := json.Unmarshal(envelope.Data, &post); err != nil {
		return nil, err
	}

	c.cache.Set(common.CacheKeyPost(slug), &post)

	return &post, nil
}

// CreatePost creates a post through the API and invalidates the list
// snapshot so the next read sees it.
func (c *Client) CreatePost(ctx context.Context, req *blogservice.CreatePostRequest) (*blogservice.Post, error) {
	envelope, status, err := c.do(ctx, http.MethodPost, "/api/blog", req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, envelope); err != nil {
		return nil, err
	}

	var post blogservice.Post
	if err := json.Unmarshal(envelope.Data, &post); err != nil {
		return nil, err
	}

	c.cache.Delete(common.CacheKeyPosts())

	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, slug string, req *blogservice.UpdatePostRequest) (*blogservice.Post, error) {
	envelope, status, err := c.do(ctx, http.MethodPut, "/api/blog/"+slug, req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, envelope); err != nil {
		return nil, err
	}

	var post blogservice.Post
	if err := json.Unmarshal(envelope.Data, &post); err != nil {
		return nil, err
	}

	c.cache.Delete(common.CacheKeyPosts())
	c.cache.Delete(common.CacheKeyPost(slug))
	if post.Slug != slug {
		c.cache.Delete(common.CacheKeyPost(post.Slug))
	}

	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, slug string) error {
	envelope, status, err := c.do(ctx, http.MethodDelete, "/api/blog/"+slug, nil)
	if err != nil {
		return err
	}
	if err := checkStatus(status, envelope); err != nil {
		return err
	}

	c.cache.Delete(common.CacheKeyPosts())
	c.cache.Delete(common.CacheKeyPost(slug))

	return nil
}
