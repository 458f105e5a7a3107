package webclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clovermist/folio/internal/blogservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	listHits   atomic.Int64
	posts      atomic.Value // []blogservice.Post
	listStatus atomic.Int64
}

func newFakeAPI(posts []blogservice.Post) *fakeAPI {
	api := &fakeAPI{}
	api.posts.Store(posts)
	api.listStatus.Store(http.StatusOK)
	return api
}

func (f *fakeAPI) handler() http.Handler {
	writeEnvelope := func(w http.ResponseWriter, status int, data any, apiError any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": status < 300,
			"data":    data,
			"error":   apiError,
		})
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/blog", func(w http.ResponseWriter, r *http.Request) {
		f.listHits.Add(1)

		status := int(f.listStatus.Load())
		if status != http.StatusOK {
			writeEnvelope(w, status, nil, "internal server error")
			return
		}

		writeEnvelope(w, http.StatusOK, f.posts.Load(), nil)
	})

	mux.HandleFunc("GET /api/blog/{slug}", func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		for _, p := range f.posts.Load().([]blogservice.Post) {
			if p.Slug == slug {
				writeEnvelope(w, http.StatusOK, p, nil)
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, nil, "the requested resource could not be found")
	})

	mux.HandleFunc("POST /api/blog", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeEnvelope(w, http.StatusUnauthorized, nil, "invalid or missing authentication token")
			return
		}

		var req blogservice.CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeEnvelope(w, http.StatusBadRequest, nil, "body contains badly-formed JSON")
			return
		}
		if req.Title == "" {
			writeEnvelope(w, http.StatusBadRequest, nil, map[string]string{"title": "must be provided"})
			return
		}

		post := blogservice.Post{Title: req.Title, Excerpt: req.Excerpt, Slug: req.Slug, Date: time.Now().UTC(), Content: req.Content}
		posts := append([]blogservice.Post{post}, f.posts.Load().([]blogservice.Post)...)
		f.posts.Store(posts)

		writeEnvelope(w, http.StatusCreated, post, nil)
	})

	mux.HandleFunc("DELETE /api/blog/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeEnvelope(w, http.StatusUnauthorized, nil, "invalid or missing authentication token")
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"message": "post deleted successfully"}, nil)
	})

	return mux
}

func samplePosts() []blogservice.Post {
	return []blogservice.Post{
		{Title: "Second", Slug: "second", Date: day(2)},
		{Title: "First", Slug: "first", Date: day(1)},
	}
}

func TestListPosts_ServesCachedSnapshot(t *testing.T) {
	api := newFakeAPI(samplePosts())
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, time.Minute)

	first, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, int64(1), api.listHits.Load())

	// the server changes, but a fresh snapshot is served as-is
	api.posts.Store([]blogservice.Post{{Title: "Third", Slug: "third", Date: day(3)}})

	second, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the cache hit still revalidated in the background
	assert.Eventually(t, func() bool {
		return api.listHits.Load() >= 2
	}, time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		cached, ok := c.cache.Get("posts")
		if !ok {
			return false
		}
		posts := cached.([]blogservice.Post)
		return len(posts) == 1 && posts[0].Slug == "third"
	}, time.Second, 10*time.Millisecond)
}

func TestListPosts_RefetchesAfterTTL(t *testing.T) {
	api := newFakeAPI(samplePosts())
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, 30*time.Millisecond)

	_, err := c.ListPosts(context.Background())
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	api.posts.Store([]blogservice.Post{{Title: "Third", Slug: "third", Date: day(3)}})

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "third", posts[0].Slug)
	assert.Equal(t, int64(2), api.listHits.Load())
}

func TestListPosts_ServerError(t *testing.T) {
	api := newFakeAPI(samplePosts())
	api.listStatus.Store(http.StatusInternalServerError)
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, time.Minute)

	_, err := c.ListPosts(context.Background())
	assert.EqualError(t, err, "internal server error")
}

func TestGetPost(t *testing.T) {
	api := newFakeAPI(samplePosts())
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, time.Minute)

	post, err := c.GetPost(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "First", post.Title)

	// second read is served from the cache
	api.posts.Store([]blogservice.Post{})
	again, err := c.GetPost(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, post, again)

	_, err = c.GetPost(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreatePost(t *testing.T) {
	api := newFakeAPI(samplePosts())
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, time.Minute)

	// no session means no bearer token
	_, err := c.CreatePost(context.Background(), &blogservice.CreatePostRequest{Title: "T", Slug: "t"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	c.mu.Lock()
	c.session = &Session{Token: "test-token"}
	c.mu.Unlock()

	// warm the list cache, then create
	_, err = c.ListPosts(context.Background())
	require.NoError(t, err)

	post, err := c.CreatePost(context.Background(), &blogservice.CreatePostRequest{Title: "T", Slug: "t", Excerpt: "e", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "t", post.Slug)

	// creating invalidated the list snapshot, so the next read hits the server
	hits := api.listHits.Load()
	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Greater(t, api.listHits.Load(), hits)
	assert.Len(t, posts, 3)
}

func TestCreatePost_ValidationError(t *testing.T) {
	api := newFakeAPI(samplePosts())
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, time.Minute)
	c.mu.Lock()
	c.session = &Session{Token: "test-token"}
	c.mu.Unlock()

	_, err := c.CreatePost(context.Background(), &blogservice.CreatePostRequest{Slug: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestDeletePost_InvalidatesCache(t *testing.T) {
	api := newFakeAPI(samplePosts())
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := newTestClient(t, server.URL, time.Minute)
	c.mu.Lock()
	c.session = &Session{Token: "test-token"}
	c.mu.Unlock()

	_, err := c.GetPost(context.Background(), "first")
	require.NoError(t, err)

	require.NoError(t, c.DeletePost(context.Background(), "first"))

	_, ok := c.cache.Get("post:first")
	assert.False(t, ok)
	_, ok = c.cache.Get("posts")
	assert.False(t, ok)
}
