package webclient

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/clovermist/folio/internal/blogservice"
)

// MergePosts combines server posts with the durable local-only posts into
// one display list sorted by date descending. Server posts are numbered by
// position; each local post gets a synthetic ID above the highest server
// ID. The function is pure: it never touches storage or the network.
func MergePosts(serverPosts []blogservice.Post, localPosts []LocalPost) []DisplayPost {
	merged := make([]DisplayPost, 0, len(serverPosts)+len(localPosts))

	maxID := 0
	for i, p := range serverPosts {
		id := i + 1
		if id > maxID {
			maxID = id
		}
		merged = append(merged, DisplayPost{
			ID:       id,
			Title:    p.Title,
			Excerpt:  p.Excerpt,
			Slug:     p.Slug,
			Date:     p.Date,
			Featured: p.Featured,
			Content:  p.Content,
			Origin:   OriginServer,
		})
	}

	for i, p := range localPosts {
		merged = append(merged, DisplayPost{
			ID:       maxID + i + 1,
			Title:    p.Title,
			Excerpt:  p.Excerpt,
			Slug:     p.Slug,
			Date:     p.Date,
			Featured: p.Featured,
			Content:  p.Content,
			Origin:   OriginLocal,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	return merged
}

// LocalPosts loads the durable list of client-origin posts. A missing or
// unreadable entry is an empty list, matching how the site has always
// treated corrupt storage.
func (c *Client) LocalPosts() []LocalPost {
	raw, ok := c.storage.Get(localPostsStorageKey)
	if !ok {
		return nil
	}

	var posts []LocalPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		c.logger.Info("discarding unreadable local posts", "error", err.Error())
		return nil
	}

	return posts
}

func (c *Client) saveLocalPosts(posts []LocalPost) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	return c.storage.Set(localPostsStorageKey, raw)
}

// MergedPosts fetches the server list and merges in the local posts.
func (c *Client) MergedPosts(ctx context.Context) ([]DisplayPost, error) {
	serverPosts, err := c.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	return MergePosts(serverPosts, c.LocalPosts()), nil
}

// UpdateLocalPost rewrites a client-origin post in durable storage. Posts
// that came from the server have no client-side edit path and are rejected.
func (c *Client) UpdateLocalPost(post *DisplayPost, updated LocalPost) error {
	if !post.Editable() {
		return ErrServerOriginPost
	}

	posts := c.LocalPosts()
	for i, p := range posts {
		if p.Slug == post.Slug {
			posts[i] = updated
			return c.saveLocalPosts(posts)
		}
	}

	return ErrPostNotFound
}

// DeleteLocalPost removes a client-origin post from durable storage.
func (c *Client) DeleteLocalPost(post *DisplayPost) error {
	if !post.Editable() {
		return ErrServerOriginPost
	}

	posts := c.LocalPosts()
	for i, p := range posts {
		if p.Slug == post.Slug {
			posts = append(posts[:i], posts[i+1:]...)
			return c.saveLocalPosts(posts)
		}
	}

	return ErrPostNotFound
}
