package webclient

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/clovermist/folio/internal/authservice"
	"github.com/clovermist/folio/internal/common"
)

// Origin records where a post lives. Server posts belong to the blog API;
// local posts exist only in this client's durable storage and predate the
// API.
type Origin string

const (
	OriginServer Origin = "server"
	OriginLocal  Origin = "local"
)

const (
	// DefaultCacheTTL is how long a fetched post snapshot is served without
	// a network round trip.
	DefaultCacheTTL = 60 * time.Second

	defaultRequestTimeout = 10 * time.Second
)

var (
	ErrNoSession        = errors.New("no stored session")
	ErrPostNotFound     = errors.New("post not found")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrNotPermitted     = errors.New("not authorized")
	ErrServerOriginPost = errors.New("server posts can only be changed through the blog API")
)

type Session struct {
	User  authservice.User
	Token string
}

// LocalPost is the durable shape of a client-origin post.
type LocalPost struct {
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Slug     string    `json:"slug"`
	Date     time.Time `json:"date"`
	Featured bool      `json:"featured"`
	Content  string    `json:"content"`
}

// DisplayPost is one entry of the merged listing. The ID is synthetic and
// only stable within a single merge.
type DisplayPost struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Slug     string    `json:"slug"`
	Date     time.Time `json:"date"`
	Featured bool      `json:"featured"`
	Content  string    `json:"content"`
	Origin   Origin    `json:"origin"`
}

func (p *DisplayPost) Editable() bool {
	return p.Origin == OriginLocal
}

type Client struct {
	baseURL  string
	http     *http.Client
	storage  Storage
	cache    *common.Cache
	cacheTTL time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	session *Session
}

func NewClient(baseURL string, storage Storage, cacheTTL time.Duration, logger *slog.Logger) *Client {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultRequestTimeout},
		storage:  storage,
		cache:    common.NewCache(cacheTTL, 2*cacheTTL),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}
