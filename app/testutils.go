package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/clovermist/folio/internal/authservice"
	"github.com/clovermist/folio/internal/blogservice"
	"github.com/clovermist/folio/internal/common"
	"github.com/stretchr/testify/assert"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "pa55word"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// capturingProducer stands in for the broker so handler tests can assert on
// what was published without a running RabbitMQ.
type capturingProducer struct {
	mu        sync.Mutex
	published [][]byte
}

func (p *capturingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, msg)
	return nil
}

func (p *capturingProducer) messages() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.published...)
}

func newTestApplication(t *testing.T) (*application, *capturingProducer) {
	db := common.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	hash, err := authservice.HashPassword(testAdminPassword)
	assert.NoError(t, err)

	cfg := &Config{
		Port:        ":0",
		Environment: "testing",
		Version:     "1.0.0",
		JWTSecret:   "test-secret",
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	blogService, err := blogservice.NewBlogService(db, cache)
	assert.NoError(t, err)

	admin := authservice.Admin{
		ID:           "1",
		Username:     testAdminUsername,
		Name:         "Site Owner",
		PasswordHash: hash,
	}

	producer := &capturingProducer{}

	app := &application{
		config:      cfg,
		logger:      logger,
		authService: authservice.NewAuthService(cfg.JWTSecret, admin),
		blogService: blogService,
		producer:    producer,
	}

	return app, producer
}

// loginAdmin runs the real login flow and returns the issued token.
func loginAdmin(t *testing.T, ts *testServer) string {
	status, _, body := ts.post(t, "/api/auth/login", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	var res struct {
		Token string `json:"token"`
	}
	err := json.Unmarshal(body, &res)
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	return res.Token
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, []byte) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

func parseEnvelope(t *testing.T, body []byte) envelope {
	var e envelope
	err := json.Unmarshal(body, &e)
	if err != nil {
		t.Fatal(err)
	}

	return e
}

func (ts *testServer) do(t *testing.T, method, path string, payload any, token *string) (int, http.Header, []byte) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, []byte) {
	return ts.do(t, http.MethodGet, path, nil, token)
}

func (ts *testServer) post(t *testing.T, path string, payload any, token *string) (int, http.Header, []byte) {
	return ts.do(t, http.MethodPost, path, payload, token)
}

func (ts *testServer) put(t *testing.T, path string, payload any, token *string) (int, http.Header, []byte) {
	return ts.do(t, http.MethodPut, path, payload, token)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, []byte) {
	return ts.do(t, http.MethodDelete, path, nil, token)
}

func strptr(s string) *string {
	return &s
}
