// Package frontend is the server-rendered layer. It consumes the JSON
// API over HTTP like any external client would, attaching the session's
// bearer token when present and interpreting the shared error shape.
package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

// Article is the frontend's view of an article payload.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Content   string    `json:"content"`
	Type      int       `json:"type"`
	Status    int       `json:"status"`
	Keywords  []Keyword `json:"keywords"`
	Author    *Author   `json:"author"`
	CreatedAt string    `json:"created_at"`
}

// Keyword is the frontend's view of a keyword payload.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Author is the frontend's view of a user payload.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Comment is the frontend's view of a comment payload.
type Comment struct {
	ID        int64   `json:"id"`
	ArticleID int64   `json:"article_id"`
	Author    *Author `json:"author"`
	Content   string  `json:"content"`
	CreatedAt string  `json:"created_at"`
}

// listEnvelope mirrors the API's pagination envelope.
type listEnvelope[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

// RegisterInput is the registration payload the frontend forwards.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Client is the server-side API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListArticles fetches the article list. Reads are public, so no token
// is needed.
func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var envelope listEnvelope[Article]
	if err := c.do(ctx, http.MethodGet, "/api/v1/articles", "", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}

// GetArticle fetches one article by id.
func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	var article Article
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/articles/%d", id), "", nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// ListComments fetches the comments of an article, newest first. The
// comment list endpoint requires authentication.
func (c *Client) ListComments(ctx context.Context, token string, articleID int64) ([]Comment, error) {
	var envelope listEnvelope[Comment]
	path := fmt.Sprintf("/api/v1/comments?article=%d", articleID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}

// Register creates an account and returns the issued token pair.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.TokenPair, error) {
	var pair domain.TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/v1/users", "", input, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Login obtains a token pair for existing credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	var pair domain.TokenPair
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/token", "", payload, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// CreateComment posts a comment as the session's identity.
func (c *Client) CreateComment(ctx context.Context, token string, articleID int64, content string) error {
	payload := map[string]interface{}{"article_id": articleID, "content": content}
	return c.do(ctx, http.MethodPost, "/api/v1/comments", token, payload, nil)
}

// do performs one API call, decoding error responses into the same
// classified errors the API layer raises.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var wire struct {
		Error      string `json:"error"`
		Detail     string `json:"detail"`
		StatusCode int    `json:"status_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil || wire.Error == "" {
		return &domain.Error{
			Code:   "api_error",
			Status: resp.StatusCode,
			Detail: resp.Status,
		}
	}
	return &domain.Error{
		Code:   wire.Detail,
		Status: wire.StatusCode,
		Detail: wire.Error,
	}
}
