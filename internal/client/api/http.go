package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkowalski/quoteshelf/internal/common"
)

// HTTPClient talks JSON to the backend API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// do performs one request and decodes the response into out (when out is
// non-nil). Non-2xx statuses are mapped back to the shared sentinels.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", common.ErrStorage, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", common.ErrStorage, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", common.ErrStorage, err)
		}
	}

	return nil
}

// statusError folds an error response into the taxonomy, keeping the
// server's message where one is present.
func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrUnauthorized
	case http.StatusForbidden:
		sentinel = common.ErrForbidden
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	case http.StatusConflict:
		sentinel = common.ErrConflict
	case http.StatusTooManyRequests:
		sentinel = common.ErrRateLimited
	default:
		sentinel = common.ErrStorage
	}

	if body.Error != "" && body.Error != sentinel.Error() {
		return fmt.Errorf("%w: %s", sentinel, body.Error)
	}
	return sentinel
}

func (c *HTTPClient) Register(ctx context.Context, email, name, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/register", "", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, token string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, token string, id int64) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), token, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, token string, in PostInput) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", token, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, token string, id int64, in PostInput) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), token, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), token, nil, nil)
}

func (c *HTTPClient) ListFavorites(ctx context.Context, token string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/favorites", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token string, postID int64) error {
	return c.do(ctx, http.MethodPost, "/api/favorites", token, map[string]int64{"postId": postID}, nil)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token string, postID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", postID), token, nil, nil)
}

func (c *HTTPClient) Filters(ctx context.Context, token string) (*Filters, error) {
	var filters Filters
	if err := c.do(ctx, http.MethodGet, "/api/filters", token, nil, &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", "", nil, nil)
}
