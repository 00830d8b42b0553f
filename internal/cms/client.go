// Package cms is the read-only client for the hosted CMS REST API. Every
// endpoint responds with a JSON envelope: lists carry {"meta": ..., "data":
// [...]}, single resources {"data": {...}}, and feeds {"data": "<xml>"}.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cmsblog/internal/config"
	"cmsblog/internal/telemetry"
)

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx CMS response other than 404.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("cms api status %d", e.StatusCode)
	}
	return fmt.Sprintf("cms api status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Config, metrics *telemetry.Metrics) *Client {
	transport := metrics.InstrumentCMSTransport(&tokenTransport{
		base:  http.DefaultTransport,
		token: cfg.APIToken,
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// tokenTransport injects the account token as the auth_token query
// parameter. An empty token is left out so the API reports the auth failure
// itself.
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	query := clone.URL.Query()
	query.Set("auth_token", t.token)
	clone.URL.RawQuery = query.Encode()
	return t.base.RoundTrip(clone)
}

func (c *Client) ListPosts(ctx context.Context, page int, pageSize int) (PostList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var list PostList
	if err := c.get(ctx, "/posts/", query, &list); err != nil {
		return PostList{}, err
	}
	return list, nil
}

func (c *Client) RetrievePost(ctx context.Context, slug string) (Post, error) {
	var envelope struct {
		Data Post `json:"data"`
	}
	if err := c.get(ctx, "/posts/"+url.PathEscape(slug)+"/", nil, &envelope); err != nil {
		return Post{}, err
	}
	return envelope.Data, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var envelope struct {
		Data []Category `json:"data"`
	}
	if err := c.get(ctx, "/categories/", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) RetrieveCategory(ctx context.Context, slug string, includeRecentPosts bool) (Category, error) {
	var query url.Values
	if includeRecentPosts {
		query = url.Values{}
		query.Set("include", "recent_posts")
	}

	var envelope struct {
		Data Category `json:"data"`
	}
	if err := c.get(ctx, "/categories/"+url.PathEscape(slug)+"/", query, &envelope); err != nil {
		return Category{}, err
	}
	return envelope.Data, nil
}

func (c *Client) ListPages(ctx context.Context, pageType string) ([]Page, error) {
	var envelope struct {
		Data []Page `json:"data"`
	}
	if err := c.get(ctx, "/pages/"+url.PathEscape(pageType)+"/", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) RetrievePage(ctx context.Context, pageType string, slug string) (Page, error) {
	var envelope struct {
		Data Page `json:"data"`
	}
	path := "/pages/" + url.PathEscape(pageType) + "/" + url.PathEscape(slug) + "/"
	if err := c.get(ctx, path, nil, &envelope); err != nil {
		return Page{}, err
	}
	return envelope.Data, nil
}

// RetrieveFeed returns the raw XML document for a feed kind ("rss", "atom"
// or "sitemap").
func (c *Client) RetrieveFeed(ctx context.Context, kind string) ([]byte, error) {
	var envelope struct {
		Data string `json:"data"`
	}
	if err := c.get(ctx, "/feeds/"+url.PathEscape(kind)+"/", nil, &envelope); err != nil {
		return nil, err
	}
	return []byte(envelope.Data), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create cms request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cms request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("cms get %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("cms get %s: %w", path, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     readErrorDetail(resp.Body),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode cms response %s: %w", path, err)
	}
	return nil
}

const maxErrorBodyBytes = 4 << 10

// readErrorDetail pulls the "detail" field from an API error body, falling
// back to a trimmed raw snippet.
func readErrorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil {
		return ""
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return strings.TrimSpace(payload.Detail)
	}

	return strings.TrimSpace(string(raw))
}
