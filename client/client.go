// Package client is the admin-side HTTP client for the pages API. It speaks
// the documented contract: JSON for reads and creates, multipart form data
// for content updates that carry staged image files.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/campuscms/internal/content"
)

// ErrSlugExists is the fast-fail hint raised when a create reuses a slug seen
// in the most recent page listing. The server enforces the real constraint.
var ErrSlugExists = errors.New("a page with this slug already exists")

// Page mirrors the server's page representation.
type Page struct {
	ID        uint             `json:"id"`
	Slug      string           `json:"slug"`
	Title     string           `json:"title"`
	Route     string           `json:"route"`
	Category  string           `json:"category"`
	Content   content.Document `json:"content"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CreatePageInput carries the fields for a new page; content starts empty.
type CreatePageInput struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Route    string `json:"route"`
	Category string `json:"category"`
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the pages API with bearer-token authorization.
type Client struct {
	baseURL string
	token   string
	http    httpDoer

	mu         sync.Mutex
	knownSlugs map[string]struct{}
}

// New returns a client for the API at baseURL (e.g. http://localhost:8080/api).
func New(baseURL, token string) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost:8080/api"
	}
	return &Client{
		baseURL: base,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	c.http = client
}

// List fetches all pages. The response may be a bare array or wrapped under
// "pages" or "data"; all three shapes are accepted.
func (c *Client) List(ctx context.Context) ([]Page, error) {
	body, err := c.do(ctx, http.MethodGet, "/pages", "", nil)
	if err != nil {
		return nil, err
	}

	pages, err := unwrapPages(body)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.knownSlugs = make(map[string]struct{}, len(pages))
	for _, page := range pages {
		c.knownSlugs[page.Slug] = struct{}{}
	}
	c.mu.Unlock()

	return pages, nil
}

// GetBySlug fetches a single page by slug.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	body, err := c.do(ctx, http.MethodGet, "/pages/slug/"+slug, "", nil)
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

// Get fetches a single page by id.
func (c *Client) Get(ctx context.Context, id uint) (*Page, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pages/%d", id), "", nil)
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

// Create makes a new page. A slug already present in the last fetched listing
// is rejected before any request is sent.
func (c *Client) Create(ctx context.Context, input CreatePageInput) (*Page, error) {
	c.mu.Lock()
	_, taken := c.knownSlugs[strings.TrimSpace(input.Slug)]
	c.mu.Unlock()
	if taken {
		return nil, ErrSlugExists
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, "/pages", "application/json", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

// Update submits a reconciled content payload together with any staged image
// files as one multipart request.
func (c *Client) Update(ctx context.Context, id uint, payload content.Document, staged map[string]content.StagedFile) (*Page, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("uploadType", "page"); err != nil {
		return nil, err
	}
	if err := writer.WriteField("data", string(raw)); err != nil {
		return nil, err
	}
	for key, file := range staged {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image_%s"; filename=%q`, key, file.Name))
		header.Set("Content-Type", http.DetectContentType(file.Data))
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/pages/%d", id), writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

// Delete removes a page by id.
func (c *Client) Delete(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/pages/%d", id), "", nil)
	return err
}

// Login exchanges admin credentials for a bearer token and stores it on the
// client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	raw, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Token == "" {
		return errors.New("login response did not contain a token")
	}
	c.token = result.Token
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiError(resp, respBody)
	}
	return respBody, nil
}

// apiError extracts the server-provided message when the body carries one,
// falling back to the HTTP status.
func apiError(resp *http.Response, body []byte) error {
	var wrapper struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && strings.TrimSpace(wrapper.Error) != "" {
		return errors.New(wrapper.Error)
	}
	return fmt.Errorf("request failed: %s", resp.Status)
}

func decodePage(body []byte) (*Page, error) {
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	return &page, nil
}

func unwrapPages(body []byte) ([]Page, error) {
	var bare []Page
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Pages []Page `json:"pages"`
		Data  []Page `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected page list shape: %w", err)
	}
	if wrapped.Pages != nil {
		return wrapped.Pages, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, errors.New("unexpected page list shape")
}
