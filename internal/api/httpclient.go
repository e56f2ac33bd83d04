package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

// HTTPClient is the Client implementation for the inventory REST API.
// The bearer token is guarded by a mutex so the session manager can update
// it concurrently with in-flight store operations.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient constructs an HTTPClient for the given base URL
// (e.g. "http://localhost:5000"). A zero timeout disables the client-side
// request deadline; callers still control cancellation via context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token carried on all subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes req and decodes a 2xx response body into out (skipped when out
// is nil). Transport failures map to ErrUnavailable; non-2xx statuses map to
// an *Error carrying the server message.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewError(resp.StatusCode, decodeMessage(resp.Body))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeMessage extracts the {message} field from an error body, if any.
func decodeMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}

type authResponse struct {
	Token string           `json:"token"`
	User  models.Principal `json:"user"`
}

type principalResponse struct {
	Data models.Principal `json:"data"`
}

type listResponse struct {
	Data          []models.Product `json:"data"`
	Count         int              `json:"count"`
	TotalValue    float64          `json:"totalValue"`
	LowStockCount int              `json:"lowStockCount"`
}

type productResponse struct {
	Data models.Product `json:"data"`
}

// Authenticate posts the credentials to the login or registration endpoint
// and returns the issued token with the authenticated identity. The token is
// not installed on the client; that is the session manager's decision.
func (c *HTTPClient) Authenticate(ctx context.Context, kind AuthKind, creds Credentials) (*AuthResult, error) {
	body, contentType, err := encodeJSONValue(creds)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/"+string(kind), body, contentType)
	if err != nil {
		return nil, err
	}

	var resp authResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{Token: resp.Token, Principal: resp.User}, nil
}

// ValidateSession checks the currently installed bearer token against the
// server and returns the identity it belongs to.
func (c *HTTPClient) ValidateSession(ctx context.Context) (*models.Principal, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/me", nil, "")
	if err != nil {
		return nil, err
	}

	var resp principalResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListProducts fetches the product collection with the given query
// parameters and the server-computed aggregates.
func (c *HTTPClient) ListProducts(ctx context.Context, params url.Values) (*ProductList, error) {
	path := "/api/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &ProductList{
		Items:         resp.Data,
		Count:         resp.Count,
		TotalValue:    resp.TotalValue,
		LowStockCount: resp.LowStockCount,
	}, nil
}

// GetProduct fetches a single product by id.
func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}

	var resp productResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateProduct submits a new draft and returns the created entity with its
// server-assigned id.
func (c *HTTPClient) CreateProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/products", body, contentType)
	if err != nil {
		return nil, err
	}

	var resp productResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateProduct replaces the product with the given id and returns the
// server's version of it.
func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, draft models.ProductDraft) (*models.Product, error) {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), body, contentType)
	if err != nil {
		return nil, err
	}

	var resp productResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteProduct removes the product with the given id.
func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, "")
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Ping probes server reachability. Any HTTP response, including an error
// status, counts as reachable; only transport failures count as down.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodHead, "/", nil, "")
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func encodeJSONValue(v any) (io.Reader, string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return strings.NewReader(string(data)), "application/json", nil
}
