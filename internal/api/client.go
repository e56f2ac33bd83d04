package api

import (
	"context"
	"net/url"

	"stocktrack/internal/models"
)

// AuthKind selects the authentication endpoint.
type AuthKind string

const (
	AuthLogin    AuthKind = "login"
	AuthRegister AuthKind = "register"
)

// Credentials are the inputs for login and registration. Name is only used
// when registering.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a successful authentication: the bearer token plus the
// authenticated identity.
type AuthResult struct {
	Token     string
	Principal models.Principal
}

// ProductList is a list response together with the server-computed
// aggregates.
type ProductList struct {
	Items         []models.Product
	Count         int
	TotalValue    float64
	LowStockCount int
}

// Client is the transport-agnostic contract the session manager and product
// store consume. Implementations must be safe for concurrent use; all
// operations honor context cancellation.
//
// The bearer token set via SetToken is carried on every subsequent request
// until ClearToken is called. The session manager owns keeping it current.
type Client interface {
	Authenticate(ctx context.Context, kind AuthKind, creds Credentials) (*AuthResult, error)
	ValidateSession(ctx context.Context) (*models.Principal, error)

	ListProducts(ctx context.Context, params url.Values) (*ProductList, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, draft models.ProductDraft) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	Ping(ctx context.Context) error

	SetToken(token string)
	ClearToken()
	Close() error
}
