package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"stocktrack/internal/api"
	"stocktrack/internal/credstore"
	"stocktrack/internal/logging"
	"stocktrack/internal/models"
	"stocktrack/internal/notify"
)

var (
	// ErrAlreadyInitialized is returned when Initialize is called twice.
	ErrAlreadyInitialized = errors.New("session already initialized")

	// ErrAuthInFlight is returned when a login or registration is attempted
	// while another one has not completed yet.
	ErrAuthInFlight = errors.New("authentication already in flight")

	// ErrNotAuthenticated is returned when an authenticated session handle
	// is requested but the session is not in the Authenticated state.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Profile is the registration input.
type Profile struct {
	Name     string
	Email    string
	Password string
}

// Manager owns the authentication lifecycle: credential acquisition,
// persistence across restarts, validation against the server and teardown.
// It keeps the bearer token on the shared API client current whenever the
// credential changes.
//
// All state mutations happen atomically under the manager's mutex; a reader
// never observes the principal set without the status being Authenticated.
type Manager struct {
	api      api.Client
	creds    credstore.Store
	notifier notify.Notifier
	log      logging.Logger
	now      func() time.Time

	mu           sync.Mutex
	state        managerState
	initialized  bool
	authInFlight bool
}

type managerState struct {
	status    Status
	principal *models.Principal
	token     string
}

// NewManager constructs a Manager. The session starts in Initializing;
// Initialize must run exactly once before dependent components consume
// session state.
func NewManager(client api.Client, creds credstore.Store, notifier notify.Notifier, log logging.Logger) *Manager {
	return &Manager{
		api:      client,
		creds:    creds,
		notifier: notifier,
		log:      log.With("component", "session"),
		now:      time.Now,
		state:    managerState{status: StatusInitializing},
	}
}

// Initialize resolves the session from the persisted credential, if any.
// A persisted token is validated against the server: on success the session
// becomes Authenticated with the reported principal; on rejection the stale
// credential is cleared and the session becomes Unauthenticated. With no
// persisted token the session goes straight to Unauthenticated.
//
// Initialize blocks until the status is resolved and must be called exactly
// once per process lifetime.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.initialized = true
	m.mu.Unlock()

	token, err := m.creds.Load(ctx)
	if err != nil {
		m.setUnauthenticated()
		return fmt.Errorf("load persisted credential: %w", err)
	}
	if token == "" {
		m.setUnauthenticated()
		return nil
	}

	if tokenExpired(token, m.now()) {
		m.log.Info(ctx, "persisted token expired, discarding")
		m.discardCredential(ctx)
		m.setUnauthenticated()
		return nil
	}

	m.api.SetToken(token)
	principal, err := m.api.ValidateSession(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnauthorized) {
			m.log.Warn(ctx, "session validation failed", "error", err)
		}
		m.discardCredential(ctx)
		m.api.ClearToken()
		m.setUnauthenticated()
		return nil
	}

	m.mu.Lock()
	m.state = managerState{status: StatusAuthenticated, principal: principal, token: token}
	m.mu.Unlock()
	m.log.Info(ctx, "session restored", "principal", principal.Email)
	return nil
}

// Login authenticates with the server. On success the returned credential is
// persisted, installed on the API client and the session flips to
// Authenticated. On failure the session reverts to its pre-call status and
// the error is returned after notifying.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, api.AuthLogin, api.Credentials{Email: email, Password: password},
		"Login successful", "Login failed")
}

// Register creates an account; the server returns a credential directly, so
// a successful registration is an implicit login.
func (m *Manager) Register(ctx context.Context, profile Profile) error {
	creds := api.Credentials{Name: profile.Name, Email: profile.Email, Password: profile.Password}
	return m.authenticate(ctx, api.AuthRegister, creds,
		"Registration successful", "Registration failed")
}

func (m *Manager) authenticate(ctx context.Context, kind api.AuthKind, creds api.Credentials, successMsg, fallbackMsg string) error {
	m.mu.Lock()
	if m.authInFlight {
		m.mu.Unlock()
		return ErrAuthInFlight
	}
	m.authInFlight = true
	prev := m.state.status
	m.state.status = StatusAuthenticating
	m.mu.Unlock()

	res, err := m.api.Authenticate(ctx, kind, creds)
	if err != nil {
		m.mu.Lock()
		m.state.status = prev
		m.authInFlight = false
		m.mu.Unlock()
		m.notifier.Notify(notify.SeverityError, api.ErrorMessage(err, fallbackMsg))
		return fmt.Errorf("%s: %w", kind, err)
	}

	if err := m.creds.Save(ctx, res.Token); err != nil {
		// the in-memory session is still valid, it just won't survive a restart
		m.log.Warn(ctx, "failed to persist credential", "error", err)
	}
	m.api.SetToken(res.Token)

	principal := res.Principal
	m.mu.Lock()
	m.state = managerState{status: StatusAuthenticated, principal: &principal, token: res.Token}
	m.authInFlight = false
	m.mu.Unlock()

	m.notifier.Notify(notify.SeveritySuccess, successMsg)
	return nil
}

// Logout tears the session down locally: the persisted credential is
// cleared, the API client loses its token and the session becomes
// Unauthenticated. No server round-trip is involved; Logout always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	m.discardCredential(ctx)
	m.api.ClearToken()
	m.setUnauthenticated()
	m.notifier.Notify(notify.SeverityInfo, "Logged out successfully")
}

func (m *Manager) discardCredential(ctx context.Context) {
	if err := m.creds.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted credential", "error", err)
	}
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	m.state = managerState{status: StatusUnauthenticated}
	m.mu.Unlock()
}

// Status returns the current lifecycle state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.status
}

// Principal returns a copy of the authenticated identity, or nil. It is
// non-nil exactly when Status is Authenticated.
func (m *Manager) Principal() *models.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.principal == nil {
		return nil
	}
	p := *m.state.principal
	return &p
}

// Handle issues an authenticated session handle. It exists only while the
// session is Authenticated, which makes store operations statically
// unreachable without one.
func (m *Manager) Handle() (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.status != StatusAuthenticated {
		return nil, ErrNotAuthenticated
	}
	return &Handle{principal: *m.state.principal}, nil
}

// Handle proves an authenticated session at the type level. Entity
// operations take one as an argument instead of re-checking session status
// at every call site.
type Handle struct {
	principal models.Principal
}

// Principal is the identity the handle was issued for.
func (h *Handle) Principal() models.Principal {
	return h.principal
}
