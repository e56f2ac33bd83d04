package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"stocktrack/internal/api"
	"stocktrack/internal/common"
	"stocktrack/internal/logging"
	"stocktrack/internal/models"
	"stocktrack/internal/notify"
	"stocktrack/internal/query"
	"stocktrack/internal/session"
)

// Store owns the in-memory product collection, the "current detail" slot and
// the server-computed statistics. It is the single source of truth for
// consumers; every mutation is confirm-then-apply — local state changes only
// after the server acknowledged the operation, so a failed call never leaves
// a partial mutation behind.
type Store struct {
	api      api.Client
	notifier notify.Notifier
	log      logging.Logger
	validate *validator.Validate

	mu       sync.Mutex
	products []models.Product
	detail   *models.Product
	stats    models.Stats
	fetchGen uint64
}

// New constructs an empty Store.
func New(client api.Client, notifier notify.Notifier, log logging.Logger) *Store {
	return &Store{
		api:      client,
		notifier: notifier,
		log:      log.With("component", "store"),
		validate: validator.New(),
	}
}

// FetchAll replaces the whole collection with the server's result set for
// the given filter and adopts the server-reported aggregates. On failure the
// previous collection and statistics stay untouched; there is no automatic
// retry.
//
// Rapid successive fetches are guarded by a generation counter: a response
// belonging to a superseded fetch is discarded rather than overwriting the
// fresher state.
func (s *Store) FetchAll(ctx context.Context, h *session.Handle, filter query.Filter) error {
	if h == nil {
		return session.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()

	list, err := s.api.ListProducts(ctx, filter.Values())
	if err != nil {
		s.notifier.Notify(notify.SeverityError, "Failed to fetch products")
		return fmt.Errorf("fetch products: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		s.log.Debug(ctx, "discarding stale fetch result", "generation", gen, "current", s.fetchGen)
		return nil
	}
	s.products = append([]models.Product(nil), list.Items...)
	s.stats = models.Stats{
		Count:         list.Count,
		TotalValue:    list.TotalValue,
		LowStockCount: list.LowStockCount,
	}
	return nil
}

// FetchOne loads a single product into the detail slot for edit-form
// consumption. The collection is not touched; on failure the slot keeps its
// prior value.
func (s *Store) FetchOne(ctx context.Context, h *session.Handle, id string) (*models.Product, error) {
	if h == nil {
		return nil, session.ErrNotAuthenticated
	}

	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.notifier.Notify(notify.SeverityError, "Failed to fetch product details")
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}

	s.mu.Lock()
	s.detail = p
	s.mu.Unlock()
	detail := *p
	return &detail, nil
}

// Create validates the draft locally, submits it and prepends the
// server-returned entity to the collection. An invalid draft never reaches
// the network. On failure the collection is unchanged and the error is
// returned to the caller after notifying, so edit flows can stay open.
func (s *Store) Create(ctx context.Context, h *session.Handle, draft models.ProductDraft) (*models.Product, error) {
	if h == nil {
		return nil, session.ErrNotAuthenticated
	}
	if err := s.validateDraft(draft); err != nil {
		s.notifier.Notify(notify.SeverityError, err.Error())
		return nil, err
	}

	created, err := s.api.CreateProduct(ctx, draft)
	if err != nil {
		s.notifier.Notify(notify.SeverityError, api.ErrorMessage(err, "Failed to add product"))
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.mu.Lock()
	s.products = append([]models.Product{*created}, s.products...)
	s.mu.Unlock()

	s.notifier.Notify(notify.SeveritySuccess, "Product added successfully")
	result := *created
	return &result, nil
}

// Update validates and submits a full replacement for the product with the
// given id, then swaps the server-returned entity into place. A missing id
// after a confirmed update is an insert-skip no-op, not an error.
func (s *Store) Update(ctx context.Context, h *session.Handle, id string, draft models.ProductDraft) (*models.Product, error) {
	if h == nil {
		return nil, session.ErrNotAuthenticated
	}
	if err := s.validateDraft(draft); err != nil {
		s.notifier.Notify(notify.SeverityError, err.Error())
		return nil, err
	}

	updated, err := s.api.UpdateProduct(ctx, id, draft)
	if err != nil {
		s.notifier.Notify(notify.SeverityError, api.ErrorMessage(err, "Failed to update product"))
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Notify(notify.SeveritySuccess, "Product updated successfully")
	result := *updated
	return &result, nil
}

// Delete removes the product server-side first and drops it from the local
// collection only once the server confirmed.
func (s *Store) Delete(ctx context.Context, h *session.Handle, id string) error {
	if h == nil {
		return session.ErrNotAuthenticated
	}

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.notifier.Notify(notify.SeverityError, api.ErrorMessage(err, "Failed to delete product"))
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()

	s.notifier.Notify(notify.SeveritySuccess, "Product deleted successfully")
	return nil
}

// ClearDetail resets the detail slot, used when leaving an edit flow.
func (s *Store) ClearDetail() {
	s.mu.Lock()
	s.detail = nil
	s.mu.Unlock()
}

// Reset drops all local state. Called on logout so the next session does not
// observe the previous user's data.
func (s *Store) Reset() {
	s.mu.Lock()
	s.products = nil
	s.detail = nil
	s.stats = models.Stats{}
	s.mu.Unlock()
}

// Products returns a copy of the current collection.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...)
}

// Stats returns the server-reported aggregates from the last successful
// fetch.
func (s *Store) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Detail returns a copy of the current detail slot, or nil.
func (s *Store) Detail() *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	d := *s.detail
	return &d
}

// validateDraft enforces the local draft policy: name and category required,
// price and quantity non-negative. Violations surface as common.ErrValidation
// and never reach the network layer.
func (s *Store) validateDraft(draft models.ProductDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			reasons = append(reasons, fmt.Sprintf("%s must not be negative", fe.Field()))
		default:
			reasons = append(reasons, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(reasons, ", "))
}
