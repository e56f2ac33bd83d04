// Package api contains the client-side building blocks for talking to the
// inventory backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Authenticate/ValidateSession for the session lifecycle and
//     List/Get/Create/Update/Delete for products.
//  2. A concrete REST implementation (see HTTPClient) that injects the
//     current bearer token into every request, encodes drafts as JSON or
//     multipart depending on the presence of an image attachment, and maps
//     HTTP statuses to sentinel errors.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matchable with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrServer. The concrete
// *Error additionally carries the server-supplied message; use ErrorMessage
// to surface it with a fallback.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package api
