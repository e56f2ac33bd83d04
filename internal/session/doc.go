// Package session owns the authentication lifecycle of the client:
// restoring a persisted credential at startup, login and registration,
// validation against the server, and teardown.
//
// # State machine
//
//	Initializing    → Authenticated | Unauthenticated
//	Unauthenticated → Authenticating → Authenticated | Unauthenticated
//	Authenticated   → Unauthenticated
//
// At most one of login/register/initialize validation is in flight at a time
// for a given Manager.
//
// # Authenticated handles
//
// Components that require an authenticated session take a *Handle argument.
// Handles are only issued while the session is Authenticated (see
// Manager.Handle), so gated operations cannot be written without one.
package session
