package session

// Status is the session lifecycle state.
//
// Transitions:
//
//	Initializing    → Authenticated | Unauthenticated
//	Unauthenticated → Authenticating → Authenticated | Unauthenticated
//	Authenticated   → Unauthenticated (logout or failed revalidation)
//
// No state re-enters Initializing.
type Status int

const (
	StatusInitializing Status = iota
	StatusUnauthenticated
	StatusAuthenticating
	StatusAuthenticated
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
