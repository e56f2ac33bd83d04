package models

// Principal is the authenticated user identity reported by the server.
type Principal struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
