package types

// ------------------------------
// Request Types
// ------------------------------

// TokenRequest is the body of POST /token. The backend accepts an empty object.
type TokenRequest struct{}
