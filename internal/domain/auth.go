package domain

import "time"

// Principal is the authenticated administrator behind a request.
type Principal struct {
	AdminID string
	IsAdmin bool
}

// IssuedToken is a signed token together with its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
