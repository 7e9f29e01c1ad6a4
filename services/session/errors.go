package session

import "errors"

var (
	// ErrNoSession means the request carried no session cookie.
	ErrNoSession = errors.New("session: no session cookie")
	// ErrCorrupt means the cookie could not be authenticated, decrypted or decoded.
	ErrCorrupt = errors.New("session: corrupt session cookie")
	// ErrExpired means the bearer token's exp claim has passed.
	ErrExpired = errors.New("session: bearer token expired")
)
