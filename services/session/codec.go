// File: services/session/codec.go
package session

import (
	"crypto/sha256"
	"fmt"
	"io"

	"cursos/models"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyInfo  = "cursos session hash key"
	blockKeyInfo = "cursos session block key"
)

// Codec encrypts and authenticates the session record stored in the cookie.
type Codec struct {
	name string
	sc   *securecookie.SecureCookie
}

// NewCodec derives an HMAC key and an AES-256 key from secret and builds the codec.
func NewCodec(secret, cookieName string, maxAge int) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	hashKey, err := DeriveKey(secret, hashKeyInfo, 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := DeriveKey(secret, blockKeyInfo, 32)
	if err != nil {
		return nil, err
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(maxAge)
	return &Codec{name: cookieName, sc: sc}, nil
}

// DeriveKey expands secret into a size-byte key bound to info.
func DeriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return key, nil
}

// Encode returns the cookie value for s.
func (c *Codec) Encode(s models.Session) (string, error) {
	value, err := c.sc.Encode(c.name, s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	return value, nil
}

// Decode reverses Encode. Any failure is reported as ErrCorrupt.
func (c *Codec) Decode(value string) (*models.Session, error) {
	var s models.Session
	if err := c.sc.Decode(c.name, value, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &s, nil
}
