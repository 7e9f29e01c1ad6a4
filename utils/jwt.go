package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt"
)

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenExpiry reads the exp claim of a bearer token without verifying its signature;
// the backend owns the signing key. ok is false for opaque tokens and tokens without exp.
func TokenExpiry(tokenString string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false
	}

	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	}
	return time.Time{}, false
}

// TokenExpired reports whether the token carries an exp claim that lies before now.
func TokenExpired(tokenString string, now time.Time) bool {
	exp, ok := TokenExpiry(tokenString)
	return ok && !now.Before(exp)
}
