package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const csrfHeader = "X-CSRF-Token"

// CSRF protects cookie-authenticated writes. Clients echo the token from the
// X-CSRF-Token response header set by CSRFToken.
func CSRF(key []byte, secure bool, origins []string) func(http.Handler) http.Handler {
	return csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.RequestHeader(csrfHeader),
		csrf.TrustedOrigins(origins),
	)
}

// CSRFToken exposes the request's CSRF token to the browser on every response.
func CSRFToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := csrf.Token(c.Request); token != "" {
			c.Header(csrfHeader, token)
		}
		c.Next()
	}
}
