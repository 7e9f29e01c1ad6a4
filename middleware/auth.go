// middleware/auth.go
package middleware

import (
	"cursos/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionLoader decrypts the session cookie once per request. Corrupt or expired
// cookies are cleared here, so handlers only ever see a valid session or none.
func SessionLoader(provider *session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := provider.Get(c)
		if sess != nil {
			if l, ok := c.Get("logger"); ok {
				if logger, ok := l.(*zap.Logger); ok {
					c.Set("logger", logger.With(zap.Int64("userID", sess.User.ID)))
				}
			}
		}
		c.Next()
	}
}
