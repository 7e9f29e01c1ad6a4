package middleware

import (
	"net/http"

	"cursos/services/inflight"
	"cursos/services/session"
	"cursos/utils"

	"github.com/gin-gonic/gin"
)

// InFlight rejects a repeated submission of the same write by the same session
// while the first is still running. Reads and anonymous requests pass through;
// the anonymous forms are rate limited per IP instead.
func InFlight(guard *inflight.Guard, provider *session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		sess := provider.Get(c)
		if sess == nil {
			c.Next()
			return
		}
		release, err := guard.Acquire(utils.HashToken(sess.Token) + " " + c.Request.Method + " " + c.Request.URL.Path)
		if err != nil {
			utils.JSONError(c, http.StatusConflict, "Request already in progress", "Wait for the previous submission to finish.")
			return
		}
		defer release()
		c.Next()
	}
}
