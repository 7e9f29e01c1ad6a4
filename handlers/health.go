package handlers

import (
	"net/http"

	"cursos/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last probe of the backend and the store.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Backend {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status})
}
