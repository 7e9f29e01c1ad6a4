package backend

import (
	"context"
	"net/http"

	"cursos/models"
)

func (c *Client) AuditLogs(ctx context.Context, token string) ([]models.AuditLog, error) {
	var out []models.AuditLog
	if err := c.doJSON(ctx, http.MethodGet, "/api/logs/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
