package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cursos/models"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordReset is the body of a reset confirmation.
type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Login returns the session document ({token, user}) unwrapped.
func (c *Client) Login(ctx context.Context, creds Credentials) (*models.Session, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return nil, err
	}
	data, err := c.send(ctx, call{method: http.MethodPost, path: c.authPath + "/login", body: body})
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &s, nil
}

// Register creates a student account.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, c.authPath+"/register", "", reg, nil)
}

// RequestPasswordReset asks the backend to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   c.authPath + "/password/request-reset",
		query:  url.Values{"email": {email}},
	}, nil)
}

// ResetPassword confirms a reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, reset PasswordReset) error {
	return c.doJSON(ctx, http.MethodPost, c.authPath+"/password/reset", "", reset, nil)
}
