package backend

import (
	"context"
	"fmt"
	"net/http"

	"cursos/models"
)

const usersPath = "/api/users"

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, usersPath+"/admin/all", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, usersPath+"/profile", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, update models.UserUpdate) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", usersPath, id), token, update, nil)
}

// ToggleUser flips statusActive; the backend models it as DELETE.
func (c *Client) ToggleUser(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", usersPath, id), token, nil, nil)
}

func (c *Client) ChangePassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return c.doJSON(ctx, http.MethodPut, usersPath+"/password", token, body, nil)
}

func (c *Client) RegisterTeacher(ctx context.Context, token string, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, usersPath+"/register/teacher", token, reg, nil)
}
