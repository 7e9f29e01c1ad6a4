package backend

import (
	"context"
	"fmt"
	"net/http"

	"cursos/models"
)

const categoriesPath = "/api/categories"

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var out []models.Category
	if err := c.doJSON(ctx, http.MethodGet, categoriesPath+"/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ActiveCategories(ctx context.Context, token string) ([]models.Category, error) {
	var out []models.Category
	if err := c.doJSON(ctx, http.MethodGet, categoriesPath+"/active/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, cat models.Category) error {
	return c.doJSON(ctx, http.MethodPost, categoriesPath+"/save", token, cat, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, token string, cat models.Category) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/update/%d", categoriesPath, cat.ID), token, cat, nil)
}

// ToggleCategory enables or disables the category.
func (c *Client) ToggleCategory(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", categoriesPath, id), token, nil, nil)
}
