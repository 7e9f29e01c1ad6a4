package admin

import (
	"context"
	"fmt"
	"strings"

	"cursos/models"
	"cursos/services/listing"
	"cursos/services/validation"
)

var categoryFields = listing.Fields[models.Category]{
	"id":          func(c models.Category) any { return c.ID },
	"name":        func(c models.Category) any { return c.Name },
	"description": func(c models.Category) any { return c.Description },
	"enabled":     func(c models.Category) any { return c.Enabled },
}

func (s *DefaultAdminService) Categories(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[models.Category], error) {
	cats, err := s.API.ListCategories(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	page := listing.Apply(cats, q, categoryFields)
	return &page, nil
}

// SaveCategory creates a category, or updates it when id is non-zero.
// New categories start enabled.
func (s *DefaultAdminService) SaveCategory(ctx context.Context, sess *models.Session, id int64, form CategoryForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	if err := validation.Struct(form); err != nil {
		return err
	}
	cat := models.Category{ID: id, Name: form.Name, Description: form.Description, Enabled: true}
	if form.Enabled != nil {
		cat.Enabled = *form.Enabled
	}

	var err error
	if id == 0 {
		err = s.API.CreateCategory(ctx, sess.Token, cat)
	} else {
		err = s.API.UpdateCategory(ctx, sess.Token, cat)
	}
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func (s *DefaultAdminService) ToggleCategory(ctx context.Context, sess *models.Session, id int64) error {
	if err := s.API.ToggleCategory(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("toggle category %d: %w", id, err)
	}
	return nil
}
