package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cursos/models"
)

const contentPath = "/api/content"

// contentResult is the stored content record. contentJson may arrive as an
// object or as a JSON-encoded string.
type contentResult struct {
	ContentJSON json.RawMessage `json:"contentJson"`
	Content     json.RawMessage `json:"content"`
}

// GetContent returns the course's content document. A record without a usable
// document yields an empty one.
func (c *Client) GetContent(ctx context.Context, token string, courseID int64) (*models.ContentDocument, error) {
	var res contentResult
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/get/%d", contentPath, courseID), token, nil, &res); err != nil {
		return nil, err
	}
	raw := res.ContentJSON
	if len(raw) == 0 || string(raw) == "null" {
		raw = res.Content
	}
	doc := decodeDocument(raw)
	return &doc, nil
}

func decodeDocument(raw json.RawMessage) models.ContentDocument {
	var doc models.ContentDocument
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			raw = json.RawMessage(s)
		}
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			doc = models.ContentDocument{}
		}
	}
	doc.Normalize()
	return doc
}

// SaveContent replaces the stored document with doc.
func (c *Client) SaveContent(ctx context.Context, token string, courseID int64, doc models.ContentDocument) error {
	doc.Normalize()
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/saveContent/%d", contentPath, courseID), token, doc, nil)
}
