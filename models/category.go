// models/category.go
package models

// Category groups courses. Disabling is a soft delete.
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// Ref is an {id, name} pair embedded in other records.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
