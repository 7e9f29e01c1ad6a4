// File: services/listing/listing.go
package listing

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxRows = 100

// Query holds the table state sent by the browser.
type Query struct {
	Q     string `json:"q,omitempty"`
	Sort  string `json:"sort,omitempty"`
	Order string `json:"order,omitempty"`
	First int    `json:"first"`
	Rows  int    `json:"rows"`
}

// ParseQuery reads q, sort, order, first and rows from values.
func ParseQuery(values url.Values, defaultRows int) Query {
	q := Query{
		Q:     strings.TrimSpace(values.Get("q")),
		Sort:  values.Get("sort"),
		Order: strings.ToLower(values.Get("order")),
		Rows:  defaultRows,
	}
	if q.Order != "desc" {
		q.Order = "asc"
	}
	if n, err := strconv.Atoi(values.Get("first")); err == nil && n > 0 {
		q.First = n
	}
	if n, err := strconv.Atoi(values.Get("rows")); err == nil && n > 0 {
		q.Rows = n
	}
	if q.Rows > maxRows {
		q.Rows = maxRows
	}
	return q
}

// Fields exposes the sortable and filterable columns of T by key.
type Fields[T any] map[string]func(T) any

// Page is one window of a filtered, sorted list.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int   `json:"total"`
	Query Query `json:"query"`
}

// Apply filters items by q over every field, sorts by the requested field and
// slices out the requested window. items is not modified.
func Apply[T any](items []T, q Query, fields Fields[T]) Page[T] {
	out := make([]T, 0, len(items))
	needle := strings.ToLower(q.Q)
	for _, it := range items {
		if needle == "" || matches(it, needle, fields) {
			out = append(out, it)
		}
	}

	if get, ok := fields[q.Sort]; ok {
		desc := q.Order == "desc"
		sort.SliceStable(out, func(i, j int) bool {
			a, b := get(out[i]), get(out[j])
			if desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}

	total := len(out)
	first := q.First
	if first > total {
		first = total
	}
	end := total
	if q.Rows > 0 && first+q.Rows < total {
		end = first + q.Rows
	}
	return Page[T]{Items: out[first:end], Total: total, Query: q}
}

func matches[T any](it T, needle string, fields Fields[T]) bool {
	for _, get := range fields {
		if strings.Contains(strings.ToLower(text(get(it))), needle) {
			return true
		}
	}
	return false
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(t)
	}
}

func less(a, b any) bool {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return x < y
		}
	case int64:
		if y, ok := b.(int64); ok {
			return x < y
		}
	case float64:
		if y, ok := b.(float64); ok {
			return x < y
		}
	case bool:
		if y, ok := b.(bool); ok {
			return !x && y
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Before(y)
		}
	}
	return strings.ToLower(text(a)) < strings.ToLower(text(b))
}
