// File: utils/constants.go
package utils

// Key prefixes used in the shared Store.
const (
	DraftPrefix   = "draft:"
	CatalogPrefix = "catalog:"
)

// CatalogAllKey caches the raw findAll course list.
const CatalogAllKey = CatalogPrefix + "all"

// Toast display lifetimes in milliseconds.
const (
	ToastLife     = 3000
	ToastLifeLong = 6000
)

// PlaceholderImage is shown for courses without an image.
const PlaceholderImage = "https://via.placeholder.com/400x200"
