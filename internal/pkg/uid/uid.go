// Package uid provides generators for the two identifier shapes the
// application needs: sortable numeric IDs for database rows and opaque
// string IDs for request correlation.
package uid

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
