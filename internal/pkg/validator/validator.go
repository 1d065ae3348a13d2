// Package validator wraps struct validation behind a small interface so the
// rest of the application does not depend on a specific validation library.
package validator

// Validator validates annotated structs.
type Validator interface {
	// Validate returns nil when data passes all of its declared rules.
	Validate(data any) error
}
