package config

import (
	"fmt"

	"github.com/karsanda/barong/packages/storage"
)

// NotFoundError and ParseError come straight from the storage layer.
type (
	NotFoundError = storage.NotFoundError
	ParseError    = storage.ParseError
)

// MissingFieldError reports a required field that is absent or empty.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Path, e.Field)
}

// FieldTypeError reports a documented field holding the wrong JSON type.
type FieldTypeError struct {
	Path  string
	Field string
	Want  string
	Got   any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: field %q must be %s, got %s", e.Path, e.Field, e.Want, jsonType(e.Got))
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
