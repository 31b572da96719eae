// Package forms converts submitted form values into SQL arguments. It is
// the only place checkbox coercion and empty-field handling live, keeping
// persistence code free of form quirks.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"ellarises/internal/resource"
)

// Checked reports whether a checkbox field was ticked. HTML checkboxes
// submit the literal string "on" when checked and are absent otherwise.
func Checked(values url.Values, field string) bool {
	return values.Get(field) == "on"
}

// DecodeField converts one form value into a SQL argument according to the
// field kind. Missing or unparseable values become NULL (nil) for typed
// columns and the empty string for text columns; nothing is rejected.
func DecodeField(f resource.Field, raw string) any {
	raw = strings.TrimSpace(raw)

	switch f.Kind {
	case resource.Bool:
		return raw == "on"
	case resource.Integer:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		return n
	case resource.Decimal, resource.Date:
		if raw == "" {
			return nil
		}
		return raw
	default:
		return raw
	}
}

// Decode converts a submitted form into SQL arguments aligned with the
// resource's field order. Every field is decoded whether or not it was
// submitted, which gives edits their full-row overwrite semantics.
func Decode(res resource.Resource, values url.Values) []any {
	args := make([]any, len(res.Fields))
	for i, f := range res.Fields {
		args[i] = DecodeField(f, values.Get(f.Column))
	}
	return args
}
