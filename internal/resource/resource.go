// Package resource declares the CRUD resources of the admin app. Each
// resource is a descriptor (table, columns, search columns, list template)
// consumed by one generic repository and one generic handler, instead of a
// near-identical handler body per table.
package resource

// Kind describes how a form value is decoded before persistence
type Kind int

const (
	Text Kind = iota
	LongText
	Integer
	Decimal
	Date
	Bool
)

// Field is one persisted column of a resource, fed directly from the form
// field of the same name
type Field struct {
	Column string
	Label  string
	Kind   Kind
}

// Resource describes one CRUD resource
type Resource struct {
	// Name is the URL path segment and resource key, e.g. "participants"
	Name string

	// Singular is used in page copy, e.g. "Participant"
	Singular string

	// Title is the list page heading
	Title string

	Table  string
	Fields []Field

	// SearchColumns are the text columns a ?search= filter matches against.
	// The generated OR group is parenthesized as a single WHERE term so a
	// search can never widen the result set past other predicates.
	SearchColumns []string

	// OrderBy is the ORDER BY fragment for the list view
	OrderBy string
}

// InputType maps a field kind to the HTML input type its form control uses
func (f Field) InputType() string {
	switch f.Kind {
	case Integer, Decimal:
		return "number"
	case Date:
		return "date"
	case Bool:
		return "checkbox"
	default:
		return "text"
	}
}

// IsBool reports whether the field is a checkbox
func (f Field) IsBool() bool {
	return f.Kind == Bool
}

// IsLongText reports whether the field renders as a textarea
func (f Field) IsLongText() bool {
	return f.Kind == LongText
}

// Columns returns the column names of all fields, in declaration order
func (r Resource) Columns() []string {
	cols := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		cols[i] = f.Column
	}
	return cols
}
