package forms

import (
	"net/url"
	"testing"

	"ellarises/internal/resource"
)

func TestDecodeField(t *testing.T) {
	tests := []struct {
		name  string
		field resource.Field
		raw   string
		want  any
	}{
		{
			name:  "text passes through",
			field: resource.Field{Column: "first_name", Kind: resource.Text},
			raw:   "Maria",
			want:  "Maria",
		},
		{
			name:  "text trims whitespace",
			field: resource.Field{Column: "first_name", Kind: resource.Text},
			raw:   "  Maria  ",
			want:  "Maria",
		},
		{
			name:  "empty text stays empty string",
			field: resource.Field{Column: "notes", Kind: resource.LongText},
			raw:   "",
			want:  "",
		},
		{
			name:  "checkbox on is true",
			field: resource.Field{Column: "photo_consent", Kind: resource.Bool},
			raw:   "on",
			want:  true,
		},
		{
			name:  "absent checkbox is false",
			field: resource.Field{Column: "photo_consent", Kind: resource.Bool},
			raw:   "",
			want:  false,
		},
		{
			name:  "checkbox any other value is false",
			field: resource.Field{Column: "photo_consent", Kind: resource.Bool},
			raw:   "true",
			want:  false,
		},
		{
			name:  "integer parses",
			field: resource.Field{Column: "score", Kind: resource.Integer},
			raw:   "42",
			want:  int64(42),
		},
		{
			name:  "empty integer becomes nil",
			field: resource.Field{Column: "score", Kind: resource.Integer},
			raw:   "",
			want:  nil,
		},
		{
			name:  "unparseable integer becomes nil",
			field: resource.Field{Column: "score", Kind: resource.Integer},
			raw:   "not-a-number",
			want:  nil,
		},
		{
			name:  "decimal passes through as string",
			field: resource.Field{Column: "amount", Kind: resource.Decimal},
			raw:   "25.50",
			want:  "25.50",
		},
		{
			name:  "empty decimal becomes nil",
			field: resource.Field{Column: "amount", Kind: resource.Decimal},
			raw:   "",
			want:  nil,
		},
		{
			name:  "date passes through as string",
			field: resource.Field{Column: "dob", Kind: resource.Date},
			raw:   "2012-05-14",
			want:  "2012-05-14",
		},
		{
			name:  "empty date becomes nil",
			field: resource.Field{Column: "dob", Kind: resource.Date},
			raw:   "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeField(tt.field, tt.raw)
			if got != tt.want {
				t.Errorf("DecodeField(%v, %q) = %v (%T), want %v (%T)", tt.field, tt.raw, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestChecked(t *testing.T) {
	values := url.Values{}
	values.Set("photo_consent", "on")
	values.Set("medical_consent", "yes")

	if !Checked(values, "photo_consent") {
		t.Error("Checked should be true for an 'on' value")
	}
	if Checked(values, "medical_consent") {
		t.Error("Checked should be false for any value other than 'on'")
	}
	if Checked(values, "liability_release") {
		t.Error("Checked should be false for an absent field")
	}
}

func TestDecodeAlignsWithFieldOrder(t *testing.T) {
	res := resource.Resource{
		Name:  "widgets",
		Table: "widgets",
		Fields: []resource.Field{
			{Column: "name", Kind: resource.Text},
			{Column: "count", Kind: resource.Integer},
			{Column: "active", Kind: resource.Bool},
		},
	}

	values := url.Values{}
	values.Set("name", "Trumpet")
	values.Set("count", "3")
	values.Set("active", "on")

	args := Decode(res, values)
	if len(args) != 3 {
		t.Fatalf("Decode returned %d args, want 3", len(args))
	}
	if args[0] != "Trumpet" || args[1] != int64(3) || args[2] != true {
		t.Errorf("Decode returned %v, want [Trumpet 3 true]", args)
	}
}

func TestDecodeMissingFieldsOverwrite(t *testing.T) {
	res := resource.Resource{
		Name:  "widgets",
		Table: "widgets",
		Fields: []resource.Field{
			{Column: "name", Kind: resource.Text},
			{Column: "count", Kind: resource.Integer},
			{Column: "active", Kind: resource.Bool},
		},
	}

	// An empty submission still yields one argument per field so an edit
	// overwrites the whole row.
	args := Decode(res, url.Values{})
	if len(args) != 3 {
		t.Fatalf("Decode returned %d args, want 3", len(args))
	}
	if args[0] != "" || args[1] != nil || args[2] != false {
		t.Errorf("Decode of empty form returned %v, want [\"\" <nil> false]", args)
	}
}
