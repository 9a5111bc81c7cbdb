package core

// FieldType identifies the UI widget and value semantics of a field.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeText     FieldType = "text"
	TypeBoolean  FieldType = "boolean"
	TypeDate     FieldType = "date"
	TypeTime     FieldType = "time"
	TypeDateTime FieldType = "datetime"
	TypeInteger  FieldType = "integer"
	TypeFloat    FieldType = "float"
	TypeDecimal  FieldType = "decimal"
	TypeJSON     FieldType = "json"
	TypeEmail    FieldType = "email"
	TypeURL      FieldType = "url"
	TypeHasOne   FieldType = "has_one"
	TypeHasMany  FieldType = "has_many"
	TypeFile     FieldType = "file"
)

// Field describes one form/display field and its constraints.
// Instances are created once during model conversion and treated as
// immutable afterwards.
type Field struct {
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	Type       FieldType `json:"type"`
	Required   bool      `json:"required"`
	ReadOnly   bool      `json:"read_only"`
	Searchable bool      `json:"searchable"`
	Sortable   bool      `json:"sortable"`
	HelpText   string    `json:"help_text,omitempty"`
	MaxLength  int       `json:"max_length,omitempty"`
	Min        *float64  `json:"min,omitempty"`
	Max        *float64  `json:"max,omitempty"`

	// Identity is the slug of the related view for relation fields.
	Identity string `json:"identity,omitempty"`
	// Multiple is true for many-valued relations and multi-file fields.
	Multiple bool `json:"multiple,omitempty"`
	// Storage names the file storage backend for file fields.
	Storage string `json:"storage,omitempty"`
}

// IsRelation reports whether the field references another view.
func (f Field) IsRelation() bool {
	return f.Type == TypeHasOne || f.Type == TypeHasMany
}

// IsFile reports whether the field carries uploaded file values.
func (f Field) IsFile() bool {
	return f.Type == TypeFile
}

func newField(name string, typ FieldType) Field {
	return Field{Name: name, Label: name, Type: typ, Sortable: true, Searchable: true}
}

// StringField creates a single-line string field.
func StringField(name string) Field { return newField(name, TypeString) }

// TextAreaField creates a long-text field.
func TextAreaField(name string) Field { return newField(name, TypeText) }

// BooleanField creates a boolean field.
func BooleanField(name string) Field { return newField(name, TypeBoolean) }

// DateField creates a calendar-date field.
func DateField(name string) Field { return newField(name, TypeDate) }

// TimeField creates a time-of-day field.
func TimeField(name string) Field { return newField(name, TypeTime) }

// DateTimeField creates a timestamp field.
func DateTimeField(name string) Field { return newField(name, TypeDateTime) }

// IntegerField creates an integer field.
func IntegerField(name string) Field { return newField(name, TypeInteger) }

// FloatField creates a floating-point field.
func FloatField(name string) Field { return newField(name, TypeFloat) }

// DecimalField creates a fixed-point numeric field.
func DecimalField(name string) Field { return newField(name, TypeDecimal) }

// JSONField creates a structured JSON field.
func JSONField(name string) Field {
	f := newField(name, TypeJSON)
	f.Searchable = false
	f.Sortable = false
	return f
}

// EmailField creates an email-typed string field.
func EmailField(name string) Field { return newField(name, TypeEmail) }

// URLField creates a URL-typed string field.
func URLField(name string) Field { return newField(name, TypeURL) }

// HasOne creates a to-one reference to the view addressed by identity.
func HasOne(name, identity string) Field {
	f := newField(name, TypeHasOne)
	f.Identity = identity
	f.Searchable = false
	f.Sortable = false
	return f
}

// HasMany creates a many-valued reference to the view addressed by identity.
func HasMany(name, identity string) Field {
	f := HasOne(name, identity)
	f.Type = TypeHasMany
	f.Multiple = true
	return f
}

// FileField creates a file upload field served from the named storage.
func FileField(name, storage string) Field {
	f := newField(name, TypeFile)
	f.Storage = storage
	f.Searchable = false
	f.Sortable = false
	return f
}

// FileValue is the wire form of a file field on create/edit: a new value
// (storage key) and a flag asking for the stored value to be cleared.
// An empty Value with ShouldDelete false leaves the attribute untouched.
type FileValue struct {
	Value        string `json:"value"`
	ShouldDelete bool   `json:"should_delete"`
}
