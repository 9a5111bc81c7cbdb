package gorm

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/mpetrov/gormadmin/core"
)

// MultiplePKField handles single and composite primary keys. Composite key
// values are tuples internally and comma-joined strings externally, e.g.
// internal ("1", "2") <-> external "1,2".
//
// Round-tripping scalar -> string -> scalar is lossless only when no
// component contains a comma.
type MultiplePKField struct {
	Name string
}

// Field returns the UI descriptor: a read-only, always-required string
// field labeled "ID".
func (f MultiplePKField) Field() core.Field {
	fld := core.StringField(f.Name)
	fld.Label = "ID"
	fld.Required = true
	fld.ReadOnly = true
	return fld
}

// ValueFor extracts the primary key value from a field value. Slices and
// arrays are normalized to an []any tuple; scalars pass through unchanged.
// Normalizing to a tuple is the canonical behavior for composite keys.
func (f MultiplePKField) ValueFor(value any) any {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		tuple := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			tuple[i] = rv.Index(i).Interface()
		}
		return tuple
	}
	return value
}

// Serialize converts a primary key value to its canonical string form.
func (f MultiplePKField) Serialize(value any) string {
	return serializeKeyValue(value)
}

// Parse converts the canonical string form back to a key value: "" parses
// to nil (no value), a comma-joined string to a tuple of parts, anything
// else passes through unchanged (the caller owns further type coercion).
// A composite string with an empty part fails with a field-level
// validation error.
func (f MultiplePKField) Parse(value string) (any, error) {
	if value == "" {
		return nil, nil
	}
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		tuple := make([]any, len(parts))
		for i, part := range parts {
			if part == "" {
				return nil, core.NewFormValidationError(
					f.Name, "all parts of the composite primary key must be provided",
				)
			}
			tuple[i] = part
		}
		return tuple, nil
	}
	return value, nil
}

// serializeKeyValue renders a primary key component or tuple as a string.
func serializeKeyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case uuid.UUID:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = serializeKeyValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}

	return fmt.Sprintf("%v", value)
}
