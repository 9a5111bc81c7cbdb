package core

import (
	"reflect"

	"github.com/iancoleman/strcase"
)

// SlugifyTypeName derives the URL-safe identity slug for a model type name,
// e.g. "UserProfile" -> "user-profile".
func SlugifyTypeName(name string) string {
	return strcase.ToKebab(name)
}

// SlugifyModel derives the identity slug from a model value or pointer.
func SlugifyModel(model any) string {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return SlugifyTypeName(t.Name())
}
