package api

import (
	"context"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/mpetrov/gormadmin/core"
)

// serializeObject renders one model instance as the JSON payload for the
// given request context: every visible field plus the serialized primary
// key under "_pk". Relation values collapse to the related view's
// serialized key(s).
func serializeObject(ctx context.Context, admin *core.Admin, log zerolog.Logger, view core.ModelView, obj any, action core.RequestAction) (map[string]any, error) {
	out := map[string]any{
		"_pk": view.SerializePK(view.PKValue(obj)),
	}
	for _, field := range view.FieldsForAction(action) {
		value, err := view.GetFieldValue(ctx, field, obj)
		if err != nil {
			return nil, err
		}
		if field.IsRelation() {
			value = serializeRelation(admin, log, field, value)
		}
		out[field.Name] = value
	}
	return out, nil
}

// serializeRelation collapses a loaded relation value to the related view's
// serialized primary key, or a list of them for many-valued relations. A
// relation pointing at an identity with no registered view is dropped with a
// warning.
func serializeRelation(admin *core.Admin, log zerolog.Logger, field core.Field, value any) any {
	related, ok := admin.View(field.Identity)
	if !ok {
		log.Warn().
			Str("field", field.Name).
			Str("identity", field.Identity).
			Msg("relation refers to an unregistered view, dropping its value")
		return nil
	}
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		keys := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			keys = append(keys, related.SerializePK(related.PKValue(rv.Index(i).Interface())))
		}
		return keys
	}
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}
	return related.SerializePK(related.PKValue(value))
}
