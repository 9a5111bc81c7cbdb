package core

import "context"

// RequestAction identifies the admin context a request is serving. It is
// threaded explicitly through every call that needs it; views hold no
// ambient per-request state.
type RequestAction string

const (
	RequestList   RequestAction = "list"
	RequestDetail RequestAction = "detail"
	RequestCreate RequestAction = "create"
	RequestEdit   RequestAction = "edit"
	RequestDelete RequestAction = "delete"
	RequestExport RequestAction = "export"
)

// ModelView is the CRUD contract every admin view implements for one entity
// type. All operations are stateless across requests; reads are idempotent.
//
// The where argument of FindAll and Count is either a map[string]any
// (field -> value equality/membership filter) or a string (free-text search
// term over the view's searchable fields).
type ModelView interface {
	// Identity returns the URL-safe slug addressing this view.
	Identity() string
	// Name returns the singular display name.
	Name() string
	// Label returns the plural display name.
	Label() string

	Fields() []Field
	PKField() Field
	// FieldsForAction returns the visible fields for one request context,
	// honoring the per-context exclusion lists.
	FieldsForAction(action RequestAction) []Field

	// PKValue extracts the primary key value from a model instance.
	// Composite keys come back as an []any tuple.
	PKValue(obj any) any
	// SerializePK converts a primary key value (scalar or tuple) to its
	// canonical string form.
	SerializePK(v any) string
	// ParsePK converts the canonical string form back to a key value.
	// It fails with a FormValidationError when a composite part is empty.
	ParsePK(s string) (any, error)

	FindAll(ctx context.Context, skip, limit int, where any, orderBy []string) ([]any, error)
	Count(ctx context.Context, where any) (int64, error)
	// FindByPK returns (nil, nil) when no record matches; lookup failures
	// are represented as absence, never propagated.
	FindByPK(ctx context.Context, pk any) (any, error)
	FindByPKs(ctx context.Context, pks []any) ([]any, error)

	Create(ctx context.Context, data map[string]any) (any, error)
	Edit(ctx context.Context, pk any, data map[string]any) (any, error)
	// Delete removes the records that exist among pks and returns the count.
	Delete(ctx context.Context, pks []any) (int, error)

	GetFieldValue(ctx context.Context, field Field, obj any) (any, error)
	// GetSearchQuery builds an adapter-specific predicate matching the term
	// against the view's searchable fields.
	GetSearchQuery(term string) any

	Actions() []Action
	RowActions() []RowAction
	HandleAction(ctx context.Context, name string, pks []any) (string, error)
	HandleRowAction(ctx context.Context, name string, pk any) (string, error)
}
