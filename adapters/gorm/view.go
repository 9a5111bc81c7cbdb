package gorm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/mpetrov/gormadmin/core"
)

// schemaCache is shared across views so every view of the same model works
// off one parsed schema.
var schemaCache = &sync.Map{}

// DBProvider hands out the database handle for one request. The middleware
// implements it with a lazily initialized shared connection; StaticDB wraps
// an existing handle for direct use.
type DBProvider interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// StaticDB is a DBProvider over a fixed database handle.
type StaticDB struct {
	db *gorm.DB
}

func NewStaticDB(db *gorm.DB) StaticDB {
	return StaticDB{db: db}
}

func (s StaticDB) DB(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, errors.New("no database handle configured")
	}
	return s.db.WithContext(ctx), nil
}

// Validator inspects the incoming payload and the populated instance before
// it is persisted. Returning a FormValidationError surfaces per-field
// messages to the client.
type Validator func(ctx context.Context, data map[string]any, obj any) error

// Hooks are optional callbacks around the write operations. Before hooks may
// veto the operation by returning an error.
type Hooks struct {
	BeforeCreate func(ctx context.Context, data map[string]any, obj any) error
	AfterCreate  func(ctx context.Context, obj any) error
	BeforeEdit   func(ctx context.Context, data map[string]any, obj any) error
	AfterEdit    func(ctx context.Context, obj any) error
	BeforeDelete func(ctx context.Context, obj any) error
	AfterDelete  func(ctx context.Context, obj any) error
}

type viewConfig struct {
	identity    string
	name        string
	label       string
	converter   *ModelConverter
	fieldNames  []string
	searchable  []string
	sortable    []string
	export      []string
	exclude     map[core.RequestAction][]string
	defaultSort []SortSpec
	actions     []core.Action
	rowActions  []core.RowAction
	validator   Validator
	hooks       Hooks
	logger      *zerolog.Logger
}

// ViewOption customizes a ModelView at construction time.
type ViewOption func(*viewConfig)

func WithIdentity(identity string) ViewOption {
	return func(c *viewConfig) { c.identity = identity }
}

func WithName(name string) ViewOption {
	return func(c *viewConfig) { c.name = name }
}

func WithLabel(label string) ViewOption {
	return func(c *viewConfig) { c.label = label }
}

func WithConverter(conv *ModelConverter) ViewOption {
	return func(c *viewConfig) { c.converter = conv }
}

// WithFields restricts the view to the named model fields, in the given
// order.
func WithFields(names ...string) ViewOption {
	return func(c *viewConfig) { c.fieldNames = names }
}

func WithSearchableFields(names ...string) ViewOption {
	return func(c *viewConfig) { c.searchable = names }
}

func WithSortableFields(names ...string) ViewOption {
	return func(c *viewConfig) { c.sortable = names }
}

func WithExportFields(names ...string) ViewOption {
	return func(c *viewConfig) { c.export = names }
}

func WithExcludeFrom(action core.RequestAction, names ...string) ViewOption {
	return func(c *viewConfig) { c.exclude[action] = append(c.exclude[action], names...) }
}

func WithDefaultSort(sort ...SortSpec) ViewOption {
	return func(c *viewConfig) { c.defaultSort = sort }
}

func WithActions(actions ...core.Action) ViewOption {
	return func(c *viewConfig) { c.actions = append(c.actions, actions...) }
}

func WithRowActions(actions ...core.RowAction) ViewOption {
	return func(c *viewConfig) { c.rowActions = append(c.rowActions, actions...) }
}

func WithValidator(v Validator) ViewOption {
	return func(c *viewConfig) { c.validator = v }
}

func WithHooks(h Hooks) ViewOption {
	return func(c *viewConfig) { c.hooks = h }
}

func WithLogger(l zerolog.Logger) ViewOption {
	return func(c *viewConfig) { c.logger = &l }
}

// ModelView exposes one model as an admin CRUD surface. It implements
// core.ModelView on top of a parsed model schema: field descriptors come
// from the converter, list queries from the predicate builders, and
// relations are written through associations.
//
// A view holds no per-request state; all operations take their database
// handle from the provider.
type ModelView struct {
	provider DBProvider
	sch      *schema.Schema
	log      zerolog.Logger

	identity string
	name     string
	label    string

	fields  []core.Field
	pkField MultiplePKField

	searchable  []string
	sortable    []string
	export      []string
	exclude     map[core.RequestAction][]string
	defaultSort []SortSpec

	actions    []core.Action
	rowActions []core.RowAction

	validator Validator
	hooks     Hooks
}

// NewModelView builds a view for model. The model's schema is parsed once
// and cached; repeated views over the same model share it.
func NewModelView(provider DBProvider, model any, opts ...ViewOption) (*ModelView, error) {
	cfg := &viewConfig{exclude: map[core.RequestAction][]string{}}
	for _, opt := range opts {
		opt(cfg)
	}

	sch, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parsing model schema: %w", err)
	}

	conv := cfg.converter
	if conv == nil {
		conv = NewModelConverter()
	}

	names := cfg.fieldNames
	if names == nil {
		names = defaultFieldNames(sch)
	}
	fields, err := conv.ConvertFieldsList(sch, names)
	if err != nil {
		return nil, err
	}

	v := &ModelView{
		provider:    provider,
		sch:         sch,
		log:         zerolog.Nop(),
		identity:    cfg.identity,
		name:        cfg.name,
		label:       cfg.label,
		fields:      fields,
		searchable:  cfg.searchable,
		sortable:    cfg.sortable,
		export:      cfg.export,
		exclude:     cfg.exclude,
		defaultSort: cfg.defaultSort,
		actions:     cfg.actions,
		rowActions:  cfg.rowActions,
		validator:   cfg.validator,
		hooks:       cfg.hooks,
	}
	if cfg.logger != nil {
		v.log = *cfg.logger
	}
	if v.identity == "" {
		v.identity = core.SlugifyTypeName(sch.Name)
	}
	if v.name == "" {
		v.name = sch.Name
	}
	if v.label == "" {
		v.label = sch.Name + "s"
	}

	if len(sch.PrimaryFields) == 0 {
		return nil, fmt.Errorf("model %s has no primary key", sch.Name)
	}
	pkName := sch.PrioritizedPrimaryField.Name
	if len(sch.PrimaryFields) > 1 {
		pkName = "pk"
	}
	v.pkField = MultiplePKField{Name: pkName}

	if v.searchable == nil {
		for _, f := range v.fields {
			if f.Searchable && !f.IsRelation() && !f.IsFile() {
				v.searchable = append(v.searchable, f.Name)
			}
		}
	}
	if v.sortable == nil {
		for _, f := range v.fields {
			if f.Sortable && !f.IsRelation() && !f.IsFile() {
				v.sortable = append(v.sortable, f.Name)
			}
		}
	}
	return v, nil
}

// defaultFieldNames lists the convertible fields of a schema in struct
// declaration order: every data column plus every relation.
func defaultFieldNames(sch *schema.Schema) []string {
	names := make([]string, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		if _, isRel := sch.Relationships.Relations[f.Name]; isRel || f.DataType != "" {
			names = append(names, f.Name)
		}
	}
	return names
}

func (v *ModelView) Identity() string { return v.identity }
func (v *ModelView) Name() string     { return v.name }
func (v *ModelView) Label() string    { return v.label }

func (v *ModelView) Fields() []core.Field { return v.fields }

func (v *ModelView) PKField() core.Field {
	return v.pkField.Field()
}

// FieldsForAction returns the visible fields for one request context. Export
// honors the export field list when set; create and edit drop read-only
// fields; every context honors its exclusion list.
func (v *ModelView) FieldsForAction(action core.RequestAction) []core.Field {
	excluded := map[string]bool{}
	for _, name := range v.exclude[action] {
		excluded[name] = true
	}

	var keep []core.Field
	for _, f := range v.fields {
		if excluded[f.Name] {
			continue
		}
		if (action == core.RequestCreate || action == core.RequestEdit) && f.ReadOnly {
			continue
		}
		if action == core.RequestExport && v.export != nil && !contains(v.export, f.Name) {
			continue
		}
		keep = append(keep, f)
	}
	return keep
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// PKValue extracts the primary key from a model instance. Composite keys
// come back as an []any tuple in primary field order.
func (v *ModelView) PKValue(obj any) any {
	rv := reflect.ValueOf(obj)
	if len(v.sch.PrimaryFields) == 1 {
		value, _ := v.sch.PrioritizedPrimaryField.ValueOf(context.Background(), rv)
		return value
	}
	tuple := make([]any, len(v.sch.PrimaryFields))
	for i, f := range v.sch.PrimaryFields {
		tuple[i], _ = f.ValueOf(context.Background(), rv)
	}
	return tuple
}

func (v *ModelView) SerializePK(value any) string {
	return v.pkField.Serialize(value)
}

func (v *ModelView) ParsePK(s string) (any, error) {
	return v.pkField.Parse(s)
}

// GetSearchQuery builds the predicate matching term against the view's
// searchable fields. The result is nil when the view has nothing to search.
func (v *ModelView) GetSearchQuery(term string) any {
	return BuildSearchQuery(term, v.columnsFor(v.searchable))
}

func (v *ModelView) FindAll(ctx context.Context, skip, limit int, where any, orderBy []string) ([]any, error) {
	db, err := v.session(ctx)
	if err != nil {
		return nil, err
	}

	tx := db.Model(v.newInstance())
	tx, err = v.applyWhere(tx, where)
	if err != nil {
		return nil, err
	}
	for _, order := range v.orderClauses(orderBy) {
		tx = tx.Order(order)
	}
	if skip > 0 {
		tx = tx.Offset(skip)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	tx = v.preloadRelations(tx)

	slicePtr := reflect.New(reflect.SliceOf(reflect.PtrTo(v.sch.ModelType)))
	if err := tx.Find(slicePtr.Interface()).Error; err != nil {
		return nil, err
	}

	results := slicePtr.Elem()
	objs := make([]any, results.Len())
	for i := 0; i < results.Len(); i++ {
		objs[i] = results.Index(i).Interface()
	}
	return objs, nil
}

func (v *ModelView) Count(ctx context.Context, where any) (int64, error) {
	db, err := v.session(ctx)
	if err != nil {
		return 0, err
	}

	tx := db.Model(v.newInstance())
	tx, err = v.applyWhere(tx, where)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByPK returns (nil, nil) when no record matches the key. Failures are
// logged and reported as absence.
func (v *ModelView) FindByPK(ctx context.Context, pk any) (any, error) {
	db, err := v.session(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := v.pkWhere(db.Model(v.newInstance()), pk)
	if err != nil {
		return nil, nil
	}
	tx = v.preloadRelations(tx)

	inst := v.newInstance()
	if err := tx.First(inst).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			v.log.Warn().Err(err).Str("view", v.identity).Msg("primary key lookup failed")
		}
		return nil, nil
	}
	return inst, nil
}

func (v *ModelView) FindByPKs(ctx context.Context, pks []any) ([]any, error) {
	if len(pks) == 0 {
		return nil, nil
	}

	if len(v.sch.PrimaryFields) > 1 {
		objs := make([]any, 0, len(pks))
		for _, pk := range pks {
			obj, err := v.FindByPK(ctx, pk)
			if err != nil {
				return nil, err
			}
			if obj != nil {
				objs = append(objs, obj)
			}
		}
		return objs, nil
	}

	db, err := v.session(ctx)
	if err != nil {
		return nil, err
	}
	tx := db.Model(v.newInstance()).Where(clause.IN{
		Column: clause.Column{Name: v.sch.PrioritizedPrimaryField.DBName},
		Values: pks,
	})
	tx = v.preloadRelations(tx)

	slicePtr := reflect.New(reflect.SliceOf(reflect.PtrTo(v.sch.ModelType)))
	if err := tx.Find(slicePtr.Interface()).Error; err != nil {
		return nil, err
	}
	results := slicePtr.Elem()
	objs := make([]any, results.Len())
	for i := 0; i < results.Len(); i++ {
		objs[i] = results.Index(i).Interface()
	}
	return objs, nil
}

func (v *ModelView) Create(ctx context.Context, data map[string]any) (any, error) {
	db, err := v.session(ctx)
	if err != nil {
		return nil, err
	}

	inst := v.newInstance()
	if err := v.applyData(ctx, inst, data, core.RequestCreate); err != nil {
		return nil, err
	}
	if v.validator != nil {
		if err := v.validator(ctx, data, inst); err != nil {
			return nil, err
		}
	}
	if v.hooks.BeforeCreate != nil {
		if err := v.hooks.BeforeCreate(ctx, data, inst); err != nil {
			return nil, err
		}
	}

	if err := db.Omit(clause.Associations).Create(inst).Error; err != nil {
		return nil, err
	}
	if err := v.applyRelations(ctx, db, inst, data, false); err != nil {
		return nil, err
	}

	if v.hooks.AfterCreate != nil {
		if err := v.hooks.AfterCreate(ctx, inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (v *ModelView) Edit(ctx context.Context, pk any, data map[string]any) (any, error) {
	db, err := v.session(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := v.pkWhere(db.Model(v.newInstance()), pk)
	if err != nil {
		return nil, err
	}
	inst := v.newInstance()
	if err := v.preloadRelations(tx).First(inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewFormValidationError(v.pkField.Name, "record not found")
		}
		return nil, err
	}

	if err := v.applyData(ctx, inst, data, core.RequestEdit); err != nil {
		return nil, err
	}
	if v.validator != nil {
		if err := v.validator(ctx, data, inst); err != nil {
			return nil, err
		}
	}
	if v.hooks.BeforeEdit != nil {
		if err := v.hooks.BeforeEdit(ctx, data, inst); err != nil {
			return nil, err
		}
	}

	if err := db.Omit(clause.Associations).Save(inst).Error; err != nil {
		return nil, err
	}
	if err := v.applyRelations(ctx, db, inst, data, true); err != nil {
		return nil, err
	}

	if v.hooks.AfterEdit != nil {
		if err := v.hooks.AfterEdit(ctx, inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Delete removes the records that exist among pks and returns how many were
// found. Keys with no matching record are skipped, not errors.
func (v *ModelView) Delete(ctx context.Context, pks []any) (int, error) {
	db, err := v.session(ctx)
	if err != nil {
		return 0, err
	}

	objs, err := v.FindByPKs(ctx, pks)
	if err != nil {
		return 0, err
	}
	for _, obj := range objs {
		if v.hooks.BeforeDelete != nil {
			if err := v.hooks.BeforeDelete(ctx, obj); err != nil {
				return 0, err
			}
		}
		if err := db.Delete(obj).Error; err != nil {
			return 0, err
		}
		if v.hooks.AfterDelete != nil {
			if err := v.hooks.AfterDelete(ctx, obj); err != nil {
				return 0, err
			}
		}
	}
	return len(objs), nil
}

// GetFieldValue reads one field off a model instance. Relation values that
// were not preloaded are resolved through the association on demand.
func (v *ModelView) GetFieldValue(ctx context.Context, field core.Field, obj any) (any, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	if field.IsRelation() {
		fv := rv.FieldByName(field.Name)
		if !fv.IsValid() {
			return nil, fmt.Errorf("unknown field %s on %s", field.Name, v.sch.Name)
		}
		loaded := fv.Kind() != reflect.Slice && fv.Kind() != reflect.Ptr || !fv.IsNil()
		if loaded {
			return fv.Interface(), nil
		}

		db, err := v.session(ctx)
		if err != nil {
			return nil, err
		}
		dest := reflect.New(fv.Type())
		if err := db.Model(obj).Association(field.Name).Find(dest.Interface()); err != nil {
			return nil, err
		}
		return dest.Elem().Interface(), nil
	}

	f, ok := v.sch.FieldsByName[field.Name]
	if !ok {
		if field.Name == v.pkField.Name {
			return v.PKValue(obj), nil
		}
		return nil, fmt.Errorf("unknown field %s on %s", field.Name, v.sch.Name)
	}
	value, _ := f.ValueOf(ctx, reflect.ValueOf(obj))
	return value, nil
}

func (v *ModelView) Actions() []core.Action       { return v.actions }
func (v *ModelView) RowActions() []core.RowAction { return v.rowActions }

// HandleAction dispatches a named batch action. Failures come back as
// ActionFailedError so the transport layer has one shape to map.
func (v *ModelView) HandleAction(ctx context.Context, name string, pks []any) (string, error) {
	for _, a := range v.actions {
		if a.ID != name {
			continue
		}
		msg, err := a.Handler(ctx, pks)
		if err != nil {
			return "", asActionFailed(err)
		}
		return msg, nil
	}
	return "", &core.ActionFailedError{Msg: fmt.Sprintf("unknown action %q", name)}
}

func (v *ModelView) HandleRowAction(ctx context.Context, name string, pk any) (string, error) {
	for _, a := range v.rowActions {
		if a.ID != name {
			continue
		}
		msg, err := a.Handler(ctx, pk)
		if err != nil {
			return "", asActionFailed(err)
		}
		return msg, nil
	}
	return "", &core.ActionFailedError{Msg: fmt.Sprintf("unknown row action %q", name)}
}

func asActionFailed(err error) error {
	var failed *core.ActionFailedError
	if errors.As(err, &failed) {
		return failed
	}
	return &core.ActionFailedError{Msg: err.Error()}
}

func (v *ModelView) session(ctx context.Context) (*gorm.DB, error) {
	db, err := v.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

func (v *ModelView) newInstance() any {
	return reflect.New(v.sch.ModelType).Interface()
}

func (v *ModelView) preloadRelations(tx *gorm.DB) *gorm.DB {
	for name := range v.sch.Relationships.Relations {
		tx = tx.Preload(name)
	}
	return tx
}

// applyWhere attaches the list filter: a string is a free-text search over
// the searchable fields, a mapping filters by field values.
func (v *ModelView) applyWhere(tx *gorm.DB, where any) (*gorm.DB, error) {
	switch w := where.(type) {
	case nil:
		return tx, nil
	case string:
		if expr := v.GetSearchQuery(w); expr != nil {
			tx = tx.Where(expr)
		}
		return tx, nil
	case map[string]any:
		resolved := make(map[string]any, len(w))
		for name, value := range w {
			resolved[v.columnFor(name)] = value
		}
		if expr := BuildFilterQuery(resolved); expr != nil {
			tx = tx.Where(expr)
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("unsupported filter argument of type %T", where)
	}
}

// orderClauses resolves field names and renders order clauses; the view's
// default sort applies when the request carries none.
func (v *ModelView) orderClauses(orderBy []string) []clause.OrderByColumn {
	if len(orderBy) == 0 {
		out := make([]clause.OrderByColumn, 0, len(v.defaultSort))
		for _, s := range v.defaultSort {
			out = append(out, clause.OrderByColumn{
				Column: clause.Column{Name: v.columnFor(s.Field)},
				Desc:   s.Desc,
			})
		}
		return out
	}

	resolved := make([]string, 0, len(orderBy))
	for _, entry := range orderBy {
		field, direction, found := cutSpace(entry)
		if !found {
			resolved = append(resolved, entry)
			continue
		}
		resolved = append(resolved, v.columnFor(field)+" "+direction)
	}
	return BuildOrderQuery(resolved)
}

func cutSpace(s string) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// columnFor maps an admin field name to its database column, passing
// through names that already are columns.
func (v *ModelView) columnFor(name string) string {
	if f, ok := v.sch.FieldsByName[name]; ok {
		return f.DBName
	}
	return name
}

func (v *ModelView) columnsFor(names []string) []string {
	cols := make([]string, 0, len(names))
	for _, name := range names {
		cols = append(cols, v.columnFor(name))
	}
	return cols
}

// applyData writes the payload's scalar and file values onto the instance.
// Relation values are deferred to applyRelations, unknown keys are ignored.
func (v *ModelView) applyData(ctx context.Context, inst any, data map[string]any, action core.RequestAction) error {
	rv := reflect.ValueOf(inst)
	for _, field := range v.FieldsForAction(action) {
		if field.IsRelation() {
			continue
		}
		value, ok := data[field.Name]
		if !ok {
			continue
		}

		f, known := v.sch.FieldsByName[field.Name]
		if !known {
			continue
		}

		if field.IsFile() {
			fv, ok := fileValueOf(value)
			if !ok {
				return core.NewFormValidationError(field.Name, "expected a file value")
			}
			switch {
			case fv.ShouldDelete:
				value = ""
			case fv.Value != "":
				value = fv.Value
			default:
				continue
			}
		}

		if err := f.Set(ctx, rv, value); err != nil {
			return core.NewFormValidationError(field.Name, err.Error())
		}
	}
	return nil
}

func fileValueOf(value any) (core.FileValue, bool) {
	switch fv := value.(type) {
	case core.FileValue:
		return fv, true
	case map[string]any:
		out := core.FileValue{}
		if s, ok := fv["value"].(string); ok {
			out.Value = s
		}
		if b, ok := fv["should_delete"].(bool); ok {
			out.ShouldDelete = b
		}
		return out, true
	}
	return core.FileValue{}, false
}

// applyRelations writes relation values from the payload through
// associations: to-one values replace, many-valued relations append on
// create and replace on edit. An explicit nil clears the association.
func (v *ModelView) applyRelations(ctx context.Context, db *gorm.DB, inst any, data map[string]any, replace bool) error {
	for _, field := range v.fields {
		if !field.IsRelation() {
			continue
		}
		value, ok := data[field.Name]
		if !ok {
			continue
		}

		rel, known := v.sch.Relationships.Relations[field.Name]
		if !known {
			continue
		}
		assoc := db.Model(inst).Association(field.Name)

		if value == nil {
			if err := assoc.Clear(); err != nil {
				return err
			}
			continue
		}

		related, err := v.loadRelated(ctx, db, rel, field, value)
		if err != nil {
			return err
		}

		if field.Multiple && !replace {
			err = assoc.Append(related...)
		} else {
			err = assoc.Replace(related...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// loadRelated fetches the related instances addressed by the payload's
// primary key value(s). A key with no matching record is a field-level
// validation error.
func (v *ModelView) loadRelated(ctx context.Context, db *gorm.DB, rel *schema.Relationship, field core.Field, value any) ([]any, error) {
	pks, ok := asSlice(value)
	if !ok {
		pks = []any{value}
	}
	if len(pks) == 0 {
		return nil, nil
	}

	relSchema := rel.FieldSchema
	if len(relSchema.PrimaryFields) != 1 {
		return nil, fmt.Errorf("relation %s: composite keyed relations are not assignable by key", field.Name)
	}

	slicePtr := reflect.New(reflect.SliceOf(reflect.PtrTo(relSchema.ModelType)))
	err := db.WithContext(ctx).
		Model(reflect.New(relSchema.ModelType).Interface()).
		Where(clause.IN{
			Column: clause.Column{Name: relSchema.PrioritizedPrimaryField.DBName},
			Values: pks,
		}).
		Find(slicePtr.Interface()).Error
	if err != nil {
		return nil, err
	}

	results := slicePtr.Elem()
	if results.Len() != len(pks) {
		return nil, core.NewFormValidationError(field.Name, "related record not found")
	}
	related := make([]any, results.Len())
	for i := 0; i < results.Len(); i++ {
		related[i] = results.Index(i).Interface()
	}
	return related, nil
}

// pkWhere attaches the primary key predicate for a single key value. A
// composite key must arrive as a tuple matching the primary fields.
func (v *ModelView) pkWhere(tx *gorm.DB, pk any) (*gorm.DB, error) {
	if len(v.sch.PrimaryFields) == 1 {
		return tx.Where(clause.Eq{
			Column: clause.Column{Name: v.sch.PrioritizedPrimaryField.DBName},
			Value:  pk,
		}), nil
	}

	tuple, ok := pk.([]any)
	if !ok || len(tuple) != len(v.sch.PrimaryFields) {
		return nil, core.NewFormValidationError(
			v.pkField.Name, "all parts of the composite primary key must be provided",
		)
	}
	exprs := make([]clause.Expression, len(tuple))
	for i, f := range v.sch.PrimaryFields {
		exprs[i] = clause.Eq{Column: clause.Column{Name: f.DBName}, Value: tuple[i]}
	}
	return tx.Where(clause.And(exprs...)), nil
}
