package gorm

import (
	"strconv"
	"strings"

	"gorm.io/gorm/schema"

	"github.com/mpetrov/gormadmin/core"
)

// ConverterFunc converts one model field into its UI descriptor, starting
// from a base descriptor with the shared attributes already applied.
type ConverterFunc func(f *schema.Field, base core.Field) (core.Field, error)

type converterEntry struct {
	tags []string
	fn   ConverterFunc
}

// ModelConverter maps model columns to UI field descriptors through an
// ordered (type-tag, handler) table. For every field a list of candidate
// tags is derived from most to least specific (admin tag hint, then the
// fully-qualified Go type, then the column data type, then the reflect
// kind) and the first registered handler for any tag wins.
type ModelConverter struct {
	entries []converterEntry
}

// NewModelConverter creates a converter with the default type table.
func NewModelConverter() *ModelConverter {
	c := &ModelConverter{}

	c.add(convEmail, "admin:email")
	c.add(convURL, "admin:url")
	c.add(convFile, "admin:file")
	c.add(convText, "admin:text", "text", "longtext", "mediumtext", "clob")
	c.add(convDate, "admin:date", "date")
	c.add(convTime, "admin:time")
	c.add(convDateTime, "time.Time", "gorm.DeletedAt", "sql.NullTime", "datetime", "timestamp", "time")
	c.add(convString, "uuid.UUID", "string", "varchar", "char")
	c.add(convBoolean, "bool", "boolean")
	c.add(convDecimal, "admin:decimal", "decimal", "numeric")
	c.add(convInteger, "int", "uint", "integer", "smallint", "bigint",
		"int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64")
	c.add(convFloat, "float", "double", "real", "float32", "float64")
	c.add(convJSON, "admin:json", "datatypes.JSON", "json", "jsonb")

	return c
}

func (c *ModelConverter) add(fn ConverterFunc, tags ...string) {
	c.entries = append(c.entries, converterEntry{tags: tags, fn: fn})
}

// Register adds a custom handler checked ahead of the default table.
func (c *ModelConverter) Register(fn ConverterFunc, tags ...string) {
	c.entries = append([]converterEntry{{tags: tags, fn: fn}}, c.entries...)
}

// Convert maps one non-relational model field to its UI descriptor.
func (c *ModelConverter) Convert(f *schema.Field) (core.Field, error) {
	base := fieldCommon(f)
	for _, tag := range typeTags(f) {
		for _, entry := range c.entries {
			for _, t := range entry.tags {
				if t == tag {
					converted, err := entry.fn(f, base)
					if err != nil {
						return core.Field{}, err
					}
					return applyAdminOptions(f, converted), nil
				}
			}
		}
	}
	return core.Field{}, &core.NotSupportedColumnError{Field: f.Name}
}

// ConvertFieldsList converts the named fields of a parsed model schema.
// Relational fields are handled ahead of the type table: to-one relations
// become has-one references, every other cardinality a has-many reference,
// addressed by the slug of the related model's type name.
func (c *ModelConverter) ConvertFieldsList(sch *schema.Schema, names []string) ([]core.Field, error) {
	converted := make([]core.Field, 0, len(names))
	for _, name := range names {
		if rel, ok := sch.Relationships.Relations[name]; ok {
			identity := core.SlugifyTypeName(rel.FieldSchema.Name)
			if rel.Type == schema.BelongsTo || rel.Type == schema.HasOne {
				converted = append(converted, core.HasOne(name, identity))
			} else {
				converted = append(converted, core.HasMany(name, identity))
			}
			continue
		}

		f, ok := sch.FieldsByName[name]
		if !ok {
			return nil, &core.NotSupportedColumnError{Field: name}
		}
		field, err := c.Convert(f)
		if err != nil {
			return nil, err
		}
		converted = append(converted, field)
	}
	return converted, nil
}

// fieldCommon builds the descriptor attributes shared by every field type:
// required = not nullable and not generated, help text from the column
// comment.
func fieldCommon(f *schema.Field) core.Field {
	generated := f.AutoIncrement || f.HasDefaultValue ||
		f.AutoCreateTime != 0 || f.AutoUpdateTime != 0

	return core.Field{
		Name:       f.Name,
		Label:      f.Name,
		Required:   f.NotNull && !generated,
		ReadOnly:   f.AutoIncrement || f.AutoCreateTime != 0 || f.AutoUpdateTime != 0,
		Searchable: true,
		Sortable:   true,
		HelpText:   f.Comment,
	}
}

// typeTags derives the candidate tag list for a field, most specific
// first. This ordered list stands in for walking a type's ancestry: the
// admin tag hint, then the qualified type name for named types (time.Time,
// uuid.UUID), then the column data type, then the reflect kind. Primitive
// type names carry no more information than the kind, so they rank below
// the data type.
func typeTags(f *schema.Field) []string {
	var tags []string

	if hint := adminTagHint(f); hint != "" {
		tags = append(tags, "admin:"+hint)
	}

	if typeName := f.IndirectFieldType.String(); strings.ContainsRune(typeName, '.') {
		tags = append(tags, typeName)
	}

	dataType := strings.ToLower(string(f.DataType))
	if idx := strings.IndexByte(dataType, '('); idx > 0 {
		dataType = dataType[:idx]
	}
	if dataType != "" {
		tags = append(tags, dataType)
	}

	return append(tags, f.IndirectFieldType.Kind().String())
}

// adminTag returns the raw `admin` struct tag value.
func adminTag(f *schema.Field) string {
	return f.Tag.Get("admin")
}

// adminTagHint returns the leading type hint of the admin tag, e.g. "email"
// for `admin:"email"` and "file" for `admin:"file:uploads"`.
func adminTagHint(f *schema.Field) string {
	tag := adminTag(f)
	if tag == "" {
		return ""
	}
	head := strings.SplitN(tag, ",", 2)[0]
	return strings.SplitN(head, ":", 2)[0]
}

// adminTagArg returns the argument of the admin tag type hint, e.g.
// "uploads" for `admin:"file:uploads"`.
func adminTagArg(f *schema.Field) string {
	head := strings.SplitN(adminTag(f), ",", 2)[0]
	if idx := strings.IndexByte(head, ':'); idx >= 0 {
		return head[idx+1:]
	}
	return ""
}

// applyAdminOptions overlays comma-separated admin tag options
// (label:..., help:..., min:..., max:...) on a converted descriptor.
func applyAdminOptions(f *schema.Field, field core.Field) core.Field {
	tag := adminTag(f)
	if tag == "" {
		return field
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		key, value, found := strings.Cut(opt, ":")
		if !found {
			continue
		}
		switch key {
		case "label":
			field.Label = value
		case "help":
			field.HelpText = value
		case "min":
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				field.Min = &n
			}
		case "max":
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				field.Max = &n
			}
		}
	}
	return field
}

func withMaxLength(f *schema.Field, field core.Field) core.Field {
	if f.Size > 0 {
		field.MaxLength = f.Size
	}
	return field
}

func convString(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeString
	return withMaxLength(f, base), nil
}

func convText(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeText
	return withMaxLength(f, base), nil
}

func convBoolean(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeBoolean
	base.Searchable = false
	return base, nil
}

func convDate(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeDate
	base.Searchable = false
	return base, nil
}

func convTime(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeTime
	base.Searchable = false
	return base, nil
}

func convDateTime(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeDateTime
	base.Searchable = false
	return base, nil
}

func convInteger(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeInteger
	base.Searchable = false
	if f.IndirectFieldType.Kind().String()[0] == 'u' || f.DataType == schema.Uint {
		zero := float64(0)
		base.Min = &zero
	}
	return base, nil
}

func convFloat(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeFloat
	base.Searchable = false
	return base, nil
}

func convDecimal(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeDecimal
	base.Searchable = false
	return base, nil
}

func convJSON(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeJSON
	base.Searchable = false
	base.Sortable = false
	return base, nil
}

func convEmail(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeEmail
	return withMaxLength(f, base), nil
}

func convURL(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeURL
	return withMaxLength(f, base), nil
}

func convFile(f *schema.Field, base core.Field) (core.Field, error) {
	base.Type = core.TypeFile
	base.Storage = adminTagArg(f)
	base.Searchable = false
	base.Sortable = false
	return base, nil
}
