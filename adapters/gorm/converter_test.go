package gorm

import (
	"testing"
	"time"

	"gorm.io/gorm/schema"

	"github.com/mpetrov/gormadmin/core"
)

type convModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;size:80;comment:display name"`
	Bio       string `gorm:"type:text"`
	Email     string `admin:"email"`
	Site      string `admin:"url,label:Site URL"`
	Avatar    string `admin:"file:uploads"`
	Settings  string `gorm:"type:text" admin:"json"`
	Age       uint
	Score     float64
	Active    bool
	CreatedAt time.Time
}

func parseTestSchema(t *testing.T, model any) *schema.Schema {
	t.Helper()
	sch, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}
	return sch
}

func convertField(t *testing.T, sch *schema.Schema, name string) core.Field {
	t.Helper()
	f, ok := sch.FieldsByName[name]
	if !ok {
		t.Fatalf("No schema field named %s", name)
	}
	field, err := NewModelConverter().Convert(f)
	if err != nil {
		t.Fatalf("Convert(%s) failed: %v", name, err)
	}
	return field
}

// TestConvertScalarTypes verifies the default type table
func TestConvertScalarTypes(t *testing.T) {
	sch := parseTestSchema(t, &convModel{})

	cases := map[string]core.FieldType{
		"ID":        core.TypeInteger,
		"Name":      core.TypeString,
		"Bio":       core.TypeText,
		"Age":       core.TypeInteger,
		"Score":     core.TypeFloat,
		"Active":    core.TypeBoolean,
		"CreatedAt": core.TypeDateTime,
	}
	for name, want := range cases {
		if got := convertField(t, sch, name).Type; got != want {
			t.Errorf("%s: expected type %s, got %s", name, want, got)
		}
	}
}

// TestConvertAdminTagHints verifies tag hints beat the column type
func TestConvertAdminTagHints(t *testing.T) {
	sch := parseTestSchema(t, &convModel{})

	if got := convertField(t, sch, "Email").Type; got != core.TypeEmail {
		t.Errorf("Email: expected email type, got %s", got)
	}
	if got := convertField(t, sch, "Settings").Type; got != core.TypeJSON {
		t.Errorf("Settings: expected json type over the text column, got %s", got)
	}

	site := convertField(t, sch, "Site")
	if site.Type != core.TypeURL {
		t.Errorf("Site: expected url type, got %s", site.Type)
	}
	if site.Label != "Site URL" {
		t.Errorf("Site: expected label override 'Site URL', got '%s'", site.Label)
	}

	avatar := convertField(t, sch, "Avatar")
	if avatar.Type != core.TypeFile {
		t.Errorf("Avatar: expected file type, got %s", avatar.Type)
	}
	if avatar.Storage != "uploads" {
		t.Errorf("Avatar: expected storage 'uploads', got '%s'", avatar.Storage)
	}
}

// TestConvertCommonAttributes verifies required/read-only/help/limits
func TestConvertCommonAttributes(t *testing.T) {
	sch := parseTestSchema(t, &convModel{})

	name := convertField(t, sch, "Name")
	if !name.Required {
		t.Error("Name: expected required (not null, not generated)")
	}
	if name.MaxLength != 80 {
		t.Errorf("Name: expected max length 80, got %d", name.MaxLength)
	}
	if name.HelpText != "display name" {
		t.Errorf("Name: expected help text from the column comment, got '%s'", name.HelpText)
	}

	id := convertField(t, sch, "ID")
	if id.Required {
		t.Error("ID: auto-increment keys must not be required")
	}
	if !id.ReadOnly {
		t.Error("ID: expected read-only")
	}

	created := convertField(t, sch, "CreatedAt")
	if !created.ReadOnly {
		t.Error("CreatedAt: auto timestamps must be read-only")
	}

	age := convertField(t, sch, "Age")
	if age.Min == nil || *age.Min != 0 {
		t.Error("Age: expected unsigned fields to carry min 0")
	}
}

// TestConvertFieldsListRelations verifies relation fields become references
func TestConvertFieldsListRelations(t *testing.T) {
	sch := parseTestSchema(t, &testPost{})

	fields, err := NewModelConverter().ConvertFieldsList(sch, []string{"Title", "Author", "Tags"})
	if err != nil {
		t.Fatalf("ConvertFieldsList failed: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(fields))
	}

	author := fields[1]
	if author.Type != core.TypeHasOne {
		t.Errorf("Author: expected has_one, got %s", author.Type)
	}
	if author.Identity != "test-author" {
		t.Errorf("Author: expected identity 'test-author', got '%s'", author.Identity)
	}

	tags := fields[2]
	if tags.Type != core.TypeHasMany || !tags.Multiple {
		t.Errorf("Tags: expected many-valued reference, got %+v", tags)
	}
	if tags.Identity != "test-tag" {
		t.Errorf("Tags: expected identity 'test-tag', got '%s'", tags.Identity)
	}
}

// TestConvertUnknownField verifies unknown names fail with the column error
func TestConvertUnknownField(t *testing.T) {
	sch := parseTestSchema(t, &convModel{})

	_, err := NewModelConverter().ConvertFieldsList(sch, []string{"Nope"})
	if err == nil {
		t.Fatal("Expected error for unknown field, got nil")
	}
	if _, ok := err.(*core.NotSupportedColumnError); !ok {
		t.Errorf("Expected NotSupportedColumnError, got %T", err)
	}
}

// TestConverterRegisterOverride verifies custom handlers win over defaults
func TestConverterRegisterOverride(t *testing.T) {
	sch := parseTestSchema(t, &convModel{})
	conv := NewModelConverter()
	conv.Register(func(f *schema.Field, base core.Field) (core.Field, error) {
		base.Type = core.TypeText
		return base, nil
	}, "string")

	f, err := conv.Convert(sch.FieldsByName["Name"])
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if f.Type != core.TypeText {
		t.Errorf("Expected the registered handler to win, got type %s", f.Type)
	}
}
