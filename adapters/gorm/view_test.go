package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/mpetrov/gormadmin/core"
)

func newPostView(t *testing.T, provider DBProvider, opts ...ViewOption) *ModelView {
	t.Helper()
	view, err := NewModelView(provider, &testPost{}, opts...)
	if err != nil {
		t.Fatalf("Failed to build view: %v", err)
	}
	return view
}

// TestViewDefaults verifies identity, names, and the derived field lists
func TestViewDefaults(t *testing.T) {
	db := newTestDB(t)
	view := newPostView(t, NewStaticDB(db))

	if view.Identity() != "test-post" {
		t.Errorf("Expected identity 'test-post', got '%s'", view.Identity())
	}
	if view.Name() != "TestPost" {
		t.Errorf("Expected name 'TestPost', got '%s'", view.Name())
	}
	if view.Label() != "TestPosts" {
		t.Errorf("Expected label 'TestPosts', got '%s'", view.Label())
	}

	byName := map[string]core.Field{}
	for _, f := range view.Fields() {
		byName[f.Name] = f
	}
	for _, want := range []string{"ID", "Title", "Author", "Tags"} {
		if _, ok := byName[want]; !ok {
			t.Errorf("Expected field %s in view fields", want)
		}
	}
}

// TestFieldsForAction verifies exclusion lists and read-only filtering
func TestFieldsForAction(t *testing.T) {
	db := newTestDB(t)
	view := newPostView(t, NewStaticDB(db),
		WithExcludeFrom(core.RequestList, "Body"),
	)

	for _, f := range view.FieldsForAction(core.RequestList) {
		if f.Name == "Body" {
			t.Error("Expected Body excluded from list fields")
		}
	}
	for _, f := range view.FieldsForAction(core.RequestCreate) {
		if f.ReadOnly {
			t.Errorf("Expected no read-only fields on create, got %s", f.Name)
		}
	}
	// Body stays visible outside the excluded context
	found := false
	for _, f := range view.FieldsForAction(core.RequestDetail) {
		if f.Name == "Body" {
			found = true
		}
	}
	if !found {
		t.Error("Expected Body in detail fields")
	}
}

// TestFindAll verifies pagination, ordering, and the unbounded limit
func TestFindAll(t *testing.T) {
	db := newTestDB(t)
	seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))
	ctx := context.Background()

	objs, err := view.FindAll(ctx, 0, -1, nil, []string{"Views desc"})
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(objs) != 3 {
		t.Fatalf("Expected 3 posts with no limit, got %d", len(objs))
	}
	if objs[0].(*testPost).Title != "Beta" {
		t.Errorf("Expected 'Beta' first by views desc, got '%s'", objs[0].(*testPost).Title)
	}

	objs, err = view.FindAll(ctx, 1, 1, nil, []string{"Title asc"})
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(objs) != 1 || objs[0].(*testPost).Title != "Beta" {
		t.Errorf("Expected page [Beta], got %v", objs)
	}
}

// TestFindAllSearchAndFilter verifies both where argument shapes
func TestFindAllSearchAndFilter(t *testing.T) {
	db := newTestDB(t)
	seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db), WithSearchableFields("Title"))
	ctx := context.Background()

	objs, err := view.FindAll(ctx, 0, -1, "amm", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(objs) != 1 || objs[0].(*testPost).Title != "Gamma" {
		t.Errorf("Expected search to match only Gamma, got %v", objs)
	}

	count, err := view.Count(ctx, map[string]any{"Published": true})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 published posts, got %d", count)
	}
}

// TestFindAllPreloadsRelations verifies list results carry their relations
func TestFindAllPreloadsRelations(t *testing.T) {
	db := newTestDB(t)
	seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))

	objs, err := view.FindAll(context.Background(), 0, -1, map[string]any{"Title": "Gamma"}, nil)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(objs))
	}
	post := objs[0].(*testPost)
	if post.Author == nil || post.Author.Name != "Ben" {
		t.Errorf("Expected preloaded author Ben, got %+v", post.Author)
	}
	if len(post.Tags) != 2 {
		t.Errorf("Expected 2 preloaded tags, got %d", len(post.Tags))
	}
}

// TestFindByPKAbsence verifies a missing key reads as (nil, nil)
func TestFindByPKAbsence(t *testing.T) {
	db := newTestDB(t)
	view := newPostView(t, NewStaticDB(db))

	obj, err := view.FindByPK(context.Background(), uint(9999))
	if err != nil {
		t.Fatalf("Expected no error for missing key, got %v", err)
	}
	if obj != nil {
		t.Errorf("Expected nil for missing key, got %v", obj)
	}
}

// TestCreateWithRelations verifies create writes scalars and associations
func TestCreateWithRelations(t *testing.T) {
	db := newTestDB(t)
	authors, _, tags := seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))
	ctx := context.Background()

	obj, err := view.Create(ctx, map[string]any{
		"Title":  "Delta",
		"Views":  float64(5),
		"Author": view.SerializePK(authors[1].ID),
		"Tags":   []any{tags[1].ID, tags[2].ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created := obj.(*testPost)
	if created.ID == 0 {
		t.Fatal("Expected a persisted record with an assigned key")
	}

	back, err := view.FindByPK(ctx, created.ID)
	if err != nil || back == nil {
		t.Fatalf("Failed to read back created post: %v", err)
	}
	post := back.(*testPost)
	if post.Title != "Delta" || post.Views != 5 {
		t.Errorf("Expected scalar values persisted, got %+v", post)
	}
	if post.Author == nil || post.Author.ID != authors[1].ID {
		t.Errorf("Expected author %d, got %+v", authors[1].ID, post.Author)
	}
	got := map[string]bool{}
	for _, tag := range post.Tags {
		got[tag.Name] = true
	}
	if len(got) != 2 || !got["sql"] || !got["infra"] {
		t.Errorf("Expected tags {sql infra}, got %v", got)
	}
}

// TestCreateUnknownRelatedKey verifies a dangling reference is a field error
func TestCreateUnknownRelatedKey(t *testing.T) {
	db := newTestDB(t)
	seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))

	_, err := view.Create(context.Background(), map[string]any{
		"Title": "Dangling",
		"Tags":  []any{uint(999)},
	})
	var validation *core.FormValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected FormValidationError, got %v", err)
	}
	if _, ok := validation.Fields["Tags"]; !ok {
		t.Error("Expected the error keyed by the relation field")
	}
}

// TestEditReplacesManyValuedRelations verifies edit replaces, not appends
func TestEditReplacesManyValuedRelations(t *testing.T) {
	db := newTestDB(t)
	_, posts, tags := seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))
	ctx := context.Background()

	// Gamma starts with {go, sql}
	obj, err := view.Edit(ctx, posts[2].ID, map[string]any{
		"Title": "Gamma II",
		"Tags":  []any{tags[2].ID},
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if obj.(*testPost).Title != "Gamma II" {
		t.Errorf("Expected title updated, got '%s'", obj.(*testPost).Title)
	}

	back, _ := view.FindByPK(ctx, posts[2].ID)
	post := back.(*testPost)
	if len(post.Tags) != 1 || post.Tags[0].Name != "infra" {
		t.Errorf("Expected tags replaced with exactly {infra}, got %v", post.Tags)
	}
}

// TestEditMissingRecord verifies edit surfaces absence as a field error
func TestEditMissingRecord(t *testing.T) {
	db := newTestDB(t)
	view := newPostView(t, NewStaticDB(db))

	_, err := view.Edit(context.Background(), uint(9999), map[string]any{"Title": "x"})
	var validation *core.FormValidationError
	if !errors.As(err, &validation) {
		t.Errorf("Expected FormValidationError for a missing record, got %v", err)
	}
}

// TestDeleteCountsOnlyExisting verifies missing keys are skipped
func TestDeleteCountsOnlyExisting(t *testing.T) {
	db := newTestDB(t)
	_, posts, _ := seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))
	ctx := context.Background()

	deleted, err := view.Delete(ctx, []any{posts[0].ID, uint(9999), posts[1].ID})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}

	count, _ := view.Count(ctx, nil)
	if count != 1 {
		t.Errorf("Expected 1 remaining post, got %d", count)
	}
}

// TestValidatorVeto verifies a validator error blocks the write
func TestValidatorVeto(t *testing.T) {
	db := newTestDB(t)
	view := newPostView(t, NewStaticDB(db), WithValidator(
		func(ctx context.Context, data map[string]any, obj any) error {
			if obj.(*testPost).Title == "" {
				return core.NewFormValidationError("Title", "must not be empty")
			}
			return nil
		},
	))

	_, err := view.Create(context.Background(), map[string]any{"Views": float64(1)})
	var validation *core.FormValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected FormValidationError, got %v", err)
	}

	count, _ := view.Count(context.Background(), nil)
	if count != 0 {
		t.Errorf("Expected no record persisted after veto, got %d", count)
	}
}

// TestHooksRunAroundWrites verifies hook ordering on create
func TestHooksRunAroundWrites(t *testing.T) {
	db := newTestDB(t)
	var calls []string
	view := newPostView(t, NewStaticDB(db), WithHooks(Hooks{
		BeforeCreate: func(ctx context.Context, data map[string]any, obj any) error {
			calls = append(calls, "before")
			return nil
		},
		AfterCreate: func(ctx context.Context, obj any) error {
			calls = append(calls, "after")
			return nil
		},
	}))

	if _, err := view.Create(context.Background(), map[string]any{"Title": "Hooked"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "before" || calls[1] != "after" {
		t.Errorf("Expected [before after], got %v", calls)
	}
}

// TestCompositeKeyView verifies tuple keys round-trip through the view
func TestCompositeKeyView(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&testGrant{UserID: 1, RoleID: 2, Note: "ops"}).Error; err != nil {
		t.Fatalf("Failed to seed grant: %v", err)
	}
	view, err := NewModelView(NewStaticDB(db), &testGrant{})
	if err != nil {
		t.Fatalf("Failed to build view: %v", err)
	}

	if view.PKField().Name != "pk" {
		t.Errorf("Expected synthetic 'pk' field for composite keys, got '%s'", view.PKField().Name)
	}

	pk, err := view.ParsePK("1,2")
	if err != nil {
		t.Fatalf("ParsePK failed: %v", err)
	}
	obj, err := view.FindByPK(context.Background(), pk)
	if err != nil || obj == nil {
		t.Fatalf("Expected grant found by tuple key, got %v, %v", obj, err)
	}
	if obj.(*testGrant).Note != "ops" {
		t.Errorf("Expected note 'ops', got '%s'", obj.(*testGrant).Note)
	}

	if got := view.SerializePK(view.PKValue(obj)); got != "1,2" {
		t.Errorf("Expected serialized key '1,2', got '%s'", got)
	}
}

// TestViewActions verifies dispatch and the unknown-action failure shape
func TestViewActions(t *testing.T) {
	db := newTestDB(t)
	seedBlog(t, db)

	var received []any
	action := core.NewAction("archive", "Archive", func(ctx context.Context, pks []any) (string, error) {
		received = pks
		return "archived", nil
	}).Build()
	view := newPostView(t, NewStaticDB(db), WithActions(action))

	msg, err := view.HandleAction(context.Background(), "archive", []any{uint(1), uint(2)})
	if err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}
	if msg != "archived" || len(received) != 2 {
		t.Errorf("Expected handler invoked with 2 keys, got msg=%q pks=%v", msg, received)
	}

	_, err = view.HandleAction(context.Background(), "nope", nil)
	var failed *core.ActionFailedError
	if !errors.As(err, &failed) {
		t.Errorf("Expected ActionFailedError for unknown action, got %v", err)
	}
}

// TestGetFieldValue verifies scalar reads and relation resolution
func TestGetFieldValue(t *testing.T) {
	db := newTestDB(t)
	_, posts, _ := seedBlog(t, db)
	view := newPostView(t, NewStaticDB(db))
	ctx := context.Background()

	obj, _ := view.FindByPK(ctx, posts[0].ID)

	title, err := view.GetFieldValue(ctx, core.StringField("Title"), obj)
	if err != nil || title != "Alpha" {
		t.Errorf("Expected 'Alpha', got %v, %v", title, err)
	}

	tags, err := view.GetFieldValue(ctx, core.HasMany("Tags", "test-tag"), obj)
	if err != nil {
		t.Fatalf("GetFieldValue(Tags) failed: %v", err)
	}
	if got := tags.([]testTag); len(got) != 1 || got[0].Name != "go" {
		t.Errorf("Expected tags [go], got %v", got)
	}
}
