package gorm

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testAuthor struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null;size:100"`
	Email string `gorm:"size:200" admin:"email"`

	Posts []testPost `gorm:"foreignKey:AuthorID"`
}

type testPost struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null;size:200"`
	Body      string `gorm:"type:text"`
	Views     uint
	Published bool
	AuthorID  uint
	Author    *testAuthor
	Tags      []testTag `gorm:"many2many:test_post_tags"`
	CreatedAt time.Time
}

type testTag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;size:60"`
}

// testGrant has a composite primary key.
type testGrant struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	RoleID uint `gorm:"primaryKey;autoIncrement:false"`
	Note   string
}

// newTestDB opens a per-test database file and migrates the test models.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&testAuthor{}, &testPost{}, &testTag{}, &testGrant{}); err != nil {
		t.Fatalf("Failed to migrate test models: %v", err)
	}
	return db
}

// seedBlog inserts a small fixture: two authors, three tags, three posts.
func seedBlog(t *testing.T, db *gorm.DB) ([]testAuthor, []testPost, []testTag) {
	t.Helper()

	authors := []testAuthor{
		{Name: "Ada", Email: "ada@example.com"},
		{Name: "Ben", Email: "ben@example.com"},
	}
	if err := db.Create(&authors).Error; err != nil {
		t.Fatalf("Failed to seed authors: %v", err)
	}

	tags := []testTag{{Name: "go"}, {Name: "sql"}, {Name: "infra"}}
	if err := db.Create(&tags).Error; err != nil {
		t.Fatalf("Failed to seed tags: %v", err)
	}

	posts := []testPost{
		{Title: "Alpha", Body: "first post", Views: 10, Published: true, AuthorID: authors[0].ID, Tags: []testTag{tags[0]}},
		{Title: "Beta", Body: "second post", Views: 30, Published: false, AuthorID: authors[0].ID},
		{Title: "Gamma", Body: "third post", Views: 20, Published: true, AuthorID: authors[1].ID, Tags: []testTag{tags[0], tags[1]}},
	}
	if err := db.Create(&posts).Error; err != nil {
		t.Fatalf("Failed to seed posts: %v", err)
	}
	return authors, posts, tags
}
