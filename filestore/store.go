package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrFileNotFound marks a storage key with no stored object behind it.
var ErrFileNotFound = errors.New("file not found")

// File describes one stored object in whichever form its backend can serve
// it: a local path, a public URL, or an open stream. Exactly one of the
// three is set.
type File struct {
	Filename    string
	ContentType string
	Size        int64

	LocalPath string
	PublicURL string
	// Stream is an open reader over the object's content. The caller owns
	// closing it.
	Stream io.ReadCloser
}

// IsLocal reports whether the file can be served straight off the local
// filesystem.
func (f *File) IsLocal() bool { return f.LocalPath != "" }

// HasPublicURL reports whether the client can be redirected to the file.
func (f *File) HasPublicURL() bool { return f.PublicURL != "" }

// Store is one file storage backend addressed by opaque string keys.
type Store interface {
	// Get resolves a key to a servable file, or ErrFileNotFound.
	Get(ctx context.Context, key string) (*File, error)
	// Put stores content under key, overwriting any previous object.
	Put(ctx context.Context, key string, contentType string, size int64, content io.Reader) error
	// Delete removes the object under key; deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// Manager is the registry of named storage backends an admin site serves
// files from.
type Manager struct {
	stores map[string]Store
}

func NewManager() *Manager {
	return &Manager{stores: map[string]Store{}}
}

// Register adds a named backend. Registering a duplicate name is an error.
func (m *Manager) Register(name string, store Store) error {
	if _, exists := m.stores[name]; exists {
		return fmt.Errorf("storage %q is already registered", name)
	}
	m.stores[name] = store
	return nil
}

// Store returns the named backend, or nil when none is registered.
func (m *Manager) Store(name string) Store {
	return m.stores[name]
}

// Names lists the registered backend names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.stores))
	for name := range m.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
