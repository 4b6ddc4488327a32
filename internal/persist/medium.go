// Package persist provides the byte sinks a snapshot is written to. The
// snapshot package owns the schema; a Medium only stores one opaque record
// and reports whether it exists.
//
// Media register themselves by name, so the CLI can pick a backend from
// configuration without importing every driver directly.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound means the medium holds no record. For a load this is the
// fresh-start path, not a failure.
var ErrNotFound = errors.New("persist: no record")

// Medium stores a single record.
type Medium interface {
	// Name identifies the backend for logs (e.g. "file", "redis").
	Name() string
	// Read returns the stored record or ErrNotFound.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the whole record.
	Write(ctx context.Context, data []byte) error
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context) error
	Close() error
}

// Options carries backend settings. Each backend reads the fields it needs.
type Options struct {
	Path    string // file and sqlite location
	Key     string // record name within the backend
	AppName string // gdata application name

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// DefaultKey names the record when Options.Key is empty.
const DefaultKey = "gameData"

func (o Options) key() string {
	if o.Key == "" {
		return DefaultKey
	}
	return o.Key
}

// Factory opens a medium from options.
type Factory func(opts Options) (Medium, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a backend. Typically called from an init() function.
// Panics if the name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("persist: backend %q already registered", name))
	}
	factories[name] = f
}

// Open creates the medium registered under name.
func Open(name string, opts Options) (Medium, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("persist: unknown backend %q", name)
	}
	return f(opts)
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
