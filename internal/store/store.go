// Package store persists the two collections as named JSON records in a
// key-value backend. Reads never fail: a missing, unreadable, malformed or
// schema-invalid record reads as an empty collection.
package store

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Record keys.
const (
	GroceryKey = "groceryItems"
	TodoKey    = "todoItems"
)

// KV is the minimal key-value surface a backend provides.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

//go:embed schemas/*.json
var schemaFS embed.FS

// ValidationError describes the first schema violation found in a record.
type ValidationError struct {
	Key     string
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Key, e.Path, e.Message)
}

// Store wraps a KV backend with record decoding and validation.
type Store struct {
	kv      KV
	logger  *log.Logger
	schemas map[string]*jsonschema.Schema
}

// New compiles the embedded record schemas and returns a Store over kv.
// A nil logger discards log output.
func New(kv KV, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Store{kv: kv, logger: logger, schemas: schemas}, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error { return s.kv.Close() }

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	out := make(map[string]*jsonschema.Schema, 2)
	for _, key := range []string{GroceryKey, TodoKey} {
		name := key + ".json"
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[key] = schema
	}
	return out, nil
}

// Validate checks raw record bytes against the schema registered for key.
// Keys without a schema only need to be valid JSON.
func (s *Store) Validate(key string, raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Key: key, Message: err.Error()}
	}
	schema, ok := s.schemas[key]
	if !ok {
		return nil
	}
	if err := schema.Validate(doc); err != nil {
		return schemaError(key, err)
	}
	return nil
}

func schemaError(key string, err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Key: key, Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{Key: key, Path: pointerToPath(ve.InstanceLocation), Message: ve.Message}
}

// pointerToPath turns "/0/qty" into "[0].qty".
func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

// Read loads the record under key. Any failure is logged and yields an empty,
// non-nil slice.
func Read[T any](ctx context.Context, s *Store, key string) []T {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read failed, starting empty", "key", key, "err", err)
		return []T{}
	}
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return []T{}
	}
	if err := s.Validate(key, raw); err != nil {
		s.logger.Warn("malformed record, starting empty", "key", key, "err", err)
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("malformed record, starting empty", "key", key, "err", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Write serializes items and overwrites the record under key.
func Write[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Put(ctx, key, append(b, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.logger.Debug("record written", "key", key, "items", len(items))
	return nil
}
