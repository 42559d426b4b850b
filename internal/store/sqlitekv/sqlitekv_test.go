package sqlitekv_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/lists/internal/store/sqlitekv"
)

func newTestStore(t *testing.T) (*sqlitekv.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lists.db")
	store, err := sqlitekv.Open(path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store, path
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	value, found, err := store.Get(context.Background(), "groceryItems")
	if err != nil {
		t.Fatalf("getting missing record: %v", err)
	}
	if found || value != nil {
		t.Errorf("expected no record, got found=%v value=%q", found, value)
	}
}

func TestSQLiteStore_PutOverwrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "todoItems", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("putting record: %v", err)
	}
	if err := store.Put(ctx, "todoItems", []byte(`[]`)); err != nil {
		t.Fatalf("overwriting record: %v", err)
	}

	value, found, err := store.Get(ctx, "todoItems")
	if err != nil {
		t.Fatalf("getting record: %v", err)
	}
	if !found || string(value) != "[]" {
		t.Errorf("expected '[]', got found=%v value=%q", found, value)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "groceryItems", []byte(`["kept"]`)); err != nil {
		t.Fatalf("putting record: %v", err)
	}
	store.Close()

	reopened, err := sqlitekv.Open(path)
	if err != nil {
		t.Fatalf("reopening database: %v", err)
	}
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, "groceryItems")
	if err != nil {
		t.Fatalf("getting record after reopen: %v", err)
	}
	if !found || string(value) != `["kept"]` {
		t.Errorf("expected record to survive reopen, got found=%v value=%q", found, value)
	}
}
