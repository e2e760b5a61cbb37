package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/shopitem"
)

// backends returns a fresh instance of every backend.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	y, err := OpenYAML(filepath.Join(dir, "items.yaml"))
	if err != nil {
		t.Fatalf("OpenYAML() error = %v", err)
	}
	s, err := OpenSQLite(context.Background(), filepath.Join(dir, "items.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"yaml":   y,
		"sqlite": s,
	}
}

func TestAddAssignsIDAndGetByID(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := b.Add(ctx, shopitem.New("Milk", 3)); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if err := b.Add(ctx, shopitem.New("Bread", 1)); err != nil {
				t.Fatalf("Add() error = %v", err)
			}

			items, err := b.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("List() returned %d items, want 2", len(items))
			}
			if items[0].ID == items[1].ID {
				t.Error("ids must be distinct")
			}
			for _, it := range items {
				if !it.HasID() {
					t.Errorf("item %+v has no id", it)
				}
				if !it.Active {
					t.Errorf("item %+v lost its active flag", it)
				}
			}

			got, err := b.GetByID(ctx, items[0].ID)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if got != items[0] {
				t.Errorf("GetByID() = %+v, want %+v", got, items[0])
			}
		})
	}
}

func TestEditPreservesIdentity(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := b.Add(ctx, shopitem.New("Eggs", 2)); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			items, _ := b.List(ctx)
			orig := items[0]

			updated := orig.WithInput("Eggs", 10)
			if err := b.Edit(ctx, updated); err != nil {
				t.Fatalf("Edit() error = %v", err)
			}

			got, err := b.GetByID(ctx, orig.ID)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if got.Count != 10 || got.ID != orig.ID || got.Active != orig.Active {
				t.Errorf("after Edit got %+v", got)
			}
		})
	}
}

func TestMissingItems(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := b.GetByID(ctx, 99); !errors.Is(err, shopitem.ErrNotFound) {
				t.Errorf("GetByID() error = %v, want ErrNotFound", err)
			}
			if err := b.Edit(ctx, shopitem.ShopItem{ID: 99, Name: "x", Count: 1}); !errors.Is(err, shopitem.ErrNotFound) {
				t.Errorf("Edit() error = %v, want ErrNotFound", err)
			}
			if err := b.Delete(ctx, 99); !errors.Is(err, shopitem.ErrNotFound) {
				t.Errorf("Delete() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestRejectsInvalidItems(t *testing.T) {
	bad := []struct {
		name string
		item shopitem.ShopItem
	}{
		{"blank name", shopitem.New("  ", 1)},
		{"empty name", shopitem.New("", 1)},
		{"zero count", shopitem.New("Milk", 0)},
		{"negative count", shopitem.New("Milk", -4)},
	}

	for name, b := range backends(t) {
		for _, tt := range bad {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				err := b.Add(context.Background(), tt.item)
				if !errors.Is(err, shopitem.ErrInvalidItem) {
					t.Errorf("Add(%+v) error = %v, want ErrInvalidItem", tt.item, err)
				}
			})
		}
	}
}

func TestDelete(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = b.Add(ctx, shopitem.New("Milk", 1))
			items, _ := b.List(ctx)

			if err := b.Delete(ctx, items[0].ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			items, _ = b.List(ctx)
			if len(items) != 0 {
				t.Errorf("List() after Delete = %+v", items)
			}
		})
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := b.Add(ctx, shopitem.New("Milk", 1)); err == nil {
				t.Error("Add() with cancelled context should fail")
			}
		})
	}
}

func TestYAMLPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "items.yaml")
	ctx := context.Background()

	s, err := OpenYAML(path)
	if err != nil {
		t.Fatalf("OpenYAML() error = %v", err)
	}
	if err := s.Add(ctx, shopitem.New("Milk", 3)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reopened, err := OpenYAML(path)
	if err != nil {
		t.Fatalf("OpenYAML() error = %v", err)
	}
	items, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" || items[0].Count != 3 {
		t.Errorf("reopened items = %+v", items)
	}

	// Ids keep increasing after a delete.
	_ = reopened.Delete(ctx, items[0].ID)
	_ = reopened.Add(ctx, shopitem.New("Tea", 1))
	items, _ = reopened.List(ctx)
	if len(items) != 1 || items[0].ID == 0 {
		t.Errorf("id was reused: %+v", items)
	}
}

func TestYAMLRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte("items: [\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenYAML(path); err == nil {
		t.Error("OpenYAML() should fail on a corrupt file")
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.sqlite")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := s.Add(ctx, shopitem.ShopItem{ID: 7, Name: "Eggs", Count: 2, Active: false}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_ = s.Close()

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	want := shopitem.ShopItem{ID: 7, Name: "Eggs", Count: 2, Active: false}
	if got != want {
		t.Errorf("GetByID() = %+v, want %+v", got, want)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		want    string
	}{
		{config.BackendMemory, "*store.Memory"},
		{config.BackendYAML, "*store.YAML"},
		{config.BackendSQLite, "*store.SQLite"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Store.Backend = tt.backend
			if tt.backend != config.BackendMemory {
				cfg.Store.Path = filepath.Join(dir, "items."+tt.backend)
			}

			b, err := Open(context.Background(), cfg)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer b.Close()

			var got string
			switch b.(type) {
			case *Memory:
				got = "*store.Memory"
			case *YAML:
				got = "*store.YAML"
			case *SQLite:
				got = "*store.SQLite"
			}
			if got != tt.want {
				t.Errorf("Open() returned %s, want %s", got, tt.want)
			}
		})
	}
}

type stubResult struct {
	id  int64
	err error
}

func (r stubResult) LastInsertId() (int64, error) { return r.id, r.err }
func (r stubResult) RowsAffected() (int64, error) { return 1, nil }

var _ sql.Result = stubResult{}

func TestInsertedID(t *testing.T) {
	tests := []struct {
		name     string
		res      stubResult
		fallback int
		want     int
	}{
		{"driver reports id", stubResult{id: 12}, shopitem.UndefinedID, 12},
		{"lookup fails", stubResult{err: errors.New("not supported")}, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := insertedID(tt.res, tt.fallback); got != tt.want {
				t.Errorf("insertedID() = %d, want %d", got, tt.want)
			}
		})
	}
}
