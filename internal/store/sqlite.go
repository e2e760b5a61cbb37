package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopitem"
)

// SQLite keeps items in a SQLite database through the modernc.org/sqlite driver.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: empty path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	s := &SQLite{db: db, path: path}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrate applies pending goose migrations from the embedded migrations dir.
func (s *SQLite) migrate(ctx context.Context) error {
	files, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, files)
	if err != nil {
		return fmt.Errorf("failed to prepare item database migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate item database: %w", err)
	}
	for _, r := range results {
		logging.Debug("Applied migration", zap.String("source", r.Source.Path), zap.Duration("took", r.Duration))
	}
	return nil
}

func (s *SQLite) GetByID(ctx context.Context, id int) (shopitem.ShopItem, error) {
	var (
		item   shopitem.ShopItem
		active int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, count, active FROM shop_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Count, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return shopitem.ShopItem{}, fmt.Errorf("get %d: %w", id, shopitem.ErrNotFound)
	}
	if err != nil {
		return shopitem.ShopItem{}, fmt.Errorf("get %d: %w", id, err)
	}
	item.Active = active != 0
	return item, nil
}

func (s *SQLite) Add(ctx context.Context, item shopitem.ShopItem) error {
	// Validate with a placeholder id; the database assigns the real one.
	check := item
	if check.ID == shopitem.UndefinedID {
		check.ID = 0
	}
	if err := checkItem(check); err != nil {
		return err
	}

	var (
		res sql.Result
		err error
	)
	if item.ID == shopitem.UndefinedID {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO shop_items (name, count, active) VALUES (?, ?, ?)`,
			item.Name, item.Count, boolInt(item.Active))
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO shop_items (id, name, count, active) VALUES (?, ?, ?, ?)`,
			item.ID, item.Name, item.Count, boolInt(item.Active))
	}
	if err != nil {
		logging.LogStoreOp("sqlite", "add", item.ID, err)
		return fmt.Errorf("add item: %w", err)
	}

	logging.LogStoreOp("sqlite", "add", insertedID(res, item.ID), nil)
	return nil
}

// insertedID returns the row id of an insert, or fallback when the driver
// cannot report it.
func insertedID(res sql.Result, fallback int) int {
	id, err := res.LastInsertId()
	if err != nil {
		logging.Warn("Failed to read inserted item id", zap.Error(err))
		return fallback
	}
	return int(id)
}

func (s *SQLite) Edit(ctx context.Context, item shopitem.ShopItem) error {
	if err := checkItem(item); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE shop_items SET name = ?, count = ?, active = ? WHERE id = ?`,
		item.Name, item.Count, boolInt(item.Active), item.ID)
	if err != nil {
		logging.LogStoreOp("sqlite", "edit", item.ID, err)
		return fmt.Errorf("edit %d: %w", item.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("edit %d: %w", item.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("edit %d: %w", item.ID, shopitem.ErrNotFound)
	}
	logging.LogStoreOp("sqlite", "edit", item.ID, nil)
	return nil
}

// List returns all items ordered by id.
func (s *SQLite) List(ctx context.Context) ([]shopitem.ShopItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, count, active FROM shop_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []shopitem.ShopItem
	for rows.Next() {
		var (
			item   shopitem.ShopItem
			active int
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Count, &active); err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		item.Active = active != 0
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *SQLite) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shop_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %d: %w", id, shopitem.ErrNotFound)
	}
	logging.LogStoreOp("sqlite", "delete", id, nil)
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
