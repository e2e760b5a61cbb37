package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopitem"
)

const yamlVersion = 1

// yamlDoc is the on-disk layout of the YAML store.
type yamlDoc struct {
	Version int                 `yaml:"version"`
	NextID  int                 `yaml:"next_id"`
	Items   []shopitem.ShopItem `yaml:"items"`
}

// YAML keeps items in a single YAML file. Each write rewrites the file
// atomically (temp file + rename).
type YAML struct {
	path string
	mu   sync.Mutex
}

// OpenYAML returns a store backed by the file at path. The file is created
// on first write.
func OpenYAML(path string) (*YAML, error) {
	if path == "" {
		return nil, fmt.Errorf("yaml store: empty path")
	}
	s := &YAML{path: path}
	// Surface a corrupt file at open time rather than on first use.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *YAML) Path() string { return s.path }

func (s *YAML) load() (*yamlDoc, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &yamlDoc{Version: yamlVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read item file: %w", err)
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse item file: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = yamlVersion
	}
	if doc.Version != yamlVersion {
		return nil, fmt.Errorf("unsupported item file version: %d (expected %d)", doc.Version, yamlVersion)
	}
	return &doc, nil
}

func (s *YAML) save(doc *yamlDoc) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	sort.Slice(doc.Items, func(i, j int) bool { return doc.Items[i].ID < doc.Items[j].ID })
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary item file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save item file: %w", err)
	}
	return nil
}

func (d *yamlDoc) index(id int) int {
	for i, it := range d.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *YAML) GetByID(ctx context.Context, id int) (shopitem.ShopItem, error) {
	if err := ctx.Err(); err != nil {
		return shopitem.ShopItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return shopitem.ShopItem{}, err
	}
	i := doc.index(id)
	if i < 0 {
		return shopitem.ShopItem{}, fmt.Errorf("get %d: %w", id, shopitem.ErrNotFound)
	}
	return doc.Items[i], nil
}

func (s *YAML) Add(ctx context.Context, item shopitem.ShopItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if item.ID == shopitem.UndefinedID {
		item.ID = doc.NextID
	}
	if err := checkItem(item); err != nil {
		return err
	}
	if i := doc.index(item.ID); i >= 0 {
		doc.Items[i] = item
	} else {
		doc.Items = append(doc.Items, item)
	}
	if item.ID >= doc.NextID {
		doc.NextID = item.ID + 1
	}

	err = s.save(doc)
	logging.LogStoreOp("yaml", "add", item.ID, err)
	return err
}

func (s *YAML) Edit(ctx context.Context, item shopitem.ShopItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := doc.index(item.ID)
	if i < 0 {
		return fmt.Errorf("edit %d: %w", item.ID, shopitem.ErrNotFound)
	}
	if err := checkItem(item); err != nil {
		return err
	}
	doc.Items[i] = item

	err = s.save(doc)
	logging.LogStoreOp("yaml", "edit", item.ID, err)
	return err
}

// List returns all items ordered by id.
func (s *YAML) List(ctx context.Context) ([]shopitem.ShopItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := append([]shopitem.ShopItem(nil), doc.Items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *YAML) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := doc.index(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, shopitem.ErrNotFound)
	}
	doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)

	err = s.save(doc)
	logging.LogStoreOp("yaml", "delete", id, err)
	return err
}

// Close is a no-op; nothing is held open between calls.
func (s *YAML) Close() error { return nil }
