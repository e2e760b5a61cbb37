package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopitem"
)

// Memory keeps items in a map. Ids are assigned from an increasing counter.
type Memory struct {
	mu     sync.RWMutex
	items  map[int]shopitem.ShopItem
	nextID int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[int]shopitem.ShopItem)}
}

func (m *Memory) GetByID(ctx context.Context, id int) (shopitem.ShopItem, error) {
	if err := ctx.Err(); err != nil {
		return shopitem.ShopItem{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return shopitem.ShopItem{}, fmt.Errorf("get %d: %w", id, shopitem.ErrNotFound)
	}
	return item, nil
}

func (m *Memory) Add(ctx context.Context, item shopitem.ShopItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID == shopitem.UndefinedID {
		item.ID = m.nextID
	}
	if err := checkItem(item); err != nil {
		return err
	}
	if item.ID >= m.nextID {
		m.nextID = item.ID + 1
	}
	m.items[item.ID] = item
	logging.LogStoreOp("memory", "add", item.ID, nil)
	return nil
}

func (m *Memory) Edit(ctx context.Context, item shopitem.ShopItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.ID]; !ok {
		return fmt.Errorf("edit %d: %w", item.ID, shopitem.ErrNotFound)
	}
	if err := checkItem(item); err != nil {
		return err
	}
	m.items[item.ID] = item
	logging.LogStoreOp("memory", "edit", item.ID, nil)
	return nil
}

// List returns all items ordered by id.
func (m *Memory) List(ctx context.Context) ([]shopitem.ShopItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]shopitem.ShopItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("delete %d: %w", id, shopitem.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
