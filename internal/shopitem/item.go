package shopitem

import "fmt"

// UndefinedID marks a ShopItem that the store has not assigned an id to yet.
const UndefinedID = -1

// ShopItem is a single shopping-list entry.
type ShopItem struct {
	ID     int    `json:"id" yaml:"id" validate:"gte=0"`
	Name   string `json:"name" yaml:"name" validate:"notblank"`
	Count  int    `json:"count" yaml:"count" validate:"gte=1"`
	Active bool   `json:"active" yaml:"active"`
}

// New returns an unsaved, active item.
func New(name string, count int) ShopItem {
	return ShopItem{
		ID:     UndefinedID,
		Name:   name,
		Count:  count,
		Active: true,
	}
}

// HasID reports whether the store has assigned an id.
func (i ShopItem) HasID() bool {
	return i.ID != UndefinedID
}

// WithInput returns a copy carrying the new name and count.
// ID and Active are preserved.
func (i ShopItem) WithInput(name string, count int) ShopItem {
	i.Name = name
	i.Count = count
	return i
}

// String returns a short human-readable form, e.g. "#7 Eggs x2".
func (i ShopItem) String() string {
	if !i.HasID() {
		return fmt.Sprintf("(new) %s x%d", i.Name, i.Count)
	}
	return fmt.Sprintf("#%d %s x%d", i.ID, i.Name, i.Count)
}
