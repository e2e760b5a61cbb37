package shopitem

import "testing"

func TestNew(t *testing.T) {
	item := New("Milk", 3)

	if item.ID != UndefinedID {
		t.Errorf("ID = %d, want %d", item.ID, UndefinedID)
	}
	if item.HasID() {
		t.Error("HasID() should be false for a new item")
	}
	if !item.Active {
		t.Error("new items should be active")
	}
	if item.Name != "Milk" || item.Count != 3 {
		t.Errorf("got %+v, want Milk x3", item)
	}
}

func TestWithInputPreservesIdentity(t *testing.T) {
	orig := ShopItem{ID: 7, Name: "Eggs", Count: 2, Active: false}

	updated := orig.WithInput("Eggs", 10)

	if updated.ID != 7 {
		t.Errorf("ID = %d, want 7", updated.ID)
	}
	if updated.Active != false {
		t.Error("Active should be preserved")
	}
	if updated.Count != 10 {
		t.Errorf("Count = %d, want 10", updated.Count)
	}
	if orig.Count != 2 {
		t.Error("WithInput must not modify the receiver")
	}
}

func TestString(t *testing.T) {
	if got := New("Milk", 3).String(); got != "(new) Milk x3" {
		t.Errorf("String() = %q", got)
	}
	if got := (ShopItem{ID: 7, Name: "Eggs", Count: 2}).String(); got != "#7 Eggs x2" {
		t.Errorf("String() = %q", got)
	}
}
