package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/shoplist/internal/form"
	"github.com/muurk/shoplist/internal/shopitem"
	"github.com/muurk/shoplist/internal/store"
)

func newTestModel(t *testing.T, params form.Params, backend shopitem.Store) (Model, *form.Controller) {
	t.Helper()
	ctl, err := form.New(params, backend, form.HostFunc(func() {}))
	if err != nil {
		t.Fatalf("form.New() error = %v", err)
	}
	t.Cleanup(ctl.Close)
	return NewModel(context.Background(), ctl, nil), ctl
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestTypingUpdatesDrafts(t *testing.T) {
	m, ctl := newTestModel(t, form.CreateParams(), store.NewMemory())

	m = typeText(m, "Milk")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "3")

	name, count := ctl.Drafts()
	if name != "Milk" || count != "3" {
		t.Errorf("Drafts() = %q, %q, want Milk, 3", name, count)
	}
	if m.focus != fieldCount {
		t.Errorf("focus = %d, want count field", m.focus)
	}
}

func TestFocusWraps(t *testing.T) {
	m, _ := newTestModel(t, form.CreateParams(), store.NewMemory())

	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	if m.focus != fieldName {
		t.Errorf("after two tabs focus = %d, want name field", m.focus)
	}
	m, _ = press(m, tea.KeyShiftTab)
	if m.focus != fieldCount {
		t.Errorf("after shift+tab focus = %d, want count field", m.focus)
	}
}

func TestEnterSavesValidInput(t *testing.T) {
	backend := store.NewMemory()
	m, ctl := newTestModel(t, form.CreateParams(), backend)

	m = typeText(m, "  Milk ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "3")
	m, _ = press(m, tea.KeyEnter)
	ctl.Wait()

	items, _ := backend.List(context.Background())
	if len(items) != 1 || items[0].Name != "Milk" || items[0].Count != 3 {
		t.Fatalf("stored items = %+v", items)
	}
	if ctl.FinishedCount() != 1 {
		t.Errorf("FinishedCount() = %d, want 1", ctl.FinishedCount())
	}

	next, cmd := m.Update(finishedMsg{})
	if !next.(Model).Saved() {
		t.Error("Saved() should be true after finishedMsg")
	}
	if cmd == nil {
		t.Error("finishedMsg should quit the program")
	}
}

func TestEnterShowsValidationErrors(t *testing.T) {
	backend := store.NewMemory()
	m, ctl := newTestModel(t, form.CreateParams(), backend)

	m = typeText(m, " ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "abc")
	m, _ = press(m, tea.KeyEnter)
	ctl.Wait()

	view := m.View()
	if !strings.Contains(view, InvalidNameText) || !strings.Contains(view, InvalidCountText) {
		t.Errorf("View() missing error texts:\n%s", view)
	}
	if items, _ := backend.List(context.Background()); len(items) != 0 {
		t.Errorf("invalid input reached the store: %+v", items)
	}

	// Editing the count clears only the count error.
	m = typeText(m, "1")
	view = m.View()
	if !strings.Contains(view, InvalidNameText) {
		t.Error("name error should remain")
	}
	if strings.Contains(view, InvalidCountText) {
		t.Error("count error should be cleared by typing")
	}
}

func TestEditFillsFieldsFromLoadedItem(t *testing.T) {
	backend := store.NewMemory()
	_ = backend.Add(context.Background(), shopitem.ShopItem{ID: 7, Name: "Eggs", Count: 2, Active: true})

	m, ctl := newTestModel(t, form.EditParams(7), backend)
	if !strings.Contains(m.View(), "Loading item") {
		t.Error("edit form should show loading state before the item arrives")
	}

	// Enter before the item is loaded loads it instead of saving.
	m, _ = press(m, tea.KeyEnter)
	ctl.Wait()
	if ctl.FinishedCount() != 0 {
		t.Error("enter before load must not save")
	}
	if _, ok := ctl.Item().Value(); !ok {
		t.Error("enter before load should load the item")
	}

	next, _ := m.Update(itemLoadedMsg{item: shopitem.ShopItem{ID: 7, Name: "Eggs", Count: 2, Active: true}})
	m = next.(Model)
	if got := m.inputs[fieldName].Value(); got != "Eggs" {
		t.Errorf("name field = %q, want Eggs", got)
	}
	if got := m.inputs[fieldCount].Value(); got != "2" {
		t.Errorf("count field = %q, want 2", got)
	}
	if !strings.Contains(m.View(), "Edit item #7") {
		t.Errorf("View() missing edit title:\n%s", m.View())
	}
}

func TestEscapeAborts(t *testing.T) {
	m, _ := newTestModel(t, form.CreateParams(), store.NewMemory())

	m, cmd := press(m, tea.KeyEsc)
	if !m.Aborted() {
		t.Error("Aborted() should be true after esc")
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestStoreErrorIsShown(t *testing.T) {
	m, ctl := newTestModel(t, form.EditParams(3), store.NewMemory())

	if err := ctl.Attach(context.Background()); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	ctl.Wait()

	if err, _ := ctl.StoreError().Value(); !errors.Is(err, shopitem.ErrNotFound) {
		t.Fatalf("StoreError() = %v, want ErrNotFound", err)
	}
	if !strings.Contains(m.View(), "try again") {
		t.Errorf("View() should offer a retry:\n%s", m.View())
	}
}

func TestBridgeDeliversFinished(t *testing.T) {
	ctl, err := form.New(form.CreateParams(), store.NewMemory(), form.HostFunc(func() {}))
	if err != nil {
		t.Fatal(err)
	}
	defer ctl.Close()

	var (
		mu   sync.Mutex
		msgs []tea.Msg
	)
	b := Bind(ctl, func(msg tea.Msg) {
		mu.Lock()
		msgs = append(msgs, msg)
		mu.Unlock()
	})
	defer b.Close()

	ctl.Submit(context.Background(), "Milk", "1")
	ctl.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		var done bool
		for _, m := range msgs {
			if _, ok := m.(finishedMsg); ok {
				done = true
			}
		}
		mu.Unlock()
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("finishedMsg was not delivered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// failingOnceStore fails the first GetByID and delegates everything else.
type failingOnceStore struct {
	*store.Memory

	mu   sync.Mutex
	gets int
}

func (s *failingOnceStore) GetByID(ctx context.Context, id int) (shopitem.ShopItem, error) {
	s.mu.Lock()
	s.gets++
	first := s.gets == 1
	s.mu.Unlock()
	if first {
		return shopitem.ShopItem{}, errors.New("database is locked")
	}
	return s.Memory.GetByID(ctx, id)
}

func (s *failingOnceStore) getCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

func TestEnterRetriesFailedLoad(t *testing.T) {
	backend := &failingOnceStore{Memory: store.NewMemory()}
	want := shopitem.ShopItem{ID: 7, Name: "Eggs", Count: 2, Active: true}
	_ = backend.Add(context.Background(), want)

	m, ctl := newTestModel(t, form.EditParams(7), backend)
	if err := ctl.Attach(context.Background()); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	ctl.Wait()

	view := m.View()
	if !strings.Contains(view, "try again") {
		t.Errorf("View() should offer a retry:\n%s", view)
	}
	if strings.Contains(view, "Loading item") {
		t.Errorf("View() still shows loading after a failed load:\n%s", view)
	}

	m, _ = press(m, tea.KeyEnter)
	ctl.Wait()

	if got := backend.getCalls(); got != 2 {
		t.Fatalf("GetByID calls = %d, want 2", got)
	}
	got, ok := ctl.Item().Value()
	if !ok || got != want {
		t.Fatalf("Item() = %+v, %v, want %+v", got, ok, want)
	}
	if err, _ := ctl.StoreError().Value(); err != nil {
		t.Errorf("StoreError() = %v after a successful retry, want nil", err)
	}

	next, _ := m.Update(itemLoadedMsg{item: got})
	m = next.(Model)
	if strings.Contains(m.View(), "Loading item") {
		t.Error("loading line should disappear once the item arrives")
	}
	if v := m.inputs[fieldName].Value(); v != "Eggs" {
		t.Errorf("name field = %q, want Eggs", v)
	}
}
