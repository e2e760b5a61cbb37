package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/shoplist/internal/form"
	"github.com/muurk/shoplist/internal/shopitem"
)

// Messages produced by the controller subscriptions.
type (
	itemLoadedMsg struct{ item shopitem.ShopItem }
	finishedMsg   struct{}
	// refreshMsg asks for a redraw after a flag, store error or busy change.
	refreshMsg   struct{}
	attachErrMsg struct{ err error }
)

// Bridge forwards controller notifications to a send function without ever
// blocking the publisher. Controller callbacks can fire inside Update (SetName
// clears a flag synchronously), and tea.Program.Send blocks until the event
// loop reads the message, so delivery goes through a queue drained by its own
// goroutine. Order is preserved.
type Bridge struct {
	send func(tea.Msg)

	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
	done  chan struct{}
	once  sync.Once
	unsub []func()
}

// Bind subscribes to every observable of ctl and starts delivering messages
// to send. Call Close when the program exits.
func Bind(ctl *form.Controller, send func(tea.Msg)) *Bridge {
	b := &Bridge{
		send: send,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go b.pump()

	refresh := func() { b.push(refreshMsg{}) }
	b.unsub = []func(){
		ctl.NameError().Subscribe(func(bool) { refresh() }),
		ctl.CountError().Subscribe(func(bool) { refresh() }),
		ctl.StoreError().Subscribe(func(error) { refresh() }),
		ctl.Busy().Subscribe(func(bool) { refresh() }),
		ctl.Item().Subscribe(func(it shopitem.ShopItem) { b.push(itemLoadedMsg{item: it}) }),
		ctl.Finished().Subscribe(func() { b.push(finishedMsg{}) }),
	}
	return b
}

// Close drops the subscriptions and stops delivery. Queued messages are
// discarded.
func (b *Bridge) Close() {
	b.once.Do(func() {
		for _, u := range b.unsub {
			u()
		}
		close(b.done)
	})
}

func (b *Bridge) push(msg tea.Msg) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) pump() {
	for {
		select {
		case <-b.done:
			return
		case <-b.wake:
		}

		b.mu.Lock()
		pending := b.queue
		b.queue = nil
		b.mu.Unlock()

		for _, msg := range pending {
			select {
			case <-b.done:
				return
			default:
			}
			b.send(msg)
		}
	}
}
