package form

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopitem"
)

// Controller owns the state of one add/edit form: the field drafts, the two
// validation flags, the loaded item (edit mode) and the finished signal.
//
// Store calls run on their own goroutines so no method blocks on I/O.
// Results are published through the observable accessors. After Close any
// result that is still outstanding is discarded.
type Controller struct {
	params Params
	store  shopitem.Store
	host   Host
	log    *zap.Logger

	nameErr   Slot[bool]
	countErr  Slot[bool]
	item      Slot[shopitem.ShopItem]
	storeErr  Slot[error]
	busy      Slot[bool]
	finished  Signal
	submitSem chan struct{}
	wg        sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	attached   bool
	inflight   int
	loaded     *shopitem.ShopItem
	nameDraft  string
	countDraft string
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for store failures and state changes.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New validates params and returns a controller bound to store and host.
// Any problem with the arguments is returned as a *ConfigError.
func New(params Params, store shopitem.Store, host Host, opts ...Option) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, &ConfigError{Field: "store", Message: "item store is required"}
	}
	if host == nil {
		return nil, &ConfigError{Field: "host", Message: "host must implement the editing-finished callback"}
	}

	c := &Controller{
		params:    params,
		store:     store,
		host:      host,
		log:       logging.GetLogger(),
		submitSem: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("mode", string(params.Mode)))
	return c, nil
}

// Mode returns the mode the controller was built with.
func (c *Controller) Mode() Mode { return c.params.Mode }

// ItemID returns the id being edited, or shopitem.UndefinedID in create mode.
func (c *Controller) ItemID() int {
	if c.params.ItemID == nil {
		return shopitem.UndefinedID
	}
	return *c.params.ItemID
}

// NameError is true while the name validation message should be shown.
func (c *Controller) NameError() Observable[bool] { return &c.nameErr }

// CountError is true while the count validation message should be shown.
func (c *Controller) CountError() Observable[bool] { return &c.countErr }

// Item holds the item loaded in edit mode.
func (c *Controller) Item() Observable[shopitem.ShopItem] { return &c.item }

// StoreError holds the last failed store call, or nil.
func (c *Controller) StoreError() Observable[error] { return &c.storeErr }

// Busy is true while a load or submit is in flight.
func (c *Controller) Busy() Observable[bool] { return &c.busy }

// Finished fires once per successful save.
func (c *Controller) Finished() Notifier { return &c.finished }

// FinishedCount returns how many times Finished has fired.
func (c *Controller) FinishedCount() int { return c.finished.Fires() }

// Attach runs the start-up work for the mode. In edit mode it begins loading
// the item. Only the first call has any effect.
func (c *Controller) Attach(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.attached {
		c.mu.Unlock()
		return nil
	}
	c.attached = true
	c.mu.Unlock()

	if c.params.Mode == ModeEdit {
		return c.LoadForEdit(ctx, *c.params.ItemID)
	}
	return nil
}

// LoadForEdit fetches the item asynchronously. On success the Item slot is
// published; on failure StoreError is published and the form stays usable
// so the caller can retry or cancel.
func (c *Controller) LoadForEdit(ctx context.Context, id int) error {
	if c.params.Mode != ModeEdit {
		return ErrWrongMode
	}
	if !c.begin() {
		return ErrClosed
	}
	c.storeErr.Publish(nil)

	go func() {
		defer c.end()

		item, err := c.store.GetByID(ctx, id)
		if !c.alive() {
			c.log.Debug("Discarding load result after close", zap.Int("item_id", id))
			return
		}
		if err != nil {
			c.log.Warn("Failed to load item", zap.Int("item_id", id), zap.Error(err))
			c.storeErr.Publish(err)
			return
		}

		c.mu.Lock()
		c.loaded = &item
		c.mu.Unlock()

		c.log.Debug("Item loaded", zap.Int("item_id", item.ID))
		c.item.Publish(item)
	}()
	return nil
}

// OnNameChanged clears the name error flag.
func (c *Controller) OnNameChanged() {
	c.nameErr.Publish(false)
}

// OnCountChanged clears the count error flag.
func (c *Controller) OnCountChanged() {
	c.countErr.Publish(false)
}

// SetName records the name draft and clears its error flag.
func (c *Controller) SetName(raw string) {
	c.mu.Lock()
	c.nameDraft = raw
	c.mu.Unlock()
	c.OnNameChanged()
}

// SetCount records the count draft and clears its error flag.
func (c *Controller) SetCount(raw string) {
	c.mu.Lock()
	c.countDraft = raw
	c.mu.Unlock()
	c.OnCountChanged()
}

// Drafts returns the current name and count drafts.
func (c *Controller) Drafts() (name, count string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nameDraft, c.countDraft
}

// SubmitDraft submits the drafts recorded with SetName and SetCount.
func (c *Controller) SubmitDraft(ctx context.Context) bool {
	name, count := c.Drafts()
	return c.Submit(ctx, name, count)
}

// Submit parses and validates the raw input, then persists it.
//
// Validation happens before Submit returns and sets the error flags. When the
// input is valid the store call runs in the background and Finished fires
// once it succeeds. Submit reports whether a store call was scheduled. In
// edit mode nothing happens until an item has been loaded.
func (c *Controller) Submit(ctx context.Context, rawName, rawCount string) bool {
	name := shopitem.ParseName(rawName)
	count := shopitem.ParseCount(rawCount)

	v := shopitem.Validate(name, count)
	if v.NameInvalid {
		c.nameErr.Publish(true)
	}
	if v.CountInvalid {
		c.countErr.Publish(true)
	}
	if !v.Valid() {
		c.log.Debug("Submit rejected by validation",
			zap.Bool("name_invalid", v.NameInvalid),
			zap.Bool("count_invalid", v.CountInvalid),
		)
		return false
	}

	var (
		item    shopitem.ShopItem
		persist func(context.Context, shopitem.ShopItem) error
		op      string
	)
	switch c.params.Mode {
	case ModeCreate:
		item = shopitem.New(name, count)
		persist, op = c.store.Add, "add"
	case ModeEdit:
		c.mu.Lock()
		loaded := c.loaded
		c.mu.Unlock()
		if loaded == nil {
			c.log.Debug("Submit ignored: no item loaded")
			return false
		}
		item = loaded.WithInput(name, count)
		persist, op = c.store.Edit, "edit"
	}

	if !c.begin() {
		return false
	}
	c.storeErr.Publish(nil)

	go func() {
		defer c.end()

		// Submits are serialized per controller.
		c.submitSem <- struct{}{}
		err := persist(ctx, item)
		<-c.submitSem

		if !c.alive() {
			c.log.Debug("Discarding submit result after close", zap.String("op", op))
			return
		}
		if err != nil {
			c.log.Warn("Failed to save item",
				zap.String("op", op),
				zap.Int("item_id", item.ID),
				zap.Error(err),
			)
			c.storeErr.Publish(err)
			return
		}

		c.log.Info("Item saved", zap.String("op", op), zap.String("item", item.String()))
		c.finish()
	}()
	return true
}

// Wait blocks until no load or submit is in flight.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close tears the controller down. Subscribers are dropped and results that
// arrive later are ignored. Close does not wait for outstanding work.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.nameErr.Close()
	c.countErr.Close()
	c.item.Close()
	c.storeErr.Close()
	c.busy.Close()
	c.finished.Close()
}

// finish fires Finished and then notifies the host, unless the controller
// was closed before or while Finished was delivered.
func (c *Controller) finish() {
	if !c.alive() {
		return
	}
	if !c.finished.Fire() || !c.alive() {
		c.log.Debug("Skipping host notification after close")
		return
	}
	c.host.OnEditingFinished()
}

func (c *Controller) alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// begin registers an in-flight operation. It returns false after Close.
func (c *Controller) begin() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.inflight++
	first := c.inflight == 1
	c.wg.Add(1)
	c.mu.Unlock()

	if first {
		c.busy.Publish(true)
	}
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inflight--
	idle := c.inflight == 0 && !c.closed
	c.mu.Unlock()

	if idle {
		c.busy.Publish(false)
	}
	c.wg.Done()
}
