package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/muurk/shoplist/internal/form"
	"github.com/muurk/shoplist/internal/shopitem"
)

var (
	errInvalidInput = errors.New("invalid input")
	errNotSaved     = errors.New("item was not saved")
)

// fieldInput is one form field given on the command line. Set is false when
// the flag was omitted.
type fieldInput struct {
	Value string
	Set   bool
}

// saveHeadless drives a form controller without a screen: it attaches (which
// loads the item in edit mode), submits the given values and waits for the
// outcome. In edit mode omitted fields keep the stored value.
//
// It returns the item as submitted.
func saveHeadless(ctx context.Context, params form.Params, backend shopitem.Store, name, count fieldInput) (shopitem.ShopItem, error) {
	finished := false
	ctl, err := form.New(params, backend, form.HostFunc(func() { finished = true }))
	if err != nil {
		return shopitem.ShopItem{}, err
	}
	defer ctl.Close()

	if err := ctl.Attach(ctx); err != nil {
		return shopitem.ShopItem{}, err
	}
	ctl.Wait()
	if err, _ := ctl.StoreError().Value(); err != nil {
		return shopitem.ShopItem{}, fmt.Errorf("failed to load item %d: %w", ctl.ItemID(), err)
	}

	var base shopitem.ShopItem
	if params.Mode == form.ModeEdit {
		base, _ = ctl.Item().Value()
		if !name.Set {
			name.Value = base.Name
		}
		if !count.Set {
			count.Value = strconv.Itoa(base.Count)
		}
	} else {
		base = shopitem.New("", 0)
	}

	scheduled := ctl.Submit(ctx, name.Value, count.Value)
	ctl.Wait()

	if nameBad, _ := ctl.NameError().Value(); nameBad {
		err = errors.Join(err, fmt.Errorf("%w: name must not be blank", errInvalidInput))
	}
	if countBad, _ := ctl.CountError().Value(); countBad {
		err = errors.Join(err, fmt.Errorf("%w: count must be a whole number greater than zero", errInvalidInput))
	}
	if err != nil {
		return shopitem.ShopItem{}, err
	}
	if storeErr, _ := ctl.StoreError().Value(); storeErr != nil {
		return shopitem.ShopItem{}, fmt.Errorf("failed to save item: %w", storeErr)
	}
	if !scheduled || !finished {
		return shopitem.ShopItem{}, errNotSaved
	}

	return base.WithInput(shopitem.ParseName(name.Value), shopitem.ParseCount(count.Value)), nil
}
