// Package form holds the state and behavior of the add/edit item form,
// independent of any screen.
//
// A Controller is built for one mode: ModeCreate adds a new item, ModeEdit
// loads an existing item by id and updates it. Bad construction parameters
// are returned as a *ConfigError and never deferred.
//
// The controller publishes its state through observable slots:
//
//   - NameError and CountError: whether to show the field's validation message
//   - Item: the item loaded in edit mode
//   - StoreError: the last failed store call, nil once a new call starts
//   - Busy: whether a store call is in flight
//   - Finished: fires once per successful save
//
// A subscriber receives the current value immediately and every later
// change until it unsubscribes or the controller is closed. Finished is not
// replayed.
//
// Example:
//
//	ctl, err := form.New(form.EditParams(7), backend, form.HostFunc(closeScreen))
//	if err != nil {
//	    return err
//	}
//	defer ctl.Close()
//
//	ctl.Item().Subscribe(func(it shopitem.ShopItem) { fill(it.Name, it.Count) })
//	_ = ctl.Attach(ctx)
//	...
//	ctl.Submit(ctx, nameField, countField)
package form
