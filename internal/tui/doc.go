// Package tui is the interactive add/edit screen for a shopping-list item.
//
// The screen is a Bubble Tea program with two text inputs bound to a
// form.Controller. Keystrokes update the controller drafts; enter submits
// them. Everything the controller publishes (validation flags, the loaded
// item, store failures, the busy state and the finished signal) is delivered
// to the program as messages through a Bridge.
//
// Typical use from a command:
//
//	ctl, _ := form.New(form.EditParams(7), backend, host)
//	res, err := tui.Run(ctx, ctl, cfg.Form)
//	if res.Saved { ... }
package tui
