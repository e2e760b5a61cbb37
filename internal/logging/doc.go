// Package logging provides structured logging for shoplist.
//
// This package wraps a zap logger. Output is silent by default so that CLI
// commands and the interactive form stay clean; set SHOPLIST_LOG_LEVEL (or
// pass --log-level) to turn it on. Logs go to stderr so they never mix with
// command output.
//
// # Log Levels
//
//   - Debug: form state changes, discarded late results, store calls
//   - Info: items saved
//   - Warn: store failures surfaced to the form
//   - Error: startup failures
//
// # Usage
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Info("Item saved", zap.Int("item_id", 7))
//
// Components that hold their own logger take a child:
//
//	log := logging.Named("store.sqlite")
package logging
