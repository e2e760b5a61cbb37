// Package config manages the shoplist preferences file.
//
// The file is YAML and records which item store to use, where its data file
// lives, the log level and a few limits for the interactive form. Command
// line flags override these values for a single run.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/shoplist/config.yaml or $HOME/.config/shoplist/config.yaml
//   - macOS: $HOME/.config/shoplist/config.yaml
//   - Windows: %LOCALAPPDATA%\shoplist\config.yaml
//
// SHOPLIST_CONFIG points at a different file.
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Store.Backend = config.BackendSQLite
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// A missing file is not an error: Load returns the defaults. Saves are
// atomic (temporary file plus rename). The global config is loaded once,
// guarded by sync.Once.
package config
