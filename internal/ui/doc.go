// Package ui renders the non-interactive output of the shoplist CLI.
//
// Commands print through a Printer: item lists, success and failure boxes,
// and the delete confirmation prompt. The interactive form lives in
// internal/tui and reuses the palette defined here.
//
// Logging is silent unless SHOPLIST_LOG_LEVEL is set, so the styled output
// is not interleaved with zap lines during normal use.
package ui
