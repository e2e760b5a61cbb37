package form

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects whether the form creates a new item or edits an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	// ErrConfig is the root of every configuration error. These are
	// integrator bugs and are reported by New, never deferred.
	ErrConfig = errors.New("form misconfigured")

	// ErrWrongMode is returned by operations that only make sense in one mode.
	ErrWrongMode = errors.New("operation not available in this form mode")

	// ErrClosed is returned by operations on a controller after Close.
	ErrClosed = errors.New("form controller closed")
)

// ConfigError describes a bad construction parameter.
type ConfigError struct {
	Field   string // Parameter at fault (e.g., "mode", "item_id")
	Message string // What is wrong with it
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrConfig) match.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ParseMode converts a mode tag to a Mode. "add" is accepted as an alias
// for create.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create", "add":
		return ModeCreate, nil
	case "edit":
		return ModeEdit, nil
	case "":
		return "", &ConfigError{Field: "mode", Message: "screen mode is absent"}
	default:
		return "", &ConfigError{Field: "mode", Message: fmt.Sprintf("unknown screen mode %q", s)}
	}
}

// Params are the construction parameters supplied by the host screen.
type Params struct {
	Mode   Mode
	ItemID *int // Required in ModeEdit, must be nil in ModeCreate
}

// CreateParams returns parameters for adding a new item.
func CreateParams() Params {
	return Params{Mode: ModeCreate}
}

// EditParams returns parameters for editing the item with the given id.
func EditParams(id int) Params {
	return Params{Mode: ModeEdit, ItemID: &id}
}

// Validate checks the mode and id combination.
func (p Params) Validate() error {
	switch p.Mode {
	case ModeCreate:
		if p.ItemID != nil {
			return &ConfigError{Field: "item_id", Message: "create mode does not take an item id"}
		}
	case ModeEdit:
		if p.ItemID == nil {
			return &ConfigError{Field: "item_id", Message: "edit mode requires an item id"}
		}
		if *p.ItemID < 0 {
			return &ConfigError{Field: "item_id", Message: fmt.Sprintf("item id must be assigned, got %d", *p.ItemID)}
		}
	case "":
		return &ConfigError{Field: "mode", Message: "screen mode is absent"}
	default:
		return &ConfigError{Field: "mode", Message: fmt.Sprintf("unknown screen mode %q", p.Mode)}
	}
	return nil
}

// Host is the screen that owns a form. It is told once the form's work is
// done so it can close the screen.
type Host interface {
	OnEditingFinished()
}

// HostFunc adapts a plain function to Host.
type HostFunc func()

// OnEditingFinished calls f.
func (f HostFunc) OnEditingFinished() { f() }
