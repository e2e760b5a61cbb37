// Package store implements shopitem.Store on top of an in-memory map, a YAML
// document and a SQLite database.
//
// Every backend enforces the persisted-item invariant (non-blank name, count
// of at least 1) on write and reports violations as shopitem.ErrInvalidItem.
package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopitem"
)

// Backend is a store the CLI can list from, delete from and close.
type Backend interface {
	shopitem.Store
	shopitem.Lister
	io.Closer
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// checkItem validates an item that is about to be persisted with its final id.
func checkItem(item shopitem.ShopItem) error {
	if err := validate.Struct(item); err != nil {
		var fields []string
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				fields = append(fields, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
		} else {
			fields = append(fields, err.Error())
		}
		return fmt.Errorf("%w: %s", shopitem.ErrInvalidItem, strings.Join(fields, ", "))
	}
	return nil
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	path, err := cfg.DataPath()
	if err != nil {
		return nil, err
	}

	logging.Debug("Opening item store")
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendYAML:
		return OpenYAML(path)
	case config.BackendSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
