package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/shoplist/internal/form"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopitem"
	"github.com/muurk/shoplist/internal/store"
	"github.com/muurk/shoplist/internal/tui"
	"github.com/muurk/shoplist/internal/ui"
)

// Item command flags
var (
	itemName     string
	itemCount    string
	formMode     string
	formItemID   int
	outputFormat string
	assumeYes    bool
)

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVar(&itemName, "name", "", "Item name")
		c.Flags().StringVar(&itemCount, "count", "", "Item count")
	}
	formCmd.Flags().StringVar(&formMode, "mode", "create", "Form mode (create, add, edit)")
	formCmd.Flags().IntVar(&formItemID, "id", shopitem.UndefinedID, "Item id (edit mode)")
	listCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json, yaml)")
	rmCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to the list",
	Example: `  # Open the form
  shoplist add

  # Add without the form
  shoplist add --name Milk --count 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, form.CreateParams())
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an item",
	Example: `  # Open the form with item 7 loaded
  shoplist edit 7

  # Change only the count
  shoplist edit 7 --count 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runForm(cmd, form.EditParams(id))
	},
}

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the item form in a given mode",
	Long: `Open the interactive item form. The mode is given by name, which is how
other tools launch the form.`,
	Example: `  shoplist form --mode add
  shoplist form --mode edit --id 7`,
	Args: cobra.NoArgs,
	RunE: runFormByMode,
}

func runFormByMode(cmd *cobra.Command, args []string) error {
	mode, err := form.ParseMode(formMode)
	if err != nil {
		return err
	}
	params := form.Params{Mode: mode}
	if cmd.Flags().Changed("id") {
		id := formItemID
		params.ItemID = &id
	}
	return runForm(cmd, params)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show all items",
	Example: `  shoplist list
  shoplist list --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer backend.Close()

		items, err := backend.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		return writeItems(cmd.OutOrStdout(), items, outputFormat)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an item",
	Example: `  shoplist rm 7
  shoplist rm 7 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		backend, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer backend.Close()

		item, err := backend.GetByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load item %d: %w", id, err)
		}

		if !assumeYes {
			if !ui.IsInteractive() {
				return fmt.Errorf("refusing to delete item %d without --yes", id)
			}
			if !ui.Confirm(os.Stdin, cmd.OutOrStdout(), fmt.Sprintf("Remove %s?", item)) {
				return nil
			}
		}

		if err := backend.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to remove item %d: %w", id, err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSaved("Item removed", item)
		return nil
	},
}

// runForm opens the interactive form, or saves directly when --name or
// --count was given or there is no terminal.
func runForm(cmd *cobra.Command, params form.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	backend, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer backend.Close()

	name := fieldInput{Value: itemName, Set: cmd.Flags().Changed("name")}
	count := fieldInput{Value: itemCount, Set: cmd.Flags().Changed("count")}
	p := ui.NewPrinter(cmd.OutOrStdout())

	if name.Set || count.Set || !ui.IsInteractive() {
		item, err := saveHeadless(cmd.Context(), params, backend, name, count)
		if err != nil {
			return err
		}
		p.PrintSaved(savedTitle(params.Mode), item)
		return nil
	}

	ctl, err := form.New(params, backend, form.HostFunc(func() {
		logging.Debug("Form finished")
	}))
	if err != nil {
		return err
	}
	res, err := tui.Run(cmd.Context(), ctl, cfg.Form)
	if err != nil {
		return err
	}
	if res.Saved {
		p.Println(ui.SuccessTitleStyle.Render(ui.SuccessMarker + "  " + savedTitle(params.Mode)))
	}
	return nil
}

func savedTitle(mode form.Mode) string {
	if mode == form.ModeEdit {
		return "Item updated"
	}
	return "Item added"
}

func openBackend(ctx context.Context) (store.Backend, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return store.Open(ctx, cfg)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

// writeItems prints items in the requested format.
func writeItems(w io.Writer, items []shopitem.ShopItem, format string) error {
	if items == nil {
		items = []shopitem.ShopItem{}
	}
	switch format {
	case "", "table":
		ui.NewPrinter(w).PrintItems(items)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(items)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}
