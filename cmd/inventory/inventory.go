// Package inventory handles the commands working on the saved inventory
package inventory

import (
	"errors"
	"fmt"

	"eip/cmd/common"
	"eip/cmd/root"
	"eip/internal/container"
	inv "eip/internal/inventory"
	"eip/internal/models"
	"eip/internal/report"
	"eip/internal/validation"
	"eip/internal/workspace"

	"github.com/spf13/cobra"
)

var (
	category   string
	placement  string
	sortField  string
	descending bool
	format     string

	addFlags  common.ItemFlags
	editFlags common.ItemFlags

	description string
	delta       int
)

// Cmd represents the inventory command
var Cmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show and edit the saved inventory",
	Long:  `Show, summarize and edit the inventory workbook of the data directory.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the inventory items by category",
	Long:  `Show the inventory items grouped by category, optionally sorted by one column.`,
	Args:  cobra.NoArgs,
	RunE:  showFunc,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the inventory per category",
	Long:  `Print item count, total quantity and subtotal per category in text, json or yaml.`,
	Args:  cobra.NoArgs,
	RunE:  summaryFunc,
}

var addItemCmd = &cobra.Command{
	Use:   "add-item",
	Short: "Add one item to the inventory",
	Long: `Add one item to the inventory. The item goes to the category its description
classifies to unless --category places it explicitly.`,
	Args: cobra.NoArgs,
	RunE: addItemFunc,
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an inventory item",
	Long:  `Edit the inventory item with the given description. Only the fields passed are changed.`,
	Args:  cobra.NoArgs,
	RunE:  editFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an inventory item",
	Long:  `Delete the inventory item with the given description.`,
	Args:  cobra.NoArgs,
	RunE:  deleteFunc,
}

var qtyCmd = &cobra.Command{
	Use:   "qty",
	Short: "Change the quantity of an inventory item",
	Long: `Add delta to the quantity of an inventory item. Decrementing an item whose
quantity is already zero deletes it.`,
	Args: cobra.NoArgs,
	RunE: qtyFunc,
}

func init() {
	showCmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category")
	showCmd.Flags().StringVarP(&sortField, "sort", "s", "", "Sort by column (part, mpn, description, reference, price, quantity)")
	showCmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")

	summaryCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")

	addFlags.Register(addItemCmd, common.FlagDescription)
	addItemCmd.Flags().StringVarP(&placement, "category", "c", "", "Place the item in this category")
	_ = addItemCmd.MarkFlagRequired(common.FlagDescription)

	editCmd.Flags().StringVar(&description, "description", "", "Description of the item to edit")
	editFlags.Register(editCmd, "new-description")
	_ = editCmd.MarkFlagRequired("description")

	deleteCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the item to delete")
	_ = deleteCmd.MarkFlagRequired("description")

	qtyCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the item")
	qtyCmd.Flags().IntVar(&delta, "delta", 1, "Quantity to add, negative to remove")
	_ = qtyCmd.MarkFlagRequired("description")

	Cmd.AddCommand(showCmd, summaryCmd, addItemCmd, editCmd, deleteCmd, qtyCmd)
}

// load returns the saved inventory. A missing inventory is an empty one.
func load(c *container.Container) (*inv.Collection, error) {
	collection, err := c.GetWorkspace().LoadInventory()
	if errors.Is(err, workspace.ErrNoInventory) {
		c.GetLogger().Info("No inventory saved yet")
		return collection, nil
	}
	return collection, err
}

func showFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	filter, hasFilter, err := common.ParseCategoryFilter(category)
	if err != nil {
		return err
	}
	opts := common.ListOptions{Category: filter, HasCategory: hasFilter, Descending: descending}
	if sortField != "" {
		if opts.Sort, err = inv.ParseSortField(sortField); err != nil {
			return err
		}
		opts.Sorted = true
	}

	collection, err := load(c)
	if err != nil {
		return err
	}
	return common.PrintCollection(cmd.OutOrStdout(), collection, opts)
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	collection, err := load(c)
	if err != nil {
		return err
	}

	out, err := c.GetReportGenerator().GenerateReport(report.Summarize(collection), format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func addItemFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	target, placed, err := common.ParseCategoryFilter(placement)
	if err != nil {
		return err
	}
	item, warnings, err := c.GetValidator().Item(addFlags.Input())
	if err != nil {
		return err
	}
	common.PrintWarnings(cmd.ErrOrStderr(), warnings)

	collection, err := load(c)
	if err != nil {
		return err
	}
	if placed {
		collection.Add(target, item)
	} else {
		collection.AddClassified(item)
		target = collection.CategoryOf(item)
	}
	if err := c.GetWorkspace().SaveInventory(collection); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", item.Description, target)
	return err
}

func editFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	collection, err := load(c)
	if err != nil {
		return err
	}

	current, _, ok := collection.Find(description)
	if !ok {
		return fmt.Errorf("%w: %q", inv.ErrItemNotFound, description)
	}
	item, warnings, err := c.GetValidator().Item(editFlags.Overlay(cmd, current, "new-description"))
	if err != nil {
		return err
	}
	common.PrintWarnings(cmd.ErrOrStderr(), warnings)

	if err := collection.Replace(description, item); err != nil {
		return err
	}
	if err := c.GetWorkspace().SaveInventory(collection); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %q in %s\n", item.Description, collection.CategoryOf(item))
	return err
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	collection, err := load(c)
	if err != nil {
		return err
	}

	if err := collection.UpdateOrDelete(models.Item{Description: description}, true); err != nil {
		return err
	}
	if err := c.GetWorkspace().SaveInventory(collection); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", description)
	return err
}

func qtyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	collection, err := load(c)
	if err != nil {
		return err
	}

	item, deleted, err := collection.AdjustQuantity(description, delta)
	if err != nil {
		return err
	}
	if err := c.GetWorkspace().SaveInventory(collection); err != nil {
		return err
	}
	if deleted {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", description)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%q quantity is now %d\n", item.Description, item.Quantity)
	return err
}
