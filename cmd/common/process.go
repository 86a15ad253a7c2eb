// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"eip/internal/inventory"
	"eip/internal/ledger"
	"eip/internal/logging"
	"eip/internal/models"
	"eip/internal/workspace"

	"github.com/shopspring/decimal"
)

// OrderLedger records which orders were already added to the inventory.
type OrderLedger interface {
	HasOrder(ctx context.Context, name string) (bool, error)
	RecordWith(ctx context.Context, name string, items int, subtotal decimal.Decimal, apply func() error) (ledger.Entry, error)
}

// OrderResult describes an order merged into the inventory.
type OrderResult struct {
	Order    string
	Items    int
	Subtotal decimal.Decimal
	Archive  string
}

// AddOrder reads the order sheet at path, merges it into the saved inventory,
// archives the sheet under past orders and records it in the ledger. The
// inventory is only saved inside the ledger transaction, so a failed write
// leaves the order unrecorded and a failed record leaves the inventory as it
// was. An order already recorded is rejected with ledger.ErrOrderAlreadyAdded.
func AddOrder(ctx context.Context, ws *workspace.Workspace, orders OrderLedger, path string, log logging.Logger) (OrderResult, error) {
	name := workspace.OrderName(path)
	log = log.WithField(logging.FieldOrder, name)

	added, err := orders.HasOrder(ctx, name)
	if err != nil {
		return OrderResult{}, err
	}
	if added {
		return OrderResult{}, fmt.Errorf("order %q: %w", name, ledger.ErrOrderAlreadyAdded)
	}

	order, err := ws.ReadOrder(path)
	if err != nil {
		return OrderResult{}, err
	}
	if order.IsEmpty() {
		return OrderResult{}, fmt.Errorf("order %q has no items", name)
	}

	inv, err := ws.LoadInventory()
	if err != nil && !errors.Is(err, workspace.ErrNoInventory) {
		return OrderResult{}, err
	}
	if err != nil {
		log.Info("No inventory yet, starting a new one")
	}

	result := OrderResult{Order: name, Items: order.Len(), Subtotal: order.Subtotal()}
	inv.Absorb(order)

	_, err = orders.RecordWith(ctx, name, result.Items, result.Subtotal, func() error {
		archive, err := ws.ArchiveOrder(path)
		if err != nil {
			return err
		}
		result.Archive = archive
		return ws.SaveInventory(inv)
	})
	if err != nil {
		return OrderResult{}, err
	}

	log.Info("Order added to inventory",
		logging.F(logging.FieldCount, result.Items),
		logging.F(logging.FieldSubtotal, models.FormatPrice(result.Subtotal)))
	return result, nil
}

// ParseCategoryFilter parses a --category flag value. An empty value or
// "all" selects every category.
func ParseCategoryFilter(name string) (models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "all") {
		return models.Other, false, nil
	}
	category, err := models.ParseCategory(name)
	if err != nil {
		return models.Other, false, err
	}
	return category, true, nil
}

// ListOptions controls how PrintCollection lists items.
type ListOptions struct {
	Category    models.Category
	HasCategory bool
	Sort        inventory.SortField
	Sorted      bool
	Descending  bool
}

// PrintCollection writes the non-empty sections of c as tables followed by
// the collection subtotal.
func PrintCollection(w io.Writer, c *inventory.Collection, opts ListOptions) error {
	total := decimal.Zero
	for _, section := range c.Sections() {
		if opts.HasCategory && section.Category() != opts.Category {
			continue
		}
		if section.Len() == 0 {
			continue
		}

		items := section.Items()
		if opts.Sorted {
			items = section.Sorted(opts.Sort, !opts.Descending)
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", section.Category()); err != nil {
			return err
		}
		if err := PrintItems(w, items); err != nil {
			return err
		}
		subtotal := section.Subtotal()
		total = total.Add(subtotal)
		if _, err := fmt.Fprintf(w, "Subtotal: %s\n\n", models.FormatPrice(subtotal)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", models.FormatPrice(total))
	return err
}

// PrintItems writes items as an aligned table with the sheet column labels.
func PrintItems(w io.Writer, items []models.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(models.Labels(), "\t"))
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			item.PartNumber,
			item.ManufacturerPartNumber,
			item.Description,
			item.CustomerReference,
			models.FormatPrice(item.UnitPrice),
			item.Quantity)
	}
	return tw.Flush()
}
