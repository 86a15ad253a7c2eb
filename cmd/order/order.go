// Package order handles order sheet commands
package order

import (
	"fmt"
	"text/tabwriter"
	"time"

	"eip/cmd/common"
	"eip/cmd/root"
	"eip/internal/models"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	category  string
)

// Cmd represents the order command
var Cmd = &cobra.Command{
	Use:   "order",
	Short: "Inspect order sheets and add them to the inventory",
	Long: `Inspect distributor order sheets (CSV or XLSX), add them to the inventory
and list the orders already added.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the classified items of an order sheet",
	Long:  `Read an order sheet, classify every item and merge duplicate part numbers.`,
	RunE:  showFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an order sheet to the inventory",
	Long: `Merge an order sheet into the inventory, archive it under past orders and
record it so the same order is not added twice.`,
	RunE: addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the orders added to the inventory",
	Long:  `List the orders recorded in the order ledger, oldest first.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	showCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Order sheet to read")
	showCmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category")
	_ = showCmd.MarkFlagRequired("input")

	addCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Order sheet to add")
	_ = addCmd.MarkFlagRequired("input")

	Cmd.AddCommand(showCmd, addCmd, listCmd)
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

	order, err := c.GetWorkspace().ReadOrder(inputFile)
	if err != nil {
		return err
	}
	return common.PrintCollection(cmd.OutOrStdout(), order, common.ListOptions{
		Category:    filter,
		HasCategory: hasFilter,
	})
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ledger, err := c.GetLedger()
	if err != nil {
		return err
	}

	result, err := common.AddOrder(cmd.Context(), c.GetWorkspace(), ledger, inputFile, c.GetLogger())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added order %s: %d items, subtotal %s\n",
		result.Order, result.Items, models.FormatPrice(result.Subtotal))
	return err
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ledger, err := c.GetLedger()
	if err != nil {
		return err
	}

	entries, err := ledger.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No orders added yet")
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Order\tItems\tSubtotal\tAdded")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Order, e.Items, models.FormatPrice(e.Subtotal), e.AddedAt.Format(time.DateTime))
	}
	return tw.Flush()
}
