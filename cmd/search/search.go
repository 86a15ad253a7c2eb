// Package search handles the search command
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"eip/cmd/root"
	"eip/internal/models"
	"eip/internal/search"
	"eip/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	section  string
	category string
	text     string
	format   string
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search the inventory, projects and past orders",
	Long: `Search items by category and description words. Each word of --text is
matched case-insensitively against descriptions; results follow word order.`,
	Args: cobra.NoArgs,
	RunE: searchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&section, "section", "s", string(search.SectionAll), "Where to search (inventory, projects, past-orders, all)")
	Cmd.Flags().StringVarP(&category, "category", "c", "all", "Category to search")
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Words to find in descriptions")
	Cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
}

func searchFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	s, err := search.ParseSection(section)
	if err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	results, err := c.GetSearcher().Search(search.Query{Section: s, Category: category, Text: text})
	if err != nil {
		return err
	}
	return printResults(cmd.OutOrStdout(), results, format)
}

func printResults(w io.Writer, results []search.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		return yaml.NewEncoder(w).Encode(results)
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matching items")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Source\tCategory\tPart Number\tDescription\tUnit Price\tQuantity")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			r.Source, r.Category, r.Item.PartNumber, r.Item.Description,
			models.FormatPrice(r.Item.UnitPrice), r.Item.Quantity)
	}
	return tw.Flush()
}
