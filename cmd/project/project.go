// Package project handles project bill-of-materials commands
package project

import (
	"fmt"

	"eip/cmd/common"
	"eip/cmd/root"
	"eip/internal/inventory"
	"eip/internal/models"

	"github.com/spf13/cobra"
)

var (
	fileType  string
	inputFile string
	itemFlags common.ItemFlags

	editFlags   common.ItemFlags
	description string
	delta       int
)

// Cmd represents the project command
var Cmd = &cobra.Command{
	Use:   "project",
	Short: "Create and edit project part lists",
	Long:  `Create project part lists under the Projects directory and add, edit or remove their items.`,
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty project",
	Long:  `Create an empty project list as a CSV file or an XLSX workbook with one sheet per category.`,
	Args:  cobra.ExactArgs(1),
	RunE:  createFunc,
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add items to a project",
	Long: `Add the items of a sheet (--input) or a single item given by flags to a
project, merging duplicate part numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: addFunc,
}

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show the items of a project",
	Long:  `Show the items of a project grouped by category.`,
	Args:  cobra.ExactArgs(1),
	RunE:  showFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long:  `List the project files of the data directory.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Edit a project item",
	Long:  `Edit the project item with the given description. Only the fields passed are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  editFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a project item",
	Long:  `Delete the project item with the given description. The last item of a project cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

var qtyCmd = &cobra.Command{
	Use:   "qty NAME",
	Short: "Change the quantity of a project item",
	Long: `Add delta to the quantity of a project item. Decrementing an item whose
quantity is already zero deletes it.`,
	Args: cobra.ExactArgs(1),
	RunE: qtyFunc,
}

func init() {
	createCmd.Flags().StringVarP(&fileType, "type", "t", models.FileTypeCSV, "Project file type (csv or xlsx)")

	addCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Sheet whose items are added")
	itemFlags.Register(addCmd, common.FlagDescription)
	addCmd.MarkFlagsMutuallyExclusive("input", common.FlagDescription)
	addCmd.MarkFlagsOneRequired("input", common.FlagDescription)

	editCmd.Flags().StringVar(&description, "description", "", "Description of the item to edit")
	editFlags.Register(editCmd, "new-description")
	_ = editCmd.MarkFlagRequired("description")

	deleteCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the item to delete")
	_ = deleteCmd.MarkFlagRequired("description")

	qtyCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the item")
	qtyCmd.Flags().IntVar(&delta, "delta", 1, "Quantity to add, negative to remove")
	_ = qtyCmd.MarkFlagRequired("description")

	Cmd.AddCommand(createCmd, addCmd, showCmd, listCmd, editCmd, deleteCmd, qtyCmd)
}

func createFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	path, err := c.GetWorkspace().CreateProject(args[0], fileType)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", path)
	return err
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ws := c.GetWorkspace()
	name := args[0]

	project, err := ws.OpenProject(name)
	if err != nil {
		return err
	}

	if inputFile != "" {
		items, err := ws.ReadOrder(inputFile)
		if err != nil {
			return err
		}
		project.Absorb(items)
	} else {
		item, warnings, err := c.GetValidator().Item(itemFlags.Input())
		if err != nil {
			return err
		}
		common.PrintWarnings(cmd.ErrOrStderr(), warnings)
		project.AddClassified(item)
		project.MergeDuplicates(true)
	}

	if err := ws.SaveProject(name, project); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Project %s now has %d items, subtotal %s\n",
		project.Name(), project.Len(), models.FormatPrice(project.Subtotal()))
	return err
}

func editFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ws := c.GetWorkspace()
	project, err := ws.OpenProject(args[0])
	if err != nil {
		return err
	}

	current, _, ok := project.Find(description)
	if !ok {
		return fmt.Errorf("%w: %q", inventory.ErrItemNotFound, description)
	}
	item, warnings, err := c.GetValidator().Item(editFlags.Overlay(cmd, current, "new-description"))
	if err != nil {
		return err
	}
	common.PrintWarnings(cmd.ErrOrStderr(), warnings)

	if err := project.Replace(description, item); err != nil {
		return err
	}
	if err := ws.SaveProject(args[0], project); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %q in project %s\n", item.Description, project.Name())
	return err
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ws := c.GetWorkspace()
	project, err := ws.OpenProject(args[0])
	if err != nil {
		return err
	}

	if err := project.UpdateOrDelete(models.Item{Description: description}, true); err != nil {
		return err
	}
	if err := ws.SaveProject(args[0], project); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q from project %s\n", description, project.Name())
	return err
}

func qtyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ws := c.GetWorkspace()
	project, err := ws.OpenProject(args[0])
	if err != nil {
		return err
	}

	item, deleted, err := project.AdjustQuantity(description, delta)
	if err != nil {
		return err
	}
	if err := ws.SaveProject(args[0], project); err != nil {
		return err
	}
	if deleted {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q from project %s\n", description, project.Name())
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%q quantity is now %d\n", item.Description, item.Quantity)
	return err
}

func showFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	project, err := c.GetWorkspace().OpenProject(args[0])
	if err != nil {
		return err
	}
	return common.PrintCollection(cmd.OutOrStdout(), project, common.ListOptions{})
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	projects, err := c.GetWorkspace().Projects()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No projects yet")
		return err
	}
	for _, p := range projects {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
			return err
		}
	}
	return nil
}
