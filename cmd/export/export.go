// Package export handles the export command
package export

import (
	"fmt"
	"path/filepath"

	"eip/cmd/root"
	"eip/internal/fileutils"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Copy a saved list to the export directory",
	Long: `Copy a saved list to the export directory. FILE is a path, or a name inside
the data directory such as Inventory.xlsx or Projects/amp.csv. A name already
present in the export directory gets a (n) suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ws := c.GetWorkspace()

	path := args[0]
	if !fileutils.FileExists(path) {
		if inRoot := filepath.Join(ws.Root(), path); fileutils.FileExists(inRoot) {
			path = inRoot
		}
	}

	dst, err := ws.Export(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", dst)
	return err
}
